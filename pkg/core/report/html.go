package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"project_feasibility/pkg/core/projection"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// HTML renders the result as an HTML fragment. Body rows carry their row id
// in data-row; numeric cells get class "num", negative ones "num neg".
func HTML(r *projection.Result) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(r)), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return decorate(buf.String())
}

func decorate(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("failed to parse rendered html: %w", err)
	}

	doc.Find("table").AddClass("projection")
	doc.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if id := strings.TrimSpace(cells.First().Text()); id != "" {
			tr.SetAttr("data-row", id)
		}
		cells.Each(func(i int, td *goquery.Selection) {
			if i == 0 {
				return
			}
			v, ok := parseCell(td.Text())
			if !ok {
				return
			}
			class := "num"
			if v < 0 {
				class = "num neg"
			}
			td.SetAttr("class", class)
		})
	})

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize html: %w", err)
	}
	return `<article class="feasibility-report">` + body + "</article>", nil
}
