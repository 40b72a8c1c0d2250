package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"project_feasibility/pkg/core/loader"
	"project_feasibility/pkg/core/projection"
	"project_feasibility/pkg/core/report"
	"project_feasibility/pkg/core/settings"
	"project_feasibility/pkg/core/store"
	"project_feasibility/pkg/core/validate"
	"project_feasibility/pkg/models"
)

type app struct {
	settingsPath string
	settings     settings.Settings
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "feasibility",
		Short: "Feasibility-study financial projections",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			godotenv.Load()
			s, err := settings.Load(a.settingsPath)
			if err != nil {
				return err
			}
			a.settings = s
			return nil
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.settingsPath, "settings", settings.DefaultPath, "Path to the engine settings file")

	root.AddCommand(a.computeCmd(), a.validateCmd(), a.batchCmd())
	return root
}

func (a *app) engine() *projection.ProjectionEngine {
	return projection.NewProjectionEngine(a.settings.ProjectionDefaults())
}

// =============================================================================
// compute
// =============================================================================

func (a *app) computeCmd() *cobra.Command {
	var (
		format string
		table  string
		out    string
		save   bool
	)
	cmd := &cobra.Command{
		Use:   "compute FILE",
		Short: "Compute all tables and indicators for a project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(args[0])
			if err != nil {
				return err
			}
			res := a.engine().Run(cfg)

			var rendered string
			if table != "" {
				rendered, err = renderTable(res, table, format)
			} else {
				rendered, err = render(res, format)
			}
			if err != nil {
				return err
			}
			if out != "" {
				if err := os.WriteFile(out, []byte(rendered), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", out, err)
				}
				pterm.Success.Printfln("Wrote %s", out)
			} else {
				fmt.Println(rendered)
			}
			printIssues(res.Report)

			if save {
				return a.save(cmd.Context(), cfg, res)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: json, markdown, html, table")
	cmd.Flags().StringVarP(&table, "table", "t", "", "Render a single table by key, e.g. cash_flow")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write output to a file instead of stdout")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the configuration and result as a snapshot")
	return cmd
}

func (a *app) save(ctx context.Context, cfg models.ProjectConfig, res *projection.Result) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := store.InitDB(ctx); err != nil {
		pterm.Warning.Printfln("%v; saving under %s", err, a.settings.Store.SnapshotDir)
	}
	defer store.Close()

	repo := store.NewSnapshotRepo(store.GetPool(), a.settings.Store.SnapshotDir)
	snap := &store.Snapshot{Config: cfg, Result: res}
	if err := repo.Save(ctx, snap); err != nil {
		return err
	}
	pterm.Success.Printfln("Snapshot %s saved (%s)", snap.ID, repo.Backend())
	return nil
}

// =============================================================================
// validate
// =============================================================================

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a project file without computing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(args[0])
			if err != nil {
				return err
			}
			rep := validate.Config(cfg)
			printIssues(rep)
			if rep.HasErrors() {
				return fmt.Errorf("%s has %d issue(s)", args[0], len(rep.Issues))
			}
			pterm.Success.Printfln("%s is valid", args[0])
			return nil
		},
	}
}

// =============================================================================
// batch
// =============================================================================

func (a *app) batchCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "batch FILE...",
		Short: "Compute several project files concurrently and summarize them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgs := make([]models.ProjectConfig, 0, len(args))
			for _, path := range args {
				cfg, err := load(path)
				if err != nil {
					return err
				}
				if cfg.ProjectID == "" {
					cfg.ProjectID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				}
				cfgs = append(cfgs, cfg)
			}
			if workers <= 0 {
				workers = a.settings.Workers
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			results, err := a.engine().RunBatch(ctx, cfgs, workers)
			if err != nil {
				return err
			}
			return pterm.DefaultTable.
				WithHasHeader().
				WithBoxed().
				WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
				WithData(summaryTable(results)).
				Render()
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent passes (default from settings)")
	return cmd
}

// =============================================================================
// helpers
// =============================================================================

func load(path string) (models.ProjectConfig, error) {
	cfg, format, err := loader.LoadFile(path)
	if err != nil {
		return cfg, err
	}
	if format != loader.FormatJSON {
		pterm.Info.Printfln("%s read as %s", path, format)
	}
	return cfg, nil
}

func render(res *projection.Result, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode result: %w", err)
		}
		return string(data), nil
	case "markdown", "md":
		return report.Markdown(res), nil
	case "html":
		return report.HTML(res)
	case "table":
		return consoleTables(res)
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

// renderTable renders one table of the result. HTML is produced for whole
// results only.
func renderTable(res *projection.Result, key, format string) (string, error) {
	t := res.Table(key)
	if t == nil {
		return "", fmt.Errorf("unknown table %q; expected one of %s", key, strings.Join(projection.TableOrder, ", "))
	}
	switch format {
	case "json":
		data, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode table: %w", err)
		}
		return string(data), nil
	case "markdown", "md":
		return report.TableMarkdown(t), nil
	case "table":
		return consoleTable(t)
	default:
		return "", fmt.Errorf("format %q is not available for a single table", format)
	}
}
