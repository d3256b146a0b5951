package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"psutier/internal/config"
	"psutier/internal/fileio"
	"psutier/internal/reftable"
	"psutier/internal/tier/batch"
	"psutier/internal/tier/service"
)

// app — общее состояние команд: путь к справочнику и загруженная таблица.
type app struct {
	fs        afero.Fs
	tablePath string
	logLevel  string
	table     *service.Table
	report    reftable.LoadReport
}

func newRootCmd() *cobra.Command {
	return newRootCmdFS(afero.NewOsFs())
}

func newRootCmdFS(fs afero.Fs) *cobra.Command {
	cfg := config.Load()
	a := &app{fs: fs}

	rootCmd := &cobra.Command{
		Use:           "psutier",
		Short:         "PSU tier lookup",
		Long:          `Resolve retail PSU product names to quality tiers using the reference tier table`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&a.tablePath, "table", cfg.TablePath, "reference table JSON")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level")

	rootCmd.AddCommand(createResolveCmd(a))
	rootCmd.AddCommand(createExplainCmd(a))
	rootCmd.AddCommand(createBatchCmd(a))
	rootCmd.AddCommand(createTableCmd(a))
	return rootCmd
}

// load — логгер в stderr и справочник; вызывается из RunE каждой команды.
func (a *app) load() error {
	config.SetupLogger(config.Config{LogLevel: a.logLevel})
	t, rep, err := reftable.Load(a.fs, a.tablePath)
	if err != nil {
		return fmt.Errorf("load table: %w", err)
	}
	a.table, a.report = t, rep
	return nil
}

func (a *app) resolver() *service.Resolver { return service.NewResolver(a.table, nil) }

func createResolveCmd(a *app) *cobra.Command {
	var (
		wattage int
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "resolve [name]",
		Short: "Resolve one product name to a tier",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			name := strings.Join(args, " ")
			m, ok := a.resolver().Resolve(name, wattage)
			out := cmd.OutOrStdout()
			if asJSON {
				return writeIndented(out, m)
			}
			if !ok {
				fmt.Fprintf(out, "-\t%s\n", m.Outcome)
				return nil
			}
			fmt.Fprintf(out, "%s\t%s\t%s\n", m.Entry.Tier, m.Entry.MatchSeries, m.Strategy)
			return nil
		},
	}
	cmd.Flags().IntVarP(&wattage, "wattage", "w", 0, "product wattage, 0 = unknown")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full match as JSON")
	return cmd
}

func createExplainCmd(a *app) *cobra.Command {
	var wattage int
	cmd := &cobra.Command{
		Use:   "explain [name]",
		Short: "Show every resolution step for one product name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			return writeIndented(cmd.OutOrStdout(), a.resolver().Explain(strings.Join(args, " "), wattage))
		},
	}
	cmd.Flags().IntVarP(&wattage, "wattage", "w", 0, "product wattage, 0 = unknown")
	return cmd
}

func createBatchCmd(a *app) *cobra.Command {
	var (
		nameCol, wattCol, format, outPath string
		headerRow, workers                int
		noInfer                           bool
	)
	cmd := &cobra.Command{
		Use:   "batch [filename]",
		Short: "Resolve every row of a CSV/XLS/XLSX price list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			switch format {
			case "json", "csv", "xlsx":
			default:
				return fmt.Errorf("unknown format %q", format)
			}

			f, err := a.fs.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			sheet, err := fileio.ReadAny(f, args[0], headerRow)
			if err != nil {
				return err
			}
			rows, mapping, err := batch.Rows(sheet, batch.Options{
				NameColumn:    nameCol,
				WattageColumn: wattCol,
				InferWattage:  !noInfer,
			})
			if err != nil {
				return err
			}
			res, err := batch.Run(cmd.Context(), a.resolver(), rows, workers)
			if err != nil {
				return err
			}
			res.Mapping = mapping

			var out io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				of, err := a.fs.Create(outPath)
				if err != nil {
					return err
				}
				defer of.Close()
				out = of
			}
			switch format {
			case "csv":
				err = fileio.WriteCSV(out, res.Rows)
			case "xlsx":
				err = fileio.WriteXLSX(out, res.Rows)
			default:
				err = writeIndented(out, res)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d/%d rows matched (name column %q, wattage column %q)\n",
				res.Matched, res.Total, mapping.NameKey, mapping.WattageKey)
			return nil
		},
	}
	cmd.Flags().StringVar(&nameCol, "name-col", "", "name column, alternatives separated by |")
	cmd.Flags().StringVar(&wattCol, "wattage-col", "", `wattage column, "-" if absent`)
	cmd.Flags().IntVar(&headerRow, "header-row", 1, "header row, 1-based")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json, csv or xlsx")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file, stdout if empty")
	cmd.Flags().IntVar(&workers, "workers", 4, "parallel workers")
	cmd.Flags().BoolVar(&noInfer, "no-infer-wattage", false, "do not take wattage from the name")
	return cmd
}

func createTableCmd(a *app) *cobra.Command {
	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "Reference table tools",
	}
	tableCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Validate the reference table and print per-brand counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			brands := a.table.Brands()
			sort.Strings(brands)
			for _, b := range brands {
				fmt.Fprintf(tw, "%s\t%d\n", b, len(a.table.Candidates(b)))
			}
			fmt.Fprintf(tw, "total\t%d\n", a.table.EntryCount())
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %s, rules %s, skipped %d\n",
				a.table.Version(), service.RulesVersion, a.report.Skipped)
			if a.report.Skipped > 0 {
				return fmt.Errorf("%d invalid entries skipped", a.report.Skipped)
			}
			return nil
		},
	})
	return tableCmd
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
