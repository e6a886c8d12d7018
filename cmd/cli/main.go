package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"cargahoraria/adapters/excel"
	"cargahoraria/domain/schedule"
	"cargahoraria/internal/config"
	"cargahoraria/internal/container"
	"cargahoraria/internal/logging"
	"cargahoraria/internal/migration"
	"cargahoraria/internal/shortname"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	configPath string
	workbook   string
	sheet      string
	verbose    bool
}

func main() {
	_ = godotenv.Load()

	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:   "carga",
		Short: "Normalize course schedule workbooks and export class rosters",
		Long: `carga reads a monthly course schedule workbook, normalizes every course
row into a flat record and derives short names, summaries, reports and
class rosters from it.

Settings come from an optional YAML file (--config) and CARGA_ environment
variables, e.g. CARGA_WORKBOOK__PATH or CARGA_ROSTER__OUTPUT_DIR.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", os.Getenv("CARGA_CONFIG"), "Path to a YAML config file")
	flags.StringVar(&opts.workbook, "workbook", "", "Schedule workbook (.xlsx or .csv); overrides workbook.path")
	flags.StringVar(&opts.sheet, "sheet", "", "Sheet to read; defaults to the last sheet")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(
		newSheetsCmd(opts),
		newNormalizeCmd(opts),
		newShortNameCmd(opts),
		newSummaryCmd(opts),
		newReportCmd(opts),
		newExportCmd(opts),
		newStoreCmd(opts),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.workbook != "" {
		cfg.Workbook.Path = o.workbook
	}
	if o.sheet != "" {
		cfg.Workbook.Sheet = o.sheet
	}
	if o.verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// open loads configuration and wires the application
func (o *globalOptions) open(cmd *cobra.Command) (*container.Container, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.New("cli", logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	return container.New(cmd.Context(), cfg, logger)
}

func newSheetsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "List the sheets of the workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			sheets, err := c.Schedules.Sheets(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range sheets {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}

func newNormalizeCmd(opts *globalOptions) *cobra.Command {
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Print or save the normalized course table of a sheet",
		Long: `Normalize one sheet into the 19-column course table.

Formats: table (aligned text), json, csv, xlsx (requires --out).

Example: carga normalize --sheet Julio --format xlsx --out julio.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			sheet, err := c.Schedules.ResolveSheet(cmd.Context(), c.Config.Workbook.Sheet)
			if err != nil {
				return err
			}
			records, err := c.Schedules.Courses(cmd.Context(), sheet)
			if err != nil {
				return err
			}

			if format == "xlsx" {
				if out == "" {
					return fmt.Errorf("--out is required for xlsx output")
				}
				if err := excel.WriteTable(out, sheet, records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d courses written to %s\n", len(records), out)
				return nil
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			return writeRecords(w, format, records)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table|json|csv|xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}

func writeRecords(w io.Writer, format string, records []schedule.CourseRecord) error {
	switch strings.ToLower(format) {
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(schedule.Columns, "\t"))
		for _, rec := range records {
			fmt.Fprintln(tw, strings.Join(excel.TableRow(rec), "\t"))
		}
		return tw.Flush()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "csv":
		return excel.WriteCSV(w, records)
	default:
		return fmt.Errorf("unknown format %q (use table, json, csv or xlsx)", format)
	}
}

func newShortNameCmd(opts *globalOptions) *cobra.Command {
	var fileName bool

	cmd := &cobra.Command{
		Use:   "shortname CODE",
		Short: "Print the short label of a course",
		Long: `Print the short label of a course, e.g.

  Ana Ruiz-ING REG01(B)-LX-08-00-10-00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			if !fileName {
				label, err := c.Schedules.ShortName(cmd.Context(), c.Config.Workbook.Sheet, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), label)
				return nil
			}
			rec, err := c.Schedules.Course(cmd.Context(), c.Config.Workbook.Sheet, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), shortname.FileName(*rec))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fileName, "file", false, "Print the roster file name instead")
	return cmd
}

func newSummaryCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the Markdown course digest of a sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			digest, err := c.Schedules.Summary(cmd.Context(), c.Config.Workbook.Sheet)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), digest)
			return nil
		},
	}
}

func newReportCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print enrollment and fill statistics per language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			rep, err := c.Schedules.Report(cmd.Context(), c.Config.Workbook.Sheet)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			return rep.Write(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func newExportCmd(opts *globalOptions) *cobra.Command {
	var all bool
	var publish bool

	cmd := &cobra.Command{
		Use:   "export [CODE...]",
		Short: "Fill the roster template for courses with an enrollment file",
		Long: `Fill the roster template for each course that has an Inscritos_<code>.xlsx
file in roster.enrollment_dir. Pass course codes, or --all for every course
with an enrollment file. With --publish each roster is uploaded over SFTP.

Example: carga export 101 201 --publish`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) > 0) {
				return fmt.Errorf("pass either course codes or --all")
			}
			c, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			results, err := c.Rosters.Export(cmd.Context(), c.Config.Workbook.Sheet, args, publish)
			w := cmd.OutOrStdout()
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(w, "FAIL  %s: %v\n", r.Code, r.Err)
					continue
				}
				fmt.Fprintf(w, "OK    %s: %s\n", r.Code, r.Path)
			}
			if len(results) == 0 && err == nil {
				fmt.Fprintln(w, "no courses with an enrollment file")
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Export every course with an enrollment file")
	cmd.Flags().BoolVar(&publish, "publish", false, "Upload each roster over SFTP")
	return cmd
}

func newStoreCmd(opts *globalOptions) *cobra.Command {
	var migrateOnly bool
	var list bool

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Save the normalized sheet to the course database",
		Long: `Save the normalized sheet as the current run of that sheet, replacing any
earlier run. Requires database.url (CARGA_DATABASE__URL).

--migrate only creates the schema; --list prints the stored run instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireDatabase(); err != nil {
				return err
			}

			if migrateOnly {
				db, err := container.Connect(cmd.Context(), cfg.Database.URL)
				if err != nil {
					return err
				}
				defer db.Close()
				runner := migration.NewRunner()
				if err := runner.Run(cmd.Context(), db); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema %s ready\n", runner.Version())
				return nil
			}

			c, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			if list {
				run, records, err := c.Schedules.StoredCourses(cmd.Context(), cfg.Workbook.Sheet)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "run %s (%s / %s, %s)\n", run.ID, run.Workbook, run.Sheet, run.CreatedAt.Format("2006-01-02 15:04"))
				return writeRecords(cmd.OutOrStdout(), "table", records)
			}

			run, err := c.Schedules.Store(cmd.Context(), cfg.Workbook.Sheet)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %d courses from %s as run %s\n", run.CourseCount, run.Sheet, run.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrateOnly, "migrate", false, "Only create or update the schema")
	cmd.Flags().BoolVar(&list, "list", false, "Print the stored courses of the sheet")
	return cmd
}
