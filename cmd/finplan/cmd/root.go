// Package cmd implements the finplan command line.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/calculation"
	"github.com/mtmanju/mtm-money-maths-sub000/internal/config"
	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/mtmanju/mtm-money-maths-sub000/internal/output"
	"github.com/spf13/cobra"
)

// cli carries the flags and the state built from them before a command runs.
type cli struct {
	configPath string
	format     string
	policyPath string
	verbose    bool

	app    config.App
	logger *slog.Logger
	engine *calculation.Engine
}

// Execute runs the root command.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

// NewRootCmd builds the finplan command tree.
func NewRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "finplan",
		Short: "Indian personal finance calculators",
		Long: `finplan computes investment growth (SIP, lumpsum, FD, RD, PPF, NPS,
mutual funds), loan EMIs, income tax under the new and old regimes, HRA
and gratuity exemptions, GST, CAGR, ROI and inflation.

Statutory tables (tax slabs, rebate, surcharge, HRA and gratuity limits,
GST slabs, PPF terms) come from the embedded FY policy and can be
overridden with --policy.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")
	root.PersistentFlags().StringVarP(&c.format, "format", "o", "", "output format: "+strings.Join(output.AvailableFormatterNames(), "|"))
	root.PersistentFlags().StringVar(&c.policyPath, "policy", "", "policy YAML overriding the built-in tables")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	for _, spec := range calculatorCommands {
		root.AddCommand(c.newCalculatorCmd(spec))
	}
	root.AddCommand(
		c.newLoanCompareCmd(),
		c.newRunCmd(),
		c.newServeCmd(),
		c.newPolicyCmd(),
		c.newCalculatorsCmd(),
		newVersionCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	app, err := config.LoadApp(c.configPath)
	if err != nil {
		return err
	}
	if c.format != "" {
		app.Output.Format = c.format
	}
	if c.policyPath != "" {
		app.Policy.File = c.policyPath
	}
	if c.verbose {
		app.Log.Level = "debug"
	}
	c.app = app

	c.logger, err = newLogger(app.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	policy, err := config.LoadPolicy(app.Policy.File)
	if err != nil {
		return err
	}
	c.engine = calculation.NewEngine(policy, calculation.NewSlogLogger(c.logger))
	return nil
}

func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// render writes the reports in the configured format.
func (c *cli) render(w io.Writer, reports ...domain.Report) error {
	f, err := output.GetFormatterByName(c.app.Output.Format)
	if err != nil {
		return err
	}
	data, err := output.FormatAll(f, reports)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
