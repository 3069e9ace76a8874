package cmd

import (
	"fmt"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/config"
	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/mtmanju/mtm-money-maths-sub000/internal/output"
	"github.com/spf13/cobra"
)

func (c *cli) newRunCmd() *cobra.Command {
	var (
		file    string
		saveDir string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run calculation requests from a YAML file",
		Long: `Run reads one or more YAML documents, each naming a calculator and its
parameters, and prints every result:

  calculator: emi
  params:
    loan_amount: 1000000
    annual_rate_percent: 8.5
    tenure_years: 20
  ---
  calculator: income-tax
  params:
    gross_income: 1575000
    regime: compare`,
		Example: "finplan run -f requests.yaml -o json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := config.LoadRequests(file)
			if err != nil {
				return err
			}
			reports := make([]domain.Report, 0, len(reqs))
			for i := range reqs {
				report, err := c.engine.Run(cmd.Context(), reqs[i].Calculator, reqs[i].Decode)
				if err != nil {
					return fmt.Errorf("request %d: %w", i+1, err)
				}
				reports = append(reports, report)
			}
			if saveDir != "" {
				return c.save(cmd, reports, saveDir)
			}
			return c.render(cmd.OutOrStdout(), reports...)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "request file (- for stdin)")
	cmd.Flags().StringVar(&saveDir, "save", "", "write one file per result into this directory")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) save(cmd *cobra.Command, reports []domain.Report, dir string) error {
	f, err := output.GetFormatterByName(c.app.Output.Format)
	if err != nil {
		return err
	}
	for _, r := range reports {
		path, err := output.WriteFormatted(f, r, dir)
		if err != nil {
			return err
		}
		c.logger.Info("saved result", "calculator", r.Calculator, "path", path)
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}
