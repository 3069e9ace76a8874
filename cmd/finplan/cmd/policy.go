package cmd

import (
	"fmt"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/config"
	"github.com/spf13/cobra"
)

func (c *cli) newPolicyCmd() *cobra.Command {
	var check string
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Show the effective policy tables",
		Long: `Policy prints the tax slabs, limits and rates in effect as YAML. Save the
output, edit it and pass it back with --policy to model another year.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if check != "" {
				if _, err := config.LoadPolicy(check); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", check)
				return nil
			}
			data, err := config.MarshalPolicy(c.engine.Policy())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&check, "check", "", "validate a policy file instead of printing")
	return cmd
}
