package cli

import (
	"github.com/spf13/cobra"
)

func newJurisdictionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "jurisdictions",
		Aliases: []string{"states"},
		Short:   "List supported jurisdictions and their notice periods",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return PrintResult(cmd, jurisdictionsView{list: cliCtx.Service.Jurisdictions()})
		},
	}
}
