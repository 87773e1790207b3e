package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/LienDeadline/internal/domain/lien"
)

func newCalculateCmd() *cobra.Command {
	var (
		raw               lien.RawRequest
		commencementFiled bool
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate the deadlines for one invoice",
		Long: `Calculate the preliminary notice and lien filing deadlines for one invoice.

The jurisdiction may be a two-letter code or a full name ("TX", "Texas",
"District of Columbia").`,
		Example: `  liencalc calculate --jurisdiction TX --invoice-date 2025-01-15
  liencalc calculate -j CA -d 2025-01-15 --completion-date 2025-02-01 -o json
  liencalc calculate -j OH -d 2025-01-15 --project-type residential --commencement-filed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("commencement-filed") {
				filed := commencementFiled
				raw.NoticeOfCommencementFiled = &filed
			}

			result, err := cliCtx.Service.Calculate(cmd.Context(), &raw)
			if err != nil {
				return err
			}
			return PrintResult(cmd, resultView{r: result})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&raw.Jurisdiction, "jurisdiction", "j", "", "state code or name")
	f.StringVarP(&raw.InvoiceDate, "invoice-date", "d", "", "invoice date YYYY-MM-DD")
	f.StringVarP(&raw.Role, "role", "r", "", "supplier, contractor or subcontractor (default supplier)")
	f.StringVarP(&raw.ProjectType, "project-type", "p", "", "commercial or residential (default commercial)")
	f.StringVar(&raw.NoticeOfCompletionDate, "completion-date", "", "recorded notice of completion date YYYY-MM-DD")
	f.BoolVar(&commencementFiled, "commencement-filed", false, "a notice of commencement is recorded")
	return cmd
}
