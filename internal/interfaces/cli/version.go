package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type versionInfo struct {
	Version         string `json:"version"`
	Commit          string `json:"commit"`
	BuildDate       string `json:"build_date"`
	CatalogVersion  string `json:"catalog_version"`
	Jurisdictions   int    `json:"jurisdictions"`
	HolidayCalendar string `json:"holiday_calendar"`
	MonthArithmetic string `json:"month_arithmetic"`
}

func (v versionInfo) String() string {
	return fmt.Sprintf("liencalc %s (commit: %s, built: %s)\nrule catalog %s, %d jurisdictions, holidays %s, months %s\n",
		v.Version, v.Commit, v.BuildDate, v.CatalogVersion, v.Jurisdictions, v.HolidayCalendar, v.MonthArithmetic)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and rule catalog information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			table := cliCtx.Engine.Table()
			cal := cliCtx.Engine.Calendar()
			return PrintResult(cmd, versionInfo{
				Version:         Version,
				Commit:          GitCommit,
				BuildDate:       BuildDate,
				CatalogVersion:  table.Version(),
				Jurisdictions:   table.Len(),
				HolidayCalendar: cal.HolidayProvider(),
				MonthArithmetic: cal.MonthProvider(),
			})
		},
	}
}
