package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pflegeteam/shiftplan/pkg/core/services"
)

// PublishPlanCmd creates the publishPlan command
func PublishPlanCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishPlan <year> <month>",
		Short: "Publish the saved shift plan of a month to Google Sheets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseMonthArgs(args)
			if err != nil {
				return err
			}

			app.Logger.Debug("publishPlan command", zap.Int("year", year), zap.Int("month", month))

			sheets, err := app.SheetsClient()
			if err != nil {
				return err
			}

			published, err := services.PublishPlan(app.Ctx, app.Database, sheets, app.Cfg, app.Logger, year, month)
			if err != nil {
				return err
			}

			fmt.Printf("\n✅ Shift plan published\n\n")
			fmt.Printf("Tab:      %s\n", published.Title)
			fmt.Printf("Days:     %d\n", len(published.Rows))
			fmt.Printf("Sheet ID: %s\n\n", app.Cfg.PlanSheetID)

			return nil
		},
	}
}
