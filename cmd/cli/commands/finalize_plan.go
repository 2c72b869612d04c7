package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pflegeteam/shiftplan/pkg/core/services"
)

// FinalizePlanCmd creates the finalizePlan command
func FinalizePlanCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "finalizePlan <year> <month>",
		Short: "Mark the saved shift plan of a month as final",
		Long:  "Mark the saved shift plan of a month as final. Finalized plans are not regenerated.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseMonthArgs(args)
			if err != nil {
				return err
			}

			app.Logger.Debug("finalizePlan command", zap.Int("year", year), zap.Int("month", month))

			planID, err := services.FinalizePlan(app.Ctx, app.Database, app.Logger, year, month)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Shift plan %04d-%02d finalized (%s)\n\n", year, month, planID)
			return nil
		},
	}
}
