package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pflegeteam/shiftplan/pkg/core/services"
)

// ViewPlanCmd creates the viewPlan command
func ViewPlanCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewPlan <year> <month>",
		Short: "Show the saved shift plan of a month with its violations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseMonthArgs(args)
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")

			stored, err := services.ViewPlan(app.Ctx, app.Database, app.Logger, year, month)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(stored)
			}

			status := "draft"
			if stored.IsFinalized {
				status = "finalized"
			}

			fmt.Printf("\nShift plan %04d-%02d (%s)\n", stored.Year, stored.Month, status)
			fmt.Printf("Plan ID: %s\n", stored.ID)
			fmt.Printf("Updated: %s\n\n", stored.UpdatedAt.Format("2006-01-02 15:04"))

			printPlanGrid(os.Stdout, stored.ShiftPlan, stored.Violations)
			fmt.Println()
			printStatistics(os.Stdout, stored.Statistics)
			fmt.Println()
			printViolations(os.Stdout, stored.Violations)
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print the stored plan as JSON")

	return cmd
}
