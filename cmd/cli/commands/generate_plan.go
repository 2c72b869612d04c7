package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pflegeteam/shiftplan/pkg/core/services"
)

// GeneratePlanCmd creates the generatePlan command
func GeneratePlanCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generatePlan <year> <month>",
		Short: "Generate, validate and save the shift plan of a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseMonthArgs(args)
			if err != nil {
				return err
			}

			employeeIDs, _ := cmd.Flags().GetStringSlice("employees")
			relaxed, _ := cmd.Flags().GetBool("relaxed")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			asJSON, _ := cmd.Flags().GetBool("json")

			app.Logger.Debug("generatePlan command",
				zap.Int("year", year),
				zap.Int("month", month),
				zap.Strings("employees", employeeIDs),
				zap.Bool("dry_run", dryRun))

			result, err := services.GeneratePlan(app.Ctx, app.Database, app.Cfg, app.Logger, services.GeneratePlanRequest{
				Year:            year,
				Month:           month,
				EmployeeIDs:     employeeIDs,
				UseRelaxedRules: relaxed || app.Cfg.UseRelaxedRules,
			}, dryRun)
			if err != nil {
				return fmt.Errorf("failed to generate plan: %w", err)
			}

			if asJSON {
				return printJSON(result)
			}

			if dryRun {
				fmt.Printf("\n✓ Shift plan generated (dry run, not saved)\n\n")
			} else {
				fmt.Printf("\n✓ Shift plan generated and saved\n\n")
				fmt.Printf("Plan ID: %s\n\n", result.PlanID)
			}

			printPlanGrid(os.Stdout, result.ShiftPlan, result.Violations)
			fmt.Println()
			printStatistics(os.Stdout, result.Statistics)
			fmt.Println()
			printViolations(os.Stdout, result.Violations)
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringSlice("employees", nil, "Restrict the roster to these employee ids")
	cmd.Flags().Bool("relaxed", false, "Request relaxed rules")
	cmd.Flags().Bool("dry-run", false, "Run without saving to database")
	cmd.Flags().Bool("json", false, "Print the full result as JSON")

	return cmd
}
