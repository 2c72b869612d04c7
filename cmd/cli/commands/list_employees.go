package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pflegeteam/shiftplan/pkg/core/services"
)

// ListEmployeesCmd creates the listEmployees command
func ListEmployeesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listEmployees",
		Short: "List the active employees in roster order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := services.LoadRoster(app.Ctx, app.Database, app.Logger, nil)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d active employees:\n\n", len(employees))
			fmt.Printf("%-38s  %-24s  %-13s  %8s\n", "ID", "Name", "Role", "h/month")
			for _, emp := range employees {
				fmt.Printf("%-38s  %-24s  %-13s  %8.1f\n", emp.ID, emp.Name, emp.Role, emp.HoursPerMonth)
			}
			fmt.Println()

			return nil
		},
	}
}
