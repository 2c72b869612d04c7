package commands

import (
	"github.com/spf13/cobra"

	"github.com/pflegeteam/shiftplan/pkg/httpapi"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the shift plan HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = app.Cfg.HTTPAddr
			}

			return httpapi.Serve(app.Ctx, addr, &httpapi.Handler{
				DB:     app.Database,
				Cfg:    app.Cfg,
				Logger: app.Logger,
			})
		},
	}

	cmd.Flags().String("addr", "", "Listen address, overrides httpAddr from the config")

	return cmd
}
