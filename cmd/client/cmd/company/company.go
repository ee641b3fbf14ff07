package company

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Reinvik/nexus-lean-sub000/cmd/client/cmd/types"
	"github.com/Reinvik/nexus-lean-sub000/internal/app/client"
)

// CompaniesCmd lists the companies known to the server. The result is
// cached locally, so the command also works offline after one online run.
var CompaniesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List companies",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		companies := app.Companies(cmd.Context())
		if len(companies) == 0 {
			fmt.Println("No companies known. Connect and log in to fetch the list.")
			return nil
		}

		for _, c := range companies {
			fmt.Printf("%s\t%s\n", c.ID, c.Name)
		}
		return nil
	},
}

func appFromContext(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("client is not initialized")
	}
	return app, nil
}
