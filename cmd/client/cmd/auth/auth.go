package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Reinvik/nexus-lean-sub000/cmd/client/cmd/types"
	"github.com/Reinvik/nexus-lean-sub000/internal/app/client"
)

var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
}

// appFromContext pulls the initialized client out of the command context.
func appFromContext(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("client not initialized")
	}
	return app, nil
}
