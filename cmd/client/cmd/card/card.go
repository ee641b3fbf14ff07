package card

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Reinvik/nexus-lean-sub000/cmd/client/cmd/types"
	"github.com/Reinvik/nexus-lean-sub000/internal/app/client"
)

var CardCmd = &cobra.Command{
	Use:   "card",
	Short: "Improvement card commands",
}

func appFromContext(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("client not initialized")
	}
	return app, nil
}
