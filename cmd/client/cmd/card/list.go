package card

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Reinvik/nexus-lean-sub000/internal/app/client"
)

var listView string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cards, queued captures first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		view := app.View()
		if app.Observer().Online() {
			if err := view.SetFilter(cmd.Context(), listView); err != nil {
				return err
			}
		}

		items, err := view.Cards()
		if err != nil {
			return err
		}

		if len(items) == 0 {
			fmt.Println("No cards.")
			return nil
		}

		offline := color.New(color.FgYellow)
		closed := color.New(color.FgGreen)

		for _, item := range items {
			switch {
			case item.IsOffline:
				offline.Printf("[queued %s] ", item.TempID)
			case item.Status == "closed":
				closed.Printf("[#%d closed] ", item.CardNo)
			default:
				fmt.Printf("[#%d open] ", item.CardNo)
			}
			fmt.Printf("%s: %s", item.Area, item.Description)
			if item.Responsible != "" {
				fmt.Printf(" (%s)", item.Responsible)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	ListCmd.Flags().StringVar(&listView, "view", client.ViewActive, "active, history or all")
}
