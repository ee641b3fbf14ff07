package audit

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audits, queued captures first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		view := app.View()
		if app.Observer().Online() {
			if err := view.Refresh(cmd.Context()); err != nil {
				return err
			}
		}

		items, err := view.Audits()
		if err != nil {
			return err
		}

		if len(items) == 0 {
			fmt.Println("No audits.")
			return nil
		}

		offline := color.New(color.FgYellow)
		for _, item := range items {
			if item.IsOffline {
				offline.Printf("[queued %s] ", item.TempID)
			} else {
				fmt.Printf("[%s] ", item.AuditedAt.Format("2006-01-02"))
			}
			fmt.Printf("%s score %.1f", item.Area, item.Score)
			if item.Auditor != "" {
				fmt.Printf(" by %s", item.Auditor)
			}
			fmt.Println()
		}
		return nil
	},
}
