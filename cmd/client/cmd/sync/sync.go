package sync

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Reinvik/nexus-lean-sub000/cmd/client/cmd/types"
	"github.com/Reinvik/nexus-lean-sub000/internal/app/client"
	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

var (
	flagPending bool
	flagDiscard string
	flagWatch   bool
)

// SyncCmd pushes queued offline captures to the server. With --watch it
// keeps running and retries automatically whenever connectivity returns.
var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push queued offline records to the server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		if flagPending {
			return printPending(app)
		}

		if flagDiscard != "" {
			return discard(app, flagDiscard)
		}

		if !app.IsAuthenticated() {
			return fmt.Errorf("not logged in, run 'nexuslean auth login' first")
		}

		if flagWatch {
			return watch(cmd, app)
		}

		if !app.Observer().Online() {
			return fmt.Errorf("server is unreachable, nothing synced")
		}

		report(app.Engine().SyncEverything(cmd.Context()))
		return nil
	},
}

func init() {
	SyncCmd.Flags().BoolVar(&flagPending, "pending", false, "list queued records without syncing")
	SyncCmd.Flags().StringVar(&flagDiscard, "discard", "", "drop one queued record by its temp id")
	SyncCmd.Flags().BoolVar(&flagWatch, "watch", false, "stay running and sync whenever connectivity returns")
}

func printPending(app *client.App) error {
	total := 0
	for _, kind := range pending.Kinds {
		records, err := app.Store().ListAll(kind)
		if err != nil {
			return err
		}
		for _, rec := range records {
			fmt.Printf("%s\t%s\t%s\n", kind, rec.TempID, rec.CreatedAt.Format(time.RFC3339))
		}
		total += len(records)
	}
	if total == 0 {
		fmt.Println("Queue is empty.")
	}
	return nil
}

func discard(app *client.App, tempID string) error {
	for _, kind := range pending.Kinds {
		records, err := app.Store().ListAll(kind)
		if err != nil {
			return err
		}
		for _, rec := range records {
			if rec.TempID == tempID {
				if err := app.Discard(kind, tempID); err != nil {
					return err
				}
				fmt.Printf("Discarded %s\n", tempID)
				return nil
			}
		}
	}
	return fmt.Errorf("no queued record with id %s", tempID)
}

func watch(cmd *cobra.Command, app *client.App) error {
	ctx := cmd.Context()
	fmt.Println("Watching connectivity, Ctrl+C to stop.")

	go app.Watch(ctx)

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := app.Gateway().Health(ctx)
			app.SetConnectivity(err == nil)
		}
	}
}

func report(results []*pending.SyncResult) {
	for _, result := range results {
		fmt.Printf("%s: %s\n", result.Kind, result)
		for _, recErr := range result.Errors {
			color.Red("  %s: %s", recErr.TempID, recErr.Message)
		}
	}
}

func appFromContext(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("client is not initialized")
	}
	return app, nil
}
