package card

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Reinvik/nexus-lean-sub000/internal/domain/card"
)

var closeAfterPhoto string

var CloseCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close a card with its after-evidence photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad card id %q", args[0])
		}

		// The view needs the card loaded before an update can patch it.
		if err := app.View().Refresh(cmd.Context()); err != nil {
			return err
		}

		attachments := map[string][]byte{}
		if closeAfterPhoto != "" {
			data, err := os.ReadFile(closeAfterPhoto)
			if err != nil {
				return fmt.Errorf("read after photo: %w", err)
			}
			attachments[card.SlotAfter] = data
		}

		status := string(card.StatusClosed)
		err = app.Capture().UpdateCard(cmd.Context(), id, card.UpdateRequest{
			Status: &status,
		}, attachments)
		if err != nil {
			return err
		}

		color.Green("Card %d closed.", id)
		return nil
	},
}

func init() {
	CloseCmd.Flags().StringVar(&closeAfterPhoto, "after", "", "path to the after photo")
}
