package card

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Reinvik/nexus-lean-sub000/internal/domain/card"
)

var (
	createArea        string
	createDescription string
	createResponsible string
	createDueDate     string
	createClosed      bool
	beforePhoto       string
	afterPhoto        string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Capture a new improvement card",
	Long: `Captures a new improvement card. With a connection the card is
created on the server immediately; otherwise it is queued locally and
uploaded on the next sync.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		attachments := map[string][]byte{}
		if beforePhoto != "" {
			data, err := os.ReadFile(beforePhoto)
			if err != nil {
				return fmt.Errorf("read before photo: %w", err)
			}
			attachments[card.SlotBefore] = data
		}
		if afterPhoto != "" {
			data, err := os.ReadFile(afterPhoto)
			if err != nil {
				return fmt.Errorf("read after photo: %w", err)
			}
			attachments[card.SlotAfter] = data
		}

		status := card.StatusOpen
		if createClosed {
			status = card.StatusClosed
		}

		in := card.Input{
			Area:        createArea,
			Description: createDescription,
			Responsible: createResponsible,
			Status:      status,
			DueDate:     createDueDate,
		}

		result, err := app.Capture().SubmitCard(cmd.Context(), in, attachments)
		if err != nil {
			return err
		}

		if result.Offline {
			color.Yellow("Saved offline as %s; it will upload on the next sync.", result.TempID)
			if !result.Durable {
				color.Red("Warning: local storage is unavailable, this capture will not survive a restart.")
			}
			return nil
		}

		color.Green("Card #%d created.", result.Card.CardNo)
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVar(&createArea, "area", "", "area or line the finding belongs to")
	CreateCmd.Flags().StringVar(&createDescription, "description", "", "what was found")
	CreateCmd.Flags().StringVar(&createResponsible, "responsible", "", "who owns the follow-up")
	CreateCmd.Flags().StringVar(&createDueDate, "due", "", "due date, RFC 3339")
	CreateCmd.Flags().BoolVar(&createClosed, "closed", false, "capture as already resolved (needs both photos)")
	CreateCmd.Flags().StringVar(&beforePhoto, "before", "", "path to the before photo")
	CreateCmd.Flags().StringVar(&afterPhoto, "after", "", "path to the after photo")

	CreateCmd.MarkFlagRequired("area")
	CreateCmd.MarkFlagRequired("description")
}
