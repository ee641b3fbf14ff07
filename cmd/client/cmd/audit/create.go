package audit

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Reinvik/nexus-lean-sub000/internal/domain/audit"
)

var (
	createArea    string
	createAuditor string
	entriesFile   string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Capture a 5S audit",
	Long: `Captures a 5S audit from a JSON entries file:

  [{"category": "sort", "question": "...", "score": 4, "comment": "..."}, ...]

Scores run 0 to 5. Offline audits queue locally like cards do.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(entriesFile)
		if err != nil {
			return fmt.Errorf("read entries file: %w", err)
		}

		var entries []audit.EntryInput
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("parse entries file: %w", err)
		}

		req := audit.CreateRequest{
			Area:    createArea,
			Auditor: createAuditor,
			Entries: entries,
		}

		result, err := app.Capture().SubmitAudit(cmd.Context(), req)
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

		color.Green("Audit recorded, score %.1f.", result.Audit.Score)
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVar(&createArea, "area", "", "audited area")
	CreateCmd.Flags().StringVar(&createAuditor, "auditor", "", "who performed the audit")
	CreateCmd.Flags().StringVar(&entriesFile, "entries", "", "JSON file with the checklist answers")

	CreateCmd.MarkFlagRequired("area")
	CreateCmd.MarkFlagRequired("entries")
}
