package cmd

import (
	"github.com/Reinvik/nexus-lean-sub000/cmd/client/cmd/audit"
	"github.com/Reinvik/nexus-lean-sub000/cmd/client/cmd/auth"
	"github.com/Reinvik/nexus-lean-sub000/cmd/client/cmd/card"
	"github.com/Reinvik/nexus-lean-sub000/cmd/client/cmd/company"
	"github.com/Reinvik/nexus-lean-sub000/cmd/client/cmd/sync"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)

	rootCmd.AddCommand(card.CardCmd)
	card.CardCmd.AddCommand(card.CreateCmd)
	card.CardCmd.AddCommand(card.ListCmd)
	card.CardCmd.AddCommand(card.CloseCmd)

	rootCmd.AddCommand(audit.AuditCmd)
	audit.AuditCmd.AddCommand(audit.CreateCmd)
	audit.AuditCmd.AddCommand(audit.ListCmd)

	rootCmd.AddCommand(company.CompaniesCmd)
	rootCmd.AddCommand(sync.SyncCmd)
}
