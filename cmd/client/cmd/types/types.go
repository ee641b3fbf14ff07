package types

type contextKey string

// ClientAppKey is where root stores the initialized *client.App for
// subcommands.
const ClientAppKey contextKey = "app"
