package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/cmd/client/cmd/types"
	"github.com/Reinvik/nexus-lean-sub000/internal/app/client"
	"github.com/Reinvik/nexus-lean-sub000/internal/app/client/config"
	"github.com/Reinvik/nexus-lean-sub000/internal/utils/logger"
)

var (
	cfgFile   string
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	serverURL string
	companyID string
	offline   bool
)

var rootCmd = &cobra.Command{
	Use:   "nexuslean",
	Short: "NexusLean - shop-floor capture client for cards and 5S audits",
	Long: `NexusLean is the field client for Lean operational tracking.

Improvement cards and 5S audits are captured where the work happens,
with or without a connection: offline entries queue locally and upload
automatically once the server is reachable again.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Command-line flags override the config file.
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	if companyID != "" {
		cfg.CompanyID = companyID
	}

	log = logger.New(cfg.Env)

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}

	if warning := app.StorageWarning(); warning != "" {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	if offline {
		app.Observer().SetOnline(false)
	} else if err := app.CheckConnection(cmd.Context()); err != nil {
		log.Debug("server unreachable, running offline", "error", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		configDir := filepath.Join(home, ".nexuslean")
		viper.AddConfigPath(configDir)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No config file, defaults apply.
	}

	return config.MustLoad(), nil
}

func init() {
	cobra.OnInitialize()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server address")
	rootCmd.PersistentFlags().StringVar(&companyID, "company", "", "company scope for new records")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "skip the connection probe and capture locally")
}
