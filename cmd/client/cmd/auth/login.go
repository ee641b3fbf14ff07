package auth

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		fmt.Print("Login: ")
		var login string
		if _, err := fmt.Scanln(&login); err != nil {
			return fmt.Errorf("read login: %w", err)
		}

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		if err := app.Login(cmd.Context(), strings.TrimSpace(login), string(password)); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		color.Green("Logged in as %s", login)

		// Warm the offline company cache while we are connected.
		if _, err := app.RefreshCompanies(cmd.Context()); err != nil {
			fmt.Println("Note: could not refresh company list:", err)
		}
		return nil
	},
}
