package auth

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var registerCompany string

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
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

		fmt.Print("Repeat password: ")
		confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		if string(password) != string(confirm) {
			return fmt.Errorf("passwords do not match")
		}

		login = strings.TrimSpace(login)
		if err := app.Register(cmd.Context(), login, string(password), registerCompany); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		color.Green("Registered %s", login)
		fmt.Println("Log in with: nexuslean auth login")
		return nil
	},
}

func init() {
	RegisterCmd.Flags().StringVar(&registerCompany, "company", "", "company the account belongs to")
}
