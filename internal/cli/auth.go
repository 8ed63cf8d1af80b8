package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *App) loginCmd() *cobra.Command {
	var mobile, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with mobile number and password",
		Long: `Log in to the DDMS API. The password is taken from --password,
then from DDMS_PASSWORD, then from the first line of standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if mobile == "" {
				return errors.New("--mobile is required")
			}
			if password == "" {
				password = a.v.GetString("DDMS_PASSWORD")
			}
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no password given")
				}
				password = strings.TrimSpace(line)
			}

			user, err := a.client.Login(cmd.Context(), mobile, password)
			if err != nil {
				a.notify.Error(messageOf(err, "Login failed"))
				return reported(err)
			}
			a.notify.Success(fmt.Sprintf("Logged in as %s", user.Name))
			if store, ok := a.client.Session().CurrentStore(); ok {
				a.printf("Current store: %s (%s)\n", store.Name, store.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mobile, "mobile", "m", "", "mobile number (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	return cmd
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.client.Session().IsAuthenticated() {
				a.println("Not logged in.")
				return nil
			}
			if err := a.client.Logout(cmd.Context()); err != nil {
				a.log.Debugw("remote logout failed", "error", err)
			}
			a.notify.Success("Logged out")
			return nil
		},
	}
}

func (a *App) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			user, err := a.client.Me(cmd.Context())
			if err != nil {
				a.notify.Error(messageOf(err, "Could not load user"))
				return reported(err)
			}

			a.printf("%s %s\n", color.New(color.Bold).Sprint(user.Name), user.Mobile)
			for _, r := range user.Roles {
				a.printf("  role: %s\n", r.DisplayName())
			}
			if store, ok := a.client.Session().CurrentStore(); ok {
				a.printf("  store: %s (%s)\n", store.Name, store.ID)
			}
			return nil
		},
	}
}
