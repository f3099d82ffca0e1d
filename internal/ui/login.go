package ui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (a *App) loginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the scheduling service",
		Long: `Authenticate and store the session locally.

The password is read from the terminal and never stored; only the session
token and the professional id are kept.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if email == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Email: ")
				input, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading email: %w", err)
				}
				email = strings.TrimSpace(input)
			}
			if email == "" {
				return fmt.Errorf("email é obrigatório")
			}

			password, err := readPassword("Senha: ")
			if err != nil {
				return err
			}

			ctx := context.Background()
			resp, err := a.remote.Login(ctx, email, password)
			if err != nil {
				return fmt.Errorf("login falhou: %w", err)
			}
			if err := a.session.Login(ctx, resp.ProfessionalID); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}

			name := resp.Name
			if name == "" {
				name = email
			}
			fmt.Printf("Bem-vindo(a), %s.\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted when omitted)")
	return cmd
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the local session",
		RunE: func(_ *cobra.Command, _ []string) error {
			if !a.session.LoggedIn() {
				fmt.Println("Nenhuma sessão ativa.")
				return nil
			}
			if err := a.session.Logout(context.Background()); err != nil {
				return err
			}
			fmt.Println("Sessão encerrada.")
			return nil
		},
	}
}

// readPassword reads a password without echoing it.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	password := strings.TrimSpace(string(raw))
	if password == "" {
		return "", fmt.Errorf("senha é obrigatória")
	}
	return password, nil
}
