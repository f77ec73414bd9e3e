package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/dealerdesk/internal/bootstrap"
	"github.com/dropDatabas3/dealerdesk/internal/config"
	"github.com/dropDatabas3/dealerdesk/internal/security/password"
	"github.com/dropDatabas3/dealerdesk/internal/store"

	_ "github.com/dropDatabas3/dealerdesk/internal/store/adapters/pg"
)

func newAdminCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Operaciones directas sobre la base",
	}

	var email, plain string
	create := &cobra.Command{
		Use:   "create",
		Short: "Crea (o promueve) un usuario admin. Sin --password lo pide por terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != "postgres" {
				return fmt.Errorf("storage.driver=%s: admin create necesita un store durable", cfg.Storage.Driver)
			}

			ctx := context.Background()
			st, err := store.Open(ctx, store.AdapterConfig{Name: cfg.Storage.Driver, DSN: cfg.Storage.DSN})
			if err != nil {
				return err
			}
			defer st.Close()

			if strings.TrimSpace(email) == "" || plain == "" {
				email, plain, err = bootstrap.PromptCredentials(os.Stdin, os.Stdout)
				if err != nil {
					return err
				}
			}

			bl, err := password.LoadBlacklist(cfg.Security.PasswordBlacklistPath)
			if err != nil {
				return err
			}
			policy := password.Policy{MinLength: cfg.Security.PasswordMinLength, Blacklist: bl}

			u, err := bootstrap.CreateAdmin(ctx, st.Users(), policy, email, plain)
			if err != nil {
				return err
			}
			fmt.Printf("admin listo: id=%s email=%s roles=%v\n", u.ID, u.Email, u.Roles)
			return nil
		},
	}
	create.Flags().StringVar(&email, "email", "", "email del admin")
	create.Flags().StringVar(&plain, "password", "", "password del admin (si falta se pide sin eco)")

	cmd.AddCommand(create)
	return cmd
}
