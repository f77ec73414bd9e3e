package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/dealerdesk/internal/config"
	"github.com/dropDatabas3/dealerdesk/internal/store/migrations"
)

func postgresDSN(configPath string) (string, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return "", err
	}
	if cfg.Storage.Driver != "postgres" {
		return "", fmt.Errorf("storage.driver=%s: las migraciones solo aplican a postgres", cfg.Storage.Driver)
	}
	return cfg.Storage.DSN, nil
}

func newMigrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema PostgreSQL",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, err := postgresDSN(*configPath)
			if err != nil {
				return err
			}
			if err := migrations.Up(dsn); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Revierte migraciones (sin steps revierte todo)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("steps inválido: %q", args[0])
				}
				steps = n
			}
			dsn, err := postgresDSN(*configPath)
			if err != nil {
				return err
			}
			if err := migrations.Down(dsn, steps); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Muestra la versión aplicada",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, err := postgresDSN(*configPath)
			if err != nil {
				return err
			}
			v, dirty, err := migrations.Version(dsn)
			if err != nil {
				return err
			}
			fmt.Printf("version=%d dirty=%t\n", v, dirty)
			return nil
		},
	})
	return cmd
}
