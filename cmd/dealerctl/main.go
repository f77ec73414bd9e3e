// dealerctl es la CLI de operación: migraciones y bootstrap contra la base,
// y acciones administrativas contra la API HTTP.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	var (
		configPath = envOr("CONFIG_PATH", "")
		baseURL    = envOr("DEALERDESK_API_URL", "http://localhost:8080")
		token      = envOr("DEALERDESK_TOKEN", "")
		out        = envOr("DEALERDESK_OUT", "text")
	)

	root := &cobra.Command{
		Use:           "dealerctl",
		Short:         "CLI de operación para dealerdesk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", configPath, "ruta a config.yaml (env CONFIG_PATH)")
	root.PersistentFlags().StringVar(&baseURL, "api-url", baseURL, "URL base de la API incluyendo base_path (env DEALERDESK_API_URL)")
	root.PersistentFlags().StringVar(&token, "token", token, "access token de un admin (env DEALERDESK_TOKEN)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	// el client se arma tarde para respetar los flags parseados
	cl := &client{}
	apiPreRun := func(cmd *cobra.Command, args []string) error {
		cl.BaseURL, cl.Token, cl.OutFormat = baseURL, token, out
		cl.HTTP = newHTTPClient(30 * time.Second)
		return nil
	}

	root.AddCommand(
		newMigrateCmd(&configPath),
		newAdminCmd(&configPath),
		newLoginCmd(cl, apiPreRun),
		newLeadsCmd(cl, apiPreRun),
		newDealersCmd(cl, apiPreRun),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
