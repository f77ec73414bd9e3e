package main

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

type preRun func(cmd *cobra.Command, args []string) error

func newLoginCmd(cl *client, pre preRun) *cobra.Command {
	var email, plain string
	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Login por password; imprime el access token",
		Args:    cobra.NoArgs,
		PreRunE: pre,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := cl.call("login", "POST", "/auth/login", map[string]string{"email": email, "password": plain})
			if err != nil {
				return err
			}
			if cl.OutFormat == "json" {
				cl.print(body)
				return nil
			}
			var tok struct {
				AccessToken string `json:"accessToken"`
			}
			if err := json.Unmarshal(body, &tok); err != nil {
				return err
			}
			fmt.Println(tok.AccessToken)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&plain, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLeadsCmd(cl *client, pre preRun) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "leads",
		Short:             "Leads (vía API, requiere --token)",
		PersistentPreRunE: pre,
	}

	var q, status, typ string
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista leads con filtros",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := url.Values{}
			for k, val := range map[string]string{"q": q, "status": status, "type": typ} {
				if val != "" {
					v.Set(k, val)
				}
			}
			path := "/leads"
			if len(v) > 0 {
				path += "?" + v.Encode()
			}
			body, err := cl.call("leads list", "GET", path, nil)
			if err != nil {
				return err
			}
			cl.print(body)
			return nil
		},
	}
	list.Flags().StringVar(&q, "q", "", "búsqueda libre")
	list.Flags().StringVar(&status, "status", "", "New | In Review | Qualified | Closed")
	list.Flags().StringVar(&typ, "type", "", "Prototype | Dealer | Media | Other")

	accept := &cobra.Command{
		Use:   "accept <lead-id>",
		Short: "Acepta un lead tipo Dealer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := cl.call("leads accept", "POST", "/leads/"+url.PathEscape(args[0])+"/accept-dealer", nil)
			if err != nil {
				return err
			}
			cl.print(body)
			return nil
		},
	}

	cmd.AddCommand(list, accept)
	return cmd
}

func newDealersCmd(cl *client, pre preRun) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "dealers",
		Short:             "Dealers (vía API, requiere --token)",
		PersistentPreRunE: pre,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Lista dealers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := cl.call("dealers list", "GET", "/dealers", nil)
			if err != nil {
				return err
			}
			cl.print(body)
			return nil
		},
	})

	var status string
	setStatus := &cobra.Command{
		Use:   "set-status <dealer-id>",
		Short: "Cambia el estado (Pending | Active | Suspended)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := cl.call("dealers set-status", "PATCH", "/dealers/"+url.PathEscape(args[0])+"/status",
				map[string]string{"status": status})
			if err != nil {
				return err
			}
			cl.print(body)
			return nil
		},
	}
	setStatus.Flags().StringVar(&status, "status", "", "nuevo estado")
	_ = setStatus.MarkFlagRequired("status")

	cmd.AddCommand(setStatus)
	return cmd
}
