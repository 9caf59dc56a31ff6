package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"polyglot/backend/internal/client"
)

func newListCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			translations, err := newClient(v, out).List(cmd.Context())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "An error occurred while listing translations: %v\n", err)
				return err
			}
			return client.PrintTranslations(out, translations)
		},
	}
}
