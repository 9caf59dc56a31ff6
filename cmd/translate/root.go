package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"polyglot/backend/internal/client"
	"polyglot/backend/internal/network"
)

const (
	defaultText   = "Hello, how are you?"
	defaultSource = "eng"
	defaultTarget = "fra"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate text through the polyglot gateway",
		Long: `Send one translation request to the gateway and print the result
together with the per-stage timings reported by the model.

The server URL is read from --server, POLYGLOT_SERVER_URL or the server key in
~/.polyglot.yaml, in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c := newClient(v, out)
			result, err := c.Translate(cmd.Context(), v.GetString("text"), v.GetString("source"), v.GetString("target"))
			client.PrintTranslation(out, result)
			return err
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("server", client.DefaultServerURL, "Gateway base URL")
	flags.String("proxy", "", "HTTP proxy used to reach the gateway")
	flags.String("config", "", "Config file (default ~/.polyglot.yaml)")

	cmd.Flags().StringP("text", "x", defaultText, "Text to translate")
	cmd.Flags().StringP("source", "s", defaultSource, "Source language code")
	cmd.Flags().StringP("target", "t", defaultTarget, "Target language code")

	cmd.AddCommand(newListCmd(v))
	return cmd
}

func loadConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix("POLYGLOT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server", "POLYGLOT_SERVER_URL")

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := v.BindPFlags(cmd.InheritedFlags()); err != nil {
		return err
	}

	configFile := v.GetString("config")
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		configFile = filepath.Join(home, ".polyglot.yaml")
		if _, err := os.Stat(configFile); err != nil {
			return nil
		}
	}
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

func newClient(v *viper.Viper, out io.Writer) *client.Client {
	factory := network.NewClientFactory(network.StaticProxy(v.GetString("proxy")))
	return client.New(v.GetString("server"), factory, out)
}

// reported tells whether a subcommand already printed err for the user.
func reported(err error) bool {
	return errors.Is(err, client.ErrRequestFailed) || errors.Is(err, client.ErrDecodeFailed)
}
