package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"unifi-admin-remover/internal/config"
)

var cfgFile string

// settingKeys are the persistent flags that viper also reads from
// UNIFI_* env vars and the config file.
var settingKeys = []string{"host", "username", "insecure", "timeout", "verbose"}

// rootCmd runs the interactive revoke flow when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "unifi-admin-remover",
	Short: "Revoke a UniFi controller administrator from every site",
	Long: `Logs into a UniFi Network controller, lists the administrators of all
sites the login can see, and revokes the administrator you pick from every
one of them. The account itself is not deleted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRevoke,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		if err := config.InitConfig(cfgFile); err != nil {
			fmt.Fprintln(os.Stderr, "Warning:", err)
		}
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.unifi-admin-remover.yaml)")

	flags.String("host", "", "Controller host and port, e.g. unifi.example.com:8443 (prompted when empty)")
	flags.StringP("username", "u", "", "Controller username (prompted when empty)")
	flags.Bool("insecure", true, "Skip TLS certificate verification")
	flags.Duration("timeout", 30*time.Second, "Per request HTTP timeout")
	flags.BoolP("verbose", "v", false, "Log controller requests to stderr")

	bindSettings()
}

// bindSettings lets a set flag take precedence over env and config values.
func bindSettings() {
	for _, name := range settingKeys {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}
