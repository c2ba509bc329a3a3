package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"unifi-admin-remover/pkg/models"
)

var jsonOutput bool

// adminsCmd prints the merged admin list without revoking anything
var adminsCmd = &cobra.Command{
	Use:   "admins",
	Short: "List the administrators of all sites",
	Long: `Lists every administrator found on any site, once per distinct
name and ID, sorted by name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		api, _, err := getClient(cmd)
		if err != nil {
			return err
		}

		admins, err := api.GetAllAdmins(cmd.Context())
		if err != nil {
			return err
		}
		models.SortByName(admins)

		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(admins)
		}

		if len(admins) == 0 {
			fmt.Fprintln(out, "No admins found.")
			return nil
		}
		printAdmins(out, admins)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adminsCmd)
	adminsCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
}
