package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List all sites visible to the login",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		api, _, err := getClient(cmd)
		if err != nil {
			return err
		}

		sites, err := api.GetSites(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(sites)
		}

		if len(sites) == 0 {
			fmt.Fprintln(out, "No sites found.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tDESCRIPTION\tROLE")
		fmt.Fprintln(w, "----\t-----------\t----")
		for _, site := range sites {
			fmt.Fprintf(w, "%s\t%s\t%s\n", site.Name, site.Desc, site.Role)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sitesCmd)
	sitesCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
}
