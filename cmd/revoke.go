package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"unifi-admin-remover/internal/client"
	"unifi-admin-remover/internal/prompt"
	"unifi-admin-remover/pkg/models"
)

const adminIDPrompt = "Enter the ID of the admin to delete: "

var successColor = color.New(color.FgGreen)

func runRevoke(cmd *cobra.Command, args []string) error {
	api, p, err := getClient(cmd)
	if err != nil {
		return err
	}
	return revokeInteractive(cmd.Context(), p, cmd.OutOrStdout(), api)
}

// revokeInteractive lists every admin, asks for the id to remove and
// revokes it from all sites. An unknown id ends the run without error.
func revokeInteractive(ctx context.Context, p *prompt.Prompter, out io.Writer, api *client.UnifiClient) error {
	sites, err := api.GetSites(ctx)
	if err != nil {
		return err
	}

	admins, err := api.GetAllAdmins(ctx)
	if err != nil {
		return err
	}
	models.SortByName(admins)
	printAdmins(out, admins)

	adminID, err := p.Line(adminIDPrompt)
	if err != nil {
		return fmt.Errorf("failed to read admin ID: %w", err)
	}

	admin, ok := models.FindByID(admins, adminID)
	if !ok {
		fmt.Fprintf(out, "No admin found with ID %s\n", adminID)
		return nil
	}

	fmt.Fprintf(out, "Revoking admin %s from all sites...\n", admin.Name)
	if _, err := api.RevokeFromSites(ctx, sites, admin.ID); err != nil {
		return err
	}

	successColor.Fprintf(out, "Admin %s has been revoked from all sites.\n", admin.Name)
	return nil
}

func printAdmins(out io.Writer, admins []models.AdminEntry) {
	for _, a := range admins {
		fmt.Fprintf(out, "Admin: %s, ID: %s\n", a.Name, a.ID)
	}
}
