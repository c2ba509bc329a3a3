package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"unifi-admin-remover/internal/client"
	"unifi-admin-remover/internal/config"
	"unifi-admin-remover/internal/logging"
	"unifi-admin-remover/internal/prompt"
)

const (
	hostPrompt     = "Enter your UniFi Controller URL including port e.g unifi.example.com:8443: "
	usernamePrompt = "Enter your UniFi Controller username: "
	passwordPrompt = "Enter your UniFi Controller password: "
	passwordMask   = '*'
)

var statusColor = color.New(color.FgCyan)

// Helper to get an authenticated client for a command run. The returned
// prompter shares the command's input so later prompts continue where the
// login prompts stopped.
func getClient(cmd *cobra.Command) (*client.UnifiClient, *prompt.Prompter, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	out := cmd.OutOrStdout()
	p := prompt.New(cmd.InOrStdin(), out)

	api, err := connect(cmd.Context(), p, out, settings, logging.New(settings.Verbose))
	if err != nil {
		return nil, nil, err
	}
	return api, p, nil
}

// connect prompts for any connection setting that was not preset, then logs
// in. The password is always prompted for.
func connect(ctx context.Context, p *prompt.Prompter, out io.Writer, s config.Settings, logger *zap.Logger) (*client.UnifiClient, error) {
	host := s.Host
	if host == "" {
		var err error
		if host, err = p.Line(hostPrompt); err != nil {
			return nil, fmt.Errorf("failed to read controller URL: %w", err)
		}
	}

	username := s.Username
	if username == "" {
		var err error
		if username, err = p.Line(usernamePrompt); err != nil {
			return nil, fmt.Errorf("failed to read username: %w", err)
		}
	}

	password, err := p.Password(passwordPrompt, passwordMask)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	api := client.New(client.ClientConfig{
		BaseURL:  client.BaseURL(host),
		Username: username,
		Password: password,
		Insecure: s.Insecure,
		Timeout:  s.Timeout,
		Logger:   logger,
	})

	statusColor.Fprintln(out, "Connecting to UniFi Controller...")
	logger.Debug("logging in", zap.String("base_url", api.Config.BaseURL), zap.String("username", username))

	if err := api.Login(ctx); err != nil {
		return nil, err
	}
	return api, nil
}
