package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"unifi-admin-remover/internal/unifitest"
	"unifi-admin-remover/pkg/models"
)

// executeRoot runs rootCmd with fresh flag and viper state, feeding input
// to the prompts and returning everything written to stdout.
func executeRoot(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	bindSettings()
	resetFlags(rootCmd)
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// afterLogin returns the output after the login prompts.
func afterLogin(t *testing.T, out string) string {
	t.Helper()
	i := strings.Index(out, "Connecting to UniFi Controller...\n")
	require.GreaterOrEqual(t, i, 0, out)
	return out[i+len("Connecting to UniFi Controller...\n"):]
}

func TestAdminsCommandTable(t *testing.T) {
	ctrl := unifitest.NewController()
	defer ctrl.Close()
	alice := models.Admin{ID: "a1", Name: "alice"}
	ctrl.AddSite("A", models.Admin{ID: "c1", Name: "carol"}, alice)
	ctrl.AddSite("B", alice)

	out, err := executeRoot(t, "secret\n", "admins", "--host", ctrl.URL(), "-u", "admin")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(out, "Admin: alice, ID: a1\nAdmin: carol, ID: c1\n"), out)
	assert.Empty(t, ctrl.RevokeCalls())
}

func TestAdminsCommandJSON(t *testing.T) {
	ctrl := unifitest.NewController()
	defer ctrl.Close()
	ctrl.AddSite("A", models.Admin{ID: "c1", Name: "carol"}, models.Admin{ID: "a1", Name: "alice"})

	out, err := executeRoot(t, "secret\n", "admins", "--json", "--host", ctrl.URL(), "-u", "admin")
	require.NoError(t, err)

	var got []models.AdminEntry
	require.NoError(t, json.Unmarshal([]byte(afterLogin(t, out)), &got))
	assert.Equal(t, []models.AdminEntry{
		{Name: "alice", ID: "a1"},
		{Name: "carol", ID: "c1"},
	}, got)
}

func TestAdminsCommandEmpty(t *testing.T) {
	ctrl := unifitest.NewController()
	defer ctrl.Close()
	ctrl.AddSite("A")

	out, err := executeRoot(t, "secret\n", "admins", "--host", ctrl.URL(), "-u", "admin")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "No admins found.\n"), out)

	out, err = executeRoot(t, "secret\n", "admins", "--json", "--host", ctrl.URL(), "-u", "admin")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", afterLogin(t, out))
}

func TestSitesCommandTable(t *testing.T) {
	ctrl := unifitest.NewController()
	defer ctrl.Close()
	ctrl.AddSite("default")
	ctrl.AddSite("branch")

	out, err := executeRoot(t, "secret\n", "sites", "--host", ctrl.URL(), "-u", "admin")
	require.NoError(t, err)

	table := afterLogin(t, out)
	lines := strings.Split(strings.TrimSpace(table), "\n")
	require.Len(t, lines, 4, table)
	assert.Regexp(t, `^NAME\s+DESCRIPTION\s+ROLE$`, lines[0])
	assert.Regexp(t, `^default\s+DEFAULT`, lines[2])
	assert.Regexp(t, `^branch\s+BRANCH`, lines[3])
}

func TestSitesCommandJSON(t *testing.T) {
	ctrl := unifitest.NewController()
	defer ctrl.Close()
	ctrl.AddSite("default")

	out, err := executeRoot(t, "secret\n", "sites", "--json", "--host", ctrl.URL(), "-u", "admin")
	require.NoError(t, err)

	var got []models.Site
	require.NoError(t, json.Unmarshal([]byte(afterLogin(t, out)), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "default", got[0].Name)
	assert.Equal(t, "DEFAULT", got[0].Desc)
}

func TestSitesCommandEmpty(t *testing.T) {
	ctrl := unifitest.NewController()
	defer ctrl.Close()

	out, err := executeRoot(t, "secret\n", "sites", "--host", ctrl.URL(), "-u", "admin")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "No sites found.\n"), out)

	out, err = executeRoot(t, "secret\n", "sites", "--json", "--host", ctrl.URL(), "-u", "admin")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", afterLogin(t, out))
}

func TestFlagsOverrideEnv(t *testing.T) {
	ctrl := unifitest.NewController()
	defer ctrl.Close()
	ctrl.AddSite("A", models.Admin{ID: "a1", Name: "alice"})

	t.Setenv("UNIFI_HOST", "unreachable.invalid:1")
	t.Setenv("UNIFI_USERNAME", "nobody")

	out, err := executeRoot(t, "secret\n", "admins", "--host", ctrl.URL(), "--username", "admin")
	require.NoError(t, err)

	assert.NotContains(t, out, hostPrompt)
	assert.NotContains(t, out, usernamePrompt)
	assert.True(t, strings.HasPrefix(out, passwordPrompt+"******\n"), out)
	assert.Contains(t, out, "Admin: alice, ID: a1\n")
	assert.Equal(t, 1, ctrl.Logins())
}

func TestEnvSkipsPrompts(t *testing.T) {
	ctrl := unifitest.NewController()
	defer ctrl.Close()
	ctrl.AddSite("default")

	t.Setenv("UNIFI_HOST", ctrl.URL())
	t.Setenv("UNIFI_USERNAME", "admin")

	out, err := executeRoot(t, "secret\n", "sites")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, passwordPrompt), out)
	assert.NotContains(t, out, hostPrompt)
	assert.NotContains(t, out, usernamePrompt)
	assert.Contains(t, out, "default")
}

func TestRootCommandRevokes(t *testing.T) {
	ctrl := unifitest.NewController()
	defer ctrl.Close()
	x := models.Admin{ID: "x1", Name: "xavier"}
	ctrl.AddSite("A", x)
	ctrl.AddSite("B")

	input := ctrl.URL() + "\nadmin\nsecret\nx1\n"
	out, err := executeRoot(t, input)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, hostPrompt+usernamePrompt+passwordPrompt), out)
	assert.Equal(t, []string{"A", "B"}, ctrl.RevokeCalls())
	assert.True(t, strings.HasSuffix(out, "Admin xavier has been revoked from all sites.\n"), out)
}

func TestRootCommandRejectsJSONFlag(t *testing.T) {
	_, err := executeRoot(t, "", "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag: --json")
}
