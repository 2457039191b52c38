package main

import (
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("PSAPI_ORG_ID", "env-org")
	t.Setenv("PSAPI_API_KEY", "env-key")
	t.Setenv("PSAPI_S3_ENDPOINT", "localhost:9000")
	t.Setenv("PSAPI_S3_USE_SSL", "false")

	cfg, err := loadEnvConfig()
	require.NoError(t, err)
	assert.Equal(t, "env-org", cfg.OrgID)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "localhost:9000", cfg.S3Endpoint)
	assert.False(t, cfg.S3UseSSL)
}

func TestLoadEnvConfigDefaults(t *testing.T) {
	t.Setenv("PSAPI_S3_USE_SSL", "true")
	require.NoError(t, os.Unsetenv("PSAPI_S3_USE_SSL"))

	cfg, err := loadEnvConfig()
	require.NoError(t, err)
	assert.True(t, cfg.S3UseSSL)
}

func TestApplyEnvKeepsExplicitFlags(t *testing.T) {
	root := newRootCmd()
	require.NoError(t, root.PersistentFlags().Parse([]string{"--org-id", "flag-org"}))

	opts := &cliOptions{orgID: "flag-org", baseURL: "https://image.adobe.io"}
	opts.applyEnv(root.PersistentFlags(), &envConfig{
		OrgID:       "env-org",
		APIKey:      "env-key",
		AccessToken: "env-token",
		BaseURL:     "https://stage.image.adobe.io",
		S3Endpoint:  "localhost:9000",
		S3Bucket:    "assets",
	})

	assert.Equal(t, "flag-org", opts.orgID)
	assert.Equal(t, "env-key", opts.apiKey)
	assert.Equal(t, "env-token", opts.accessToken)
	assert.Equal(t, "https://stage.image.adobe.io", opts.baseURL)
	assert.Equal(t, "localhost:9000", opts.s3.Endpoint)
	assert.Equal(t, "assets", opts.s3.Bucket)
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	names := map[string]bool{}
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	for _, name := range []string{"cutout", "mask", "straighten", "autotone", "edit", "preset", "document", "status", "completion"} {
		assert.True(t, names[name], name)
	}

	doc, _, err := root.Find([]string{"document", "actions"})
	require.NoError(t, err)
	assert.Equal(t, "actions", doc.Name())
	assert.NotNil(t, doc.Flags().Lookup("options"))

	var manifest *cobra.Command
	manifest, _, err = root.Find([]string{"document", "manifest"})
	require.NoError(t, err)
	assert.Nil(t, manifest.Flags().Lookup("output"))
}
