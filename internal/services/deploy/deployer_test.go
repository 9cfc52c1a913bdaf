package deploy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/sitesmith/internal/common"
)

func TestDeploy_SkipsWithoutToken(t *testing.T) {
	d := NewDeployer(common.DeployConfig{Token: "", Command: "vercel", Timeout: "5m"}, common.GetLogger())

	result, err := d.Deploy(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Empty(t, result.URL)
}

func TestEnsureProjectConfig(t *testing.T) {
	d := NewDeployer(common.DeployConfig{Token: "tok", Command: "vercel", Timeout: "5m"}, common.GetLogger())
	dir := t.TempDir()

	require.NoError(t, d.ensureProjectConfig(dir))
	data, err := os.ReadFile(filepath.Join(dir, ProjectConfigName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "cleanUrls")

	// An existing descriptor is preserved byte for byte
	custom := `{"name": "custom"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectConfigName), []byte(custom), 0644))
	require.NoError(t, d.ensureProjectConfig(dir))
	data, err = os.ReadFile(filepath.Join(dir, ProjectConfigName))
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}

func TestExtractDeployedURL(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr string
	}{
		{
			name:   "canonical url",
			output: "Deploying...\nProduction: https://my-site-abc123.vercel.app [2s]",
			want:   "https://my-site-abc123.vercel.app",
		},
		{
			name:   "canonical preferred over other urls",
			output: "Inspect: https://vercel.com/acme/my-site/xyz\nProduction: https://my-site.vercel.app",
			want:   "https://my-site.vercel.app",
		},
		{
			name:   "loose fallback",
			output: "Deployed to https://example-host.com/site",
			want:   "https://example-host.com/site",
		},
		{
			name:   "printed url wins over auth language",
			output: "Error: invalid token. See https://my-site.vercel.app",
			want:   "https://my-site.vercel.app",
		},
		{
			name:   "noisy output with url and nonzero exit line",
			output: "Authenticate scope ok\nProduction: https://demo-site.vercel.app\nError: exit status 1",
			want:   "https://demo-site.vercel.app",
		},
		{
			name:    "error page url rejected",
			output:  "Error! https://vercel.com/docs/errors/ERR_BAD_REQUEST",
			wantErr: "error page",
		},
		{
			name:    "auth language without any url",
			output:  "Error: invalid token. Please log in again.",
			wantErr: "authentication",
		},
		{
			name:    "no url at all",
			output:  "something went wrong",
			wantErr: "no deployment URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractDeployedURL(tt.output)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeploy_CapturesOutputOnFailure(t *testing.T) {
	// "false" exits non-zero with no output; the error must mention that
	d := NewDeployer(common.DeployConfig{Token: "tok", Command: "false", Timeout: "10s"}, common.GetLogger())

	_, err := d.Deploy(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no output")
}

func TestDeploy_ParsesURLDespiteExitCode(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-cli")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho 'Production: https://demo-site.vercel.app'\nexit 1\n"), 0755))

	d := NewDeployer(common.DeployConfig{Token: "tok", Command: script, Timeout: "10s"}, common.GetLogger())

	result, err := d.Deploy(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "https://demo-site.vercel.app", result.URL)
}

func TestNewDeployer_BadTimeoutFallsBack(t *testing.T) {
	d := NewDeployer(common.DeployConfig{Token: "tok", Command: "vercel", Timeout: "nonsense"}, common.GetLogger())
	assert.Equal(t, defaultTimeout, d.timeout)
}
