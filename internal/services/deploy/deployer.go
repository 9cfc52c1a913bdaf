// Package deploy publishes a generated project directory through the hosting
// provider's CLI. The CLI is treated as a black box: run it, capture
// everything it prints, and pull the deployment URL out of the output.
package deploy

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitesmith/internal/common"
)

// ProjectConfigName is the hosting descriptor written into every project
// directory before deployment. An existing descriptor is never overwritten.
const ProjectConfigName = "vercel.json"

// defaultProjectConfig marks the project as a plain static site with no
// build step.
const defaultProjectConfig = `{
  "cleanUrls": true,
  "trailingSlash": false
}
`

const defaultTimeout = 5 * time.Minute

// deployedURLPattern matches the canonical deployment URL the CLI prints
var deployedURLPattern = regexp.MustCompile(`https://[a-zA-Z0-9][a-zA-Z0-9.-]*\.vercel\.app\b`)

// anyURLPattern is the looser fallback when the canonical pattern misses
var anyURLPattern = regexp.MustCompile(`https://[^\s"']+`)

// authWords in URL-less CLI output indicate a credential problem rather than
// a build problem; the error message calls that out specifically.
var authWords = []string{"log in", "login required", "not authorized", "invalid token", "forbidden", "authenticate"}

// Result describes one deployment attempt
type Result struct {
	Skipped bool
	URL     string
	Output  string
}

// Deployer shells out to the hosting CLI
type Deployer struct {
	token   string
	command string
	timeout time.Duration
	logger  arbor.ILogger
}

// NewDeployer creates a deployer from config. A malformed timeout falls back
// to five minutes.
func NewDeployer(cfg common.DeployConfig, logger arbor.ILogger) *Deployer {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = defaultTimeout
	}

	command := cfg.Command
	if command == "" {
		command = "vercel"
	}

	return &Deployer{
		token:   cfg.Token,
		command: command,
		timeout: timeout,
		logger:  logger,
	}
}

// Deploy publishes the project directory. Without a token the deployment is
// skipped and the job still succeeds; that is the expected state for local
// development.
func (d *Deployer) Deploy(ctx context.Context, projectDir string) (*Result, error) {
	if d.token == "" {
		d.logger.Info().Msg("No deploy token configured, skipping deployment")
		return &Result{Skipped: true}, nil
	}

	if err := d.ensureProjectConfig(projectDir); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	// Token passed both as a flag and as the CLI's own env var; some CLI
	// versions read one and ignore the other.
	cmd := exec.CommandContext(ctx, d.command, "--prod", "--yes", "--token", d.token)
	cmd.Dir = projectDir
	cmd.Env = append(os.Environ(), "VERCEL_TOKEN="+d.token)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	// The CLI prints the deployment URL even on some non-zero exits, so the
	// output is parsed regardless of the exit code.
	output := strings.TrimSpace(stdout.String() + "\n" + stderr.String())
	if output == "" {
		if runErr != nil {
			return nil, fmt.Errorf("deploy command produced no output: %w", runErr)
		}
		return nil, fmt.Errorf("deploy command produced no output")
	}

	url, err := ExtractDeployedURL(output)
	if err != nil {
		d.logger.Warn().Err(err).Msg("Deployment output had no usable URL")
		return nil, err
	}

	d.logger.Info().Str("url", url).Msg("Deployment complete")
	return &Result{URL: url, Output: output}, nil
}

// ensureProjectConfig writes the default hosting descriptor unless the
// project already has one.
func (d *Deployer) ensureProjectConfig(projectDir string) error {
	path := filepath.Join(projectDir, ProjectConfigName)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(defaultProjectConfig), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ProjectConfigName, err)
	}
	return nil
}

// ExtractDeployedURL pulls the deployment URL out of CLI output.
//
// A printed deployment URL means success, even when the CLI also grumbles
// about credentials or exits non-zero. The canonical hosting domain is
// preferred; any https URL is accepted as a fallback, except the provider's
// error pages. Only when no usable URL exists is the output inspected for
// auth-failure language, so a login prompt never reads as a plain parse
// problem.
func ExtractDeployedURL(output string) (string, error) {
	if url := deployedURLPattern.FindString(output); url != "" {
		if isErrorURL(url) {
			return "", fmt.Errorf("deploy failed: CLI printed an error page URL: %s", url)
		}
		return url, nil
	}

	if url := anyURLPattern.FindString(output); url != "" {
		if isErrorURL(url) {
			return "", fmt.Errorf("deploy failed: CLI printed an error page URL: %s", url)
		}
		return strings.TrimRight(url, ".,)"), nil
	}

	lower := strings.ToLower(output)
	for _, w := range authWords {
		if strings.Contains(lower, w) {
			return "", fmt.Errorf("deploy failed: CLI reported an authentication problem: %s", snippet(output))
		}
	}

	return "", fmt.Errorf("no deployment URL in CLI output: %s", snippet(output))
}

func isErrorURL(url string) bool {
	lower := strings.ToLower(url)
	return strings.Contains(lower, "/errors/") || strings.Contains(lower, "vercel.com/docs") || strings.Contains(lower, "err.sh")
}

func snippet(output string) string {
	output = strings.TrimSpace(output)
	if len(output) > 200 {
		return output[:200] + "..."
	}
	return output
}
