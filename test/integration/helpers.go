//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Subdomain string
	Endpoint  string
	Email     string
	Token     string
	ZdeskPath string
	Verbose   bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Subdomain: os.Getenv("ZENDESK_SUBDOMAIN"),
		Endpoint:  os.Getenv("ZENDESK_ENDPOINT"),
		Email:     os.Getenv("ZENDESK_EMAIL"),
		Token:     os.Getenv("ZENDESK_TOKEN"),
		ZdeskPath: getZdeskPath(),
		Verbose:   os.Getenv("ZDESK_VERBOSE") == "true",
	}
}

func getZdeskPath() string {
	if path := os.Getenv("ZDESK_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../zdesk", "../../bin/zdesk", "./zdesk"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "zdesk"
}

// SkipIfMissingConfig skips the test unless a live account and the binary are available.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Subdomain == "" && config.Endpoint == "" {
		t.Skip("ZENDESK_SUBDOMAIN or ZENDESK_ENDPOINT not set, skipping integration test")
	}

	if config.Email == "" || config.Token == "" {
		t.Skip("ZENDESK_EMAIL and ZENDESK_TOKEN are required, skipping integration test")
	}

	if _, err := exec.LookPath(config.ZdeskPath); err != nil {
		t.Skipf("zdesk binary not found at %s, skipping integration test", config.ZdeskPath)
	}
}

// CommandRunner runs zdesk against the configured account with an isolated config file.
type CommandRunner struct {
	config     *TestConfig
	t          *testing.T
	configFile string
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		t:          t,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
	}
}

// Run executes a zdesk command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes a zdesk command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	args = append(args, "--config", runner.configFile, "--env-file", "")

	cmd := exec.Command(runner.config.ZdeskPath, args...)
	cmd.Env = append(os.Environ(),
		"ZENDESK_SUBDOMAIN="+runner.config.Subdomain,
		"ZENDESK_ENDPOINT="+runner.config.Endpoint,
		"ZENDESK_EMAIL="+runner.config.Email,
		"ZENDESK_TOKEN="+runner.config.Token,
	)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.ZdeskPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunJSON runs a command with -o json and decodes stdout into out.
func (runner *CommandRunner) RunJSON(out any, args ...string) {
	runner.t.Helper()

	stdout, stderr, err := runner.Run(append(args, "-o", "json")...)
	require.NoError(runner.t, err, stderr)
	require.NoError(runner.t, json.Unmarshal([]byte(stdout), out), stdout)
}

// CleanupTicket deletes and purges a ticket, ignoring failures.
func (runner *CommandRunner) CleanupTicket(id int64) {
	ref := fmt.Sprint(id)

	_, _, _ = runner.Run("tickets", "delete", ref)

	stdout, stderr, err := runner.Run("deleted-tickets", "purge", ref)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for ticket %d: %s\nStderr: %s", id, stdout, stderr)
	}
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// WaitForCondition waits for a condition to be met with timeout
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	t.Helper()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	timeoutChan := time.After(timeout)

	for {
		select {
		case <-ticker.C:
			if condition() {
				return
			}
		case <-timeoutChan:
			t.Fatalf("Timeout waiting for condition: %s", message)
		}
	}
}
