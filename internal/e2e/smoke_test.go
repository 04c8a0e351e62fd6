package e2e

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bnema/rumble-cli/internal/devserver"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	baseURL := startDevServer(t)

	stdout, stderr, err := runRumble(t, binaryPath, home, baseURL,
		"auth", "login",
		"--email", "admin@rumble.com",
		"--password", "admin123",
	)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Signed in as Admin User")

	stdout, stderr, err = runRumble(t, binaryPath, home, baseURL, "robots", "command", "RUMBLE-001", "stop", "--json")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, `"status": "idle"`)

	stdout, stderr, err = runRumble(t, binaryPath, home, baseURL, "dashboard")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "My robots (2)")

	_, stderr, err = runRumble(t, binaryPath, home, baseURL, "auth", "logout")
	require.NoError(t, err, "stderr: %s", stderr)

	_, _, err = runRumble(t, binaryPath, home, baseURL, "robots", "list")
	require.Error(t, err)
}

func startDevServer(t *testing.T) string {
	t.Helper()

	backend := devserver.NewMemoryBackend()
	seed, err := devserver.LoadSeed("")
	require.NoError(t, err)
	require.NoError(t, seed.Apply(context.Background(), backend, bcrypt.MinCost))

	server := httptest.NewServer(devserver.New(devserver.Options{Backend: backend, HashCost: bcrypt.MinCost}).Handler())
	t.Cleanup(server.Close)
	return server.URL
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "rumble-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/rumble")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build rumble binary: %s", string(output))
	return binaryPath
}

func runRumble(t *testing.T, binaryPath, home, baseURL string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "RUMBLE_API_BASE_URL="+baseURL)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
