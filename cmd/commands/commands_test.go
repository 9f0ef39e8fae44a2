package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"net/http"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeIn(t, t.TempDir(), nil, args...)
}

// executeIn runs the CLI from workDir with only env set among the credential variables.
func executeIn(t *testing.T, workDir string, env map[string]string, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"STEAM_API_KEY", "STEAM_ID", "WAKATIME_API_KEY", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
	prevDir, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(workDir))
	t.Cleanup(func() { _ = os.Chdir(prevDir) })

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func files(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestSteam_TestMode(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "steam", "--test", "--output-dir", dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"steam_stats.svg", "steam_stats_dark.svg"}, files(t, dir))

	svg, err := os.ReadFile(filepath.Join(dir, "steam_stats.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "Weekly Gaming Activity")
}

func TestAll_TestModeWithPNGAndSummary(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "all", "--test", "--png", "--summary", "--output-dir", dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"steam_stats.png", "steam_stats.svg", "steam_stats_dark.png", "steam_stats_dark.svg",
		"wakatime_stats.png", "wakatime_stats.svg", "wakatime_stats_dark.png", "wakatime_stats_dark.svg",
	}, files(t, dir))

	assert.Contains(t, out, "steam: Weekly Gaming Activity")
	assert.Contains(t, out, "wakatime: Weekly Coding Activity")
	assert.False(t, strings.Contains(out, "CSS"), "CSS is below the top five")
}

func TestWakaTime_MissingCredentials(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "wakatime", "--output-dir", dir)
	require.NoError(t, err, "missing credentials are reported, not fatal")
	assert.Empty(t, files(t, dir))
}

func TestSteam_UnwritableOutput(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := execute(t, "steam", "--test", "--output-dir", filepath.Join(blocker, "charts"))
	assert.Error(t, err)
}

func TestRoot_RejectsArgs(t *testing.T) {
	_, err := execute(t, "steam", "extra")
	assert.Error(t, err)
}

type countingTransport struct {
	requests atomic.Int32
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.requests.Add(1)
	return nil, http.ErrUseLastResponse
}

// countRequests replaces the default transport for the rest of the test.
func countRequests(t *testing.T) *countingTransport {
	t.Helper()
	counter := &countingTransport{}
	orig := http.DefaultTransport
	http.DefaultTransport = counter
	t.Cleanup(func() { http.DefaultTransport = orig })
	return counter
}

var telegramEnv = map[string]string{
	"TELEGRAM_BOT_TOKEN": "123:abc",
	"TELEGRAM_CHAT_ID":   "-100123",
}

func TestSteam_TestModeNeverTouchesNetwork(t *testing.T) {
	counter := countRequests(t)
	dir := t.TempDir()

	_, err := executeIn(t, t.TempDir(), telegramEnv, "steam", "--test", "--output-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, int32(0), counter.requests.Load())
	assert.Equal(t, []string{"steam_stats.svg", "steam_stats_dark.svg"}, files(t, dir))
}

func TestAll_MissingCredentialsNeverTouchNetwork(t *testing.T) {
	counter := countRequests(t)
	dir := t.TempDir()

	_, err := executeIn(t, t.TempDir(), telegramEnv, "all", "--output-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, int32(0), counter.requests.Load())
	assert.Empty(t, files(t, dir))
}

func TestSteam_PaletteFromConfig(t *testing.T) {
	work := t.TempDir()
	yaml := "steam:\n  palette: \"#DD5500\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(work, "config.yaml"), []byte(yaml), 0644))
	dir := t.TempDir()

	_, err := executeIn(t, work, nil, "steam", "--test", "--output-dir", dir)
	require.NoError(t, err)

	for _, name := range []string{"steam_stats.svg", "steam_stats_dark.svg"} {
		svg, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Contains(t, string(svg), "rgba(221,85,0,1.0)", name)
	}
}

func TestSteam_RejectsZeroLabelOffset(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "steam", "--test", "--label-offset", "0", "--output-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "label_offset")
	assert.Empty(t, files(t, dir))
}
