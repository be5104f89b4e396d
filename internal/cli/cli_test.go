package cli

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squareWKT = "space POLYGON((-1 -1, 1 -1, 1 1, -1 1, -1 -1))\nwalls LINESTRING(-2 -2, 2 -2)\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestSetVersion(t *testing.T) {
	defer SetVersion(version, commit, date)
	SetVersion("1.0.0", "abc123", "2024-01-01")

	if version != "1.0.0" {
		t.Errorf("version = %q, want %q", version, "1.0.0")
	}
	if commit != "abc123" {
		t.Errorf("commit = %q, want %q", commit, "abc123")
	}
	if date != "2024-01-01" {
		t.Errorf("date = %q, want %q", date, "2024-01-01")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestLoggerFromContext(t *testing.T) {
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))

	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	assert.Same(t, l, loggerFromContext(withLogger(context.Background(), l)))
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("finished")
	assert.Contains(t, buf.String(), "finished (")
}

func TestLoadConfigOverrides(t *testing.T) {
	cfgPath := writeFile(t, "floormap.toml", "scale = 50.0\ninterval = \"250ms\"\n")

	c := New(&bytes.Buffer{})
	c.configPath = cfgPath
	cfg, err := c.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 50.0, cfg.Scale)

	c.scale = 20
	cfg, err = c.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 20.0, cfg.Scale, "flag overrides file")

	c.scale = -1
	_, err = c.loadConfig()
	assert.Error(t, err)
}

func TestSnapshotWritesPNG(t *testing.T) {
	plan := writeFile(t, "plan.wkt", squareWKT)
	out := filepath.Join(t.TempDir(), "out.png")

	var stderr bytes.Buffer
	root := New(&stderr).RootCommand()
	root.SetArgs([]string{"snapshot", "-f", plan, "--pose", "0.5,0,0", "-o", out, "--width", "120", "--height", "90"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
	assert.Contains(t, stderr.String(), "Wrote")
}

func TestSnapshotErrors(t *testing.T) {
	plan := writeFile(t, "plan.wkt", squareWKT)
	out := filepath.Join(t.TempDir(), "out.png")
	tests := []struct {
		name string
		args []string
	}{
		{"missing floorplan flag", []string{"snapshot", "-o", out}},
		{"bad pose", []string{"snapshot", "-f", plan, "--pose", "1,2", "-o", out}},
		{"bad size", []string{"snapshot", "-f", plan, "--width", "0", "-o", out}},
		{"unsupported file", []string{"snapshot", "-f", writeFile(t, "plan.txt", "x"), "-o", out}},
		{"bad scale", []string{"snapshot", "-f", plan, "--scale", "-3", "-o", out}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := New(&bytes.Buffer{}).RootCommand()
			root.SetArgs(tt.args)
			root.SetErr(&bytes.Buffer{})
			assert.Error(t, root.ExecuteContext(context.Background()))
		})
	}
}

func TestSnapshotLogFile(t *testing.T) {
	plan := writeFile(t, "plan.wkt", squareWKT)
	logPath := filepath.Join(t.TempDir(), "floormap.log")

	var stderr bytes.Buffer
	root := New(&stderr).RootCommand()
	root.SetArgs([]string{"snapshot", "-f", plan, "-o", filepath.Join(t.TempDir(), "o.png"), "--log-file", logPath})
	require.NoError(t, root.ExecuteContext(context.Background()))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Wrote")
	assert.Empty(t, stderr.String())
}
