package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/progressit/progressive/internal/config"
	"github.com/progressit/progressive/pkg/diagnostics"
	"github.com/progressit/progressive/pkg/errors"
	"github.com/progressit/progressive/pkg/jsonfmt"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestFormat_Stdin(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, `{"b":null,"a":[1,2]}`, "--config-dir", dir, "format", "--pretty=false")
	require.NoError(t, err)
	require.Equal(t, "{\"a\":[1,2],\"b\":null}\n", out)
}

func TestFormat_FileAndConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("format:\n  serializeNulls: false\n"), 0o644))
	input := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"z":1,"y":null}`), 0o644))

	out, err := execute(t, "", "--config-dir", dir, "format", input)
	require.NoError(t, err)
	require.Equal(t, "{\n  \"z\": 1\n}\n", out)
}

func TestFormat_InvalidJSON(t *testing.T) {
	_, err := execute(t, `{"a":`, "--config-dir", t.TempDir(), "format")
	require.Error(t, err)
	require.Contains(t, err.Error(), jsonfmt.ErrInvalidJSON.Error())
}

func TestFormat_Blank(t *testing.T) {
	out, err := execute(t, "  \n", "--config-dir", t.TempDir(), "format")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestFormat_BadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("version: v3.0.0\n"), 0o644))
	_, err := execute(t, "{}", "--config-dir", dir, "format")
	require.ErrorContains(t, err, "unsupported config version")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version", "--short")
	require.NoError(t, err)
	require.Equal(t, version+"\n", out)
}

func TestRunDebug(t *testing.T) {
	cfg, err := config.Resolve(t.TempDir())
	require.NoError(t, err)
	cfg.DebugAddr = "127.0.0.1:0"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	addrs := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- runDebug(ctx, logger, cfg, `{"k":true}`, func(addr string) { addrs <- addr })
	}()

	var addr string
	select {
	case addr = <-addrs:
	case err := <-done:
		t.Fatalf("runDebug returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("debug server did not start")
	}

	resp, err := http.Get("http://" + addr + "/tree")
	require.NoError(t, err)
	var tree []diagnostics.TreeNode
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tree))
	resp.Body.Close()
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 4)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("debug server did not stop")
	}
}

func TestRunDebug_Disabled(t *testing.T) {
	cfg := &config.Resolved{DebugEnabled: false}
	err := runDebug(context.Background(), slog.Default(), cfg, "", nil)
	require.ErrorIs(t, err, errDebugDisabled)
}

func TestSetupLogging_JSON(t *testing.T) {
	previous := errors.CurrentHandler()
	t.Cleanup(func() { errors.SetHandler(previous) })
	var buf bytes.Buffer
	logger := setupLogging(&buf, &config.Resolved{LogLevel: slog.LevelInfo, LogFormat: "json"})

	logger.Debug("hidden")
	logger.Info("shown", "k", 1)

	require.NotContains(t, buf.String(), "hidden")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "shown", rec["msg"])

	buf.Reset()
	errors.Report(errors.New("core.Post", errors.KindUndeclaredEvent, "Button", errors.ErrUndeclaredEvent))
	require.Contains(t, buf.String(), "progressive error")
}
