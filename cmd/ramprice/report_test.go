package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/ramprice/cmd/ramprice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports the mean price per GB by date", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr}

		cmd := &main.ReportCmd{Path: writeHistory(t)}
		cmd.Type = "desktop"
		err := cmd.Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "PRICE/GB")
		assert.Contains(t, output, "2020-01-05")
		assert.Contains(t, output, "2020-01-12")
		assert.Contains(t, output, "$3.1250")

		assert.Contains(t, stderr.String(), "skipped entry")
		assert.Contains(t, stderr.String(), "Foobar")
	})

	t.Run("reports the mean price per module for a module size", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}}

		cmd := &main.ReportCmd{Path: writeHistory(t)}
		cmd.Module = 8
		err := cmd.Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "PRICE/MODULE")
		assert.Contains(t, output, "$30.00")
		assert.Contains(t, output, "$25.00")
	})

	t.Run("reports when nothing matches", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}}

		cmd := &main.ReportCmd{Path: writeHistory(t)}
		cmd.Store = "best buy"
		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "No matching records")
	})

	t.Run("rejects a malformed date filter", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr}

		cmd := &main.ReportCmd{Path: writeHistory(t)}
		cmd.From = "05/01/2020"
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("returns an error for a missing file", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

		cmd := &main.ReportCmd{Path: filepath.Join(t.TempDir(), "missing.yaml")}
		err := cmd.Run(deps)
		require.Error(t, err)
	})
}
