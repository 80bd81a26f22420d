package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"report-validator/core/reconcile"
	"report-validator/core/report"
	"report-validator/core/tableio"
	"report-validator/feature/validation"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func resetValidateFlags(t *testing.T) {
	t.Cleanup(func() {
		validateSource, validateTarget, validateWorkbook = "", "", ""
		validateOut, validateFormat = "", ""
	})
}

func writeExtract(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runSample(t *testing.T) *validation.Report {
	svc, err := validation.NewService(nil, nil, zap.NewNop(), validation.Settings{
		Validation: reconcile.Config{Mode: "dimensional"},
		Report:     report.Config{SourceName: "Cognos", TargetName: "PBI"},
	})
	require.NoError(t, err)

	validateSource = writeExtract(t, "cognos.csv", "Region_ID,Sales\nEAST,100\nWEST,30\n")
	validateTarget = writeCompressed(t, "pbi.csv.gz", "Region_ID,Sales\nEAST,90\n")

	source, target, err := readInputs("Cognos", "PBI")
	require.NoError(t, err)

	rep, err := svc.Validate(source, target, validation.RunOptions{})
	require.NoError(t, err)
	return rep
}

func writeCompressed(t *testing.T, name, content string) string {
	var buf bytes.Buffer
	w, err := tableio.Compress(name, &buf)
	require.NoError(t, err)
	_, err = io.WriteString(w, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return writeExtract(t, name, buf.String())
}

func TestReadInputs_Missing(t *testing.T) {
	resetValidateFlags(t)

	_, _, err := readInputs("Cognos", "PBI")
	assert.Error(t, err)

	validateSource = filepath.Join(t.TempDir(), "nope.csv")
	validateTarget = validateSource
	_, _, err = readInputs("Cognos", "PBI")
	assert.ErrorContains(t, err, "failed to open")
}

func TestRenderSummary(t *testing.T) {
	resetValidateFlags(t)
	rep := runSample(t)

	out := renderSummary(rep)
	assert.Contains(t, out, "Validation Cognos vs PBI")
	assert.Contains(t, out, "Only in Cognos")
	assert.Contains(t, out, "Sales_Diff")
	assert.Contains(t, out, "FAILED")
	assert.NotContains(t, out, "PASSED")
}

func TestWriteReport(t *testing.T) {
	resetValidateFlags(t)
	rep := runSample(t)

	t.Run("File", func(t *testing.T) {
		validateOut = filepath.Join(t.TempDir(), "report.csv")
		validateFormat = ""

		require.NoError(t, writeReport(&cobra.Command{}, zap.NewNop(), rep))
		data, err := os.ReadFile(validateOut)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Sales_Diff")
	})

	t.Run("Stdout", func(t *testing.T) {
		validateOut = ""
		validateFormat = "json"

		var buf bytes.Buffer
		cmd := &cobra.Command{}
		cmd.SetOut(&buf)
		require.NoError(t, writeReport(cmd, zap.NewNop(), rep))
		assert.Contains(t, buf.String(), `"Validation_Report"`)
	})

	t.Run("Unknown Format", func(t *testing.T) {
		validateOut = filepath.Join(t.TempDir(), "report.pdf")
		validateFormat = ""
		assert.Error(t, writeReport(&cobra.Command{}, zap.NewNop(), rep))
	})
}
