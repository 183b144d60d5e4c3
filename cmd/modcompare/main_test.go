package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/ModCompare/internal/core"
	"github.com/JonMunkholm/ModCompare/internal/export"
)

const testData = "型号,Speed,Power\nA,10,5\nB,10,7\nC,20,7\n"

func setupDataDir(t *testing.T) string {
	t.Helper()
	t.Setenv("SOURCE_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte(testData), 0o644))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestModelsCommand(t *testing.T) {
	dir := setupDataDir(t)

	out, err := run(t, "models", "--data-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "A\nB\nC\n", out)
}

func TestParamsCommand(t *testing.T) {
	dir := setupDataDir(t)

	out, err := run(t, "params", "--data-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "Speed\nPower\n", out)
}

func TestCompareCommand_CSV(t *testing.T) {
	dir := setupDataDir(t)

	out, err := run(t, "compare", "--data-dir", dir, "--model", "B", "--model", "A", "--diff", "--format", "csv")
	require.NoError(t, err)

	g, err := export.ReadCSV(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, []string{export.ParameterLabel, "B", "A"}, g.Header)
	assert.Equal(t, [][]string{{"Power", "7", "5"}}, g.Body)
}

func TestCompareCommand_Text(t *testing.T) {
	dir := setupDataDir(t)

	out, err := run(t, "compare", "--data-dir", dir, "-m", "A", "-m", "C")
	require.NoError(t, err)
	assert.Contains(t, out, "Speed")
	assert.Contains(t, out, "+")
}

func TestCompareCommand_Errors(t *testing.T) {
	dir := setupDataDir(t)

	_, err := run(t, "compare", "--data-dir", dir, "--model", "Z")
	assert.ErrorIs(t, err, core.ErrNoModelsSelected)

	_, err = run(t, "compare", "--data-dir", dir, "--model", "A", "--format", "pdf")
	assert.Error(t, err)
}

func TestExportCommand_Custom(t *testing.T) {
	dir := setupDataDir(t)
	target := filepath.Join(t.TempDir(), "picks.csv")

	out, err := run(t, "export", "--data-dir", dir, "--mode", "custom",
		"--param", "Power", "--model", "C", "--model", "A", "-o", target)
	require.NoError(t, err)
	assert.Equal(t, target+"\n", out)

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()

	g, err := export.ReadCSV(f)
	require.NoError(t, err)
	assert.Equal(t, []string{core.IdentifierColumn, "Power"}, g.Header)
	assert.Equal(t, [][]string{{"C", "7"}, {"A", "5"}}, g.Body)
}

func TestExportCommand_DefaultName(t *testing.T) {
	dir := setupDataDir(t)
	t.Chdir(t.TempDir())

	out, err := run(t, "export", "--data-dir", dir, "--model", "A", "--format", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "comparison_result.yaml\n", out)
	assert.FileExists(t, "comparison_result.yaml")
}

func TestExportCommand_Errors(t *testing.T) {
	dir := setupDataDir(t)
	target := filepath.Join(t.TempDir(), "out.csv")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown format", []string{"--format", "docx", "--model", "A"}, core.ErrUnknownFormat},
		{"no params", []string{"--mode", "custom", "--model", "A"}, core.ErrNoParametersSelected},
		{"unknown params", []string{"--mode", "custom", "--param", "Bogus", "--model", "A"}, core.ErrEmptyGrid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"export", "--data-dir", dir, "-o", target}, tt.args...)
			_, err := run(t, args...)
			assert.ErrorIs(t, err, tt.want)
			assert.NoFileExists(t, target)
		})
	}
}

func TestMissingDataFile(t *testing.T) {
	t.Setenv("SOURCE_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "")

	_, err := run(t, "models", "--data-dir", t.TempDir())
	assert.ErrorIs(t, err, core.ErrSourceNotFound)
}

func TestCompareCommand_VerbatimSelection(t *testing.T) {
	t.Setenv("SOURCE_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "")
	dir := t.TempDir()
	data := "型号,\"尺寸 (长, 宽, 高)\",Speed\n\"EC200U, V2\",\"10, 20, 3\",1\nBG95 ,\"11, 20, 3\",1\nA,\"12, 20, 3\",2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte(data), 0o644))

	out, err := run(t, "compare", "--data-dir", dir, "--format", "csv",
		"--model", "EC200U, V2", "--model", "BG95 ", "--model", "A")
	require.NoError(t, err)

	g, err := export.ReadCSV(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, []string{export.ParameterLabel, "EC200U, V2", "BG95 ", "A"}, g.Header)

	target := filepath.Join(t.TempDir(), "picks.csv")
	_, err = run(t, "export", "--data-dir", dir, "--mode", "custom", "-o", target,
		"--param", "尺寸 (长, 宽, 高)", "--model", "BG95 ")
	require.NoError(t, err)

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()
	g, err = export.ReadCSV(f)
	require.NoError(t, err)
	assert.Equal(t, []string{core.IdentifierColumn, "尺寸 (长, 宽, 高)"}, g.Header)
	assert.Equal(t, [][]string{{"BG95 ", "11, 20, 3"}}, g.Body)
}
