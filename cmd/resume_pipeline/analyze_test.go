package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeCommand_MissingWorkbook(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()
	jdFile := filepath.Join(tmpDir, "jd.txt")
	_ = os.WriteFile(jdFile, []byte("Backend engineer role."), 0644)

	cmd := exec.Command(binaryPath, "analyze", "--jd-file", jdFile)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "workbook is required")
}

func TestAnalyzeCommand_MissingJobDescription(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "analyze", "--workbook", "resume.xlsx")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--jd-file or --jd-url")
}

func TestAnalyzeCommand_ExclusiveJDSources(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()
	jdFile := filepath.Join(tmpDir, "jd.txt")
	_ = os.WriteFile(jdFile, []byte("Backend engineer role."), 0644)

	cmd := exec.Command(binaryPath, "analyze",
		"--workbook", "resume.xlsx",
		"--jd-file", jdFile,
		"--jd-url", "https://example.com/job")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "mutually exclusive")
}
