package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLI_MissingKeyword(t *testing.T) {
	binaryPath := getBinaryPath(t)

	for _, name := range []string{"full", "collect"} {
		cmd := exec.Command(binaryPath, name)
		output, err := cmd.CombinedOutput()

		assert.Error(t, err, "%s without a keyword should exit non-zero", name)
		assert.Contains(t, string(output), "accepts 1 arg(s), received 0")
	}
}

func TestCLI_Help(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := exec.Command(binaryPath, "--help").CombinedOutput()

	assert.NoError(t, err)
	for _, name := range []string{"full", "collect", "clean", "extract", "skipped"} {
		assert.Contains(t, string(output), name)
	}
}
