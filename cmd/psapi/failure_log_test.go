package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fail.log")

	require.NoError(t, logFailure(path, "job-1", "in.jpg", errors.New("boom")))
	require.NoError(t, logFailure(path, "", "other.jpg", errors.New("bang")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "\tlevel=ERROR\tid=job-1\ttarget=in.jpg\tmessage=boom")
	assert.Contains(t, lines[1], "\tid=unknown\ttarget=other.jpg\tmessage=bang")
}

func TestLogFailureDisabled(t *testing.T) {
	assert.NoError(t, logFailure("", "id", "target", errors.New("boom")))
}

func TestReadJSONFileRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Exposure": 1.5, "Exposur": 2}`), 0o644))

	var opts struct {
		Exposure float64
	}
	assert.Error(t, readJSONFile(path, &opts))
}
