package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awantoch/eepromgen/logger"
)

func run(t *testing.T, args ...string) (string, string, int, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	origExit := exit
	exitCode := 0
	exit = func(code int) { exitCode = code }
	logger.SetUserOutput(&stdout)
	logger.SetInternalOutput(&stderr)
	defer func() {
		exit = origExit
		logger.SetUserOutput(nil)
		logger.SetInternalOutput(nil)
	}()

	cmd := NewRootCmd()
	cmd.SetOut(&stderr)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), exitCode, err
}

func sum(b []byte) byte {
	var s byte
	for _, v := range b {
		s += v
	}
	return s
}

// boardImage builds a 512 byte FRU image with a single board area at 8.
func boardImage(fields ...string) []byte {
	area := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00}
	for _, f := range fields {
		area = append(area, 0xc0|byte(len(f)))
		area = append(area, f...)
	}
	area = append(area, 0xc1)
	for (len(area)+1)%8 != 0 {
		area = append(area, 0x00)
	}
	area = append(area, 0x00)
	area[1] = byte(len(area) / 8)
	area[len(area)-1] = -sum(area[:len(area)-1])

	img := make([]byte, 512)
	img[0] = 0x01
	img[3] = 0x01
	img[7] = -sum(img[:7])
	copy(img[8:], area)
	return img
}

func TestRedact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.fru")
	require.NoError(t, os.WriteFile(path, boardImage("ACME", "Widget", "SN0001"), 0o644))

	out, logs, code, err := run(t, path)
	require.NoError(t, err)
	assert.Zero(t, code)
	assert.Equal(t, "2 0 XXXX\n2 1 Widget\n2 2 XXXXXX\n", out)
	assert.Contains(t, logs, path+".redacted")

	redacted, err := os.ReadFile(path + ".redacted")
	require.NoError(t, err)
	require.Len(t, redacted, 512)
	assert.False(t, bytes.Contains(redacted, []byte("SN0001")))
}

func TestRedact_BadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.fru")
	require.NoError(t, os.WriteFile(path, []byte{0x01, 0x02}, 0o644))

	out, logs, code, err := run(t, path)
	require.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.True(t, strings.Contains(logs, "too short"))
	_, statErr := os.Stat(path + ".redacted")
	assert.True(t, os.IsNotExist(statErr))
}

func TestRedact_NoArgs(t *testing.T) {
	_, _, _, err := run(t)
	assert.Error(t, err)
}
