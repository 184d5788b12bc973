package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awantoch/eepromgen/constants"
	"github.com/awantoch/eepromgen/logger"
)

// run executes the root command and returns stdout, the log output and the
// exit code passed to exit (0 when it was never called).
func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	origExit := exit
	exitCode := 0
	exit = func(code int) { exitCode = code }
	logger.SetInternalOutput(&stderr)
	defer func() {
		exit = origExit
		logger.SetInternalOutput(nil)
		logger.SetMode("production")
	}()

	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return stdout.String(), stderr.String(), exitCode
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func unsetPrefix(t *testing.T) {
	t.Setenv(constants.EnvPrefix, "")
	require.NoError(t, os.Unsetenv(constants.EnvPrefix))
}

func TestNoArgs(t *testing.T) {
	out, _, code := run(t)
	assert.Empty(t, out)
	assert.Zero(t, code)
}

func TestGenerate_Blob(t *testing.T) {
	unsetPrefix(t)
	path := writeFile(t, t.TempDir(), "blob.bin", []byte{0x00, 0xff, 0x10})

	out, _, code := run(t, path)
	assert.Zero(t, code)
	assert.Equal(t, "static const uint8_t blob[] = {\n    0x00, 0xff, 0x10,\n};\n", out)
}

func TestGenerate_PrefixFromEnv(t *testing.T) {
	t.Setenv(constants.EnvPrefix, "fw_")
	path := writeFile(t, t.TempDir(), "table.dat.bak", nil)

	out, _, code := run(t, path)
	assert.Zero(t, code)
	assert.Equal(t, "static const uint8_t fw_table[] = {\n};\n", out)
}

func TestGenerate_PrefixFlagOverridesEnv(t *testing.T) {
	t.Setenv(constants.EnvPrefix, "env_")
	path := writeFile(t, t.TempDir(), "a.bin", []byte{1})

	out, _, _ := run(t, "--prefix", "flag_", path)
	assert.Equal(t, "static const uint8_t flag_a[] = {\n    0x01,\n};\n", out)
}

func TestGenerate_TwoFiles(t *testing.T) {
	unsetPrefix(t)
	dir := t.TempDir()
	first := writeFile(t, dir, "first.bin", []byte{0x01})
	second := writeFile(t, dir, "second.bin", []byte{0x02})

	out, _, code := run(t, first, second)
	assert.Zero(t, code)
	assert.Equal(t,
		"static const uint8_t first[] = {\n    0x01,\n};\nstatic const uint8_t second[] = {\n    0x02,\n};\n",
		out)
}

func TestGenerate_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.bin")

	out, logs, code := run(t, missing)
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, logs, missing)
}

func TestGenerate_ConfigFile(t *testing.T) {
	unsetPrefix(t)
	dir := t.TempDir()
	cfg := writeFile(t, dir, "gen.yaml", []byte("prefix: cfg_\nqualifier: const unsigned char\nbytes_per_line: 2\n"))
	path := writeFile(t, dir, "img.bin", []byte{1, 2, 3})

	out, _, code := run(t, "--config", cfg, path)
	assert.Zero(t, code)
	assert.Equal(t, "const unsigned char cfg_img[] = {\n    0x01, 0x02,\n    0x03,\n};\n", out)
}

func TestGenerate_EnvOverridesConfig(t *testing.T) {
	t.Setenv(constants.EnvPrefix, "env_")
	dir := t.TempDir()
	cfg := writeFile(t, dir, "gen.yaml", []byte("prefix: cfg_\n"))
	path := writeFile(t, dir, "img.bin", []byte{1})

	out, _, _ := run(t, "-c", cfg, path)
	assert.Equal(t, "static const uint8_t env_img[] = {\n    0x01,\n};\n", out)
}

func TestGenerate_TemplateFile(t *testing.T) {
	unsetPrefix(t)
	dir := t.TempDir()
	writeFile(t, dir, "decl.tmpl", []byte("extern const uint8_t {{ name }}[{{ size }}];\n"))
	cfg := writeFile(t, dir, "gen.yaml", []byte("template_file: decl.tmpl\n"))
	path := writeFile(t, dir, "img.bin", []byte{1, 2})

	out, _, code := run(t, "-c", cfg, path)
	assert.Zero(t, code)
	assert.Equal(t, "extern const uint8_t img[2];\n", out)
}

func TestGenerate_ExplicitConfigMissing(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "img.bin", []byte{1})

	out, logs, code := run(t, "-c", filepath.Join(dir, "absent.yaml"), path)
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, logs, "absent.yaml")
}

func TestGenerate_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "gen.yaml", []byte("bytes_per_line: -1\n"))
	path := writeFile(t, dir, "img.bin", []byte{1})

	out, _, code := run(t, "-c", cfg, path)
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
}

func TestGenerate_DebugLogsToStderrOnly(t *testing.T) {
	unsetPrefix(t)
	path := writeFile(t, t.TempDir(), "d.bin", []byte{0x7f})

	out, logs, code := run(t, "--debug", path)
	assert.Zero(t, code)
	assert.Equal(t, "static const uint8_t d[] = {\n    0x7f,\n};\n", out)
	assert.Contains(t, logs, "emitted d")
}
