package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExitCode_OKWhenNoError(t *testing.T) {
	vm := NewVM()
	require.Equal(t, OK, vm.exitCode())
}

// A bare `"` with no filename token to follow makes the include word's own
// vm.nextWord() call hit end-of-input directly (not through the outer
// loop's own EOF-retry branch), which is the one path that surfaces
// NoInput as a fatal, Run()-returning error rather than a warm-reset.
func TestExitCode_ReflectsFatalNoInput(t *testing.T) {
	var buf bytes.Buffer
	vm := NewVM(WithOutput(&buf))
	require.NoError(t, vm.In.Push(namedReader{strings.NewReader(`"`), "<test>"}))

	err := vm.Run()
	require.Equal(t, NoInputCode, codeOf(err))
	require.Equal(t, NoInputCode, vm.exitCode())
}

// A NoFile error (missing include target) is non-fatal: it's reported and
// warm-reset, and running to a clean EOF afterward leaves the exit code OK.
func TestExitCode_NonFatalErrorIsWarmResetNotExitStatus(t *testing.T) {
	vm, out := runInline(t, "include /no/such/file/off-test-missing.fs")
	require.Contains(t, out, "NoFile")
	require.Equal(t, OK, vm.exitCode())
}

func TestHistoryFilePath_EndsInDotOffHistory(t *testing.T) {
	path := historyFilePath()
	if path == "" {
		t.Skip("no home directory available in this environment")
	}
	require.Equal(t, ".off_history", filepath.Base(path))
}

func TestOpenWithOffPath_DirectHitSkipsEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.fs")
	require.NoError(t, os.WriteFile(path, []byte("1 ."), 0o644))

	f, err := openWithOffPath(path)
	require.NoError(t, err)
	defer f.Close()
}

func TestOpenWithOffPath_FallsBackToOffPathEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.fs"), []byte("1 ."), 0o644))
	t.Setenv("OFF_PATH", dir)

	f, err := openWithOffPath("lib.fs")
	require.NoError(t, err)
	defer f.Close()
}

func TestOpenWithOffPath_AbsolutePathIgnoresOffPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OFF_PATH", dir)

	_, err := openWithOffPath(filepath.Join(t.TempDir(), "nope.fs"))
	require.Error(t, err)
}

func TestPushIncludeFile_MissingFileReportsError(t *testing.T) {
	vm := NewVM()
	err := pushIncludeFile(vm, filepath.Join(t.TempDir(), "missing.fs"))
	require.Error(t, err)
}

func TestPushIncludeFile_PushesReadableFrame(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.fs")
	require.NoError(t, os.WriteFile(path, []byte("3 4 + ."), 0o644))

	vm := NewVM()
	require.NoError(t, pushIncludeFile(vm, path))
	require.NoError(t, vm.Run())
}

func TestNamedReader_CloseDelegatesToUnderlyingCloser(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.fs")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	f, err := os.Open(path)
	require.NoError(t, err)

	nr := namedReader{f, "a.fs"}
	require.NoError(t, nr.Close())
	// A second close on the already-closed *os.File should surface an
	// error, proving Close really delegated rather than being a no-op.
	require.Error(t, f.Close())
}

func TestNamedReader_CloseIsNoopWithoutUnderlyingCloser(t *testing.T) {
	nr := namedReader{strings.NewReader("x"), "mem"}
	require.NoError(t, nr.Close())
	require.Equal(t, "mem", nr.Name())
}
