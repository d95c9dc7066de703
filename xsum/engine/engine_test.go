package engine

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/xattrsum/xsum/digest"
	"github.com/ZanzyTHEbar/xattrsum/xsum/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	helloSum = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	worldSum = "486ea46224d1bb4fb680f34f7c9ad96a8f24ec88be73ea8e5a6c65260e9cb8a7"
)

type fixture struct {
	engine *Engine
	store  *store.MemoryStore
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newFixture(verbose bool) *fixture {
	st := store.NewMemoryStore()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &fixture{
		engine: New(st, digest.NewSHA256Provider(), verbose, stdout, stderr),
		store:  st,
		stdout: stdout,
		stderr: stderr,
	}
}

func tempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions() {
		parsed, err := ParseAction(string(a))
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
	_, err := ParseAction("verify")
	assert.Error(t, err)
}

func TestWorseOrdering(t *testing.T) {
	assert.Equal(t, OutcomeOK, Worse(OutcomeOK, OutcomeOK))
	assert.Equal(t, OutcomeMissing, Worse(OutcomeOK, OutcomeMissing))
	assert.Equal(t, OutcomeMismatch, Worse(OutcomeMissing, OutcomeMismatch))
	assert.Equal(t, OutcomeMismatch, Worse(OutcomeMismatch, OutcomeMissing))
	assert.Equal(t, OutcomeMismatch, Worse(OutcomeMismatch, OutcomeOK))
}

func TestAddWritesDigest(t *testing.T) {
	f := newFixture(false)
	path := tempFile(t, "hello.txt", "hello")

	assert.Equal(t, OutcomeOK, f.engine.Apply(ActionAdd, path))

	stored, err := f.store.Get(path)
	require.NoError(t, err)
	assert.Equal(t, helloSum, stored)
	assert.Empty(t, f.stderr.String(), "write notice is gated behind verbose")
}

func TestAddVerboseNotice(t *testing.T) {
	f := newFixture(true)
	path := tempFile(t, "hello.txt", "hello")

	assert.Equal(t, OutcomeOK, f.engine.Apply(ActionAdd, path))
	assert.Contains(t, f.stderr.String(), "checksum added")
}

func TestAddIsIdempotentAndNeverOverwrites(t *testing.T) {
	f := newFixture(false)
	path := tempFile(t, "hello.txt", "hello")

	require.Equal(t, OutcomeOK, f.engine.Apply(ActionAdd, path))

	// Content changes, but add must not touch the existing attribute.
	require.NoError(t, os.WriteFile(path, []byte("changed"), 0o644))
	assert.Equal(t, OutcomeOK, f.engine.Apply(ActionAdd, path))
	assert.Contains(t, f.stderr.String(), "already present", "skip notice prints even without verbose")

	stored, err := f.store.Get(path)
	require.NoError(t, err)
	assert.Equal(t, helloSum, stored)
}

func TestCheckRoundTrip(t *testing.T) {
	f := newFixture(false)
	path := tempFile(t, "hello.txt", "hello")

	require.Equal(t, OutcomeOK, f.engine.Apply(ActionAdd, path))
	assert.Equal(t, OutcomeOK, f.engine.Apply(ActionCheck, path))
	assert.Empty(t, f.stderr.String())
}

func TestCheckMissingAttribute(t *testing.T) {
	f := newFixture(false)
	path := tempFile(t, "hello.txt", "hello")

	assert.Equal(t, OutcomeMissing, f.engine.Apply(ActionCheck, path))
	assert.Contains(t, f.stderr.String(), "no checksum attribute")
}

func TestCheckDetectsMismatch(t *testing.T) {
	f := newFixture(false)
	path := tempFile(t, "hello.txt", "hello")

	require.Equal(t, OutcomeOK, f.engine.Apply(ActionAdd, path))
	require.NoError(t, os.WriteFile(path, []byte("tampered"), 0o644))

	assert.Equal(t, OutcomeMismatch, f.engine.Apply(ActionCheck, path))
	assert.Contains(t, f.stderr.String(), "Checksum mismatch")
}

func TestCheckRejectsMalformedStoredValue(t *testing.T) {
	f := newFixture(false)
	path := tempFile(t, "hello.txt", "hello")
	require.NoError(t, f.store.Set(path, "not-a-digest"))

	assert.Equal(t, OutcomeMismatch, f.engine.Apply(ActionCheck, path))
	assert.Contains(t, f.stderr.String(), "Checksum mismatch")
}

func TestUpdateHealsDrift(t *testing.T) {
	f := newFixture(false)
	path := tempFile(t, "hello.txt", "hello")

	require.Equal(t, OutcomeOK, f.engine.Apply(ActionAdd, path))
	require.NoError(t, os.WriteFile(path, []byte("world"), 0o644))
	require.Equal(t, OutcomeMismatch, f.engine.Apply(ActionCheck, path))

	// Update never reports mismatch; it overwrites and succeeds.
	assert.Equal(t, OutcomeOK, f.engine.Apply(ActionUpdate, path))
	stored, err := f.store.Get(path)
	require.NoError(t, err)
	assert.Equal(t, worldSum, stored)

	assert.Equal(t, OutcomeOK, f.engine.Apply(ActionCheck, path))
}

func TestUpdateMissingAttribute(t *testing.T) {
	f := newFixture(false)
	path := tempFile(t, "hello.txt", "hello")

	assert.Equal(t, OutcomeMissing, f.engine.Apply(ActionUpdate, path))
	assert.Equal(t, 0, f.store.Len(), "update never creates the attribute")
}

func TestUpdateUnchangedContentWritesNothing(t *testing.T) {
	f := newFixture(true)
	path := tempFile(t, "hello.txt", "hello")

	require.Equal(t, OutcomeOK, f.engine.Apply(ActionAdd, path))
	f.stderr.Reset()

	assert.Equal(t, OutcomeOK, f.engine.Apply(ActionUpdate, path))
	assert.NotContains(t, f.stderr.String(), "checksum updated")
}

func TestRemove(t *testing.T) {
	f := newFixture(true)
	path := tempFile(t, "hello.txt", "hello")

	require.Equal(t, OutcomeOK, f.engine.Apply(ActionAdd, path))
	assert.Equal(t, OutcomeOK, f.engine.Apply(ActionRemove, path))
	assert.Equal(t, 0, f.store.Len())
	assert.Contains(t, f.stderr.String(), "checksum removed")

	// Removing an absent attribute is a no-op, not a run failure.
	f.stderr.Reset()
	assert.Equal(t, OutcomeOK, f.engine.Apply(ActionRemove, path))
	assert.Empty(t, f.stderr.String())
}

func TestPrintFormat(t *testing.T) {
	f := newFixture(false)
	path := tempFile(t, "hello.txt", "hello")
	require.NoError(t, f.store.Set(path, helloSum))

	assert.Equal(t, OutcomeOK, f.engine.Apply(ActionPrint, path))
	assert.Equal(t, helloSum+"  "+path+"\n", f.stdout.String(), "sha256sum-compatible two-space format")
}

func TestPrintMissingAttribute(t *testing.T) {
	f := newFixture(false)
	path := tempFile(t, "hello.txt", "hello")

	assert.Equal(t, OutcomeMissing, f.engine.Apply(ActionPrint, path))
	assert.Empty(t, f.stdout.String(), "no data line for files without the attribute")
	assert.Contains(t, f.stderr.String(), "no checksum attribute")
}

func TestStoreFailureIsSoft(t *testing.T) {
	f := newFixture(false)
	path := tempFile(t, "hello.txt", "hello")
	f.store.FailWith = errors.New("unsupported filesystem")

	for _, action := range Actions() {
		assert.Equal(t, OutcomeOK, f.engine.Apply(action, path), "action %s", action)
	}
	assert.Contains(t, f.stderr.String(), "unsupported filesystem")
}
