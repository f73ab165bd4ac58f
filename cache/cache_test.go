package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestFileStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tool_cache.json")

	c := New(OpenFile(path))
	n, err := c.Len()
	require.NoError(t, err)
	assert.Zero(t, n)

	args := map[string]any{"drug_name": "warfarin"}
	result := map[string]any{"drug_interactions": []any{"NSAIDs increase bleeding risk"}}
	require.NoError(t, c.Put("interactions", args, result))

	reopened := New(OpenFile(path))
	got, ok, err := reopened.Get("interactions", map[string]any{"drug_name": "warfarin"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, result, got)

	_, ok, err = reopened.Get("interactions", map[string]any{"drug_name": "aspirin"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_FileIsSingleObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tool_cache.json")
	c := New(OpenFile(path))
	require.NoError(t, c.Put("a", map[string]any{"drug_name": "x"}, "scalar result"))
	require.NoError(t, c.Put("b", map[string]any{"drug_name": "y"}, []any{1.0, 2.0}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Len(t, onDisk, 2)

	key, err := Fingerprint("a", map[string]any{"drug_name": "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `"scalar result"`, string(onDisk[key]))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestFileStore_CorruptFileStartsEmpty(t *testing.T) {
	for name, content := range map[string]string{
		"truncated": `{"abc": `,
		"array":     `[1, 2, 3]`,
		"empty":     ``,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tool_cache.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			store := OpenFile(path)
			n, err := store.Len()
			require.NoError(t, err)
			assert.Zero(t, n)

			require.NoError(t, store.Put("k", json.RawMessage(`true`)))
			n, _ = OpenFile(path).Len()
			assert.Equal(t, 1, n)
		})
	}
}

func TestBadgerStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	c, err := Open(BackendBadger, dir)
	require.NoError(t, err)

	args := map[string]any{"drug_name": "lithium"}
	require.NoError(t, c.Put("risk", args, map[string]any{"boxed_warning": "toxicity"}))
	require.NoError(t, c.Put("risk", args, map[string]any{"boxed_warning": "toxicity"}))

	got, ok, err := c.Get("risk", args)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"boxed_warning": "toxicity"}, got)

	n, err := c.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, c.Close())

	reopened, err := Open(BackendBadger, dir)
	require.NoError(t, err)
	defer reopened.Close()
	_, ok, err = reopened.Get("risk", args)
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = reopened.Get("risk", map[string]any{"drug_name": "other"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("redis", t.TempDir())
	assert.Error(t, err)
}
