package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	a := map[string]any{"drug_name": "warfarin", "limit": 5, "nested": map[string]any{"y": 1, "x": 2}}
	b := map[string]any{"nested": map[string]any{"x": 2, "y": 1}, "limit": 5, "drug_name": "warfarin"}

	fa, err := Fingerprint("tool", a)
	require.NoError(t, err)
	fb, err := Fingerprint("tool", b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
	assert.Len(t, fa, 40)

	other, err := Fingerprint("other_tool", a)
	require.NoError(t, err)
	assert.NotEqual(t, fa, other)

	changed, err := Fingerprint("tool", map[string]any{"drug_name": "aspirin"})
	require.NoError(t, err)
	assert.NotEqual(t, fa, changed)
}

func TestFingerprint_KnownValue(t *testing.T) {
	// sha1("t|{\"drug_name\":\"x\"}")
	got, err := Fingerprint("t", map[string]any{"drug_name": "x"})
	require.NoError(t, err)
	assert.Equal(t, sha1Hex(`t|{"drug_name":"x"}`), got)
}

func TestFingerprint_Unencodable(t *testing.T) {
	_, err := Fingerprint("t", map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}
