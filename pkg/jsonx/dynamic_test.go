package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	a := map[string]any{"drug_name": "warfarin", "limit": 1, "nested": map[string]any{"z": 1, "a": 2}}
	b := map[string]any{"nested": map[string]any{"a": 2, "z": 1}, "limit": 1, "drug_name": "warfarin"}

	ja, err := Canonical(a)
	require.NoError(t, err)
	jb, err := Canonical(b)
	require.NoError(t, err)

	assert.Equal(t, string(ja), string(jb))
	assert.Equal(t, `{"drug_name":"warfarin","limit":1,"nested":{"a":2,"z":1}}`, string(ja))
}

func TestCanonical_NoEscape(t *testing.T) {
	assert.Equal(t, `{"q":"a<b & c>d"}`, String(map[string]any{"q": "a<b & c>d"}))
	assert.Equal(t, `{"k":"비타민"}`, String(map[string]any{"k": "비타민"}))
}

func TestString_Unencodable(t *testing.T) {
	assert.Equal(t, "null", String(make(chan int)))
}
