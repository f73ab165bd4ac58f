package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(o *Options) []string {
	var out []string
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func TestParseRecord(t *testing.T) {
	rec, err := ParseRecord([]byte(`{"id":"q1","question":"Which?","options":{"D":"d","A":"a","C":"c","B":"b"},"correct_answer":" b "}`))
	require.NoError(t, err)
	assert.Equal(t, "q1", rec.ID)
	assert.Equal(t, "Which?", rec.Question)
	assert.Equal(t, []string{"D", "A", "C", "B"}, keys(rec.Options))
	assert.Equal(t, "B", rec.CorrectAnswer)

	a, ok := rec.Options.Get("A")
	require.True(t, ok)
	assert.Equal(t, "a", a)
}

func TestParseRecord_Variants(t *testing.T) {
	rec, err := ParseRecord([]byte(`{"id":17,"question":"Q","options":["x","y"]}`))
	require.NoError(t, err)
	assert.Equal(t, "17", rec.ID)
	assert.Equal(t, []string{"A", "B"}, keys(rec.Options))
	assert.Empty(t, rec.CorrectAnswer)

	rec, err = ParseRecord([]byte(`{"id":"no-options","question":"Q"}`))
	require.NoError(t, err)
	assert.Zero(t, rec.Options.Len())

	for _, bad := range []string{`{"question":"Q"}`, `[1,2]`, `{"id":`} {
		_, err := ParseRecord([]byte(bad))
		assert.Error(t, err, bad)
	}
}

func TestRead(t *testing.T) {
	input := strings.Join([]string{
		`{"id":"1","question":"a","options":{"A":"x"}}`,
		``,
		`not json`,
		`{"id":"2","question":"b","options":{"A":"y"}}`,
	}, "\n")

	var ids []string
	var errs []error
	for rec, err := range Read(strings.NewReader(input)) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ids = append(ids, rec.ID)
	}
	assert.Equal(t, []string{"1", "2"}, ids)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "line 3")
	assert.ErrorIs(t, errs[0], ErrMalformedRecord)
}

func TestRead_StopsEarly(t *testing.T) {
	input := "{\"id\":\"1\"}\n{\"id\":\"2\"}\n{\"id\":\"3\"}\n"
	var n int
	for range Read(strings.NewReader(input)) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"1","question":"q","options":{"A":"a"}}`+"\n"), 0o600))

	var recs []Record
	for rec, err := range ReadFile(path) {
		require.NoError(t, err)
		recs = append(recs, rec)
	}
	require.Len(t, recs, 1)

	for _, err := range ReadFile(filepath.Join(t.TempDir(), "missing.jsonl")) {
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.NotErrorIs(t, err, ErrMalformedRecord)
	}
}

func TestRead_RecordError(t *testing.T) {
	input := strings.Join([]string{
		`{"question":"no id","correct_answer":" d "}`,
		`{"id":"7","correct_answer":"b","options":`,
		`[1,2]`,
		`garbage`,
	}, "\n")

	var errs []*RecordError
	for _, err := range Read(strings.NewReader(input)) {
		var rerr *RecordError
		require.ErrorAs(t, err, &rerr)
		assert.ErrorIs(t, err, ErrMalformedRecord)
		errs = append(errs, rerr)
	}
	require.Len(t, errs, 4)

	assert.True(t, errs[0].Recovered)
	assert.Equal(t, Record{CorrectAnswer: "D"}, errs[0].Partial)
	assert.Equal(t, 1, errs[0].Line)

	assert.True(t, errs[1].Recovered)
	assert.Equal(t, "7", errs[1].Partial.ID)
	assert.Equal(t, "B", errs[1].Partial.CorrectAnswer)

	assert.False(t, errs[2].Recovered)
	assert.False(t, errs[3].Recovered)
	assert.Contains(t, errs[3].Error(), "line 4: malformed record")
}
