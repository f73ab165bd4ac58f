package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// maxLineSize bounds one JSON Lines record.
const maxLineSize = 16 << 20

// ErrMalformedRecord marks a line that is not a valid record. Reading goes on
// after it.
var ErrMalformedRecord = errors.New("malformed record")

// RecordError is yielded for a line that is not a valid record.
type RecordError struct {
	Line int
	// Partial holds the id and correct answer the line still carries.
	Partial Record
	// Recovered is set when the line is a JSON object or still names an id,
	// so it can be answered with a placeholder row.
	Recovered bool
	Err       error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v: %v", e.Line, ErrMalformedRecord, e.Err)
}

func (e *RecordError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}

func newRecordError(lineNo int, line []byte, err error) *RecordError {
	partial := Record{
		ID:            strings.TrimSpace(gjson.GetBytes(line, "id").String()),
		CorrectAnswer: strings.ToUpper(strings.TrimSpace(gjson.GetBytes(line, "correct_answer").String())),
	}
	object := gjson.ValidBytes(line) && gjson.ParseBytes(line).IsObject()
	return &RecordError{Line: lineNo, Partial: partial, Recovered: object || partial.ID != "", Err: err}
}

// Options maps answer letters to answer text in presentation order.
type Options = orderedmap.OrderedMap[string, string]

// NewOptions builds Options from letter/text pairs.
func NewOptions(pairs ...orderedmap.Pair[string, string]) *Options {
	return orderedmap.New[string, string](orderedmap.WithInitialData(pairs...))
}

// Record is one question of a dataset.
type Record struct {
	ID       string
	Question string
	Options  *Options
	// CorrectAnswer is only present in validation sets.
	CorrectAnswer string
}

// ParseRecord decodes a single JSON Lines record.
func ParseRecord(line []byte) (Record, error) {
	if !gjson.ValidBytes(line) {
		return Record{}, fmt.Errorf("invalid json")
	}
	doc := gjson.ParseBytes(line)
	if !doc.IsObject() {
		return Record{}, fmt.Errorf("record is not an object")
	}

	id := doc.Get("id")
	if !id.Exists() || id.String() == "" {
		return Record{}, fmt.Errorf("record has no id")
	}

	rec := Record{
		ID:            id.String(),
		Question:      doc.Get("question").String(),
		Options:       NewOptions(),
		CorrectAnswer: strings.ToUpper(strings.TrimSpace(doc.Get("correct_answer").String())),
	}

	options := doc.Get("options")
	switch {
	case options.IsObject():
		options.ForEach(func(k, v gjson.Result) bool {
			rec.Options.Set(k.String(), v.String())
			return true
		})
	case options.IsArray():
		for i, v := range options.Array() {
			rec.Options.Set(string(rune('A'+i)), v.String())
		}
	}
	return rec, nil
}

// Read yields the records of a JSON Lines stream. Blank lines are skipped. A
// malformed line yields an error carrying its line number and reading goes on
// with the next line; a read error ends the sequence.
func Read(r io.Reader) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		var lineNo int
		for scanner.Scan() {
			lineNo++
			line := scanner.Bytes()
			if len(strings.TrimSpace(string(line))) == 0 {
				continue
			}
			rec, err := ParseRecord(line)
			if err != nil {
				err = newRecordError(lineNo, line, err)
			}
			if !yield(rec, err) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(Record{}, fmt.Errorf("reading records: %w", err))
		}
	}
}

// ReadFile yields the records of the JSON Lines file at path.
func ReadFile(path string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(Record{}, err)
			return
		}
		defer f.Close()

		for rec, err := range Read(f) {
			if !yield(rec, err) {
				return
			}
		}
	}
}
