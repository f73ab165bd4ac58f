package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
)

var (
	submissionHeader = []string{"id", "prediction", "reasoning_trace", "choice"}
	validationHeader = append(append([]string{}, submissionHeader...), "correct_answer")
)

// Row is one prediction.
type Row struct {
	ID             string
	Prediction     string
	ReasoningTrace string
	Choice         string
	CorrectAnswer  string
}

// Writer writes prediction rows as CSV. The header is written before the
// first row.
type Writer struct {
	w          *csv.Writer
	validation bool
	started    bool
}

// NewWriter creates a Writer. Validation writers add a correct_answer column.
func NewWriter(w io.Writer, validation bool) *Writer {
	return &Writer{w: csv.NewWriter(w), validation: validation}
}

func (w *Writer) header() []string {
	if w.validation {
		return validationHeader
	}
	return submissionHeader
}

// WriteHeader writes the header row if it has not been written yet.
func (w *Writer) WriteHeader() error {
	if w.started {
		return nil
	}
	w.started = true
	if err := w.w.Write(w.header()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	return nil
}

// Write writes row. Rows are buffered until Flush.
func (w *Writer) Write(row Row) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	record := []string{row.ID, row.Prediction, row.ReasoningTrace, row.Choice}
	if w.validation {
		record = append(record, row.CorrectAnswer)
	}
	if err := w.w.Write(record); err != nil {
		return fmt.Errorf("writing row %s: %w", row.ID, err)
	}
	return nil
}

// Flush writes buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}
