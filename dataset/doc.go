// Package dataset reads question records from JSON Lines files and writes
// prediction rows as CSV.
//
// A record is one JSON object per line:
//
//	{"id": "q-17", "question": "...", "options": {"A": "...", "B": "..."}, "correct_answer": "B"}
//
// options keeps the order of the file. A list of options is accepted too and
// is lettered A, B, C and so on.
package dataset
