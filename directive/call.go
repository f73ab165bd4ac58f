package directive

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind tags the outcome of parsing a model reply for a tool call.
type Kind uint8

const (
	// NoMatch means the reply does not open with a CALL directive.
	NoMatch Kind = iota
	// NameOnly means the directive names a tool but its arguments are not valid JSON.
	NameOnly
	// NameWithArgs means the directive names a tool and carries valid JSON arguments.
	NameWithArgs
)

func (k Kind) String() string {
	switch k {
	case NoMatch:
		return "no-match"
	case NameOnly:
		return "name-only"
	case NameWithArgs:
		return "name+args"
	default:
		return "unknown"
	}
}

var callPattern = regexp.MustCompile(`(?s)^CALL\s+([A-Za-z0-9_\-]+)\s+(.*)$`)

// Directive is the parsed form of a CALL line.
type Directive struct {
	Kind Kind
	// Name is the tool name exactly as the model wrote it.
	Name string
	// Args holds the decoded arguments when Kind is NameWithArgs.
	Args gjson.Result
	// RawArgs is the argument text as written, valid JSON or not.
	RawArgs string
}

// Found reports whether the reply contained a tool call, with or without usable arguments.
func (d Directive) Found() bool {
	return d.Kind != NoMatch
}

// Parse recognizes a `CALL <name> <json>` directive that opens the trimmed text.
// The argument text runs to the end of the reply and may span lines.
func Parse(text string) Directive {
	m := callPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Directive{Kind: NoMatch}
	}

	d := Directive{Kind: NameOnly, Name: m[1], RawArgs: m[2]}
	if !gjson.Valid(m[2]) {
		return d
	}
	d.Kind = NameWithArgs
	d.Args = gjson.Parse(m[2])
	return d
}
