// Package directive parses the plain-text protocol a chat model uses to talk
// to the harness.
//
// A model asks for a tool with a single directive that must open its reply:
//
//	CALL <tool_name> <json-arguments>
//
// and commits to an answer with a terminal marker anywhere in its reply:
//
//	Final answer: B
//
// Parsing a directive is a two stage process. The syntactic stage matches the
// directive shape, the semantic stage validates the argument text as JSON. The
// outcome is reported as a Directive tagged with one of NoMatch, NameOnly or
// NameWithArgs.
package directive
