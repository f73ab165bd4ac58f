package tool

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTablesYAML []byte

// Tables holds the static lookup tables used to canonicalize tool requests.
// A Tables value is immutable after construction and safe for concurrent use.
type Tables struct {
	allowed       []string
	aliases       map[string]string
	argumentAlias []string
}

type rawTables struct {
	AllowedTools      []string          `yaml:"allowed_tools"`
	ToolAliases       map[string]string `yaml:"tool_aliases"`
	ArgumentAliasKeys []string          `yaml:"argument_alias_keys"`
}

// ParseTables parses a tables document in the format of the embedded tables.yaml.
func ParseTables(data []byte) (*Tables, error) {
	var raw rawTables
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing tool tables: %w", err)
	}
	if len(raw.AllowedTools) == 0 {
		return nil, fmt.Errorf("parsing tool tables: allowed_tools is empty")
	}

	t := &Tables{
		allowed:       slices.Clone(raw.AllowedTools),
		aliases:       make(map[string]string, len(raw.ToolAliases)+len(raw.AllowedTools)),
		argumentAlias: slices.Clone(raw.ArgumentAliasKeys),
	}
	slices.Sort(t.allowed)
	t.allowed = slices.Compact(t.allowed)

	// registered names are reachable by their normalized spelling too
	for _, name := range t.allowed {
		t.aliases[normalizeName(name)] = name
	}
	for alias, target := range raw.ToolAliases {
		t.aliases[normalizeName(alias)] = target
	}
	return t, nil
}

var defaultTables = mustParseTables(defaultTablesYAML)

func mustParseTables(data []byte) *Tables {
	t, err := ParseTables(data)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultTables returns the tables embedded in the binary.
func DefaultTables() *Tables {
	return defaultTables
}

// AllowedTools returns the sorted allow-list.
func (t *Tables) AllowedTools() []string {
	return slices.Clone(t.allowed)
}

// CanonicalName maps a free-text or aliased tool name onto a registered tool
// name. Unknown names are returned unchanged; the allow-list decides later.
func (t *Tables) CanonicalName(name string) string {
	if target, ok := t.aliases[normalizeName(name)]; ok {
		return target
	}
	return name
}

// CanonicalName canonicalizes name with the default tables.
func CanonicalName(name string) string {
	return defaultTables.CanonicalName(name)
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}
