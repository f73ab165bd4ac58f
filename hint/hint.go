// Package hint proposes a catalog tool for a question by keyword matching.
// It never runs a tool; the conversation loop uses the proposal to show a
// stalled model what a tool call looks like.
package hint

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// Rule maps a question category onto a tool.
type Rule struct {
	Category string   `yaml:"category"`
	Tool     string   `yaml:"tool"`
	Keywords []string `yaml:"keywords"`
	// Subrules refine the tool once the category matched. The first matching
	// subrule wins; Tool is the fallback.
	Subrules []Rule `yaml:"subrules,omitempty"`
}

func (r Rule) matches(question string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(question, kw) {
			return true
		}
	}
	return false
}

// Match is a proposal of the engine.
type Match struct {
	Category string
	Tool     string
}

// Engine evaluates an ordered rule list. It is immutable and safe for concurrent use.
type Engine struct {
	rules []Rule
}

// Parse builds an Engine from a rules document.
func Parse(data []byte) (*Engine, error) {
	var doc struct {
		Rules []Rule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing hint rules: %w", err)
	}
	for i, r := range doc.Rules {
		if r.Tool == "" {
			return nil, fmt.Errorf("hint rule %d (%s) has no tool", i, r.Category)
		}
		doc.Rules[i] = normalize(r)
	}
	return &Engine{rules: doc.Rules}, nil
}

func normalize(r Rule) Rule {
	keywords := make([]string, 0, len(r.Keywords))
	for _, kw := range r.Keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	r.Keywords = keywords

	subrules := make([]Rule, len(r.Subrules))
	for i, sub := range r.Subrules {
		subrules[i] = normalize(sub)
	}
	r.Subrules = subrules
	return r
}

var defaultEngine = func() *Engine {
	e, err := Parse(defaultRulesYAML)
	if err != nil {
		panic(err)
	}
	return e
}()

// Default returns the engine built from the embedded rules.
func Default() *Engine {
	return defaultEngine
}

// Match returns the first category matching question.
func (e *Engine) Match(question string) (Match, bool) {
	q := strings.ToLower(question)
	for _, r := range e.rules {
		if !r.matches(q) {
			continue
		}
		tool := r.Tool
		for _, sub := range r.Subrules {
			if sub.matches(q) {
				tool = sub.Tool
				break
			}
		}
		return Match{Category: r.Category, Tool: tool}, true
	}
	return Match{}, false
}

// Suggest returns the tool proposed for question, if any.
func (e *Engine) Suggest(question string) (string, bool) {
	m, ok := e.Match(question)
	return m.Tool, ok
}
