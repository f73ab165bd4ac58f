package tool

import (
	"github.com/tidwall/gjson"
)

// DrugNameKey is the argument every catalog tool is searched by.
const DrugNameKey = "drug_name"

// maxArgumentDepth bounds the recursive value scan.
const maxArgumentDepth = 32

// Arguments is the keyword argument mapping handed to an Executor.
type Arguments map[string]any

// DrugName returns the drug_name argument, or "" when absent or not a string.
func (a Arguments) DrugName() string {
	s, _ := a[DrugNameKey].(string)
	return s
}

func drugName(name string) Arguments {
	return Arguments{DrugNameKey: name}
}

// Rule identifies which step of argument canonicalization produced a result.
type Rule uint8

const (
	// RuleEmpty: the input was missing, null or empty.
	RuleEmpty Rule = iota
	// RuleScalar: the input was not a mapping and was stringified.
	RuleScalar
	// RulePassThrough: the mapping already had a string drug_name and was kept as is.
	RulePassThrough
	// RuleAliasKey: a known alias key carried the drug name.
	RuleAliasKey
	// RuleValueScan: the first string value, possibly nested, carried the drug name.
	RuleValueScan
	// RuleUnresolved: nothing in the mapping looked like a drug name.
	RuleUnresolved
)

func (r Rule) String() string {
	switch r {
	case RuleEmpty:
		return "empty"
	case RuleScalar:
		return "scalar"
	case RulePassThrough:
		return "pass-through"
	case RuleAliasKey:
		return "alias-key"
	case RuleValueScan:
		return "value-scan"
	case RuleUnresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// Resolution is the tagged outcome of argument canonicalization.
type Resolution struct {
	Args Arguments
	Rule Rule
	// Key is the argument key that supplied the drug name, if any.
	Key string
}

// Resolved reports whether a rule found the drug name in the input, as opposed
// to falling back to an empty drug_name.
func (r Resolution) Resolved() bool {
	return r.Rule != RuleEmpty && r.Rule != RuleUnresolved
}

// argumentRule inspects raw and either resolves it or declines.
type argumentRule func(t *Tables, raw gjson.Result, depth int) (Resolution, bool)

// argumentRules run in order; the first rule that accepts wins.
var argumentRules = []argumentRule{
	resolveEmpty,
	resolveScalar,
	resolvePassThrough,
	resolveAliasKey,
	resolveValueScan,
}

// CanonicalArguments normalizes raw arguments into the drug_name schema the
// catalog tools expect. It never fails and the result always has a drug_name key.
func (t *Tables) CanonicalArguments(raw gjson.Result) Resolution {
	return t.canonicalArguments(raw, 0)
}

// CanonicalArguments canonicalizes raw with the default tables.
func CanonicalArguments(raw gjson.Result) Resolution {
	return defaultTables.CanonicalArguments(raw)
}

func (t *Tables) canonicalArguments(raw gjson.Result, depth int) Resolution {
	for _, rule := range argumentRules {
		if res, ok := rule(t, raw, depth); ok {
			return res
		}
	}
	return Resolution{Args: drugName(""), Rule: RuleUnresolved}
}

func resolveEmpty(_ *Tables, raw gjson.Result, _ int) (Resolution, bool) {
	var empty bool
	switch {
	case !raw.Exists(), raw.Type == gjson.Null:
		empty = true
	case raw.IsArray():
		empty = len(raw.Array()) == 0
	case raw.IsObject():
		empty = !hasFields(raw)
	}
	if !empty {
		return Resolution{}, false
	}
	return Resolution{Args: drugName(""), Rule: RuleEmpty}, true
}

func resolveScalar(_ *Tables, raw gjson.Result, _ int) (Resolution, bool) {
	if raw.IsObject() {
		return Resolution{}, false
	}
	return Resolution{Args: drugName(raw.String()), Rule: RuleScalar}, true
}

func resolvePassThrough(_ *Tables, raw gjson.Result, _ int) (Resolution, bool) {
	v, ok := field(raw, DrugNameKey)
	if !ok || v.Type != gjson.String {
		return Resolution{}, false
	}
	args, _ := raw.Value().(map[string]any)
	return Resolution{Args: Arguments(args), Rule: RulePassThrough, Key: DrugNameKey}, true
}

func resolveAliasKey(t *Tables, raw gjson.Result, _ int) (Resolution, bool) {
	for _, key := range t.argumentAlias {
		v, ok := field(raw, key)
		if !ok {
			continue
		}
		switch {
		case v.Type == gjson.String:
			return Resolution{Args: drugName(v.String()), Rule: RuleAliasKey, Key: key}, true
		case v.IsArray():
			if items := v.Array(); len(items) > 0 {
				return Resolution{Args: drugName(items[0].String()), Rule: RuleAliasKey, Key: key}, true
			}
		}
	}
	return Resolution{}, false
}

func resolveValueScan(t *Tables, raw gjson.Result, depth int) (Resolution, bool) {
	var res Resolution
	var found bool
	raw.ForEach(func(key, value gjson.Result) bool {
		switch {
		case value.Type == gjson.String:
			res = Resolution{Args: drugName(value.String()), Rule: RuleValueScan, Key: key.String()}
			found = true
		case value.IsObject() && depth < maxArgumentDepth:
			nested := t.canonicalArguments(value, depth+1)
			if nested.Args.DrugName() != "" {
				res = Resolution{Args: drugName(nested.Args.DrugName()), Rule: RuleValueScan, Key: key.String()}
				found = true
			}
		}
		return !found
	})
	return res, found
}

// field looks a key up literally, without gjson path syntax.
func field(obj gjson.Result, key string) (gjson.Result, bool) {
	if !obj.IsObject() {
		return gjson.Result{}, false
	}
	var out gjson.Result
	var ok bool
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			out, ok = v, true
		}
		return !ok
	})
	return out, ok
}

func hasFields(obj gjson.Result) bool {
	var found bool
	obj.ForEach(func(_, _ gjson.Result) bool {
		found = true
		return false
	})
	return found
}
