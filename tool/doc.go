/*
Package tool turns the loosely structured tool requests of a chat model into
safe, cached invocations of a fixed tool catalog.

# Design Decisions

  - Static tables: tool-name aliases, argument alias keys and the allow-list are
    embedded YAML parsed once at start-up and never mutated afterwards
  - Permissive input, strict output: argument canonicalization accepts any JSON
    shape and always produces a mapping with a drug_name key
  - Failures are values: a refused, malformed or failing call produces a Failure
    that is handed back to the model instead of a Go error
  - Memoization: successful results are cached by fingerprint and never recomputed

# Key Concepts

 1. Catalog
    The set of tool specs loaded from JSON files. Each Spec names the tool and
    its required argument schema.

 2. Canonicalization
    CanonicalName maps aliased tool spellings onto registered names.
    CanonicalArguments resolves arguments through a prioritized rule chain and
    reports which rule fired.

 3. Invoker
    Enforces the allow-list, adapts arguments, consults the result cache and runs
    the Executor on a miss.

# Usage Examples

	catalog := tool.DefaultCatalog()
	invoker, err := tool.NewInvoker(
		tool.WithExecutor(executor),
		tool.WithCache(resultCache),
	)
	name := tool.CanonicalName(d.Name)
	inv := invoker.Invoke(ctx, name, d.Args)
	if inv.Failed() {
		// feed inv.Result back to the model
	}
*/
package tool
