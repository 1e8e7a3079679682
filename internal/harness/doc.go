// Package harness runs evaluation scenarios against model documents.
//
// A scenario names a model (and optionally a properties document), supplies
// values for undefined constants, and lists concrete states together with
// the expected value of labels, formulas and properties in each state.
//
// # Scenario Format
//
//	name: counter_states
//	description: "Labels and formulas of the counter model"
//	model: ../models/counter.yaml
//	properties: ../models/counter_props.yaml
//	constants:
//	  p: 0.5
//	states:
//	  - vars: {x: 0, y: 0}
//	    expect:
//	      - {label: done, value: false}
//	      - {formula: below, value: true}
//	      - {property: reach, error: NOT_EVALUABLE}
//
// Paths are relative to the scenario file. Unknown fields are rejected.
//
// # Execution
//
// Documents are loaded with package loader, constants are evaluated, and
// formulas are expanded with package subst, so formula bodies are shared
// between their uses. Each state is evaluated in its own
// eval.CachedStateContext; shared sub-expressions are computed once per
// state.
//
// Every check appends one TraceEvent. Traces are deterministic and can be
// compared against golden files with RunWithGolden.
package harness
