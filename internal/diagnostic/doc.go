// Package diagnostic provides the error taxonomy of compile, build and verify
// calls, and a collector for reporting many problems at once.
//
// Error codes:
//   - grammar: malformed path or value syntax
//   - resolution: unknown type name, accessor or mutator
//   - policy: list or map element declared without a type hint
//   - coercion: a literal does not fit its target type
//   - verification: an expected getter value or mutator call was not observed
//
// Every code matches its sentinel with errors.Is.
package diagnostic
