// Package match ranks names by similarity, for "did you mean" suggestions
// when a declaration names a property that does not exist.
//
// Key functions:
//   - NormalizeIdent: case and separator insensitive form of an identifier
//   - NormalizeProperty: NormalizeIdent without a Get/Set/Is verb
//   - Levenshtein: edit distance between strings
//   - Suggest: closest candidates to a name
package match
