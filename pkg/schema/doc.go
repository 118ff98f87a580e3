// Package schema loads machine definitions from YAML documents for
// tooling: graph export, validation, the introspection server. Documents
// name states, inputs, outputs and transitions; behaviors stay in code,
// so machines built from documents are introspection-only and cannot
// dispatch real outputs.
package schema
