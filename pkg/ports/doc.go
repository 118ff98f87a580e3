// Package ports defines the interfaces espalier expects from the outside
// world, plus reusable contract tests adapters can run to prove
// compliance.
package ports
