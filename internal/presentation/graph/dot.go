package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
)

// Dot produces a Graphviz digraph description of the machine. States are
// ellipses, the initial state is drawn bold, and each transition is one
// edge labelled "input / output1, output2".
func Dot(name string, transitions []domain.TransitionInfo, initial string) string {
	var sb strings.Builder
	if name == "" {
		name = "espalier"
	}
	sb.WriteString(fmt.Sprintf("digraph %s {\n", quote(name)))
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [shape=ellipse];\n")

	for _, state := range stateOrder(transitions, initial) {
		if state == initial {
			sb.WriteString(fmt.Sprintf("    %s [style=bold];\n", quote(state)))
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s;\n", quote(state)))
	}

	for _, t := range transitions {
		sb.WriteString(fmt.Sprintf("    %s -> %s [label=%s];\n",
			quote(t.From), quote(t.To), quote(edgeLabel(t))))
	}

	sb.WriteString("}\n")
	return sb.String()
}

// stateOrder lists every state appearing in the table, initial first,
// then in first-appearance order. Declaration order keeps the output
// stable across runs.
func stateOrder(transitions []domain.TransitionInfo, initial string) []string {
	seen := make(map[string]bool)
	var order []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}
	add(initial)
	for _, t := range transitions {
		add(t.From)
		add(t.To)
	}
	return order
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
