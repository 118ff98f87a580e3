// Package graph renders the finalized transition table as drawing-tool
// descriptions. It consumes only the introspection surface, so it can
// never influence dispatch.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
)

// Mermaid produces a Mermaid stateDiagram-v2 description of the machine.
// The initial state gets the [*] entry arrow; each transition edge is
// labelled "input / output1, output2".
func Mermaid(transitions []domain.TransitionInfo, initial string) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	if initial != "" {
		sb.WriteString(fmt.Sprintf("    [*] --> %s\n", sanitizeID(initial)))
	}

	for _, t := range transitions {
		sb.WriteString(fmt.Sprintf("    %s --> %s: %s\n",
			sanitizeID(t.From), sanitizeID(t.To), edgeLabel(t)))
	}

	return sb.String()
}

func edgeLabel(t domain.TransitionInfo) string {
	if len(t.Outputs) == 0 {
		return t.Input
	}
	return t.Input + " / " + strings.Join(t.Outputs, ", ")
}

func sanitizeID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
