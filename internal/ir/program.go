package ir

import (
	"strings"

	"ember/internal/types"
)

// Program is a lowered compilation unit: one flat instruction list entered at "start".
type Program struct {
	Instrs   []Instr
	VarTypes map[Var]types.TypeID
	// Result is the variable holding the root expression's value.
	Result Var
}

// Format renders one instruction per line; labels are flush left.
func Format(prog []Instr) string {
	var sb strings.Builder
	for i := range prog {
		if prog[i].Kind != InstrLabel {
			sb.WriteString("    ")
		}
		sb.WriteString(prog[i].String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Stats counts instructions per kind, for trace details.
func Stats(prog []Instr) map[InstrKind]int {
	out := make(map[InstrKind]int, len(instrNames))
	for i := range prog {
		out[prog[i].Kind]++
	}
	return out
}
