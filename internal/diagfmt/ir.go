package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"ember/internal/ir"
	"ember/internal/types"
)

// InstrOutput is the structured form of one IR instruction; only the
// fields of its op are set.
type InstrOutput struct {
	Op     string   `json:"op" msgpack:"op"`
	Label  string   `json:"label,omitempty" msgpack:"label,omitempty"`
	Int    *int64   `json:"int,omitempty" msgpack:"int,omitempty"`
	Bool   *bool    `json:"bool,omitempty" msgpack:"bool,omitempty"`
	Src    string   `json:"src,omitempty" msgpack:"src,omitempty"`
	Fn     string   `json:"fn,omitempty" msgpack:"fn,omitempty"`
	Args   []string `json:"args,omitempty" msgpack:"args,omitempty"`
	Dst    string   `json:"dst,omitempty" msgpack:"dst,omitempty"`
	Target string   `json:"target,omitempty" msgpack:"target,omitempty"`
	Cond   string   `json:"cond,omitempty" msgpack:"cond,omitempty"`
	Then   string   `json:"then,omitempty" msgpack:"then,omitempty"`
	Else   string   `json:"else,omitempty" msgpack:"else,omitempty"`
}

type VarOutput struct {
	Name string `json:"name" msgpack:"name"`
	Type string `json:"type" msgpack:"type"`
}

type ProgramOutput struct {
	Instrs []InstrOutput `json:"instrs" msgpack:"instrs"`
	Vars   []VarOutput   `json:"vars,omitempty" msgpack:"vars,omitempty"`
	Result string        `json:"result" msgpack:"result"`
}

func buildInstr(in *ir.Instr) InstrOutput {
	out := InstrOutput{Op: in.Kind.String()}
	switch in.Kind {
	case ir.InstrLabel:
		out.Label = string(in.Label.Name)
	case ir.InstrLoadIntConst:
		v := in.LoadInt.Value
		out.Int, out.Dst = &v, string(in.LoadInt.Dst)
	case ir.InstrLoadBoolConst:
		v := in.LoadBool.Value
		out.Bool, out.Dst = &v, string(in.LoadBool.Dst)
	case ir.InstrCopy:
		out.Src, out.Dst = string(in.Copy.Src), string(in.Copy.Dst)
	case ir.InstrCall:
		out.Fn, out.Dst = string(in.Call.Fn), string(in.Call.Dst)
		out.Args = make([]string, len(in.Call.Args))
		for i, a := range in.Call.Args {
			out.Args[i] = string(a)
		}
	case ir.InstrJump:
		out.Target = string(in.Jump.Target)
	case ir.InstrCondJump:
		out.Cond = string(in.CondJump.Cond)
		out.Then, out.Else = string(in.CondJump.Then), string(in.CondJump.Else)
	}
	return out
}

// BuildProgramOutput converts prog; tt names VarTypes and may be nil.
// Vars are sorted by name.
func BuildProgramOutput(prog *ir.Program, tt *types.Interner) ProgramOutput {
	out := ProgramOutput{
		Instrs: make([]InstrOutput, len(prog.Instrs)),
		Result: string(prog.Result),
	}
	for i := range prog.Instrs {
		out.Instrs[i] = buildInstr(&prog.Instrs[i])
	}
	if tt != nil {
		for v, id := range prog.VarTypes {
			out.Vars = append(out.Vars, VarOutput{Name: string(v), Type: tt.Name(id)})
		}
		sort.Slice(out.Vars, func(i, j int) bool { return out.Vars[i].Name < out.Vars[j].Name })
	}
	return out
}

// FormatIR writes prog in the requested format; pretty is the textual debug form.
func FormatIR(w io.Writer, prog *ir.Program, tt *types.Interner, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(BuildProgramOutput(prog, tt))
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(BuildProgramOutput(prog, tt))
	default:
		_, err := io.WriteString(w, ir.Format(prog.Instrs))
		return err
	}
}
