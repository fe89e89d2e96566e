// Package parser turns virtual assembly source text into the
// instruction list consumed by code generation.
//
// The grammar is line oriented: ';' starts a comment (outside
// quotes), a trailing ':' defines a label, 'section' switches the
// output section, and data lines take the form
//
//	name db|dw|dd|dq value, value, "string"
//	name resb|resw|resd|resq count
//	name equ value
//
// Everything else is a mnemonic with comma-separated operands.
package parser

import (
	"fmt"
	"strings"

	"github.com/raymyers/uasm/pkg/vasm"
)

// Parse parses source into instructions. The first malformed line
// aborts parsing with an error naming the line.
func Parse(src string) ([]vasm.Instruction, error) {
	var prog []vasm.Instruction
	for i, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}
		inst, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if inst != nil {
			prog = append(prog, inst)
		}
	}
	return prog, nil
}

// stripComment removes a trailing ';' comment, ignoring semicolons
// inside string literals.
func stripComment(line string) string {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			if i == 0 || line[i-1] != '\\' {
				inQuote = !inQuote
			}
		case ';':
			if !inQuote {
				return line[:i]
			}
		}
	}
	return line
}

func parseLine(line string) (vasm.Instruction, error) {
	if strings.HasSuffix(line, ":") {
		name := strings.TrimSpace(strings.TrimSuffix(line, ":"))
		if name == "" {
			return nil, fmt.Errorf("empty label")
		}
		return vasm.Label{Name: name}, nil
	}

	head, rest := splitHead(line)
	lower := strings.ToLower(head)

	if lower == "section" {
		return parseSection(rest)
	}

	// Data definitions put the directive in second position.
	if dirHead, dirRest := splitHead(rest); dirHead != "" {
		switch d := strings.ToLower(dirHead); d {
		case "db", "dw", "dd", "dq":
			values := splitList(dirRest)
			if len(values) == 0 {
				return nil, fmt.Errorf("%s requires at least one value", d)
			}
			return vasm.Data{Size: dataSize(d), Name: head, Values: values}, nil
		case "resb", "resw", "resd", "resq":
			count := strings.TrimSpace(dirRest)
			if count == "" {
				return nil, fmt.Errorf("%s requires a count", d)
			}
			return vasm.Reserve{Size: dataSize(d[3:]), Name: head, Count: count}, nil
		case "equ":
			value := strings.TrimSpace(dirRest)
			if value == "" {
				return nil, fmt.Errorf("equ requires a value")
			}
			return vasm.Equ{Name: head, Value: value}, nil
		}
	}

	return parseInstruction(lower, rest)
}

// splitHead separates the first whitespace-delimited token
func splitHead(line string) (string, string) {
	line = strings.TrimSpace(line)
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}

// splitList splits a comma-separated operand list, keeping commas
// inside string literals.
func splitList(s string) []string {
	var out []string
	var cur strings.Builder
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' && (i == 0 || s[i-1] != '\\'):
			inQuote = !inQuote
			cur.WriteByte(c)
		case c == ',' && !inQuote:
			if piece := strings.TrimSpace(cur.String()); piece != "" {
				out = append(out, piece)
			}
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if piece := strings.TrimSpace(cur.String()); piece != "" {
		out = append(out, piece)
	}
	return out
}

func dataSize(d string) vasm.DataSize {
	switch d {
	case "b", "db":
		return vasm.Byte
	case "w", "dw":
		return vasm.Word
	case "d", "dd":
		return vasm.Dword
	default:
		return vasm.Qword
	}
}

func parseSection(rest string) (vasm.Instruction, error) {
	name := strings.TrimSpace(rest)
	if !strings.HasPrefix(name, ".") || len(name) < 2 {
		return nil, fmt.Errorf("invalid section name %q", name)
	}
	switch name {
	case ".text":
		return vasm.SectionDir{Section: vasm.Section{Kind: vasm.SectionText}}, nil
	case ".data":
		return vasm.SectionDir{Section: vasm.Section{Kind: vasm.SectionData}}, nil
	case ".bss":
		return vasm.SectionDir{Section: vasm.Section{Kind: vasm.SectionBss}}, nil
	case ".rodata":
		return vasm.SectionDir{Section: vasm.Section{Kind: vasm.SectionRodata}}, nil
	}
	return vasm.SectionDir{Section: vasm.Section{Kind: vasm.SectionCustom, Name: name[1:]}}, nil
}

// condSuffixes maps source condition spellings onto condition codes.
// Several x86 spellings collapse onto one code.
var condSuffixes = map[string]vasm.CondCode{
	"e": vasm.CondEq, "z": vasm.CondEq, "eq": vasm.CondEq,
	"ne": vasm.CondNe, "nz": vasm.CondNe,
	"l": vasm.CondLt, "nge": vasm.CondLt, "lt": vasm.CondLt,
	"le": vasm.CondLe, "ng": vasm.CondLe,
	"g": vasm.CondGt, "nle": vasm.CondGt, "gt": vasm.CondGt,
	"ge": vasm.CondGe, "nl": vasm.CondGe,
	"o":  vasm.CondOv,
	"no": vasm.CondNo,
	"s":  vasm.CondS,
	"ns": vasm.CondNs,
	"p": vasm.CondP, "pe": vasm.CondP,
	"np": vasm.CondNp, "po": vasm.CondNp,
	"a": vasm.CondA, "nbe": vasm.CondA,
	"ae": vasm.CondAe, "nb": vasm.CondAe, "nc": vasm.CondAe,
	"b": vasm.CondB, "c": vasm.CondB, "nae": vasm.CondB,
	"be": vasm.CondBe, "na": vasm.CondBe,
}

func parseInstruction(mnemonic, rest string) (vasm.Instruction, error) {
	ops := splitList(rest)

	one := func() (string, error) {
		if len(ops) != 1 {
			return "", fmt.Errorf("%s requires 1 operand", mnemonic)
		}
		return ops[0], nil
	}
	two := func() (string, string, error) {
		if len(ops) != 2 {
			return "", "", fmt.Errorf("%s requires 2 operands", mnemonic)
		}
		return ops[0], ops[1], nil
	}
	three := func() (string, string, string, error) {
		if len(ops) != 3 {
			return "", "", "", fmt.Errorf("%s requires 3 operands", mnemonic)
		}
		return ops[0], ops[1], ops[2], nil
	}

	// Condition-code families.
	if cc, ok := condFamily(mnemonic, "cmov"); ok {
		dst, src, err := two()
		if err != nil {
			return nil, err
		}
		return vasm.Cmov{Cond: cc, Dst: dst, Src: src}, nil
	}
	if cc, ok := condFamily(mnemonic, "set"); ok {
		dst, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.Set{Cond: cc, Dst: dst}, nil
	}
	if cc, ok := condFamily(mnemonic, "j"); ok && mnemonic != "jmp" {
		target, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.Jcc{Cond: cc, Target: target}, nil
	}

	// String operations accept a width suffix that the virtual
	// machine ignores; the backends pick the operand width.
	if base, ok := stringOp(mnemonic); ok {
		a, b, err := two()
		if err != nil {
			return nil, err
		}
		switch base {
		case "cmps":
			return vasm.Cmps{A: a, B: b}, nil
		case "scas":
			return vasm.Scas{Src: a, Val: b}, nil
		case "stos":
			return vasm.Stos{Dst: a, Src: b}, nil
		case "lods":
			return vasm.Lods{Dst: a, Src: b}, nil
		default:
			return vasm.Movs{Dst: a, Src: b}, nil
		}
	}

	switch mnemonic {
	case "mov":
		dst, src, err := two()
		if err != nil {
			return nil, err
		}
		return vasm.Mov{Dst: dst, Src: src}, nil
	case "lea":
		dst, src, err := two()
		if err != nil {
			return nil, err
		}
		return vasm.Lea{Dst: dst, Src: src}, nil
	case "load":
		dst, src, err := two()
		if err != nil {
			return nil, err
		}
		return vasm.Load{Dst: dst, Src: src}, nil
	case "store":
		dst, src, err := two()
		if err != nil {
			return nil, err
		}
		return vasm.Store{Dst: dst, Src: src}, nil

	case "push":
		src, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.Push{Src: src}, nil
	case "pop":
		dst, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.Pop{Dst: dst}, nil
	case "pusha", "pushad":
		return vasm.Pusha{}, nil
	case "popa", "popad":
		return vasm.Popa{}, nil
	case "enter":
		size, nesting, err := two()
		if err != nil {
			return nil, err
		}
		return vasm.Enter{FrameSize: size, Nesting: nesting}, nil
	case "leave":
		return vasm.Leave{}, nil

	case "add", "sub", "mul", "imul", "div", "idiv", "mod",
		"and", "or", "xor", "andn",
		"shl", "shr", "sal", "sar", "rol", "ror", "rcl", "rcr",
		"bsf", "bsr":
		dst, src, err := two()
		if err != nil {
			return nil, err
		}
		return binary(mnemonic, dst, src), nil

	case "inc":
		dst, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.Inc{Dst: dst}, nil
	case "dec":
		dst, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.Dec{Dst: dst}, nil
	case "neg":
		dst, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.Neg{Dst: dst}, nil
	case "not":
		dst, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.Not{Dst: dst}, nil

	case "bextr":
		// The control operand is itself "start,length", so the
		// operand list may arrive split in four.
		if len(ops) == 4 {
			return vasm.Bextr{Dst: ops[0], Src: ops[1], Ctrl: ops[2] + "," + ops[3]}, nil
		}
		dst, src, ctrl, err := three()
		if err != nil {
			return nil, err
		}
		return vasm.Bextr{Dst: dst, Src: src, Ctrl: ctrl}, nil

	case "cmp":
		a, b, err := two()
		if err != nil {
			return nil, err
		}
		return vasm.Cmp{A: a, B: b}, nil
	case "test":
		a, b, err := two()
		if err != nil {
			return nil, err
		}
		return vasm.Test{A: a, B: b}, nil

	case "bt", "btr", "bts", "btc":
		dst, bit, err := two()
		if err != nil {
			return nil, err
		}
		switch mnemonic {
		case "bt":
			return vasm.Bt{Dst: dst, Bit: bit}, nil
		case "btr":
			return vasm.Btr{Dst: dst, Bit: bit}, nil
		case "bts":
			return vasm.Bts{Dst: dst, Bit: bit}, nil
		default:
			return vasm.Btc{Dst: dst, Bit: bit}, nil
		}

	case "cbw", "cwd", "cdq", "cqo", "cwde", "cdqe":
		dst, err := one()
		if err != nil {
			return nil, err
		}
		switch mnemonic {
		case "cbw":
			return vasm.Cbw{Dst: dst}, nil
		case "cwd":
			return vasm.Cwd{Dst: dst}, nil
		case "cdq":
			return vasm.Cdq{Dst: dst}, nil
		case "cqo":
			return vasm.Cqo{Dst: dst}, nil
		case "cwde":
			return vasm.Cwde{Dst: dst}, nil
		default:
			return vasm.Cdqe{Dst: dst}, nil
		}

	case "jmp":
		target, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.Jmp{Target: target}, nil
	case "loope", "loopz":
		target, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.LoopCond{Cond: vasm.CondEq, Target: target}, nil
	case "loopne", "loopnz":
		target, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.LoopCond{Cond: vasm.CondNe, Target: target}, nil
	case "call":
		target, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.Call{Target: target}, nil
	case "ret", "retn":
		return vasm.Ret{}, nil

	case "in":
		dst, port, err := two()
		if err != nil {
			return nil, err
		}
		return vasm.In{Dst: dst, Port: port}, nil
	case "out":
		port, src, err := two()
		if err != nil {
			return nil, err
		}
		return vasm.Out{Port: port, Src: src}, nil
	case "ins", "insb", "insw", "insd":
		dst, port, err := two()
		if err != nil {
			return nil, err
		}
		return vasm.Ins{Dst: dst, Port: port}, nil
	case "outs", "outsb", "outsw", "outsd":
		port, src, err := two()
		if err != nil {
			return nil, err
		}
		return vasm.Outs{Port: port, Src: src}, nil

	case "cpuid":
		return vasm.Cpuid{}, nil
	case "lfence":
		return vasm.Lfence{}, nil
	case "sfence":
		return vasm.Sfence{}, nil
	case "mfence":
		return vasm.Mfence{}, nil
	case "prefetch":
		addr, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.Prefetch{Addr: addr}, nil
	case "clflush":
		addr, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.Clflush{Addr: addr}, nil
	case "clwb":
		addr, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.Clwb{Addr: addr}, nil

	case "syscall":
		name, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.Syscall{Name: name}, nil

	case "global", "globl":
		sym, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.Global{Symbol: sym}, nil
	case "extern":
		sym, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.Extern{Symbol: sym}, nil
	case "align":
		n, err := one()
		if err != nil {
			return nil, err
		}
		return vasm.Align{N: n}, nil
	}

	return nil, fmt.Errorf("unknown instruction %q", mnemonic)
}

func binary(mnemonic, dst, src string) vasm.Instruction {
	switch mnemonic {
	case "add":
		return vasm.Add{Dst: dst, Src: src}
	case "sub":
		return vasm.Sub{Dst: dst, Src: src}
	case "mul":
		return vasm.Mul{Dst: dst, Src: src}
	case "imul":
		return vasm.Imul{Dst: dst, Src: src}
	case "div":
		return vasm.Div{Dst: dst, Src: src}
	case "idiv":
		return vasm.Idiv{Dst: dst, Src: src}
	case "mod":
		return vasm.Mod{Dst: dst, Src: src}
	case "and":
		return vasm.And{Dst: dst, Src: src}
	case "or":
		return vasm.Or{Dst: dst, Src: src}
	case "xor":
		return vasm.Xor{Dst: dst, Src: src}
	case "andn":
		return vasm.Andn{Dst: dst, Src: src}
	case "shl":
		return vasm.Shl{Dst: dst, Src: src}
	case "shr":
		return vasm.Shr{Dst: dst, Src: src}
	case "sal":
		return vasm.Sal{Dst: dst, Src: src}
	case "sar":
		return vasm.Sar{Dst: dst, Src: src}
	case "rol":
		return vasm.Rol{Dst: dst, Src: src}
	case "ror":
		return vasm.Ror{Dst: dst, Src: src}
	case "rcl":
		return vasm.Rcl{Dst: dst, Src: src}
	case "rcr":
		return vasm.Rcr{Dst: dst, Src: src}
	case "bsf":
		return vasm.Bsf{Dst: dst, Src: src}
	default:
		return vasm.Bsr{Dst: dst, Src: src}
	}
}

// condFamily matches mnemonics like cmovne, setz or jge against a
// family prefix and resolves the condition suffix.
func condFamily(mnemonic, prefix string) (vasm.CondCode, bool) {
	if !strings.HasPrefix(mnemonic, prefix) || len(mnemonic) == len(prefix) {
		return 0, false
	}
	cc, ok := condSuffixes[mnemonic[len(prefix):]]
	return cc, ok
}

// stringOp matches string operations with an optional width suffix
func stringOp(mnemonic string) (string, bool) {
	for _, base := range []string{"cmps", "scas", "stos", "lods", "movs"} {
		if mnemonic == base {
			return base, true
		}
		if len(mnemonic) == len(base)+1 && strings.HasPrefix(mnemonic, base) {
			switch mnemonic[len(base)] {
			case 'b', 'w', 'd', 'q':
				return base, true
			}
		}
	}
	return "", false
}
