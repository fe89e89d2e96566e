// Package codegen drives assembly generation: it walks a parsed
// program and routes directives to the platform provider and
// instructions to the architecture backend.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/raymyers/uasm/pkg/arch"
	"github.com/raymyers/uasm/pkg/parser"
	"github.com/raymyers/uasm/pkg/platform"
	"github.com/raymyers/uasm/pkg/target"
	"github.com/raymyers/uasm/pkg/vasm"
)

// Generator renders a program for one target triple
type Generator struct {
	backend  arch.Backend
	provider platform.Provider
	triple   target.Triple
}

// New builds a Generator for the triple
func New(t target.Triple) (*Generator, error) {
	b, err := arch.New(t.Arch)
	if err != nil {
		return nil, err
	}
	p, err := platform.New(t)
	if err != nil {
		return nil, err
	}
	return &Generator{backend: b, provider: p, triple: t}, nil
}

// Target returns the triple the Generator renders for
func (g *Generator) Target() target.Triple { return g.triple }

// Generate renders the program as assembly text
func (g *Generator) Generate(prog []vasm.Instruction) string {
	var b strings.Builder
	b.WriteString(g.backend.SyntaxHeader())
	for _, inst := range prog {
		b.WriteString(g.emit(inst))
	}
	return b.String()
}

func (g *Generator) emit(inst vasm.Instruction) string {
	be := g.backend
	switch v := inst.(type) {
	case vasm.Label:
		return v.Name + ":\n"
	case vasm.SectionDir:
		return g.provider.SectionPrefix(v.Section)
	case vasm.Global:
		return g.provider.GlobalDirective(v.Symbol)
	case vasm.Extern:
		return g.provider.ExternDirective(v.Symbol)
	case vasm.Data:
		return g.provider.DataDirective(v.Size, v.Name, expandValues(v.Values))
	case vasm.Reserve:
		return g.provider.ReserveDirective(v.Name, reserveBytes(v.Count, v.Size))
	case vasm.Equ:
		return g.provider.EquDirective(v.Name, v.Value)
	case vasm.Align:
		return be.Align(v.N)

	case vasm.Mov:
		return be.Mov(v.Dst, v.Src)
	case vasm.Lea:
		return be.Lea(v.Dst, v.Src)
	case vasm.Load:
		return be.Load(v.Dst, v.Src)
	case vasm.Store:
		return be.Store(v.Dst, v.Src)
	case vasm.Cmov:
		return be.Cmov(v.Cond, v.Dst, v.Src)

	case vasm.Push:
		return be.Push(v.Src)
	case vasm.Pop:
		return be.Pop(v.Dst)
	case vasm.Pusha:
		return be.PushAll()
	case vasm.Popa:
		return be.PopAll()
	case vasm.Enter:
		return be.Enter(v.FrameSize, v.Nesting)
	case vasm.Leave:
		return be.Leave()

	case vasm.Add:
		return be.Add(v.Dst, v.Src)
	case vasm.Sub:
		return be.Sub(v.Dst, v.Src)
	case vasm.Mul:
		return be.Mul(v.Dst, v.Src)
	case vasm.Imul:
		return be.Imul(v.Dst, v.Src)
	case vasm.Div:
		return be.Div(v.Dst, v.Src)
	case vasm.Idiv:
		return be.Idiv(v.Dst, v.Src)
	case vasm.Mod:
		return be.Mod(v.Dst, v.Src)
	case vasm.Inc:
		return be.Inc(v.Dst)
	case vasm.Dec:
		return be.Dec(v.Dst)
	case vasm.Neg:
		return be.Neg(v.Dst)

	case vasm.And:
		return be.And(v.Dst, v.Src)
	case vasm.Or:
		return be.Or(v.Dst, v.Src)
	case vasm.Xor:
		return be.Xor(v.Dst, v.Src)
	case vasm.Not:
		return be.Not(v.Dst)
	case vasm.Andn:
		return be.Andn(v.Dst, v.Src)
	case vasm.Shl:
		return be.Shl(v.Dst, v.Src)
	case vasm.Shr:
		return be.Shr(v.Dst, v.Src)
	case vasm.Sal:
		return be.Sal(v.Dst, v.Src)
	case vasm.Sar:
		return be.Sar(v.Dst, v.Src)
	case vasm.Rol:
		return be.Rol(v.Dst, v.Src)
	case vasm.Ror:
		return be.Ror(v.Dst, v.Src)
	case vasm.Rcl:
		return be.Rcl(v.Dst, v.Src)
	case vasm.Rcr:
		return be.Rcr(v.Dst, v.Src)
	case vasm.Bextr:
		return be.Bextr(v.Dst, v.Src, v.Ctrl)
	case vasm.Bsf:
		return be.Bsf(v.Dst, v.Src)
	case vasm.Bsr:
		return be.Bsr(v.Dst, v.Src)

	case vasm.Cmp:
		return be.Cmp(v.A, v.B)
	case vasm.Test:
		return be.Test(v.A, v.B)
	case vasm.Bt:
		return be.Bt(v.Dst, v.Bit)
	case vasm.Btr:
		return be.Btr(v.Dst, v.Bit)
	case vasm.Bts:
		return be.Bts(v.Dst, v.Bit)
	case vasm.Btc:
		return be.Btc(v.Dst, v.Bit)
	case vasm.Set:
		return be.Set(v.Cond, v.Dst)

	case vasm.Cmps:
		return be.Cmps(v.A, v.B)
	case vasm.Scas:
		return be.Scas(v.Src, v.Val)
	case vasm.Stos:
		return be.Stos(v.Dst, v.Src)
	case vasm.Lods:
		return be.Lods(v.Dst, v.Src)
	case vasm.Movs:
		return be.Movs(v.Dst, v.Src)

	case vasm.Cbw:
		return be.Cbw(v.Dst)
	case vasm.Cwd:
		return be.Cwd(v.Dst)
	case vasm.Cdq:
		return be.Cdq(v.Dst)
	case vasm.Cqo:
		return be.Cqo(v.Dst)
	case vasm.Cwde:
		return be.Cwde(v.Dst)
	case vasm.Cdqe:
		return be.Cdqe(v.Dst)

	case vasm.Jmp:
		return be.Jmp(v.Target)
	case vasm.Jcc:
		return be.Jcc(v.Cond, v.Target)
	case vasm.LoopCond:
		return be.Loop(v.Cond, v.Target)
	case vasm.Call:
		return be.Call(v.Target)
	case vasm.Ret:
		return be.Ret()

	case vasm.In:
		return be.In(v.Dst, v.Port)
	case vasm.Out:
		return be.Out(v.Port, v.Src)
	case vasm.Ins:
		return be.Ins(v.Dst, v.Port)
	case vasm.Outs:
		return be.Outs(v.Port, v.Src)

	case vasm.Cpuid:
		return be.Cpuid()
	case vasm.Lfence:
		return be.Lfence()
	case vasm.Sfence:
		return be.Sfence()
	case vasm.Mfence:
		return be.Mfence()
	case vasm.Prefetch:
		return be.Prefetch(v.Addr)
	case vasm.Clflush:
		return be.Clflush(v.Addr)
	case vasm.Clwb:
		return be.Clwb(v.Addr)

	case vasm.Syscall:
		return be.Syscall(v.Name)
	}
	return ""
}

// expandValues rewrites quoted string values into byte lists so the
// provider only ever sees numbers and symbols.
func expandValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if len(v) >= 2 && strings.HasPrefix(v, "\"") && strings.HasSuffix(v, "\"") {
			out = append(out, expandString(v[1:len(v)-1])...)
			continue
		}
		out = append(out, v)
	}
	return out
}

// expandString turns string contents into decimal byte values,
// interpreting the escapes \n \t \r \\ and \". An unrecognized escape
// keeps both characters.
func expandString(s string) []string {
	var out []string
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				out = append(out, "10")
				i++
				continue
			case 't':
				out = append(out, "9")
				i++
				continue
			case 'r':
				out = append(out, "13")
				i++
				continue
			case '\\':
				out = append(out, "92")
				i++
				continue
			case '"':
				out = append(out, "34")
				i++
				continue
			}
		}
		out = append(out, strconv.Itoa(int(c)))
	}
	return out
}

// reserveBytes converts an element count to a byte count. Symbolic
// counts stay textual, scaled when the element width is wider than a
// byte.
func reserveBytes(count string, size vasm.DataSize) string {
	width := size.Bytes()
	if n, err := strconv.Atoi(count); err == nil {
		return strconv.Itoa(n * width)
	}
	if width == 1 {
		return count
	}
	return fmt.Sprintf("%s*%d", count, width)
}

// Compile parses a source text and renders it for the triple
func Compile(src string, t target.Triple) (string, error) {
	prog, err := parser.Parse(src)
	if err != nil {
		return "", err
	}
	g, err := New(t)
	if err != nil {
		return "", err
	}
	return g.Generate(prog), nil
}
