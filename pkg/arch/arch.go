// Package arch lowers virtual instructions to textual assembly for
// each supported architecture. Every backend implements the same
// behavioral contract; operations an architecture cannot express are
// synthesized from native instructions or degraded to a comment line
// so the surrounding program still assembles.
package arch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/raymyers/uasm/pkg/target"
	"github.com/raymyers/uasm/pkg/vasm"
)

// Backend lowers one virtual operation at a time. Returned strings
// carry their own trailing newline and may span several lines when
// an operation is synthesized.
type Backend interface {
	// RegisterMap exposes the virtual-to-physical register mapping
	RegisterMap() map[string]string
	// SyntaxHeader is emitted once at the top of the output
	SyntaxHeader() string
	// ResolveOperand maps registers, passes immediates through and
	// renders memory references in the architecture's grammar
	ResolveOperand(operand string) string
	// ResolveMemory renders a memory reference
	ResolveMemory(operand string) string

	Mov(dst, src string) string
	Lea(dst, src string) string
	Load(dst, src string) string
	Store(dst, src string) string
	Cmov(cc vasm.CondCode, dst, src string) string

	Push(src string) string
	Pop(dst string) string
	PushAll() string
	PopAll() string
	Enter(frameSize, nesting string) string
	Leave() string

	Add(dst, src string) string
	Sub(dst, src string) string
	Mul(dst, src string) string
	Imul(dst, src string) string
	Div(dst, src string) string
	Idiv(dst, src string) string
	Mod(dst, src string) string
	Inc(dst string) string
	Dec(dst string) string
	Neg(dst string) string

	And(dst, src string) string
	Or(dst, src string) string
	Xor(dst, src string) string
	Not(dst string) string
	Andn(dst, src string) string
	Shl(dst, src string) string
	Shr(dst, src string) string
	Sal(dst, src string) string
	Sar(dst, src string) string
	Rol(dst, src string) string
	Ror(dst, src string) string
	Rcl(dst, src string) string
	Rcr(dst, src string) string
	Bextr(dst, src, ctrl string) string
	Bsf(dst, src string) string
	Bsr(dst, src string) string

	Cmp(a, b string) string
	Test(a, b string) string
	Bt(dst, bit string) string
	Btr(dst, bit string) string
	Bts(dst, bit string) string
	Btc(dst, bit string) string
	Set(cc vasm.CondCode, dst string) string

	Cmps(a, b string) string
	Scas(src, val string) string
	Stos(dst, src string) string
	Lods(dst, src string) string
	Movs(dst, src string) string

	Cbw(dst string) string
	Cwd(dst string) string
	Cdq(dst string) string
	Cqo(dst string) string
	Cwde(dst string) string
	Cdqe(dst string) string

	Jmp(label string) string
	Jcc(cc vasm.CondCode, label string) string
	Loop(cc vasm.CondCode, label string) string
	Call(fn string) string
	Ret() string

	In(dst, port string) string
	Out(port, src string) string
	Ins(dst, port string) string
	Outs(port, src string) string

	Cpuid() string
	Lfence() string
	Sfence() string
	Mfence() string
	Prefetch(addr string) string
	Clflush(addr string) string
	Clwb(addr string) string

	Syscall(name string) string
	Align(n string) string
}

// New builds the backend for an architecture
func New(a target.Architecture) (Backend, error) {
	switch a {
	case target.AMD64:
		return newAMD64(), nil
	case target.AMD32:
		return newAMD32(), nil
	case target.ARM32:
		return newARM32(), nil
	case target.ARM64:
		return newARM64(), nil
	case target.RISCV:
		return newRISCV(), nil
	case target.PowerPC64:
		return newPowerPC64(), nil
	}
	return nil, fmt.Errorf("architecture %s is not currently implemented", a)
}

// isImmediate reports whether the operand is a decimal or hex number
func isImmediate(s string) bool {
	if s == "" {
		return false
	}
	body := strings.TrimPrefix(s, "-")
	if v := strings.TrimPrefix(strings.ToLower(body), "0x"); v != body {
		if v == "" {
			return false
		}
		for _, c := range v {
			if !strings.ContainsRune("0123456789abcdef", c) {
				return false
			}
		}
		return true
	}
	for _, c := range body {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(body) > 0
}

// parseImm parses an immediate, accepting 0x hex
func parseImm(s string) (int64, bool) {
	if !isImmediate(s) {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// synthLabel derives the deterministic id used in labels that stitch
// a synthesized conditional together. The id depends only on operand
// text so repeated runs produce identical output.
func synthLabel(dst, src string, salt int) int {
	return (len(dst) + len(src) + salt) % 10000
}

// signedOff renders an immediate offset, keeping only a '-' sign
func signedOff(sign, off string) string {
	if sign == "-" {
		return "-" + off
	}
	return off
}

// memRef is a parsed memory reference [base], [base+off], [base-off]
type memRef struct {
	base string
	sign string // "+", "-" or ""
	off  string
}

// parseMem splits a bracketed memory operand. Returns false when the
// operand is not bracketed.
func parseMem(operand string) (memRef, bool) {
	if !strings.HasPrefix(operand, "[") || !strings.HasSuffix(operand, "]") {
		return memRef{}, false
	}
	inner := strings.TrimSpace(operand[1 : len(operand)-1])
	for i := 1; i < len(inner); i++ {
		if inner[i] == '+' || inner[i] == '-' {
			return memRef{
				base: strings.TrimSpace(inner[:i]),
				sign: string(inner[i]),
				off:  strings.TrimSpace(inner[i+1:]),
			}, true
		}
	}
	return memRef{base: inner}, true
}
