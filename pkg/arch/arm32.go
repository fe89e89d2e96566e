package arch

import (
	"fmt"
	"strings"

	"github.com/raymyers/uasm/pkg/vasm"
)

// arm32 lowers to ARMv7-A unified syntax. Virtual registers map
// almost one to one; r12 and lr serve as scratch registers when an
// operation needs synthesis, so programs keeping live values there
// lose them across synthesized operations.
type arm32 struct {
	regs map[string]string
}

func newARM32() *arm32 {
	regs := map[string]string{
		"sp": "sp", "lr": "lr", "pc": "pc", "ip": "ip", "fp": "r11",
		// Virtual registers beyond the physical file fold back in
		"r16": "r4", "r17": "r5", "r18": "r6", "r19": "r7",
		"r20": "r8", "r21": "r9", "r22": "r10",
	}
	for i := 0; i <= 15; i++ {
		r := fmt.Sprintf("r%d", i)
		regs[r] = r
	}
	return &arm32{regs: regs}
}

func (g *arm32) RegisterMap() map[string]string { return g.regs }

func (g *arm32) SyntaxHeader() string {
	return ".syntax unified\n.arch armv7-a\n.text\n\n"
}

func (g *arm32) ResolveOperand(operand string) string {
	if isImmediate(operand) {
		return operand
	}
	if strings.HasPrefix(operand, "[") {
		return g.ResolveMemory(operand)
	}
	if mapped, ok := g.regs[operand]; ok {
		return mapped
	}
	return operand
}

func (g *arm32) ResolveMemory(operand string) string {
	m, ok := parseMem(operand)
	if !ok {
		return operand
	}
	base := m.base
	if mapped, ok := g.regs[base]; ok {
		base = mapped
	}
	switch {
	case m.sign == "":
		return fmt.Sprintf("[%s]", base)
	case isImmediate(m.off):
		if m.sign == "-" {
			return fmt.Sprintf("[%s, #-%s]", base, m.off)
		}
		return fmt.Sprintf("[%s, #%s]", base, m.off)
	default:
		off := m.off
		if mapped, ok := g.regs[off]; ok {
			off = mapped
		}
		return fmt.Sprintf("[%s, %s]", base, off)
	}
}

// immOrReg prefixes immediates with '#'
func (g *arm32) immOrReg(src string) string {
	op := g.ResolveOperand(src)
	if isImmediate(op) {
		return "#" + op
	}
	return op
}

func (g *arm32) Mov(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)

	if v, ok := parseImm(srcOp); ok {
		// mov takes a 16-bit immediate; wider values need movt for
		// the upper half
		if v >= 0 && v <= 65535 {
			return fmt.Sprintf("    mov %s, #%d\n", dstReg, v)
		}
		low := v & 0xFFFF
		high := (v >> 16) & 0xFFFF
		if high == 0 {
			return fmt.Sprintf("    mov %s, #%d\n", dstReg, low)
		}
		return fmt.Sprintf("    mov %s, #%d\n    movt %s, #%d\n", dstReg, low, dstReg, high)
	}

	if strings.HasPrefix(srcOp, "r") || srcOp == "sp" || srcOp == "lr" || srcOp == "pc" {
		return fmt.Sprintf("    mov %s, %s\n", dstReg, srcOp)
	}
	return fmt.Sprintf("    ldr %s, =%s\n", dstReg, srcOp)
}

func (g *arm32) Lea(dst, src string) string {
	inner := src
	if m, ok := parseMem(src); ok && m.sign == "" {
		inner = m.base
	}
	return fmt.Sprintf("    adr %s, %s\n", g.ResolveOperand(dst), inner)
}

func (g *arm32) Load(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	m, ok := parseMem(src)
	if !ok {
		return fmt.Sprintf("    ldr %s, =%s\n", dstReg, src)
	}
	if m.sign == "" {
		if mapped, ok := g.regs[m.base]; ok {
			return fmt.Sprintf("    ldr %s, [%s]\n", dstReg, mapped)
		}
		// Symbolic address goes through the scratch register
		return fmt.Sprintf("    adr r12, %s\n    ldr %s, [r12]\n", m.base, dstReg)
	}
	return fmt.Sprintf("    ldr %s, %s\n", dstReg, g.ResolveMemory(src))
}

func (g *arm32) Store(dst, src string) string {
	srcOp := g.ResolveOperand(src)

	if isImmediate(srcOp) {
		m, ok := parseMem(dst)
		if ok {
			if m.sign == "" {
				if mapped, ok := g.regs[m.base]; ok {
					return fmt.Sprintf("    mov r12, #%s\n    str r12, [%s]\n", srcOp, mapped)
				}
				return fmt.Sprintf("    adr r12, %s\n    mov lr, #%s\n    str lr, [r12]\n", m.base, srcOp)
			}
			return fmt.Sprintf("    mov r12, #%s\n    str r12, %s\n", srcOp, g.ResolveMemory(dst))
		}
		return fmt.Sprintf("    adr r12, %s\n    mov lr, #%s\n    str lr, [r12]\n", dst, srcOp)
	}

	m, ok := parseMem(dst)
	if !ok {
		return fmt.Sprintf("    adr r12, %s\n    str %s, [r12]\n", dst, srcOp)
	}
	if m.sign == "" {
		if mapped, ok := g.regs[m.base]; ok {
			return fmt.Sprintf("    str %s, [%s]\n", srcOp, mapped)
		}
		return fmt.Sprintf("    adr r12, %s\n    str %s, [r12]\n", m.base, srcOp)
	}
	return fmt.Sprintf("    str %s, %s\n", srcOp, g.ResolveMemory(dst))
}

// arm32CondName maps condition codes onto ARM condition suffixes.
// Parity has no ARM equivalent; the empty string marks it.
var arm32CondName = []string{
	"eq", "ne", "lt", "le", "gt", "ge", "vs", "vc",
	"mi", "pl", "", "", "hi", "cs", "cc", "ls",
}

// arm32CondOpp is the matching inverse suffix
var arm32CondOpp = []string{
	"ne", "eq", "ge", "gt", "le", "lt", "vc", "vs",
	"pl", "mi", "", "", "ls", "cc", "cs", "hi",
}

func (g *arm32) Cmov(cc vasm.CondCode, dst, src string) string {
	name := arm32CondName[cc]
	if name == "" {
		return "    @ Parity flag not available in ARM32\n"
	}
	return fmt.Sprintf("    mov%s %s, %s\n", name, g.ResolveOperand(dst), g.immOrReg(src))
}

func (g *arm32) Push(src string) string {
	return fmt.Sprintf("    push {%s}\n", g.ResolveOperand(src))
}

func (g *arm32) Pop(dst string) string {
	return fmt.Sprintf("    pop {%s}\n", g.ResolveOperand(dst))
}

func (g *arm32) PushAll() string { return "    push {r0-r12, lr}\n" }
func (g *arm32) PopAll() string  { return "    pop {r0-r12, lr}\n" }

func (g *arm32) Enter(frameSize, nesting string) string {
	return fmt.Sprintf("    push {fp, lr}\n    mov fp, sp\n    sub sp, sp, #%s\n", frameSize)
}

func (g *arm32) Leave() string {
	return "    mov sp, fp\n    pop {fp, lr}\n"
}

func (g *arm32) binOp(op, dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    %s %s, %s, %s\n", op, dstReg, dstReg, g.immOrReg(src))
}

func (g *arm32) Add(dst, src string) string { return g.binOp("add", dst, src) }
func (g *arm32) Sub(dst, src string) string { return g.binOp("sub", dst, src) }

func (g *arm32) Mul(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)
	if isImmediate(srcOp) {
		// mul takes registers only
		return fmt.Sprintf("    mov r12, #%s\n    mul %s, %s, r12\n", srcOp, dstReg, dstReg)
	}
	return fmt.Sprintf("    mul %s, %s, %s\n", dstReg, dstReg, srcOp)
}

func (g *arm32) Imul(dst, src string) string { return g.Mul(dst, src) }

func (g *arm32) Div(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    @ Software division: %s / %s\n    mov r0, %s\n    mov r1, %s\n    bl __aeabi_idiv\n    mov %s, r0\n",
		dst, src, dstReg, g.ResolveOperand(src), dstReg)
}

func (g *arm32) Idiv(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    @ Signed division: %s / %s\n    mov r0, %s\n    mov r1, %s\n    bl __aeabi_idiv\n    mov %s, r0\n",
		dst, src, dstReg, g.ResolveOperand(src), dstReg)
}

func (g *arm32) Mod(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    @ Modulo operation: %s %% %s\n    mov r0, %s\n    mov r1, %s\n    bl __aeabi_idivmod\n    mov %s, r1\n",
		dst, src, dstReg, g.ResolveOperand(src), dstReg)
}

func (g *arm32) Inc(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    add %s, %s, #1\n", dstReg, dstReg)
}

func (g *arm32) Dec(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    sub %s, %s, #1\n", dstReg, dstReg)
}

func (g *arm32) Neg(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    rsb %s, %s, #0\n", dstReg, dstReg)
}

func (g *arm32) And(dst, src string) string { return g.binOp("and", dst, src) }
func (g *arm32) Or(dst, src string) string  { return g.binOp("orr", dst, src) }
func (g *arm32) Xor(dst, src string) string { return g.binOp("eor", dst, src) }

func (g *arm32) Not(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    mvn %s, %s\n", dstReg, dstReg)
}

func (g *arm32) Andn(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    bic %s, %s, %s\n", dstReg, dstReg, g.immOrReg(src))
}

func (g *arm32) Shl(dst, src string) string { return g.binOp("lsl", dst, src) }
func (g *arm32) Shr(dst, src string) string { return g.binOp("lsr", dst, src) }
func (g *arm32) Sal(dst, src string) string { return g.binOp("lsl", dst, src) }
func (g *arm32) Sar(dst, src string) string { return g.binOp("asr", dst, src) }

func (g *arm32) Rol(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)
	if v, ok := parseImm(srcOp); ok {
		// No rotate-left; rotate right by the complement
		return fmt.Sprintf("    ror %s, %s, #%d\n", dstReg, dstReg, 32-(v%32))
	}
	return fmt.Sprintf("    rsb r12, %s, #32\n    ror %s, %s, r12\n", srcOp, dstReg, dstReg)
}

func (g *arm32) Ror(dst, src string) string { return g.binOp("ror", dst, src) }

func (g *arm32) Rcl(dst, src string) string {
	return "    @ RCL not available in ARM32 - would need carry flag emulation\n"
}

func (g *arm32) Rcr(dst, src string) string {
	return "    @ RCR not available in ARM32 - would need carry flag emulation\n"
}

func (g *arm32) Bextr(dst, src, ctrl string) string {
	dstReg := g.ResolveOperand(dst)
	srcReg := g.ResolveOperand(src)
	start, length, ok := splitBextrCtrl(ctrl)
	if !ok {
		return fmt.Sprintf("    @ Invalid bextr immediate format: %s\n", ctrl)
	}
	left := 32 - (start + length)
	if left < 0 {
		left = 0
	}
	right := 32 - length
	if right < 0 {
		right = 0
	}
	return fmt.Sprintf("    @ Bit field extract emulation\n    lsl %s, %s, #%d\n    lsr %s, %s, #%d\n",
		dstReg, srcReg, left, dstReg, dstReg, right)
}

func (g *arm32) Bsf(dst, src string) string {
	return fmt.Sprintf("    @ Bit scan forward - software implementation needed\n    mov %s, #-1\n",
		g.ResolveOperand(dst))
}

func (g *arm32) Bsr(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    clz %s, %s\n    rsb %s, %s, #31\n",
		dstReg, g.ResolveOperand(src), dstReg, dstReg)
}

func (g *arm32) Cmp(a, b string) string {
	return fmt.Sprintf("    cmp %s, %s\n", g.ResolveOperand(a), g.immOrReg(b))
}

func (g *arm32) Test(a, b string) string {
	return fmt.Sprintf("    tst %s, %s\n", g.ResolveOperand(a), g.immOrReg(b))
}

func (g *arm32) bitOp(comment, tail, dst, bit string) string {
	dstReg := g.ResolveOperand(dst)
	bitOp := g.ResolveOperand(bit)
	s := fmt.Sprintf("    @ %s\n    mov r12, #1\n    lsl r12, r12, %s\n    tst %s, r12\n", comment, bitOp, dstReg)
	if tail != "" {
		s += fmt.Sprintf("    %s %s, %s, r12\n", tail, dstReg, dstReg)
	}
	return s
}

func (g *arm32) Bt(dst, bit string) string  { return g.bitOp("Bit test", "", dst, bit) }
func (g *arm32) Btr(dst, bit string) string { return g.bitOp("Bit test and reset", "bic", dst, bit) }
func (g *arm32) Bts(dst, bit string) string { return g.bitOp("Bit test and set", "orr", dst, bit) }
func (g *arm32) Btc(dst, bit string) string {
	return g.bitOp("Bit test and complement", "eor", dst, bit)
}

func (g *arm32) Set(cc vasm.CondCode, dst string) string {
	name := arm32CondName[cc]
	if name == "" {
		return "    @ Parity flag not available in ARM32\n"
	}
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    mov%s %s, #1\n    mov%s %s, #0\n", name, dstReg, arm32CondOpp[cc], dstReg)
}

func (g *arm32) Cmps(a, b string) string {
	return fmt.Sprintf("    ldr r12, %s\n    ldr lr, %s\n    cmp r12, lr\n",
		g.ResolveMemory(a), g.ResolveMemory(b))
}

func (g *arm32) Scas(src, val string) string {
	return fmt.Sprintf("    ldr r12, %s\n    cmp r12, %s\n", g.ResolveMemory(src), g.ResolveOperand(val))
}

func (g *arm32) Stos(dst, src string) string {
	return fmt.Sprintf("    str %s, %s\n", g.ResolveOperand(src), g.ResolveMemory(dst))
}

func (g *arm32) Lods(dst, src string) string {
	return fmt.Sprintf("    ldr %s, %s\n", g.ResolveOperand(dst), g.ResolveMemory(src))
}

func (g *arm32) Movs(dst, src string) string {
	return fmt.Sprintf("    ldr r12, %s\n    str r12, %s\n", g.ResolveMemory(src), g.ResolveMemory(dst))
}

func (g *arm32) Cbw(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    sxtb %s, %s\n", dstReg, dstReg)
}

func (g *arm32) Cwd(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    sxth %s, %s\n", dstReg, dstReg)
}

func (g *arm32) Cdq(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    @ CDQ: Sign extend 32-bit to 64-bit not directly available\n    asr %s, %s, #31\n", dstReg, dstReg)
}

func (g *arm32) Cqo(dst string) string {
	return "    @ CQO: 64-bit operations not available in ARM32\n"
}

func (g *arm32) Cwde(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    sxth %s, %s\n", dstReg, dstReg)
}

func (g *arm32) Cdqe(dst string) string {
	return "    @ CDQE: 64-bit operations not available in ARM32\n"
}

func (g *arm32) Jmp(label string) string {
	return fmt.Sprintf("    b %s\n", label)
}

func (g *arm32) Jcc(cc vasm.CondCode, label string) string {
	name := arm32CondName[cc]
	if name == "" {
		return "    @ Parity flag not available in ARM32\n"
	}
	return fmt.Sprintf("    b%s %s\n", name, label)
}

func (g *arm32) Loop(cc vasm.CondCode, label string) string {
	branch := "beq"
	if cc == vasm.CondNe {
		branch = "bne"
	}
	return fmt.Sprintf("    subs r12, r12, #1\n    %s %s\n", branch, label)
}

func (g *arm32) Call(fn string) string {
	return fmt.Sprintf("    bl %s\n", fn)
}

func (g *arm32) Ret() string { return "    mov pc, lr\n" }

func (g *arm32) In(dst, port string) string {
	return "    @ IN instruction not available in ARM32\n"
}

func (g *arm32) Out(port, src string) string {
	return "    @ OUT instruction not available in ARM32\n"
}

func (g *arm32) Ins(dst, port string) string {
	return "    @ INS instruction not available in ARM32\n"
}

func (g *arm32) Outs(port, src string) string {
	return "    @ OUTS instruction not available in ARM32\n"
}

func (g *arm32) Cpuid() string { return "    @ CPUID not available in ARM32\n" }

func (g *arm32) Lfence() string { return "    dmb\n" }
func (g *arm32) Sfence() string { return "    dmb st\n" }
func (g *arm32) Mfence() string { return "    dmb sy\n" }

func (g *arm32) Prefetch(addr string) string {
	return fmt.Sprintf("    pld %s\n", g.ResolveMemory(addr))
}

func (g *arm32) Clflush(addr string) string {
	return "    @ Cache flush not available in ARM32\n"
}

func (g *arm32) Clwb(addr string) string {
	return "    @ Cache writeback not available in ARM32\n"
}

var arm32Syscalls = map[string]int{
	"read": 3, "write": 4, "open": 5, "close": 6,
	"exit": 1, "mmap": 90, "munmap": 91, "brk": 45, "fstat": 108,
}

func (g *arm32) Syscall(name string) string {
	num, ok := arm32Syscalls[name]
	if !ok {
		return fmt.Sprintf("    @ Unknown syscall: %s\n    mov r7, #0\n    swi 0\n", name)
	}
	return fmt.Sprintf("    mov r7, #%d\n    swi 0\n", num)
}

func (g *arm32) Align(n string) string {
	return fmt.Sprintf(".align %s\n", n)
}

// splitBextrCtrl parses the "start,length" control operand
func splitBextrCtrl(ctrl string) (start, length int, ok bool) {
	i := strings.IndexByte(ctrl, ',')
	if i < 0 {
		return 0, 0, false
	}
	s, okS := parseImm(strings.TrimSpace(ctrl[:i]))
	l, okL := parseImm(strings.TrimSpace(ctrl[i+1:]))
	if !okS || !okL {
		return 0, 0, false
	}
	return int(s), int(l), true
}
