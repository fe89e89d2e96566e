package arch

import (
	"fmt"
	"strings"

	"github.com/raymyers/uasm/pkg/vasm"
)

// arm64 lowers to AArch64 assembly. x16 and x17, the intra-procedure
// call registers, serve as scratch for synthesized operations.
type arm64 struct {
	regs map[string]string
}

func newARM64() *arm64 {
	regs := map[string]string{
		"sp": "sp", "sb": "x29", "fp": "x29", "lr": "x30", "ip": "x16",
	}
	for i := 0; i <= 23; i++ {
		regs[fmt.Sprintf("r%d", i)] = fmt.Sprintf("x%d", i)
	}
	return &arm64{regs: regs}
}

func (g *arm64) RegisterMap() map[string]string { return g.regs }

func (g *arm64) SyntaxHeader() string {
	return ".arch armv8-a\n.text\n\n"
}

func (g *arm64) ResolveOperand(operand string) string {
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

func (g *arm64) ResolveMemory(operand string) string {
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

func (g *arm64) immOrReg(src string) string {
	op := g.ResolveOperand(src)
	if isImmediate(op) {
		return "#" + op
	}
	return op
}

// scratchFor materializes an immediate into the named scratch
// register, returning the operand to use and any setup lines.
func (g *arm64) scratchFor(src, scratch string) (string, string) {
	op := g.ResolveOperand(src)
	if isImmediate(op) {
		return scratch, fmt.Sprintf("    mov %s, #%s\n", scratch, op)
	}
	return op, ""
}

// wReg returns the 32-bit view of an x register
func wReg(x string) string {
	if strings.HasPrefix(x, "x") {
		return "w" + x[1:]
	}
	return x
}

func (g *arm64) Mov(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)

	if v, ok := parseImm(srcOp); ok {
		if v >= 0 && v <= 65535 {
			return fmt.Sprintf("    mov %s, #%d\n", dstReg, v)
		}
		// movz/movk build wide constants 16 bits at a time
		low := v & 0xFFFF
		high := (v >> 16) & 0xFFFF
		if high == 0 {
			return fmt.Sprintf("    movz %s, #%d\n", dstReg, low)
		}
		return fmt.Sprintf("    movz %s, #%d\n    movk %s, #%d, lsl #16\n", dstReg, low, dstReg, high)
	}

	if strings.HasPrefix(srcOp, "x") || strings.HasPrefix(srcOp, "w") || srcOp == "sp" {
		return fmt.Sprintf("    mov %s, %s\n", dstReg, srcOp)
	}
	return fmt.Sprintf("    ldr %s, =%s\n", dstReg, srcOp)
}

func (g *arm64) Lea(dst, src string) string {
	inner := src
	if m, ok := parseMem(src); ok && m.sign == "" {
		inner = m.base
	}
	return fmt.Sprintf("    adr %s, %s\n", g.ResolveOperand(dst), inner)
}

func (g *arm64) Load(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	m, ok := parseMem(src)
	if !ok {
		return fmt.Sprintf("    ldr %s, =%s\n", dstReg, src)
	}
	if m.sign == "" {
		if mapped, ok := g.regs[m.base]; ok {
			return fmt.Sprintf("    ldr %s, [%s]\n", dstReg, mapped)
		}
		return fmt.Sprintf("    adr x16, %s\n    ldr %s, [x16]\n", m.base, dstReg)
	}
	return fmt.Sprintf("    ldr %s, %s\n", dstReg, g.ResolveMemory(src))
}

func (g *arm64) Store(dst, src string) string {
	srcOp, setup := g.scratchFor(src, "x17")
	m, ok := parseMem(dst)
	if !ok {
		return setup + fmt.Sprintf("    adr x16, %s\n    str %s, [x16]\n", dst, srcOp)
	}
	if m.sign == "" {
		if mapped, ok := g.regs[m.base]; ok {
			return setup + fmt.Sprintf("    str %s, [%s]\n", srcOp, mapped)
		}
		return setup + fmt.Sprintf("    adr x16, %s\n    str %s, [x16]\n", m.base, srcOp)
	}
	return setup + fmt.Sprintf("    str %s, %s\n", srcOp, g.ResolveMemory(dst))
}

// arm64CondName maps condition codes to AArch64 suffixes; parity has
// no equivalent.
var arm64CondName = []string{
	"eq", "ne", "lt", "le", "gt", "ge", "vs", "vc",
	"mi", "pl", "", "", "hi", "hs", "lo", "ls",
}

func (g *arm64) Cmov(cc vasm.CondCode, dst, src string) string {
	name := arm64CondName[cc]
	if name == "" {
		return "    // Parity flag not available in ARM64\n"
	}
	dstReg := g.ResolveOperand(dst)
	srcOp, setup := g.scratchFor(src, "x16")
	return setup + fmt.Sprintf("    csel %s, %s, %s, %s\n", dstReg, srcOp, dstReg, name)
}

func (g *arm64) Push(src string) string {
	srcOp, setup := g.scratchFor(src, "x16")
	return setup + fmt.Sprintf("    str %s, [sp, #-16]!\n", srcOp)
}

func (g *arm64) Pop(dst string) string {
	return fmt.Sprintf("    ldr %s, [sp], #16\n", g.ResolveOperand(dst))
}

func (g *arm64) PushAll() string {
	var b strings.Builder
	for i := 0; i < 16; i += 2 {
		fmt.Fprintf(&b, "    stp x%d, x%d, [sp, #-16]!\n", i, i+1)
	}
	return b.String()
}

func (g *arm64) PopAll() string {
	var b strings.Builder
	for i := 14; i >= 0; i -= 2 {
		fmt.Fprintf(&b, "    ldp x%d, x%d, [sp], #16\n", i, i+1)
	}
	return b.String()
}

func (g *arm64) Enter(frameSize, nesting string) string {
	return fmt.Sprintf("    stp x29, x30, [sp, #-16]!\n    mov x29, sp\n    sub sp, sp, #%s\n", frameSize)
}

func (g *arm64) Leave() string {
	return "    mov sp, x29\n    ldp x29, x30, [sp], #16\n"
}

func (g *arm64) binOp(op, dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    %s %s, %s, %s\n", op, dstReg, dstReg, g.immOrReg(src))
}

func (g *arm64) Add(dst, src string) string { return g.binOp("add", dst, src) }
func (g *arm64) Sub(dst, src string) string { return g.binOp("sub", dst, src) }

func (g *arm64) Mul(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp, setup := g.scratchFor(src, "x16")
	return setup + fmt.Sprintf("    mul %s, %s, %s\n", dstReg, dstReg, srcOp)
}

func (g *arm64) Imul(dst, src string) string { return g.Mul(dst, src) }

func (g *arm64) Div(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp, setup := g.scratchFor(src, "x16")
	return setup + fmt.Sprintf("    udiv %s, %s, %s\n", dstReg, dstReg, srcOp)
}

func (g *arm64) Idiv(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp, setup := g.scratchFor(src, "x16")
	return setup + fmt.Sprintf("    sdiv %s, %s, %s\n", dstReg, dstReg, srcOp)
}

func (g *arm64) Mod(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp, setup := g.scratchFor(src, "x17")
	// Remainder via divide then multiply-subtract
	return setup + fmt.Sprintf("    sdiv x16, %s, %s\n    msub %s, x16, %s, %s\n",
		dstReg, srcOp, dstReg, srcOp, dstReg)
}

func (g *arm64) Inc(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    add %s, %s, #1\n", dstReg, dstReg)
}

func (g *arm64) Dec(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    sub %s, %s, #1\n", dstReg, dstReg)
}

func (g *arm64) Neg(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    neg %s, %s\n", dstReg, dstReg)
}

func (g *arm64) And(dst, src string) string { return g.binOp("and", dst, src) }
func (g *arm64) Or(dst, src string) string  { return g.binOp("orr", dst, src) }
func (g *arm64) Xor(dst, src string) string { return g.binOp("eor", dst, src) }

func (g *arm64) Not(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    mvn %s, %s\n", dstReg, dstReg)
}

func (g *arm64) Andn(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp, setup := g.scratchFor(src, "x16")
	return setup + fmt.Sprintf("    bic %s, %s, %s\n", dstReg, dstReg, srcOp)
}

func (g *arm64) Shl(dst, src string) string { return g.binOp("lsl", dst, src) }
func (g *arm64) Shr(dst, src string) string { return g.binOp("lsr", dst, src) }
func (g *arm64) Sal(dst, src string) string { return g.binOp("lsl", dst, src) }
func (g *arm64) Sar(dst, src string) string { return g.binOp("asr", dst, src) }

func (g *arm64) Rol(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)
	if v, ok := parseImm(srcOp); ok {
		return fmt.Sprintf("    ror %s, %s, #%d\n", dstReg, dstReg, (64-(v%64))%64)
	}
	return fmt.Sprintf("    neg x16, %s\n    ror %s, %s, x16\n", srcOp, dstReg, dstReg)
}

func (g *arm64) Ror(dst, src string) string { return g.binOp("ror", dst, src) }

func (g *arm64) Rcl(dst, src string) string {
	return "    // RCL not available in ARM64 - would need carry flag emulation\n"
}

func (g *arm64) Rcr(dst, src string) string {
	return "    // RCR not available in ARM64 - would need carry flag emulation\n"
}

func (g *arm64) Bextr(dst, src, ctrl string) string {
	start, length, ok := splitBextrCtrl(ctrl)
	if !ok {
		return fmt.Sprintf("    // Invalid bextr immediate format: %s\n", ctrl)
	}
	return fmt.Sprintf("    ubfx %s, %s, #%d, #%d\n",
		g.ResolveOperand(dst), g.ResolveOperand(src), start, length)
}

func (g *arm64) Bsf(dst, src string) string {
	return fmt.Sprintf("    rbit x16, %s\n    clz %s, x16\n",
		g.ResolveOperand(src), g.ResolveOperand(dst))
}

func (g *arm64) Bsr(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    clz %s, %s\n    mov x16, #63\n    sub %s, x16, %s\n",
		dstReg, g.ResolveOperand(src), dstReg, dstReg)
}

func (g *arm64) Cmp(a, b string) string {
	return fmt.Sprintf("    cmp %s, %s\n", g.ResolveOperand(a), g.immOrReg(b))
}

func (g *arm64) Test(a, b string) string {
	return fmt.Sprintf("    tst %s, %s\n", g.ResolveOperand(a), g.immOrReg(b))
}

func (g *arm64) bitOp(comment, tail, dst, bit string) string {
	dstReg := g.ResolveOperand(dst)
	bitOp := g.immOrReg(bit)
	s := fmt.Sprintf("    // %s\n    mov x16, #1\n    lsl x16, x16, %s\n    tst %s, x16\n", comment, bitOp, dstReg)
	if tail != "" {
		s += fmt.Sprintf("    %s %s, %s, x16\n", tail, dstReg, dstReg)
	}
	return s
}

func (g *arm64) Bt(dst, bit string) string  { return g.bitOp("Bit test", "", dst, bit) }
func (g *arm64) Btr(dst, bit string) string { return g.bitOp("Bit test and reset", "bic", dst, bit) }
func (g *arm64) Bts(dst, bit string) string { return g.bitOp("Bit test and set", "orr", dst, bit) }
func (g *arm64) Btc(dst, bit string) string {
	return g.bitOp("Bit test and complement", "eor", dst, bit)
}

func (g *arm64) Set(cc vasm.CondCode, dst string) string {
	name := arm64CondName[cc]
	if name == "" {
		return "    // Parity flag not available in ARM64\n"
	}
	return fmt.Sprintf("    cset %s, %s\n", g.ResolveOperand(dst), name)
}

func (g *arm64) Cmps(a, b string) string {
	return fmt.Sprintf("    ldr x16, %s\n    ldr x17, %s\n    cmp x16, x17\n",
		g.ResolveMemory(a), g.ResolveMemory(b))
}

func (g *arm64) Scas(src, val string) string {
	return fmt.Sprintf("    ldr x16, %s\n    cmp x16, %s\n", g.ResolveMemory(src), g.immOrReg(val))
}

func (g *arm64) Stos(dst, src string) string {
	srcOp, setup := g.scratchFor(src, "x16")
	return setup + fmt.Sprintf("    str %s, %s\n", srcOp, g.ResolveMemory(dst))
}

func (g *arm64) Lods(dst, src string) string {
	return fmt.Sprintf("    ldr %s, %s\n", g.ResolveOperand(dst), g.ResolveMemory(src))
}

func (g *arm64) Movs(dst, src string) string {
	return fmt.Sprintf("    ldr x16, %s\n    str x16, %s\n", g.ResolveMemory(src), g.ResolveMemory(dst))
}

func (g *arm64) Cbw(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    sxtb %s, %s\n", dstReg, wReg(dstReg))
}

func (g *arm64) Cwd(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    sxth %s, %s\n", dstReg, wReg(dstReg))
}

func (g *arm64) Cdq(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    sxtw %s, %s\n", dstReg, wReg(dstReg))
}

func (g *arm64) Cqo(dst string) string {
	return "    // CQO: 128-bit sign extension not available in ARM64\n"
}

func (g *arm64) Cwde(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    sxth %s, %s\n", dstReg, wReg(dstReg))
}

func (g *arm64) Cdqe(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    sxtw %s, %s\n", dstReg, wReg(dstReg))
}

func (g *arm64) Jmp(label string) string {
	return fmt.Sprintf("    b %s\n", label)
}

func (g *arm64) Jcc(cc vasm.CondCode, label string) string {
	name := arm64CondName[cc]
	if name == "" {
		return "    // Parity flag not available in ARM64\n"
	}
	return fmt.Sprintf("    b.%s %s\n", name, label)
}

func (g *arm64) Loop(cc vasm.CondCode, label string) string {
	branch := "b.eq"
	if cc == vasm.CondNe {
		branch = "b.ne"
	}
	return fmt.Sprintf("    subs x16, x16, #1\n    %s %s\n", branch, label)
}

func (g *arm64) Call(fn string) string {
	return fmt.Sprintf("    bl %s\n", fn)
}

func (g *arm64) Ret() string { return "    ret\n" }

func (g *arm64) In(dst, port string) string {
	return "    // IN instruction not available in ARM64\n"
}

func (g *arm64) Out(port, src string) string {
	return "    // OUT instruction not available in ARM64\n"
}

func (g *arm64) Ins(dst, port string) string {
	return "    // INS instruction not available in ARM64\n"
}

func (g *arm64) Outs(port, src string) string {
	return "    // OUTS instruction not available in ARM64\n"
}

func (g *arm64) Cpuid() string { return "    // CPUID not available in ARM64\n" }

func (g *arm64) Lfence() string { return "    dmb ishld\n" }
func (g *arm64) Sfence() string { return "    dmb ishst\n" }
func (g *arm64) Mfence() string { return "    dmb ish\n" }

func (g *arm64) Prefetch(addr string) string {
	return fmt.Sprintf("    prfm pldl1keep, %s\n", g.ResolveMemory(addr))
}

// cacheAddr extracts the register holding the target address for the
// dc cache maintenance instructions.
func (g *arm64) cacheAddr(addr string) (string, bool) {
	m, ok := parseMem(addr)
	if !ok || m.sign != "" {
		return "", false
	}
	mapped, ok := g.regs[m.base]
	return mapped, ok
}

func (g *arm64) Clflush(addr string) string {
	if reg, ok := g.cacheAddr(addr); ok {
		return fmt.Sprintf("    dc civac, %s\n", reg)
	}
	return fmt.Sprintf("    // Cache flush needs a register address: %s\n", addr)
}

func (g *arm64) Clwb(addr string) string {
	if reg, ok := g.cacheAddr(addr); ok {
		return fmt.Sprintf("    dc cvac, %s\n", reg)
	}
	return fmt.Sprintf("    // Cache writeback needs a register address: %s\n", addr)
}

var arm64Syscalls = map[string]int{
	"read": 63, "write": 64, "openat": 56, "close": 57,
	"exit": 93, "mmap": 222, "munmap": 215, "brk": 214,
}

func (g *arm64) Syscall(name string) string {
	num, ok := arm64Syscalls[name]
	if !ok {
		return fmt.Sprintf("    // Unknown syscall: %s\n    mov x8, #0\n    svc 0\n", name)
	}
	return fmt.Sprintf("    mov x8, #%d\n    svc 0\n", num)
}

func (g *arm64) Align(n string) string {
	return fmt.Sprintf(".align %s\n", n)
}
