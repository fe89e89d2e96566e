package arch

import (
	"fmt"
	"strings"

	"github.com/raymyers/uasm/pkg/vasm"
)

// riscv lowers to RV64 assembly. Comparison results live in t6 as a
// signed difference; conditional branches and sets consume it with
// the zero-compare forms. t5 serves as the secondary scratch.
type riscv struct {
	regs map[string]string
}

func newRISCV() *riscv {
	regs := map[string]string{
		"sp": "sp", "sb": "s0", "fp": "s0", "ip": "ra", "lr": "ra",
	}
	for i := 0; i <= 7; i++ {
		regs[fmt.Sprintf("r%d", i)] = fmt.Sprintf("a%d", i)
	}
	for i := 8; i <= 14; i++ {
		regs[fmt.Sprintf("r%d", i)] = fmt.Sprintf("t%d", i-8)
	}
	for i := 19; i <= 22; i++ {
		regs[fmt.Sprintf("r%d", i)] = fmt.Sprintf("s%d", i-19)
	}
	return &riscv{regs: regs}
}

func (g *riscv) RegisterMap() map[string]string { return g.regs }

func (g *riscv) SyntaxHeader() string {
	return ".text\n\n"
}

func (g *riscv) ResolveOperand(operand string) string {
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

func (g *riscv) ResolveMemory(operand string) string {
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
		return fmt.Sprintf("0(%s)", base)
	case isImmediate(m.off):
		return fmt.Sprintf("%s(%s)", signedOff(m.sign, m.off), base)
	default:
		off := m.off
		if mapped, ok := g.regs[off]; ok {
			off = mapped
		}
		// register offsets need an add, handled at the load/store
		return fmt.Sprintf("%s(%s)", off, base)
	}
}

// fitsImm12 reports whether v fits the signed 12-bit immediate field
func fitsImm12(v int64) bool { return v >= -2048 && v <= 2047 }

// scratchFor materializes an immediate into the named scratch
// register, returning the operand to use and any setup lines.
func (g *riscv) scratchFor(src, scratch string) (string, string) {
	op := g.ResolveOperand(src)
	if isImmediate(op) {
		return scratch, fmt.Sprintf("    li %s, %s\n", scratch, op)
	}
	return op, ""
}

// loadAddr resolves a memory operand to a simple off(base) form,
// synthesizing register offsets and symbolic bases through scratch.
func (g *riscv) loadAddr(operand, scratch string) (string, string) {
	m, ok := parseMem(operand)
	if !ok {
		return fmt.Sprintf("0(%s)", scratch), fmt.Sprintf("    la %s, %s\n", scratch, operand)
	}
	base := m.base
	if mapped, ok := g.regs[base]; ok {
		base = mapped
	} else if m.sign == "" {
		return fmt.Sprintf("0(%s)", scratch), fmt.Sprintf("    la %s, %s\n", scratch, base)
	}
	switch {
	case m.sign == "":
		return fmt.Sprintf("0(%s)", base), ""
	case isImmediate(m.off):
		return fmt.Sprintf("%s(%s)", signedOff(m.sign, m.off), base), ""
	default:
		off := m.off
		if mapped, ok := g.regs[off]; ok {
			off = mapped
		}
		op := "add"
		if m.sign == "-" {
			op = "sub"
		}
		return fmt.Sprintf("0(%s)", scratch), fmt.Sprintf("    %s %s, %s, %s\n", op, scratch, base, off)
	}
}

func (g *riscv) Mov(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)

	if v, ok := parseImm(srcOp); ok {
		if fitsImm12(v) {
			return fmt.Sprintf("    addi %s, zero, %d\n", dstReg, v)
		}
		// lui loads the upper 20 bits; the +0x800 rounds so the
		// sign-extended addi lands on the exact value
		upper := (v + 0x800) >> 12
		lower := v - (upper << 12)
		if lower == 0 {
			return fmt.Sprintf("    lui %s, %d\n", dstReg, upper)
		}
		return fmt.Sprintf("    lui %s, %d\n    addi %s, %s, %d\n", dstReg, upper, dstReg, dstReg, lower)
	}

	if _, ok := g.regs[src]; ok || riscvPhysical(srcOp) {
		return fmt.Sprintf("    mv %s, %s\n", dstReg, srcOp)
	}
	return fmt.Sprintf("    la %s, %s\n", dstReg, srcOp)
}

// riscvPhysical reports whether the name is already a physical register
func riscvPhysical(s string) bool {
	switch s {
	case "sp", "ra", "gp", "tp", "zero":
		return true
	}
	if len(s) < 2 {
		return false
	}
	switch s[0] {
	case 'a', 't', 's':
		return s[1] >= '0' && s[1] <= '9'
	}
	return false
}

func (g *riscv) Lea(dst, src string) string {
	inner := src
	if m, ok := parseMem(src); ok && m.sign == "" {
		inner = m.base
	}
	return fmt.Sprintf("    la %s, %s\n", g.ResolveOperand(dst), inner)
}

func (g *riscv) Load(dst, src string) string {
	addr, setup := g.loadAddr(src, "t6")
	return setup + fmt.Sprintf("    ld %s, %s\n", g.ResolveOperand(dst), addr)
}

func (g *riscv) Store(dst, src string) string {
	srcOp, srcSetup := g.scratchFor(src, "t5")
	addr, addrSetup := g.loadAddr(dst, "t6")
	return srcSetup + addrSetup + fmt.Sprintf("    sd %s, %s\n", srcOp, addr)
}

// riscvBranch maps condition codes to the zero-compare branch that
// consumes the t6 difference; unsigned conditions approximate with
// the signed forms.
var riscvBranch = []string{
	"beqz", "bnez", "bltz", "blez", "bgtz", "bgez", "", "",
	"bltz", "bgez", "", "", "bgtz", "bgez", "bltz", "blez",
}

// riscvOppBranch holds the inverted branch for branch-around synthesis
var riscvOppBranch = []string{
	"bnez", "beqz", "bgez", "bgtz", "blez", "bltz", "", "",
	"bgez", "bltz", "", "", "blez", "bltz", "bgez", "bgtz",
}

func (g *riscv) Cmov(cc vasm.CondCode, dst, src string) string {
	opp := riscvOppBranch[cc]
	if opp == "" {
		return "    // Condition flag not available in RISC-V\n"
	}
	dstReg := g.ResolveOperand(dst)
	srcOp, setup := g.scratchFor(src, "t5")
	end := fmt.Sprintf(".Lcmov_end_%d", synthLabel(dst, src, int(cc)))
	return fmt.Sprintf("    %s t6, %s\n", opp, end) +
		setup +
		fmt.Sprintf("    mv %s, %s\n%s:\n", dstReg, srcOp, end)
}

func (g *riscv) Push(src string) string {
	srcOp, setup := g.scratchFor(src, "t5")
	return setup + fmt.Sprintf("    addi sp, sp, -8\n    sd %s, 0(sp)\n", srcOp)
}

func (g *riscv) Pop(dst string) string {
	return fmt.Sprintf("    ld %s, 0(sp)\n    addi sp, sp, 8\n", g.ResolveOperand(dst))
}

func (g *riscv) PushAll() string {
	var b strings.Builder
	b.WriteString("    addi sp, sp, -64\n")
	for i := 0; i <= 7; i++ {
		fmt.Fprintf(&b, "    sd a%d, %d(sp)\n", i, i*8)
	}
	return b.String()
}

func (g *riscv) PopAll() string {
	var b strings.Builder
	for i := 7; i >= 0; i-- {
		fmt.Fprintf(&b, "    ld a%d, %d(sp)\n", i, i*8)
	}
	b.WriteString("    addi sp, sp, 64\n")
	return b.String()
}

func (g *riscv) Enter(frameSize, nesting string) string {
	return fmt.Sprintf("    addi sp, sp, -16\n    sd ra, 8(sp)\n    sd s0, 0(sp)\n    mv s0, sp\n    addi sp, sp, -%s\n", frameSize)
}

func (g *riscv) Leave() string {
	return "    mv sp, s0\n    ld s0, 0(sp)\n    ld ra, 8(sp)\n    addi sp, sp, 16\n"
}

// binOp picks the immediate form when the source fits 12 bits,
// otherwise spills through t5.
func (g *riscv) binOp(op, dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)
	if v, ok := parseImm(srcOp); ok {
		if fitsImm12(v) {
			return fmt.Sprintf("    %si %s, %s, %d\n", op, dstReg, dstReg, v)
		}
		return fmt.Sprintf("    li t5, %d\n    %s %s, %s, t5\n", v, op, dstReg, dstReg)
	}
	return fmt.Sprintf("    %s %s, %s, %s\n", op, dstReg, dstReg, srcOp)
}

// regOp always uses the register form, spilling immediates to t5
func (g *riscv) regOp(op, dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp, setup := g.scratchFor(src, "t5")
	return setup + fmt.Sprintf("    %s %s, %s, %s\n", op, dstReg, dstReg, srcOp)
}

func (g *riscv) Add(dst, src string) string { return g.binOp("add", dst, src) }

func (g *riscv) Sub(dst, src string) string {
	srcOp := g.ResolveOperand(src)
	if v, ok := parseImm(srcOp); ok && fitsImm12(-v) {
		dstReg := g.ResolveOperand(dst)
		return fmt.Sprintf("    addi %s, %s, %d\n", dstReg, dstReg, -v)
	}
	return g.regOp("sub", dst, src)
}

func (g *riscv) Mul(dst, src string) string  { return g.regOp("mul", dst, src) }
func (g *riscv) Imul(dst, src string) string { return g.regOp("mul", dst, src) }
func (g *riscv) Div(dst, src string) string  { return g.regOp("divu", dst, src) }
func (g *riscv) Idiv(dst, src string) string { return g.regOp("div", dst, src) }
func (g *riscv) Mod(dst, src string) string  { return g.regOp("rem", dst, src) }

func (g *riscv) Inc(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    addi %s, %s, 1\n", dstReg, dstReg)
}

func (g *riscv) Dec(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    addi %s, %s, -1\n", dstReg, dstReg)
}

func (g *riscv) Neg(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    neg %s, %s\n", dstReg, dstReg)
}

func (g *riscv) And(dst, src string) string { return g.binOp("and", dst, src) }
func (g *riscv) Or(dst, src string) string  { return g.binOp("or", dst, src) }
func (g *riscv) Xor(dst, src string) string { return g.binOp("xor", dst, src) }

func (g *riscv) Not(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    not %s, %s\n", dstReg, dstReg)
}

func (g *riscv) Andn(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp, setup := g.scratchFor(src, "t5")
	return setup + fmt.Sprintf("    not t6, %s\n    and %s, %s, t6\n", srcOp, dstReg, dstReg)
}

func (g *riscv) shiftOp(op, dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)
	if isImmediate(srcOp) {
		return fmt.Sprintf("    %si %s, %s, %s\n", op, dstReg, dstReg, srcOp)
	}
	return fmt.Sprintf("    %s %s, %s, %s\n", op, dstReg, dstReg, srcOp)
}

func (g *riscv) Shl(dst, src string) string { return g.shiftOp("sll", dst, src) }
func (g *riscv) Shr(dst, src string) string { return g.shiftOp("srl", dst, src) }
func (g *riscv) Sal(dst, src string) string { return g.shiftOp("sll", dst, src) }
func (g *riscv) Sar(dst, src string) string { return g.shiftOp("sra", dst, src) }

func (g *riscv) rotate(left bool, dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)
	fwd, back := "sll", "srl"
	if !left {
		fwd, back = "srl", "sll"
	}
	if v, ok := parseImm(srcOp); ok {
		n := ((v % 64) + 64) % 64
		if n == 0 {
			return ""
		}
		// both shift amounts stay in the 1..63 shamt range
		return fmt.Sprintf("    %si t5, %s, %d\n    %si %s, %s, %d\n    or %s, %s, t5\n",
			fwd, dstReg, n, back, dstReg, dstReg, 64-n, dstReg, dstReg)
	}
	return fmt.Sprintf("    %s t5, %s, %s\n    li t6, 64\n    sub t6, t6, %s\n    %s %s, %s, t6\n    or %s, %s, t5\n",
		fwd, dstReg, srcOp, srcOp, back, dstReg, dstReg, dstReg, dstReg)
}

func (g *riscv) Rol(dst, src string) string { return g.rotate(true, dst, src) }
func (g *riscv) Ror(dst, src string) string { return g.rotate(false, dst, src) }

func (g *riscv) Rcl(dst, src string) string {
	return "    // RCL not available in RISC-V - would need carry flag emulation\n"
}

func (g *riscv) Rcr(dst, src string) string {
	return "    // RCR not available in RISC-V - would need carry flag emulation\n"
}

func (g *riscv) Bextr(dst, src, ctrl string) string {
	start, length, ok := splitBextrCtrl(ctrl)
	if !ok {
		return fmt.Sprintf("    // Invalid bextr immediate format: %s\n", ctrl)
	}
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    // Bit field extract emulation\n    slli %s, %s, %d\n    srli %s, %s, %d\n",
		dstReg, g.ResolveOperand(src), 64-(start+length), dstReg, dstReg, 64-length)
}

func (g *riscv) Bsf(dst, src string) string {
	return fmt.Sprintf("    ctz %s, %s\n", g.ResolveOperand(dst), g.ResolveOperand(src))
}

func (g *riscv) Bsr(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    clz %s, %s\n    li t6, 63\n    sub %s, t6, %s\n",
		dstReg, g.ResolveOperand(src), dstReg, dstReg)
}

func (g *riscv) Cmp(a, b string) string {
	aReg := g.ResolveOperand(a)
	bOp, setup := g.scratchFor(b, "t5")
	return setup + fmt.Sprintf("    sub t6, %s, %s\n", aReg, bOp)
}

func (g *riscv) Test(a, b string) string {
	aReg := g.ResolveOperand(a)
	bOp := g.ResolveOperand(b)
	if v, ok := parseImm(bOp); ok && fitsImm12(v) {
		return fmt.Sprintf("    andi t6, %s, %d\n", aReg, v)
	}
	bOp, setup := g.scratchFor(b, "t5")
	return setup + fmt.Sprintf("    and t6, %s, %s\n", aReg, bOp)
}

func (g *riscv) bitOp(comment, tail, dst, bit string) string {
	dstReg := g.ResolveOperand(dst)
	bitOp := g.ResolveOperand(bit)
	var b strings.Builder
	fmt.Fprintf(&b, "    // %s\n    li t5, 1\n", comment)
	if isImmediate(bitOp) {
		fmt.Fprintf(&b, "    slli t5, t5, %s\n", bitOp)
	} else {
		fmt.Fprintf(&b, "    sll t5, t5, %s\n", bitOp)
	}
	fmt.Fprintf(&b, "    and t6, %s, t5\n", dstReg)
	switch tail {
	case "clear":
		fmt.Fprintf(&b, "    not t5, t5\n    and %s, %s, t5\n", dstReg, dstReg)
	case "set":
		fmt.Fprintf(&b, "    or %s, %s, t5\n", dstReg, dstReg)
	case "flip":
		fmt.Fprintf(&b, "    xor %s, %s, t5\n", dstReg, dstReg)
	}
	return b.String()
}

func (g *riscv) Bt(dst, bit string) string  { return g.bitOp("Bit test", "", dst, bit) }
func (g *riscv) Btr(dst, bit string) string { return g.bitOp("Bit test and reset", "clear", dst, bit) }
func (g *riscv) Bts(dst, bit string) string { return g.bitOp("Bit test and set", "set", dst, bit) }
func (g *riscv) Btc(dst, bit string) string {
	return g.bitOp("Bit test and complement", "flip", dst, bit)
}

func (g *riscv) Set(cc vasm.CondCode, dst string) string {
	dstReg := g.ResolveOperand(dst)
	switch cc {
	case vasm.CondEq:
		return fmt.Sprintf("    seqz %s, t6\n", dstReg)
	case vasm.CondNe:
		return fmt.Sprintf("    snez %s, t6\n", dstReg)
	case vasm.CondLt, vasm.CondS, vasm.CondB:
		return fmt.Sprintf("    sltz %s, t6\n", dstReg)
	case vasm.CondGe, vasm.CondNs, vasm.CondAe:
		return fmt.Sprintf("    sltz %s, t6\n    xori %s, %s, 1\n", dstReg, dstReg, dstReg)
	case vasm.CondGt, vasm.CondA:
		return fmt.Sprintf("    sgtz %s, t6\n", dstReg)
	case vasm.CondLe, vasm.CondBe:
		return fmt.Sprintf("    sgtz %s, t6\n    xori %s, %s, 1\n", dstReg, dstReg, dstReg)
	}
	return "    // Condition flag not available in RISC-V\n"
}

func (g *riscv) Cmps(a, b string) string {
	aAddr, aSetup := g.loadAddr(a, "t6")
	bAddr, bSetup := g.loadAddr(b, "t5")
	return aSetup + bSetup +
		fmt.Sprintf("    ld t5, %s\n    ld t6, %s\n    sub t6, t5, t6\n", aAddr, bAddr)
}

func (g *riscv) Scas(src, val string) string {
	addr, setup := g.loadAddr(src, "t6")
	valOp, valSetup := g.scratchFor(val, "t5")
	return setup + valSetup +
		fmt.Sprintf("    ld t6, %s\n    sub t6, t6, %s\n", addr, valOp)
}

func (g *riscv) Stos(dst, src string) string {
	srcOp, srcSetup := g.scratchFor(src, "t5")
	addr, addrSetup := g.loadAddr(dst, "t6")
	return srcSetup + addrSetup + fmt.Sprintf("    sd %s, %s\n", srcOp, addr)
}

func (g *riscv) Lods(dst, src string) string {
	addr, setup := g.loadAddr(src, "t6")
	return setup + fmt.Sprintf("    ld %s, %s\n", g.ResolveOperand(dst), addr)
}

func (g *riscv) Movs(dst, src string) string {
	srcAddr, srcSetup := g.loadAddr(src, "t6")
	dstAddr, dstSetup := g.loadAddr(dst, "t5")
	return srcSetup + fmt.Sprintf("    ld t6, %s\n", srcAddr) +
		dstSetup + fmt.Sprintf("    sd t6, %s\n", dstAddr)
}

// signExtend narrows then re-widens through a shift pair
func (g *riscv) signExtend(dst string, bits int) string {
	dstReg := g.ResolveOperand(dst)
	n := 64 - bits
	return fmt.Sprintf("    slli %s, %s, %d\n    srai %s, %s, %d\n", dstReg, dstReg, n, dstReg, dstReg, n)
}

func (g *riscv) Cbw(dst string) string { return g.signExtend(dst, 8) }
func (g *riscv) Cwd(dst string) string { return g.signExtend(dst, 16) }

func (g *riscv) Cdq(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    sext.w %s, %s\n", dstReg, dstReg)
}

func (g *riscv) Cqo(dst string) string {
	return "    // CQO: 128-bit sign extension not available in RISC-V\n"
}

func (g *riscv) Cwde(dst string) string { return g.signExtend(dst, 16) }

func (g *riscv) Cdqe(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    sext.w %s, %s\n", dstReg, dstReg)
}

func (g *riscv) Jmp(label string) string {
	return fmt.Sprintf("    j %s\n", label)
}

func (g *riscv) Jcc(cc vasm.CondCode, label string) string {
	branch := riscvBranch[cc]
	if branch == "" {
		return "    // Condition flag not available in RISC-V\n"
	}
	return fmt.Sprintf("    %s t6, %s\n", branch, label)
}

func (g *riscv) Loop(cc vasm.CondCode, label string) string {
	branch := "bnez"
	if cc == vasm.CondNe {
		branch = "beqz"
	}
	return fmt.Sprintf("    addi t5, t5, -1\n    %s t5, %s\n", branch, label)
}

func (g *riscv) Call(fn string) string {
	return fmt.Sprintf("    call %s\n", fn)
}

func (g *riscv) Ret() string { return "    ret\n" }

func (g *riscv) In(dst, port string) string {
	return "    // IN instruction not available in RISC-V\n"
}

func (g *riscv) Out(port, src string) string {
	return "    // OUT instruction not available in RISC-V\n"
}

func (g *riscv) Ins(dst, port string) string {
	return "    // INS instruction not available in RISC-V\n"
}

func (g *riscv) Outs(port, src string) string {
	return "    // OUTS instruction not available in RISC-V\n"
}

func (g *riscv) Cpuid() string { return "    // CPUID not available in RISC-V\n" }

func (g *riscv) Lfence() string { return "    fence r, r\n" }
func (g *riscv) Sfence() string { return "    fence w, w\n" }
func (g *riscv) Mfence() string { return "    fence rw, rw\n" }

func (g *riscv) Prefetch(addr string) string {
	return fmt.Sprintf("    // Prefetch hint not available in base RISC-V: %s\n", addr)
}

func (g *riscv) Clflush(addr string) string {
	return fmt.Sprintf("    // Cache flush requires the Zicbom extension: %s\n", addr)
}

func (g *riscv) Clwb(addr string) string {
	return fmt.Sprintf("    // Cache writeback requires the Zicbom extension: %s\n", addr)
}

var riscvSyscalls = map[string]int{
	"read": 63, "write": 64, "openat": 56, "close": 57,
	"exit": 93, "mmap": 222, "munmap": 215, "brk": 214,
}

func (g *riscv) Syscall(name string) string {
	num, ok := riscvSyscalls[name]
	if !ok {
		return fmt.Sprintf("    // Unknown syscall: %s\n    li a7, 0\n    ecall\n", name)
	}
	return fmt.Sprintf("    li a7, %d\n    ecall\n", num)
}

func (g *riscv) Align(n string) string {
	return fmt.Sprintf(".align %s\n", n)
}
