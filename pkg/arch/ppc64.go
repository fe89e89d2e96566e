package arch

import (
	"fmt"
	"strings"

	"github.com/raymyers/uasm/pkg/vasm"
)

// ppc64 lowers to 64-bit PowerPC assembly (ELFv2 flavor). Comparisons
// go through cr0 and r11/r12 serve as scratch for synthesized
// sequences.
type ppc64 struct {
	regs map[string]string
}

func newPowerPC64() *ppc64 {
	regs := map[string]string{
		"r8": "r11", "r9": "r12", "r10": "r0",
		"sp": "r1", "sb": "r31", "fp": "r31", "ip": "lr",
	}
	for i := 0; i <= 7; i++ {
		regs[fmt.Sprintf("r%d", i)] = fmt.Sprintf("r%d", i+3)
	}
	for i := 11; i <= 15; i++ {
		regs[fmt.Sprintf("r%d", i)] = fmt.Sprintf("r%d", 31-(i-11))
	}
	for i := 19; i <= 22; i++ {
		regs[fmt.Sprintf("r%d", i)] = fmt.Sprintf("r%d", i-5)
	}
	return &ppc64{regs: regs}
}

func (g *ppc64) RegisterMap() map[string]string { return g.regs }

func (g *ppc64) SyntaxHeader() string {
	return ".text\n\n"
}

func (g *ppc64) ResolveOperand(operand string) string {
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

func (g *ppc64) ResolveMemory(operand string) string {
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
		return fmt.Sprintf("%s(%s)", off, base)
	}
}

// fitsImm16 reports whether v fits the signed 16-bit immediate field
func fitsImm16(v int64) bool { return v >= -32768 && v <= 32767 }

func (g *ppc64) scratchFor(src, scratch string) (string, string) {
	op := g.ResolveOperand(src)
	if v, ok := parseImm(op); ok {
		if fitsImm16(v) {
			return scratch, fmt.Sprintf("    li %s, %d\n", scratch, v)
		}
		return scratch, g.wideImm(scratch, v)
	}
	return op, ""
}

// wideImm builds a constant wider than 16 bits through lis/ori
func (g *ppc64) wideImm(reg string, v int64) string {
	high := (v >> 16) & 0xFFFF
	low := v & 0xFFFF
	if low == 0 {
		return fmt.Sprintf("    lis %s, %d\n", reg, high)
	}
	return fmt.Sprintf("    lis %s, %d\n    ori %s, %s, %d\n", reg, high, reg, reg, low)
}

// loadAddr resolves a memory operand to off(base), synthesizing
// register offsets and symbolic bases through scratch.
func (g *ppc64) loadAddr(operand, scratch string) (string, string) {
	m, ok := parseMem(operand)
	if !ok {
		return fmt.Sprintf("%s@l(%s)", operand, scratch),
			fmt.Sprintf("    lis %s, %s@ha\n", scratch, operand)
	}
	base := m.base
	if mapped, ok := g.regs[base]; ok {
		base = mapped
	} else if m.sign == "" {
		return fmt.Sprintf("%s@l(%s)", m.base, scratch),
			fmt.Sprintf("    lis %s, %s@ha\n", scratch, m.base)
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
			op = "subf"
			return fmt.Sprintf("0(%s)", scratch),
				fmt.Sprintf("    %s %s, %s, %s\n", op, scratch, off, base)
		}
		return fmt.Sprintf("0(%s)", scratch),
			fmt.Sprintf("    %s %s, %s, %s\n", op, scratch, base, off)
	}
}

func (g *ppc64) Mov(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)

	if v, ok := parseImm(srcOp); ok {
		if fitsImm16(v) {
			return fmt.Sprintf("    li %s, %d\n", dstReg, v)
		}
		return g.wideImm(dstReg, v)
	}

	if _, ok := g.regs[src]; ok || ppcPhysical(srcOp) {
		return fmt.Sprintf("    mr %s, %s\n", dstReg, srcOp)
	}
	return fmt.Sprintf("    lis %s, %s@ha\n    addi %s, %s, %s@l\n", dstReg, srcOp, dstReg, dstReg, srcOp)
}

func ppcPhysical(s string) bool {
	if s == "lr" {
		return false
	}
	return len(s) >= 2 && s[0] == 'r' && s[1] >= '0' && s[1] <= '9'
}

func (g *ppc64) Lea(dst, src string) string {
	inner := src
	if m, ok := parseMem(src); ok && m.sign == "" {
		inner = m.base
	}
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    lis %s, %s@ha\n    addi %s, %s, %s@l\n", dstReg, inner, dstReg, dstReg, inner)
}

func (g *ppc64) Load(dst, src string) string {
	addr, setup := g.loadAddr(src, "r12")
	return setup + fmt.Sprintf("    ld %s, %s\n", g.ResolveOperand(dst), addr)
}

func (g *ppc64) Store(dst, src string) string {
	srcOp, srcSetup := g.scratchFor(src, "r11")
	addr, addrSetup := g.loadAddr(dst, "r12")
	return srcSetup + addrSetup + fmt.Sprintf("    std %s, %s\n", srcOp, addr)
}

// ppcBranch maps condition codes to cr0 branch mnemonics; unsigned
// conditions approximate with the signed forms and parity has no
// equivalent.
var ppcBranch = []string{
	"beq", "bne", "blt", "ble", "bgt", "bge", "bso", "bns",
	"blt", "bge", "", "", "bgt", "bge", "blt", "ble",
}

var ppcOppBranch = []string{
	"bne", "beq", "bge", "bgt", "ble", "blt", "bns", "bso",
	"bge", "blt", "", "", "ble", "blt", "bge", "bgt",
}

func (g *ppc64) Cmov(cc vasm.CondCode, dst, src string) string {
	opp := ppcOppBranch[cc]
	if opp == "" {
		return "    # Parity flag not available in PowerPC\n"
	}
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)
	end := fmt.Sprintf(".Lcmov_end_%d", synthLabel(dst, src, int(cc)))
	move := fmt.Sprintf("    mr %s, %s\n", dstReg, srcOp)
	if v, ok := parseImm(srcOp); ok {
		if fitsImm16(v) {
			move = fmt.Sprintf("    li %s, %d\n", dstReg, v)
		} else {
			move = g.wideImm(dstReg, v)
		}
	}
	return fmt.Sprintf("    %s %s\n", opp, end) + move + end + ":\n"
}

func (g *ppc64) Push(src string) string {
	srcOp, setup := g.scratchFor(src, "r11")
	return setup + fmt.Sprintf("    stdu %s, -8(r1)\n", srcOp)
}

func (g *ppc64) Pop(dst string) string {
	return fmt.Sprintf("    ld %s, 0(r1)\n    addi r1, r1, 8\n", g.ResolveOperand(dst))
}

func (g *ppc64) PushAll() string {
	var b strings.Builder
	b.WriteString("    addi r1, r1, -64\n")
	for i := 3; i <= 10; i++ {
		fmt.Fprintf(&b, "    std r%d, %d(r1)\n", i, (i-3)*8)
	}
	return b.String()
}

func (g *ppc64) PopAll() string {
	var b strings.Builder
	for i := 10; i >= 3; i-- {
		fmt.Fprintf(&b, "    ld r%d, %d(r1)\n", i, (i-3)*8)
	}
	b.WriteString("    addi r1, r1, 64\n")
	return b.String()
}

func (g *ppc64) Enter(frameSize, nesting string) string {
	return fmt.Sprintf("    mflr r0\n    std r0, 16(r1)\n    stdu r1, -%s(r1)\n", frameSize)
}

func (g *ppc64) Leave() string {
	return "    ld r1, 0(r1)\n    ld r0, 16(r1)\n    mtlr r0\n"
}

func (g *ppc64) Add(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)
	if v, ok := parseImm(srcOp); ok && fitsImm16(v) {
		return fmt.Sprintf("    addi %s, %s, %d\n", dstReg, dstReg, v)
	}
	srcOp, setup := g.scratchFor(src, "r11")
	return setup + fmt.Sprintf("    add %s, %s, %s\n", dstReg, dstReg, srcOp)
}

func (g *ppc64) Sub(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)
	if v, ok := parseImm(srcOp); ok && fitsImm16(-v) {
		return fmt.Sprintf("    addi %s, %s, %d\n", dstReg, dstReg, -v)
	}
	srcOp, setup := g.scratchFor(src, "r11")
	return setup + fmt.Sprintf("    subf %s, %s, %s\n", dstReg, srcOp, dstReg)
}

func (g *ppc64) Mul(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)
	if v, ok := parseImm(srcOp); ok && fitsImm16(v) {
		return fmt.Sprintf("    mulli %s, %s, %d\n", dstReg, dstReg, v)
	}
	srcOp, setup := g.scratchFor(src, "r11")
	return setup + fmt.Sprintf("    mulld %s, %s, %s\n", dstReg, dstReg, srcOp)
}

func (g *ppc64) Imul(dst, src string) string { return g.Mul(dst, src) }

func (g *ppc64) Div(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp, setup := g.scratchFor(src, "r11")
	return setup + fmt.Sprintf("    divdu %s, %s, %s\n", dstReg, dstReg, srcOp)
}

func (g *ppc64) Idiv(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp, setup := g.scratchFor(src, "r11")
	return setup + fmt.Sprintf("    divd %s, %s, %s\n", dstReg, dstReg, srcOp)
}

func (g *ppc64) Mod(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp, setup := g.scratchFor(src, "r11")
	// Remainder via divide, multiply back, subtract
	return setup + fmt.Sprintf("    divd r12, %s, %s\n    mulld r12, r12, %s\n    subf %s, r12, %s\n",
		dstReg, srcOp, srcOp, dstReg, dstReg)
}

func (g *ppc64) Inc(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    addi %s, %s, 1\n", dstReg, dstReg)
}

func (g *ppc64) Dec(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    addi %s, %s, -1\n", dstReg, dstReg)
}

func (g *ppc64) Neg(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    neg %s, %s\n", dstReg, dstReg)
}

func (g *ppc64) logOp(regForm, immForm, dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)
	if v, ok := parseImm(srcOp); ok && v >= 0 && v <= 65535 {
		return fmt.Sprintf("    %s %s, %s, %d\n", immForm, dstReg, dstReg, v)
	}
	srcOp, setup := g.scratchFor(src, "r11")
	return setup + fmt.Sprintf("    %s %s, %s, %s\n", regForm, dstReg, dstReg, srcOp)
}

func (g *ppc64) And(dst, src string) string { return g.logOp("and", "andi.", dst, src) }
func (g *ppc64) Or(dst, src string) string  { return g.logOp("or", "ori", dst, src) }
func (g *ppc64) Xor(dst, src string) string { return g.logOp("xor", "xori", dst, src) }

func (g *ppc64) Not(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    not %s, %s\n", dstReg, dstReg)
}

func (g *ppc64) Andn(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp, setup := g.scratchFor(src, "r11")
	return setup + fmt.Sprintf("    andc %s, %s, %s\n", dstReg, dstReg, srcOp)
}

func (g *ppc64) shiftOp(regForm, immForm, dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)
	if isImmediate(srcOp) {
		return fmt.Sprintf("    %s %s, %s, %s\n", immForm, dstReg, dstReg, srcOp)
	}
	return fmt.Sprintf("    %s %s, %s, %s\n", regForm, dstReg, dstReg, srcOp)
}

func (g *ppc64) Shl(dst, src string) string { return g.shiftOp("sld", "sldi", dst, src) }
func (g *ppc64) Shr(dst, src string) string { return g.shiftOp("srd", "srdi", dst, src) }
func (g *ppc64) Sal(dst, src string) string { return g.shiftOp("sld", "sldi", dst, src) }
func (g *ppc64) Sar(dst, src string) string { return g.shiftOp("srad", "sradi", dst, src) }

func (g *ppc64) Rol(dst, src string) string {
	return g.shiftOp("rotld", "rotldi", dst, src)
}

func (g *ppc64) Ror(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)
	if v, ok := parseImm(srcOp); ok {
		return fmt.Sprintf("    rotldi %s, %s, %d\n", dstReg, dstReg, (64-(v%64))%64)
	}
	return fmt.Sprintf("    subfic r11, %s, 64\n    rotld %s, %s, r11\n", srcOp, dstReg, dstReg)
}

func (g *ppc64) Rcl(dst, src string) string {
	return "    # RCL not available in PowerPC - would need carry flag emulation\n"
}

func (g *ppc64) Rcr(dst, src string) string {
	return "    # RCR not available in PowerPC - would need carry flag emulation\n"
}

func (g *ppc64) Bextr(dst, src, ctrl string) string {
	start, length, ok := splitBextrCtrl(ctrl)
	if !ok {
		return fmt.Sprintf("    # Invalid bextr immediate format: %s\n", ctrl)
	}
	// rldicl rotates left then clears the high bits, which is a
	// shift-right-and-mask when the rotation is 64-start
	return fmt.Sprintf("    rldicl %s, %s, %d, %d\n",
		g.ResolveOperand(dst), g.ResolveOperand(src), (64-start)%64, 64-length)
}

func (g *ppc64) Bsf(dst, src string) string {
	return fmt.Sprintf("    cnttzd %s, %s\n", g.ResolveOperand(dst), g.ResolveOperand(src))
}

func (g *ppc64) Bsr(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    cntlzd %s, %s\n    li r11, 63\n    subf %s, %s, r11\n",
		dstReg, g.ResolveOperand(src), dstReg, dstReg)
}

func (g *ppc64) Cmp(a, b string) string {
	aReg := g.ResolveOperand(a)
	bOp := g.ResolveOperand(b)
	if v, ok := parseImm(bOp); ok {
		if fitsImm16(v) {
			return fmt.Sprintf("    cmpdi cr0, %s, %d\n", aReg, v)
		}
		return g.wideImm("r11", v) + fmt.Sprintf("    cmpd cr0, %s, r11\n", aReg)
	}
	return fmt.Sprintf("    cmpd cr0, %s, %s\n", aReg, bOp)
}

func (g *ppc64) Test(a, b string) string {
	aReg := g.ResolveOperand(a)
	bOp := g.ResolveOperand(b)
	if v, ok := parseImm(bOp); ok && v >= 0 && v <= 65535 {
		return fmt.Sprintf("    andi. r12, %s, %d\n", aReg, v)
	}
	bOp, setup := g.scratchFor(b, "r11")
	return setup + fmt.Sprintf("    and. r12, %s, %s\n", aReg, bOp)
}

func (g *ppc64) bitOp(comment, tail, dst, bit string) string {
	dstReg := g.ResolveOperand(dst)
	bitOp := g.ResolveOperand(bit)
	var b strings.Builder
	fmt.Fprintf(&b, "    # %s\n    li r11, 1\n", comment)
	if isImmediate(bitOp) {
		fmt.Fprintf(&b, "    sldi r11, r11, %s\n", bitOp)
	} else {
		fmt.Fprintf(&b, "    sld r11, r11, %s\n", bitOp)
	}
	fmt.Fprintf(&b, "    and. r12, %s, r11\n", dstReg)
	if tail != "" {
		fmt.Fprintf(&b, "    %s %s, %s, r11\n", tail, dstReg, dstReg)
	}
	return b.String()
}

func (g *ppc64) Bt(dst, bit string) string  { return g.bitOp("Bit test", "", dst, bit) }
func (g *ppc64) Btr(dst, bit string) string { return g.bitOp("Bit test and reset", "andc", dst, bit) }
func (g *ppc64) Bts(dst, bit string) string { return g.bitOp("Bit test and set", "or", dst, bit) }
func (g *ppc64) Btc(dst, bit string) string {
	return g.bitOp("Bit test and complement", "xor", dst, bit)
}

func (g *ppc64) Set(cc vasm.CondCode, dst string) string {
	opp := ppcOppBranch[cc]
	if opp == "" {
		return "    # Parity flag not available in PowerPC\n"
	}
	dstReg := g.ResolveOperand(dst)
	end := fmt.Sprintf(".Lset_end_%d", synthLabel(dst, "", int(cc)))
	return fmt.Sprintf("    li %s, 0\n    %s %s\n    li %s, 1\n%s:\n", dstReg, opp, end, dstReg, end)
}

func (g *ppc64) Cmps(a, b string) string {
	aAddr, aSetup := g.loadAddr(a, "r12")
	bAddr, bSetup := g.loadAddr(b, "r11")
	return aSetup + bSetup +
		fmt.Sprintf("    ld r11, %s\n    ld r12, %s\n    cmpd cr0, r11, r12\n", aAddr, bAddr)
}

func (g *ppc64) Scas(src, val string) string {
	addr, setup := g.loadAddr(src, "r12")
	s := setup + fmt.Sprintf("    ld r12, %s\n", addr)
	valOp := g.ResolveOperand(val)
	if v, ok := parseImm(valOp); ok && fitsImm16(v) {
		return s + fmt.Sprintf("    cmpdi cr0, r12, %d\n", v)
	}
	valOp, valSetup := g.scratchFor(val, "r11")
	return s + valSetup + fmt.Sprintf("    cmpd cr0, r12, %s\n", valOp)
}

func (g *ppc64) Stos(dst, src string) string {
	srcOp, srcSetup := g.scratchFor(src, "r11")
	addr, addrSetup := g.loadAddr(dst, "r12")
	return srcSetup + addrSetup + fmt.Sprintf("    std %s, %s\n", srcOp, addr)
}

func (g *ppc64) Lods(dst, src string) string {
	addr, setup := g.loadAddr(src, "r12")
	return setup + fmt.Sprintf("    ld %s, %s\n", g.ResolveOperand(dst), addr)
}

func (g *ppc64) Movs(dst, src string) string {
	srcAddr, srcSetup := g.loadAddr(src, "r12")
	dstAddr, dstSetup := g.loadAddr(dst, "r11")
	return srcSetup + fmt.Sprintf("    ld r12, %s\n", srcAddr) +
		dstSetup + fmt.Sprintf("    std r12, %s\n", dstAddr)
}

func (g *ppc64) Cbw(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    extsb %s, %s\n", dstReg, dstReg)
}

func (g *ppc64) Cwd(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    extsh %s, %s\n", dstReg, dstReg)
}

func (g *ppc64) Cdq(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    extsw %s, %s\n", dstReg, dstReg)
}

func (g *ppc64) Cqo(dst string) string {
	return "    # CQO: 128-bit sign extension not available in PowerPC\n"
}

func (g *ppc64) Cwde(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    extsh %s, %s\n", dstReg, dstReg)
}

func (g *ppc64) Cdqe(dst string) string {
	dstReg := g.ResolveOperand(dst)
	return fmt.Sprintf("    extsw %s, %s\n", dstReg, dstReg)
}

func (g *ppc64) Jmp(label string) string {
	return fmt.Sprintf("    b %s\n", label)
}

func (g *ppc64) Jcc(cc vasm.CondCode, label string) string {
	branch := ppcBranch[cc]
	if branch == "" {
		return "    # Parity flag not available in PowerPC\n"
	}
	return fmt.Sprintf("    %s %s\n", branch, label)
}

func (g *ppc64) Loop(cc vasm.CondCode, label string) string {
	branch := "bne"
	if cc == vasm.CondNe {
		branch = "beq"
	}
	return fmt.Sprintf("    addi r11, r11, -1\n    cmpdi cr0, r11, 0\n    %s %s\n", branch, label)
}

func (g *ppc64) Call(fn string) string {
	return fmt.Sprintf("    bl %s\n", fn)
}

func (g *ppc64) Ret() string { return "    blr\n" }

func (g *ppc64) In(dst, port string) string {
	return "    # IN instruction not available in PowerPC\n"
}

func (g *ppc64) Out(port, src string) string {
	return "    # OUT instruction not available in PowerPC\n"
}

func (g *ppc64) Ins(dst, port string) string {
	return "    # INS instruction not available in PowerPC\n"
}

func (g *ppc64) Outs(port, src string) string {
	return "    # OUTS instruction not available in PowerPC\n"
}

func (g *ppc64) Cpuid() string { return "    # CPUID not available in PowerPC\n" }

func (g *ppc64) Lfence() string { return "    lwsync\n" }
func (g *ppc64) Sfence() string { return "    eieio\n" }
func (g *ppc64) Mfence() string { return "    sync\n" }

// cacheAddr extracts the register holding the target address for the
// data cache block instructions.
func (g *ppc64) cacheAddr(addr string) (string, bool) {
	m, ok := parseMem(addr)
	if !ok || m.sign != "" {
		return "", false
	}
	mapped, ok := g.regs[m.base]
	return mapped, ok
}

func (g *ppc64) Prefetch(addr string) string {
	if reg, ok := g.cacheAddr(addr); ok {
		return fmt.Sprintf("    dcbt 0, %s\n", reg)
	}
	return fmt.Sprintf("    # Prefetch needs a register address: %s\n", addr)
}

func (g *ppc64) Clflush(addr string) string {
	if reg, ok := g.cacheAddr(addr); ok {
		return fmt.Sprintf("    dcbf 0, %s\n", reg)
	}
	return fmt.Sprintf("    # Cache flush needs a register address: %s\n", addr)
}

func (g *ppc64) Clwb(addr string) string {
	if reg, ok := g.cacheAddr(addr); ok {
		return fmt.Sprintf("    dcbst 0, %s\n", reg)
	}
	return fmt.Sprintf("    # Cache writeback needs a register address: %s\n", addr)
}

var ppcSyscalls = map[string]int{
	"read": 3, "write": 4, "open": 5, "close": 6,
	"exit": 1, "mmap": 90, "munmap": 91, "brk": 45,
}

func (g *ppc64) Syscall(name string) string {
	num, ok := ppcSyscalls[name]
	if !ok {
		return fmt.Sprintf("    # Unknown syscall: %s\n    li r0, 0\n    sc\n", name)
	}
	return fmt.Sprintf("    li r0, %d\n    sc\n", num)
}

func (g *ppc64) Align(n string) string {
	return fmt.Sprintf(".align %s\n", n)
}
