package arch

import (
	"fmt"
	"strings"

	"github.com/raymyers/uasm/pkg/vasm"
)

// x86 lowers to Intel-syntax assembly for GNU as. One instance
// serves both widths; the constructors below fix the register map,
// operand width and syscall table.
type x86 struct {
	regs     map[string]string
	is64     bool
	acc, rem string // accumulator and remainder registers for idiv
	ptr      string // memory operand size prefix
	syscalls map[string]int
}

func newAMD64() *x86 {
	return &x86{
		regs: map[string]string{
			// System V argument order
			"r0": "rdi", "r1": "rsi", "r2": "rdx",
			"r3": "rcx", "r4": "r8", "r5": "r9",
			// General purpose
			"r6": "rax", "r7": "rbx", "r8": "r10", "r9": "r11",
			"r10": "r12", "r11": "r13", "r12": "r14", "r13": "r15",
			// Higher virtual registers reuse the file
			"r14": "rax", "r15": "rbx", "r16": "r10", "r17": "r11",
			"r18": "r12", "r19": "r13", "r20": "r14", "r21": "r15",
			"r22": "rax", "r23": "rbx",

			"sp": "rsp", "sb": "rbp", "ip": "rip",
		},
		is64: true,
		acc:  "rax",
		rem:  "rdx",
		ptr:  "QWORD PTR",
		syscalls: map[string]int{
			"read": 0, "write": 1, "open": 2, "close": 3,
			"exit": 60, "mmap": 9, "munmap": 11, "brk": 12,
		},
	}
}

func newAMD32() *x86 {
	return &x86{
		regs: map[string]string{
			"r0": "eax", "r1": "ecx", "r2": "edx",
			"r3": "ebx", "r4": "esi", "r5": "edi",
			// Only six 32-bit registers are assignable; higher
			// virtual registers cycle through them again.
			"r6": "eax", "r7": "ebx", "r8": "ecx", "r9": "edx",
			"r10": "esi", "r11": "edi", "r12": "eax", "r13": "ebx",
			"r14": "ecx", "r15": "edx", "r16": "esi", "r17": "edi",
			"r18": "eax", "r19": "ebx", "r20": "ecx", "r21": "edx",
			"r22": "esi", "r23": "edi",

			"sp": "esp", "sb": "ebp", "ip": "eip",
		},
		is64: false,
		acc:  "eax",
		rem:  "edx",
		ptr:  "DWORD PTR",
		syscalls: map[string]int{
			"read": 3, "write": 4, "open": 5, "close": 6,
			"exit": 1, "mmap": 90, "munmap": 91, "brk": 45,
		},
	}
}

func (g *x86) RegisterMap() map[string]string { return g.regs }

func (g *x86) SyntaxHeader() string {
	return ".intel_syntax noprefix\n.text\n\n"
}

func (g *x86) ResolveOperand(operand string) string {
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

func (g *x86) ResolveMemory(operand string) string {
	m, ok := parseMem(operand)
	if !ok {
		return operand
	}
	base := m.base
	if mapped, ok := g.regs[base]; ok {
		base = mapped
	}
	if m.sign == "" {
		return fmt.Sprintf("[%s]", base)
	}
	off := m.off
	if mapped, ok := g.regs[off]; ok {
		off = mapped
	}
	return fmt.Sprintf("[%s%s%s]", base, m.sign, off)
}

func (g *x86) Mov(dst, src string) string {
	return fmt.Sprintf("    mov %s, %s\n", g.ResolveOperand(dst), g.ResolveOperand(src))
}

func (g *x86) Lea(dst, src string) string {
	return fmt.Sprintf("    lea %s, %s\n", g.ResolveOperand(dst), g.ResolveMemory(src))
}

func (g *x86) Load(dst, src string) string {
	return fmt.Sprintf("    mov %s, %s %s\n", g.ResolveOperand(dst), g.ptr, g.ResolveMemory(src))
}

func (g *x86) Store(dst, src string) string {
	return fmt.Sprintf("    mov %s %s, %s\n", g.ptr, g.ResolveMemory(dst), g.ResolveOperand(src))
}

// x86CondName is the condition suffix used by cmovcc and jcc
var x86CondName = []string{
	"e", "ne", "l", "le", "g", "ge", "o", "no",
	"s", "ns", "p", "np", "a", "ae", "b", "be",
}

// x86SetName is the suffix used by setcc (zero-flag spellings)
var x86SetName = []string{
	"z", "nz", "l", "le", "g", "ge", "o", "no",
	"s", "ns", "p", "np", "a", "ae", "b", "be",
}

func (g *x86) Cmov(cc vasm.CondCode, dst, src string) string {
	name := x86CondName[cc]
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)
	if !isImmediate(src) {
		return fmt.Sprintf("    cmov%s %s, %s\n", name, dstReg, srcOp)
	}
	// cmov takes no immediate source; branch around a plain mov
	h := synthLabel(dst, src, cc.SynthSalt())
	return fmt.Sprintf("    j%s .Lcmov%s_set_%d\n    jmp .Lcmov%s_end_%d\n.Lcmov%s_set_%d:\n    mov %s, %s\n.Lcmov%s_end_%d:\n",
		name, name, h, name, h, name, h, dstReg, srcOp, name, h)
}

func (g *x86) Push(src string) string {
	return fmt.Sprintf("    push %s\n", g.ResolveOperand(src))
}

func (g *x86) Pop(dst string) string {
	return fmt.Sprintf("    pop %s\n", g.ResolveOperand(dst))
}

func (g *x86) PushAll() string {
	if !g.is64 {
		return "    pusha\n"
	}
	// pusha does not exist in long mode
	var b strings.Builder
	for _, r := range []string{"rax", "rcx", "rdx", "rbx", "rbp", "rsi", "rdi"} {
		fmt.Fprintf(&b, "    push %s\n", r)
	}
	return b.String()
}

func (g *x86) PopAll() string {
	if !g.is64 {
		return "    popa\n"
	}
	var b strings.Builder
	for _, r := range []string{"rdi", "rsi", "rbp", "rbx", "rdx", "rcx", "rax"} {
		fmt.Fprintf(&b, "    pop %s\n", r)
	}
	return b.String()
}

func (g *x86) Enter(frameSize, nesting string) string {
	return fmt.Sprintf("    enter %s, %s\n", frameSize, nesting)
}

func (g *x86) Leave() string { return "    leave\n" }

func (g *x86) Add(dst, src string) string {
	return fmt.Sprintf("    add %s, %s\n", g.ResolveOperand(dst), g.ResolveOperand(src))
}

func (g *x86) Sub(dst, src string) string {
	return fmt.Sprintf("    sub %s, %s\n", g.ResolveOperand(dst), g.ResolveOperand(src))
}

func (g *x86) Mul(dst, src string) string {
	return fmt.Sprintf("    imul %s, %s\n", g.ResolveOperand(dst), g.ResolveOperand(src))
}

func (g *x86) Imul(dst, src string) string {
	return g.Mul(dst, src)
}

// divide performs the accumulator dance shared by div, idiv and mod.
// The remainder register is preserved unless it is one of the
// operands.
func (g *x86) divide(dst, src string, wantRemainder bool) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)
	var b strings.Builder

	saveRem := dstReg != g.rem && srcOp != g.rem
	if saveRem {
		fmt.Fprintf(&b, "    push %s\n", g.rem)
	}
	if dstReg != g.acc {
		fmt.Fprintf(&b, "    mov %s, %s\n", g.acc, dstReg)
	}
	if g.is64 {
		b.WriteString("    cqo\n")
	} else {
		b.WriteString("    cdq\n")
	}
	fmt.Fprintf(&b, "    idiv %s\n", srcOp)
	result := g.acc
	if wantRemainder {
		result = g.rem
	}
	if dstReg != result {
		fmt.Fprintf(&b, "    mov %s, %s\n", dstReg, result)
	}
	if saveRem {
		fmt.Fprintf(&b, "    pop %s\n", g.rem)
	}
	return b.String()
}

func (g *x86) Div(dst, src string) string  { return g.divide(dst, src, false) }
func (g *x86) Idiv(dst, src string) string { return g.divide(dst, src, false) }
func (g *x86) Mod(dst, src string) string  { return g.divide(dst, src, true) }

func (g *x86) Inc(dst string) string {
	return fmt.Sprintf("    inc %s\n", g.ResolveOperand(dst))
}

func (g *x86) Dec(dst string) string {
	return fmt.Sprintf("    dec %s\n", g.ResolveOperand(dst))
}

func (g *x86) Neg(dst string) string {
	return fmt.Sprintf("    neg %s\n", g.ResolveOperand(dst))
}

func (g *x86) And(dst, src string) string {
	return fmt.Sprintf("    and %s, %s\n", g.ResolveOperand(dst), g.ResolveOperand(src))
}

func (g *x86) Or(dst, src string) string {
	return fmt.Sprintf("    or %s, %s\n", g.ResolveOperand(dst), g.ResolveOperand(src))
}

func (g *x86) Xor(dst, src string) string {
	return fmt.Sprintf("    xor %s, %s\n", g.ResolveOperand(dst), g.ResolveOperand(src))
}

func (g *x86) Not(dst string) string {
	return fmt.Sprintf("    not %s\n", g.ResolveOperand(dst))
}

func (g *x86) Andn(dst, src string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)
	if g.is64 {
		// andn computes ~first-source AND second-source
		if isImmediate(src) {
			return fmt.Sprintf("    mov r11, %s\n    andn %s, r11, %s\n", srcOp, dstReg, dstReg)
		}
		return fmt.Sprintf("    andn %s, %s, %s\n", dstReg, srcOp, dstReg)
	}
	// No BMI1; complement the source on the stack
	return fmt.Sprintf("    push %s\n    not %s [esp]\n    and %s, %s [esp]\n    add esp, 4\n",
		srcOp, g.ptr, dstReg, g.ptr)
}

// shift routes register counts through cl, the only register the
// shift instructions accept.
func (g *x86) shift(op, dst, src string) string {
	srcOp := g.ResolveOperand(src)
	if srcOp != "cl" && !isImmediate(srcOp) {
		return fmt.Sprintf("    mov cl, %s\n    %s %s, cl\n", srcOp, op, g.ResolveOperand(dst))
	}
	return fmt.Sprintf("    %s %s, %s\n", op, g.ResolveOperand(dst), srcOp)
}

func (g *x86) Shl(dst, src string) string { return g.shift("shl", dst, src) }
func (g *x86) Shr(dst, src string) string { return g.shift("shr", dst, src) }
func (g *x86) Sal(dst, src string) string { return g.shift("shl", dst, src) }
func (g *x86) Sar(dst, src string) string { return g.shift("sar", dst, src) }
func (g *x86) Rol(dst, src string) string { return g.shift("rol", dst, src) }
func (g *x86) Ror(dst, src string) string { return g.shift("ror", dst, src) }
func (g *x86) Rcl(dst, src string) string { return g.shift("rcl", dst, src) }
func (g *x86) Rcr(dst, src string) string { return g.shift("rcr", dst, src) }

func (g *x86) Bextr(dst, src, ctrl string) string {
	dstReg := g.ResolveOperand(dst)
	srcOp := g.ResolveOperand(src)
	if !g.is64 {
		return fmt.Sprintf("    # BEXTR not available in 32-bit\n    mov %s, %s\n", dstReg, srcOp)
	}
	ctrlOp := g.ResolveOperand(ctrl)
	if isImmediate(ctrl) {
		return fmt.Sprintf("    mov r11, %s\n    bextr %s, %s, r11\n", ctrlOp, dstReg, srcOp)
	}
	return fmt.Sprintf("    bextr %s, %s, %s\n", dstReg, srcOp, ctrlOp)
}

func (g *x86) Bsf(dst, src string) string {
	return fmt.Sprintf("    bsf %s, %s\n", g.ResolveOperand(dst), g.ResolveOperand(src))
}

func (g *x86) Bsr(dst, src string) string {
	return fmt.Sprintf("    bsr %s, %s\n", g.ResolveOperand(dst), g.ResolveOperand(src))
}

func (g *x86) Cmp(a, b string) string {
	return fmt.Sprintf("    cmp %s, %s\n", g.ResolveOperand(a), g.ResolveOperand(b))
}

func (g *x86) Test(a, b string) string {
	return fmt.Sprintf("    test %s, %s\n", g.ResolveOperand(a), g.ResolveOperand(b))
}

func (g *x86) Bt(dst, bit string) string {
	return fmt.Sprintf("    bt %s, %s\n", g.ResolveOperand(dst), g.ResolveOperand(bit))
}

func (g *x86) Btr(dst, bit string) string {
	return fmt.Sprintf("    btr %s, %s\n", g.ResolveOperand(dst), g.ResolveOperand(bit))
}

func (g *x86) Bts(dst, bit string) string {
	return fmt.Sprintf("    bts %s, %s\n", g.ResolveOperand(dst), g.ResolveOperand(bit))
}

func (g *x86) Btc(dst, bit string) string {
	return fmt.Sprintf("    btc %s, %s\n", g.ResolveOperand(dst), g.ResolveOperand(bit))
}

func (g *x86) Set(cc vasm.CondCode, dst string) string {
	return fmt.Sprintf("    set%s %s\n", x86SetName[cc], g.ResolveOperand(dst))
}

// String operations use the implicit rsi/rdi form; the operands
// name intent in the source but the hardware fixes the registers.
func (g *x86) strOp(base string) string {
	if g.is64 {
		return "    " + base + "q\n"
	}
	return "    " + base + "d\n"
}

func (g *x86) Cmps(a, b string) string   { return g.strOp("cmps") }
func (g *x86) Scas(src, val string) string { return g.strOp("scas") }
func (g *x86) Stos(dst, src string) string { return g.strOp("stos") }
func (g *x86) Lods(dst, src string) string { return g.strOp("lods") }
func (g *x86) Movs(dst, src string) string { return g.strOp("movs") }

func (g *x86) Cbw(dst string) string  { return "    cbw\n" }
func (g *x86) Cwd(dst string) string  { return "    cwd\n" }
func (g *x86) Cdq(dst string) string  { return "    cdq\n" }
func (g *x86) Cwde(dst string) string { return "    cwde\n" }

func (g *x86) Cqo(dst string) string {
	if g.is64 {
		return "    cqo\n"
	}
	return "    cdq\n"
}

func (g *x86) Cdqe(dst string) string {
	if g.is64 {
		return "    cdqe\n"
	}
	return "    cwde\n"
}

func (g *x86) Jmp(label string) string {
	return fmt.Sprintf("    jmp %s\n", label)
}

func (g *x86) Jcc(cc vasm.CondCode, label string) string {
	return fmt.Sprintf("    j%s %s\n", x86CondName[cc], label)
}

func (g *x86) Loop(cc vasm.CondCode, label string) string {
	if cc == vasm.CondNe {
		return fmt.Sprintf("    loopne %s\n", label)
	}
	return fmt.Sprintf("    loope %s\n", label)
}

func (g *x86) Call(fn string) string {
	return fmt.Sprintf("    call %s\n", fn)
}

func (g *x86) Ret() string { return "    ret\n" }

func (g *x86) In(dst, port string) string {
	return fmt.Sprintf("    in %s, %s\n", g.ResolveOperand(dst), g.ResolveOperand(port))
}

func (g *x86) Out(port, src string) string {
	return fmt.Sprintf("    out %s, %s\n", g.ResolveOperand(port), g.ResolveOperand(src))
}

func (g *x86) Ins(dst, port string) string {
	return "    insd\n"
}

func (g *x86) Outs(port, src string) string {
	return "    outsd\n"
}

func (g *x86) Cpuid() string { return "    cpuid\n" }

func (g *x86) Lfence() string {
	if g.is64 {
		return "    lfence\n"
	}
	return "    # lfence not available in 32-bit\n"
}

func (g *x86) Sfence() string {
	if g.is64 {
		return "    sfence\n"
	}
	return "    # sfence not available in 32-bit\n"
}

func (g *x86) Mfence() string {
	if g.is64 {
		return "    mfence\n"
	}
	return "    # mfence not available in 32-bit\n"
}

func (g *x86) Prefetch(addr string) string {
	if g.is64 {
		return fmt.Sprintf("    prefetcht0 %s\n", g.ResolveMemory(addr))
	}
	return fmt.Sprintf("    # prefetch %s\n", g.ResolveMemory(addr))
}

func (g *x86) Clflush(addr string) string {
	return fmt.Sprintf("    clflush %s\n", g.ResolveMemory(addr))
}

func (g *x86) Clwb(addr string) string {
	if g.is64 {
		return fmt.Sprintf("    clwb %s\n", g.ResolveMemory(addr))
	}
	return fmt.Sprintf("    # clwb not available in 32-bit: %s\n", g.ResolveMemory(addr))
}

func (g *x86) Syscall(name string) string {
	trap := "int 0x80"
	if g.is64 {
		trap = "syscall"
	}
	num, ok := g.syscalls[name]
	if !ok {
		return fmt.Sprintf("    # Unknown syscall: %s\n    mov %s, 0\n    %s\n", name, g.acc, trap)
	}
	return fmt.Sprintf("    mov %s, %d\n    %s\n", g.acc, num, trap)
}

func (g *x86) Align(n string) string {
	return fmt.Sprintf(".p2align %s\n", n)
}
