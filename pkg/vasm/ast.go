// Package vasm defines the virtual assembly representation.
// Programs are written against an idealized machine with virtual
// registers r0..r23 plus sp, sb and ip; each architecture backend
// lowers these instructions to real textual assembly.
package vasm

// Instruction is the interface for virtual instructions
type Instruction interface {
	implInstruction()
}

// CondCode represents a condition code carried by conditional
// moves, sets and jumps. The set follows the x86 flag conditions;
// backends without the matching flag degrade the operation.
type CondCode int

const (
	CondEq CondCode = iota // Equal (ZF=1)
	CondNe                 // Not equal (ZF=0)
	CondLt                 // Signed less than
	CondLe                 // Signed less or equal
	CondGt                 // Signed greater than
	CondGe                 // Signed greater or equal
	CondOv                 // Overflow
	CondNo                 // No overflow
	CondS                  // Sign (negative)
	CondNs                 // No sign
	CondP                  // Parity even
	CondNp                 // Parity odd
	CondA                  // Unsigned above
	CondAe                 // Unsigned above or equal
	CondB                  // Unsigned below
	CondBe                 // Unsigned below or equal
)

// String returns the condition suffix as spelled in the source syntax
func (c CondCode) String() string {
	names := []string{
		"eq", "ne", "lt", "le", "gt", "ge", "o", "no",
		"s", "ns", "p", "np", "a", "ae", "b", "be",
	}
	if int(c) < len(names) {
		return names[c]
	}
	return "?"
}

// SynthSalt returns the per-condition salt used when a backend has to
// synthesize a conditional operation with branch-around labels. The
// values keep generated label names stable across runs.
func (c CondCode) SynthSalt() int {
	return int(c)
}

// DataSize is the element width of a data definition or reservation
type DataSize int

const (
	Byte  DataSize = iota // 1 byte (db / resb)
	Word                  // 2 bytes (dw / resw)
	Dword                 // 4 bytes (dd / resd)
	Qword                 // 8 bytes (dq / resq)
)

// Bytes returns the element width in bytes
func (s DataSize) Bytes() int {
	switch s {
	case Byte:
		return 1
	case Word:
		return 2
	case Dword:
		return 4
	default:
		return 8
	}
}

// SectionKind identifies an output section
type SectionKind int

const (
	SectionText SectionKind = iota
	SectionData
	SectionBss
	SectionRodata
	SectionCustom
)

// Section is an output section; Name is set only for SectionCustom
type Section struct {
	Kind SectionKind
	Name string
}

// --- Control and data movement ---

// Label defines a branch target or data label
type Label struct {
	Name string
}

// Mov copies a register or immediate into a register
type Mov struct {
	Dst, Src string
}

// Lea loads the address of a memory operand
type Lea struct {
	Dst, Src string
}

// Load reads from memory into a register
type Load struct {
	Dst, Src string
}

// Store writes a register or immediate to memory
type Store struct {
	Dst, Src string
}

// Cmov is a conditional move
type Cmov struct {
	Cond     CondCode
	Dst, Src string
}

// --- Stack operations ---

// Push pushes a value onto the stack
type Push struct {
	Src string
}

// Pop pops the top of the stack into a register
type Pop struct {
	Dst string
}

// Pusha pushes the general-purpose register file
type Pusha struct{}

// Popa restores the general-purpose register file
type Popa struct{}

// Enter builds a stack frame
type Enter struct {
	FrameSize, Nesting string
}

// Leave tears down the current stack frame
type Leave struct{}

// --- Arithmetic ---

type Add struct{ Dst, Src string }
type Sub struct{ Dst, Src string }
type Mul struct{ Dst, Src string }
type Imul struct{ Dst, Src string }
type Div struct{ Dst, Src string }
type Idiv struct{ Dst, Src string }

// Mod computes Dst % Src; synthesized on architectures without a
// remainder instruction as divide, multiply, subtract.
type Mod struct{ Dst, Src string }

type Inc struct{ Dst string }
type Dec struct{ Dst string }
type Neg struct{ Dst string }

// --- Bitwise and shifts ---

type And struct{ Dst, Src string }
type Or struct{ Dst, Src string }
type Xor struct{ Dst, Src string }
type Not struct{ Dst string }

// Andn clears in Dst the bits set in Src (Dst &= ^Src)
type Andn struct{ Dst, Src string }

type Shl struct{ Dst, Src string }
type Shr struct{ Dst, Src string }
type Sal struct{ Dst, Src string }
type Sar struct{ Dst, Src string }
type Rol struct{ Dst, Src string }
type Ror struct{ Dst, Src string }
type Rcl struct{ Dst, Src string }
type Rcr struct{ Dst, Src string }

// Bextr extracts a bit field; Ctrl is "start,length"
type Bextr struct {
	Dst, Src, Ctrl string
}

// Bsf scans for the lowest set bit
type Bsf struct{ Dst, Src string }

// Bsr scans for the highest set bit
type Bsr struct{ Dst, Src string }

// --- Comparison and flags ---

type Cmp struct{ A, B string }
type Test struct{ A, B string }

// Bt tests a bit; Btr/Bts/Btc additionally reset, set or complement it
type Bt struct{ Dst, Bit string }
type Btr struct{ Dst, Bit string }
type Bts struct{ Dst, Bit string }
type Btc struct{ Dst, Bit string }

// Set writes 1 or 0 to Dst according to the condition
type Set struct {
	Cond CondCode
	Dst  string
}

// --- String operations ---

type Cmps struct{ A, B string }
type Scas struct{ Src, Val string }
type Stos struct{ Dst, Src string }
type Lods struct{ Dst, Src string }
type Movs struct{ Dst, Src string }

// --- Sign extensions ---

type Cbw struct{ Dst string }
type Cwd struct{ Dst string }
type Cdq struct{ Dst string }
type Cqo struct{ Dst string }
type Cwde struct{ Dst string }
type Cdqe struct{ Dst string }

// --- Control flow ---

// Jmp is an unconditional jump
type Jmp struct {
	Target string
}

// Jcc is a conditional jump
type Jcc struct {
	Cond   CondCode
	Target string
}

// LoopCond decrements the loop counter and branches while the
// condition holds; Cond is CondEq or CondNe.
type LoopCond struct {
	Cond   CondCode
	Target string
}

// Call calls a function
type Call struct {
	Target string
}

// Ret returns from the current function
type Ret struct{}

// --- Port I/O (x86 only; degrades elsewhere) ---

type In struct{ Dst, Port string }
type Out struct{ Port, Src string }
type Ins struct{ Dst, Port string }
type Outs struct{ Port, Src string }

// --- System ---

type Cpuid struct{}
type Lfence struct{}
type Sfence struct{}
type Mfence struct{}

type Prefetch struct{ Addr string }
type Clflush struct{ Addr string }
type Clwb struct{ Addr string }

// Syscall invokes the named kernel service using the calling
// convention and call numbers of the target architecture.
type Syscall struct {
	Name string
}

// --- Directives ---

// Global exports a symbol
type Global struct {
	Symbol string
}

// Extern declares an external symbol
type Extern struct {
	Symbol string
}

// Align aligns the location counter
type Align struct {
	N string
}

// Data defines initialized data. Values may mix numbers, symbols and
// quoted strings; strings expand to byte lists during generation.
// The name "anonymous" suppresses the label.
type Data struct {
	Size   DataSize
	Name   string
	Values []string
}

// Reserve reserves uninitialized storage for Count elements
type Reserve struct {
	Size  DataSize
	Name  string
	Count string
}

// Equ binds a symbolic constant
type Equ struct {
	Name, Value string
}

// SectionDir switches the active output section
type SectionDir struct {
	Section Section
}

// --- Marker methods for Instruction interface ---

func (Label) implInstruction()      {}
func (Mov) implInstruction()        {}
func (Lea) implInstruction()        {}
func (Load) implInstruction()       {}
func (Store) implInstruction()      {}
func (Cmov) implInstruction()       {}
func (Push) implInstruction()       {}
func (Pop) implInstruction()        {}
func (Pusha) implInstruction()      {}
func (Popa) implInstruction()       {}
func (Enter) implInstruction()      {}
func (Leave) implInstruction()      {}
func (Add) implInstruction()        {}
func (Sub) implInstruction()        {}
func (Mul) implInstruction()        {}
func (Imul) implInstruction()       {}
func (Div) implInstruction()        {}
func (Idiv) implInstruction()       {}
func (Mod) implInstruction()        {}
func (Inc) implInstruction()        {}
func (Dec) implInstruction()        {}
func (Neg) implInstruction()        {}
func (And) implInstruction()        {}
func (Or) implInstruction()         {}
func (Xor) implInstruction()        {}
func (Not) implInstruction()        {}
func (Andn) implInstruction()       {}
func (Shl) implInstruction()        {}
func (Shr) implInstruction()        {}
func (Sal) implInstruction()        {}
func (Sar) implInstruction()        {}
func (Rol) implInstruction()        {}
func (Ror) implInstruction()        {}
func (Rcl) implInstruction()        {}
func (Rcr) implInstruction()        {}
func (Bextr) implInstruction()      {}
func (Bsf) implInstruction()        {}
func (Bsr) implInstruction()        {}
func (Cmp) implInstruction()        {}
func (Test) implInstruction()       {}
func (Bt) implInstruction()         {}
func (Btr) implInstruction()        {}
func (Bts) implInstruction()        {}
func (Btc) implInstruction()        {}
func (Set) implInstruction()        {}
func (Cmps) implInstruction()       {}
func (Scas) implInstruction()       {}
func (Stos) implInstruction()       {}
func (Lods) implInstruction()       {}
func (Movs) implInstruction()       {}
func (Cbw) implInstruction()        {}
func (Cwd) implInstruction()        {}
func (Cdq) implInstruction()        {}
func (Cqo) implInstruction()        {}
func (Cwde) implInstruction()       {}
func (Cdqe) implInstruction()       {}
func (Jmp) implInstruction()        {}
func (Jcc) implInstruction()        {}
func (LoopCond) implInstruction()   {}
func (Call) implInstruction()       {}
func (Ret) implInstruction()        {}
func (In) implInstruction()         {}
func (Out) implInstruction()        {}
func (Ins) implInstruction()        {}
func (Outs) implInstruction()       {}
func (Cpuid) implInstruction()      {}
func (Lfence) implInstruction()     {}
func (Sfence) implInstruction()     {}
func (Mfence) implInstruction()     {}
func (Prefetch) implInstruction()   {}
func (Clflush) implInstruction()    {}
func (Clwb) implInstruction()       {}
func (Syscall) implInstruction()    {}
func (Global) implInstruction()     {}
func (Extern) implInstruction()     {}
func (Align) implInstruction()      {}
func (Data) implInstruction()       {}
func (Reserve) implInstruction()    {}
func (Equ) implInstruction()        {}
func (SectionDir) implInstruction() {}
