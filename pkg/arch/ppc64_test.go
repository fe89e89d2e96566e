package arch

import (
	"strings"
	"testing"

	"github.com/raymyers/uasm/pkg/vasm"
)

func TestPPC64RegisterMap(t *testing.T) {
	g := newPowerPC64()
	tests := []struct {
		virtual, physical string
	}{
		{"r0", "r3"},
		{"r7", "r10"},
		{"r8", "r11"},
		{"r9", "r12"},
		{"r10", "r0"},
		{"r11", "r31"},
		{"r15", "r27"},
		{"r19", "r14"},
		{"r22", "r17"},
		{"sp", "r1"},
		{"sb", "r31"},
	}
	for _, tt := range tests {
		if got := g.regs[tt.virtual]; got != tt.physical {
			t.Errorf("%s maps to %s, want %s", tt.virtual, got, tt.physical)
		}
	}
}

func TestPPC64MovImmediateForms(t *testing.T) {
	g := newPowerPC64()
	tests := []struct {
		src  string
		want string
	}{
		{"5", "    li r3, 5\n"},
		{"-32768", "    li r3, -32768\n"},
		{"100000", "    lis r3, 1\n    ori r3, r3, 34464\n"},
		{"65536", "    lis r3, 1\n"},
	}
	for _, tt := range tests {
		if got := g.Mov("r0", tt.src); got != tt.want {
			t.Errorf("Mov(r0, %s) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestPPC64CompareAndBranch(t *testing.T) {
	g := newPowerPC64()
	if got := g.Cmp("r0", "r1"); got != "    cmpd cr0, r3, r4\n" {
		t.Errorf("Cmp reg = %q", got)
	}
	if got := g.Cmp("r0", "5"); got != "    cmpdi cr0, r3, 5\n" {
		t.Errorf("Cmp imm = %q", got)
	}

	branches := []struct {
		cc   vasm.CondCode
		want string
	}{
		{vasm.CondEq, "    beq done\n"},
		{vasm.CondLt, "    blt done\n"},
		{vasm.CondOv, "    bso done\n"},
		{vasm.CondNo, "    bns done\n"},
		{vasm.CondBe, "    ble done\n"},
	}
	for _, tt := range branches {
		if got := g.Jcc(tt.cc, "done"); got != tt.want {
			t.Errorf("Jcc(%v) = %q, want %q", tt.cc, got, tt.want)
		}
	}
	if got := g.Jcc(vasm.CondP, "done"); got != "    # Parity flag not available in PowerPC\n" {
		t.Errorf("Jcc parity = %q", got)
	}
}

func TestPPC64SetBranchAround(t *testing.T) {
	g := newPowerPC64()
	got := g.Set(vasm.CondEq, "r0")
	want := "    li r3, 0\n    bne .Lset_end_2\n    li r3, 1\n.Lset_end_2:\n"
	if got != want {
		t.Errorf("Set eq = %q, want %q", got, want)
	}
}

func TestPPC64ModMultiplySubtract(t *testing.T) {
	g := newPowerPC64()
	got := g.Mod("r0", "r1")
	want := "    divd r12, r3, r4\n    mulld r12, r12, r4\n    subf r3, r12, r3\n"
	if got != want {
		t.Errorf("Mod = %q, want %q", got, want)
	}
	if got := g.Idiv("r0", "r1"); got != "    divd r3, r3, r4\n" {
		t.Errorf("Idiv = %q", got)
	}
	if got := g.Div("r0", "r1"); got != "    divdu r3, r3, r4\n" {
		t.Errorf("Div = %q", got)
	}
}

func TestPPC64Syscalls(t *testing.T) {
	g := newPowerPC64()
	if got := g.Syscall("write"); got != "    li r0, 4\n    sc\n" {
		t.Errorf("write = %q", got)
	}
	if got := g.Syscall("exit"); got != "    li r0, 1\n    sc\n" {
		t.Errorf("exit = %q", got)
	}
	if got := g.Syscall("bogus"); !strings.HasPrefix(got, "    # Unknown syscall: bogus\n") {
		t.Errorf("unknown = %q", got)
	}
}

func TestPPC64BitOps(t *testing.T) {
	g := newPowerPC64()
	if got := g.Andn("r0", "r1"); got != "    andc r3, r3, r4\n" {
		t.Errorf("Andn = %q", got)
	}
	if got := g.Bextr("r0", "r1", "5,8"); got != "    rldicl r3, r4, 59, 56\n" {
		t.Errorf("Bextr = %q", got)
	}
	if got := g.Bsf("r0", "r1"); got != "    cnttzd r3, r4\n" {
		t.Errorf("Bsf = %q", got)
	}
	got := g.Bsr("r0", "r1")
	want := "    cntlzd r3, r4\n    li r11, 63\n    subf r3, r3, r11\n"
	if got != want {
		t.Errorf("Bsr = %q, want %q", got, want)
	}
}

func TestPPC64Rotates(t *testing.T) {
	g := newPowerPC64()
	if got := g.Rol("r0", "8"); got != "    rotldi r3, r3, 8\n" {
		t.Errorf("Rol imm = %q", got)
	}
	if got := g.Ror("r0", "8"); got != "    rotldi r3, r3, 56\n" {
		t.Errorf("Ror imm = %q", got)
	}
	got := g.Ror("r0", "r1")
	want := "    subfic r11, r4, 64\n    rotld r3, r3, r11\n"
	if got != want {
		t.Errorf("Ror reg = %q, want %q", got, want)
	}
}

func TestPPC64MemoryGrammar(t *testing.T) {
	g := newPowerPC64()
	if got := g.Load("r0", "[r1+16]"); got != "    ld r3, 16(r4)\n" {
		t.Errorf("offset load = %q", got)
	}
	got := g.Load("r0", "[counter]")
	want := "    lis r12, counter@ha\n    ld r3, counter@l(r12)\n"
	if got != want {
		t.Errorf("symbolic load = %q, want %q", got, want)
	}
	if got := g.Store("[r1]", "r0"); got != "    std r3, 0(r4)\n" {
		t.Errorf("store = %q", got)
	}
}

func TestPPC64FramesAndCalls(t *testing.T) {
	g := newPowerPC64()
	if got := g.Ret(); got != "    blr\n" {
		t.Errorf("Ret = %q", got)
	}
	got := g.Enter("64", "0")
	want := "    mflr r0\n    std r0, 16(r1)\n    stdu r1, -64(r1)\n"
	if got != want {
		t.Errorf("Enter = %q, want %q", got, want)
	}
	if got := g.Push("r0"); got != "    stdu r3, -8(r1)\n" {
		t.Errorf("Push = %q", got)
	}
	got = g.Loop(vasm.CondEq, "top")
	want = "    addi r11, r11, -1\n    cmpdi cr0, r11, 0\n    bne top\n"
	if got != want {
		t.Errorf("Loop = %q, want %q", got, want)
	}
}

func TestPPC64FencesAndExtensions(t *testing.T) {
	g := newPowerPC64()
	if got := g.Lfence(); got != "    lwsync\n" {
		t.Errorf("Lfence = %q", got)
	}
	if got := g.Sfence(); got != "    eieio\n" {
		t.Errorf("Sfence = %q", got)
	}
	if got := g.Mfence(); got != "    sync\n" {
		t.Errorf("Mfence = %q", got)
	}
	if got := g.Cbw("r0"); got != "    extsb r3, r3\n" {
		t.Errorf("Cbw = %q", got)
	}
	if got := g.Cdq("r0"); got != "    extsw r3, r3\n" {
		t.Errorf("Cdq = %q", got)
	}
	if got := g.Clflush("[r0]"); got != "    dcbf 0, r3\n" {
		t.Errorf("Clflush = %q", got)
	}
	if got := g.Prefetch("[r0]"); got != "    dcbt 0, r3\n" {
		t.Errorf("Prefetch = %q", got)
	}
}
