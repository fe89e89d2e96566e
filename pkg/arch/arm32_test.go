package arch

import (
	"strings"
	"testing"

	"github.com/raymyers/uasm/pkg/vasm"
)

func TestARM32MovImmediateSplit(t *testing.T) {
	g := newARM32()
	tests := []struct {
		src  string
		want string
	}{
		{"42", "    mov r0, #42\n"},
		{"65535", "    mov r0, #65535\n"},
		// Wide constants split into a mov/movt pair
		{"70000", "    mov r0, #4464\n    movt r0, #1\n"},
		{"0x12340000", "    mov r0, #0\n    movt r0, #4660\n"},
	}
	for _, tt := range tests {
		if got := g.Mov("r0", tt.src); got != tt.want {
			t.Errorf("Mov(r0, %s) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestARM32RegisterFolding(t *testing.T) {
	g := newARM32()
	if got := g.regs["r16"]; got != "r4" {
		t.Errorf("r16 maps to %s, want r4", got)
	}
	if got := g.regs["r22"]; got != "r10" {
		t.Errorf("r22 maps to %s, want r10", got)
	}
	if got := g.regs["fp"]; got != "r11" {
		t.Errorf("fp maps to %s, want r11", got)
	}
}

func TestARM32SoftwareDivision(t *testing.T) {
	g := newARM32()
	got := g.Idiv("r2", "r3")
	want := "    @ Signed division: r2 / r3\n    mov r0, r2\n    mov r1, r3\n    bl __aeabi_idiv\n    mov r2, r0\n"
	if got != want {
		t.Errorf("Idiv = %q, want %q", got, want)
	}

	got = g.Mod("r2", "r3")
	if !strings.Contains(got, "bl __aeabi_idivmod") {
		t.Errorf("Mod should call __aeabi_idivmod, got %q", got)
	}
	if !strings.HasSuffix(got, "    mov r2, r1\n") {
		t.Errorf("Mod should take the remainder from r1, got %q", got)
	}
}

func TestARM32RotateLeftComplement(t *testing.T) {
	g := newARM32()
	if got := g.Rol("r0", "8"); got != "    ror r0, r0, #24\n" {
		t.Errorf("Rol imm = %q", got)
	}
	got := g.Rol("r0", "r1")
	want := "    rsb r12, r1, #32\n    ror r0, r0, r12\n"
	if got != want {
		t.Errorf("Rol reg = %q, want %q", got, want)
	}
}

func TestARM32BitScans(t *testing.T) {
	g := newARM32()
	got := g.Bsr("r0", "r1")
	want := "    clz r0, r1\n    rsb r0, r0, #31\n"
	if got != want {
		t.Errorf("Bsr = %q, want %q", got, want)
	}
	if got := g.Bsf("r0", "r1"); !strings.HasPrefix(got, "    @ Bit scan forward") {
		t.Errorf("Bsf = %q", got)
	}
}

func TestARM32BextrEmulation(t *testing.T) {
	g := newARM32()
	got := g.Bextr("r0", "r1", "5,8")
	want := "    @ Bit field extract emulation\n    lsl r0, r1, #19\n    lsr r0, r0, #24\n"
	if got != want {
		t.Errorf("Bextr = %q, want %q", got, want)
	}
	if got := g.Bextr("r0", "r1", "r2"); !strings.Contains(got, "Invalid bextr immediate format") {
		t.Errorf("register control = %q", got)
	}
}

func TestARM32ConditionalSetPairs(t *testing.T) {
	g := newARM32()
	if got := g.Set(vasm.CondEq, "r0"); got != "    moveq r0, #1\n    movne r0, #0\n" {
		t.Errorf("Set eq = %q", got)
	}
	if got := g.Set(vasm.CondA, "r0"); got != "    movhi r0, #1\n    movls r0, #0\n" {
		t.Errorf("Set a = %q", got)
	}
}

func TestARM32ParityDegrades(t *testing.T) {
	g := newARM32()
	want := "    @ Parity flag not available in ARM32\n"
	if got := g.Jcc(vasm.CondP, "x"); got != want {
		t.Errorf("Jcc p = %q", got)
	}
	if got := g.Set(vasm.CondNp, "r0"); got != want {
		t.Errorf("Set np = %q", got)
	}
	if got := g.Cmov(vasm.CondP, "r0", "r1"); got != want {
		t.Errorf("Cmov p = %q", got)
	}
}

func TestARM32ConditionalBranches(t *testing.T) {
	g := newARM32()
	tests := []struct {
		cc   vasm.CondCode
		want string
	}{
		{vasm.CondEq, "    beq top\n"},
		{vasm.CondLt, "    blt top\n"},
		{vasm.CondOv, "    bvs top\n"},
		{vasm.CondA, "    bhi top\n"},
		{vasm.CondB, "    bcc top\n"},
	}
	for _, tt := range tests {
		if got := g.Jcc(tt.cc, "top"); got != tt.want {
			t.Errorf("Jcc(%v) = %q, want %q", tt.cc, got, tt.want)
		}
	}
}

func TestARM32SymbolicLoadStore(t *testing.T) {
	g := newARM32()
	got := g.Load("r0", "[counter]")
	want := "    adr r12, counter\n    ldr r0, [r12]\n"
	if got != want {
		t.Errorf("symbolic load = %q, want %q", got, want)
	}

	got = g.Store("[counter]", "7")
	want = "    adr r12, counter\n    mov lr, #7\n    str lr, [r12]\n"
	if got != want {
		t.Errorf("symbolic store imm = %q, want %q", got, want)
	}

	if got := g.Load("r0", "[r1+4]"); got != "    ldr r0, [r1, #4]\n" {
		t.Errorf("offset load = %q", got)
	}
	if got := g.Load("r0", "[r1-4]"); got != "    ldr r0, [r1, #-4]\n" {
		t.Errorf("negative offset load = %q", got)
	}
}

func TestARM32Syscalls(t *testing.T) {
	g := newARM32()
	if got := g.Syscall("write"); got != "    mov r7, #4\n    swi 0\n" {
		t.Errorf("write = %q", got)
	}
	if got := g.Syscall("exit"); got != "    mov r7, #1\n    swi 0\n" {
		t.Errorf("exit = %q", got)
	}
	got := g.Syscall("bogus")
	if !strings.HasPrefix(got, "    @ Unknown syscall: bogus\n") {
		t.Errorf("unknown = %q", got)
	}
}

func TestARM32Misc(t *testing.T) {
	g := newARM32()
	if got := g.Ret(); got != "    mov pc, lr\n" {
		t.Errorf("Ret = %q", got)
	}
	if got := g.Neg("r0"); got != "    rsb r0, r0, #0\n" {
		t.Errorf("Neg = %q", got)
	}
	if got := g.Andn("r0", "r1"); got != "    bic r0, r0, r1\n" {
		t.Errorf("Andn = %q", got)
	}
	if got := g.PushAll(); got != "    push {r0-r12, lr}\n" {
		t.Errorf("PushAll = %q", got)
	}
	if got := g.Mfence(); got != "    dmb sy\n" {
		t.Errorf("Mfence = %q", got)
	}
	if got := g.Cpuid(); got != "    @ CPUID not available in ARM32\n" {
		t.Errorf("Cpuid = %q", got)
	}
}
