package platform

import (
	"strings"
	"testing"

	"github.com/raymyers/uasm/pkg/target"
	"github.com/raymyers/uasm/pkg/vasm"
)

func mustProvider(t *testing.T, a target.Architecture, p target.Platform) Provider {
	t.Helper()
	prov, err := New(target.NewTriple(a, p))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return prov
}

func TestLinuxSectionPrefix(t *testing.T) {
	p := mustProvider(t, target.AMD64, target.Linux)
	tests := []struct {
		sec  vasm.Section
		want string
	}{
		{vasm.Section{Kind: vasm.SectionText}, ".section .text,\"ax\",@progbits\n"},
		{vasm.Section{Kind: vasm.SectionData}, ".section .data,\"aw\",@progbits\n"},
		{vasm.Section{Kind: vasm.SectionBss}, ".section .bss,\"aw\",@nobits\n"},
		{vasm.Section{Kind: vasm.SectionRodata}, ".section .rodata,\"a\",@progbits\n"},
		{vasm.Section{Kind: vasm.SectionCustom, Name: "mine"}, ".section .mine,\"a\",@progbits\n"},
	}
	for _, tt := range tests {
		if got := p.SectionPrefix(tt.sec); got != tt.want {
			t.Errorf("SectionPrefix(%v) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}

func TestLinuxARMTypeChar(t *testing.T) {
	// ARM assemblers reject '@' as a section type marker
	p := mustProvider(t, target.ARM32, target.Linux)
	got := p.SectionPrefix(vasm.Section{Kind: vasm.SectionText})
	if got != ".section .text,\"ax\",%progbits\n" {
		t.Errorf("ARM32 text section = %q", got)
	}
	if g := p.GlobalDirective("main"); !strings.Contains(g, "%function") {
		t.Errorf("ARM32 global = %q, want %%function type", g)
	}

	p64 := mustProvider(t, target.ARM64, target.Linux)
	if g := p64.GlobalDirective("main"); !strings.Contains(g, "%function") {
		t.Errorf("ARM64 global = %q, want %%function type", g)
	}

	x86 := mustProvider(t, target.AMD64, target.Linux)
	if g := x86.GlobalDirective("main"); !strings.Contains(g, "@function") {
		t.Errorf("AMD64 global = %q, want @function type", g)
	}
}

func TestLinuxDataDirective(t *testing.T) {
	p := mustProvider(t, target.AMD64, target.Linux)

	got := p.DataDirective(vasm.Qword, "nums", []string{"1", "2"})
	want := ".align 8\nnums:\n.type nums, @object\n    .8byte 1, 2\n.size nums, .-nums\n"
	if got != want {
		t.Errorf("qword data = %q, want %q", got, want)
	}

	// Byte data takes no alignment directive
	got = p.DataDirective(vasm.Byte, "msg", []string{"72", "105"})
	if strings.Contains(got, ".align") {
		t.Errorf("byte data should not align, got %q", got)
	}
	if !strings.Contains(got, "    .byte 72, 105\n") {
		t.Errorf("byte data = %q", got)
	}
}

func TestLinuxReserveDirective(t *testing.T) {
	p := mustProvider(t, target.AMD64, target.Linux)

	got := p.ReserveDirective("buf", "64")
	want := ".align 8\nbuf:\n.type buf, @object\n    .space 64\n.size buf, 64\n"
	if got != want {
		t.Errorf("reserve = %q, want %q", got, want)
	}

	tests := []struct {
		size      string
		wantAlign string
	}{
		{"1", ""},
		{"2", ".align 2\n"},
		{"4", ".align 4\n"},
		{"7", ".align 4\n"},
		{"8", ".align 8\n"},
		{"4096", ".align 8\n"},
	}
	for _, tt := range tests {
		got := p.ReserveDirective("anonymous", tt.size)
		if tt.wantAlign == "" {
			if strings.Contains(got, ".align") {
				t.Errorf("size %s should not align, got %q", tt.size, got)
			}
		} else if !strings.HasPrefix(got, tt.wantAlign) {
			t.Errorf("size %s = %q, want prefix %q", tt.size, got, tt.wantAlign)
		}
	}
}

func TestAnonymousReserveSuppressesLabel(t *testing.T) {
	p := mustProvider(t, target.AMD64, target.Linux)
	got := p.ReserveDirective("anonymous", "16")
	if strings.Contains(got, "anonymous") {
		t.Errorf("anonymous reserve should emit no label, got %q", got)
	}
	if !strings.Contains(got, "    .space 16\n") {
		t.Errorf("anonymous reserve = %q", got)
	}
}

func TestMacOSDirectives(t *testing.T) {
	p := mustProvider(t, target.ARM64, target.MacOS)

	if got := p.GlobalDirective("main"); got != ".globl _main\n" {
		t.Errorf("global = %q", got)
	}
	if got := p.SectionPrefix(vasm.Section{Kind: vasm.SectionRodata}); got != ".const\n" {
		t.Errorf("rodata = %q", got)
	}
	if got := p.SectionPrefix(vasm.Section{Kind: vasm.SectionCustom, Name: "mine"}); got != ".section __DATA,__mine\n" {
		t.Errorf("custom = %q", got)
	}

	got := p.DataDirective(vasm.Dword, "vals", []string{"1"})
	want := ".p2align 2\n_vals:\n    .long 1\n"
	if got != want {
		t.Errorf("dword data = %q, want %q", got, want)
	}

	if got := p.EquDirective("SIZE", "4096"); got != ".set _SIZE, 4096\n" {
		t.Errorf("equ = %q", got)
	}

	// Mach-O output never carries ELF .type/.size annotations
	got = p.ReserveDirective("buf", "64")
	if strings.Contains(got, ".type") || strings.Contains(got, ".size") {
		t.Errorf("reserve = %q, should not carry ELF annotations", got)
	}
	if !strings.HasPrefix(got, ".p2align 3\n_buf:\n") {
		t.Errorf("reserve = %q", got)
	}
}

func TestWindowsDirectives(t *testing.T) {
	p := mustProvider(t, target.AMD64, target.Windows)

	got := p.GlobalDirective("main")
	want := ".globl main\n.def main; .scl 2; .type 32; .endef\n"
	if got != want {
		t.Errorf("global = %q, want %q", got, want)
	}

	if got := p.SectionPrefix(vasm.Section{Kind: vasm.SectionRodata}); got != ".section .rdata,\"r\"\n" {
		t.Errorf("rodata = %q", got)
	}
	if got := p.EquDirective("SIZE", "4096"); got != ".equ SIZE, 4096\n" {
		t.Errorf("equ = %q", got)
	}
	got = p.DataDirective(vasm.Word, "half", []string{"7"})
	want = ".align 2\nhalf:\n    .word 7\n"
	if got != want {
		t.Errorf("word data = %q, want %q", got, want)
	}
}

func TestELFPlatformsShareProvider(t *testing.T) {
	for _, p := range []target.Platform{target.BSD, target.Solaris, target.Embedded} {
		prov, err := New(target.NewTriple(target.AMD64, p))
		if err != nil {
			t.Fatalf("%s provider: %v", p, err)
		}
		got := prov.SectionPrefix(vasm.Section{Kind: vasm.SectionText})
		if got != ".section .text,\"ax\",@progbits\n" {
			t.Errorf("%s text section = %q", p, got)
		}
	}

	prov, err := New(target.NewTriple(target.ARM64, target.Embedded))
	if err != nil {
		t.Fatal(err)
	}
	if got := prov.GlobalDirective("reset"); got != ".globl reset\n.type reset, %function\n" {
		t.Errorf("embedded ARM global = %q", got)
	}
}

func TestUnsupportedPlatform(t *testing.T) {
	_, err := New(target.NewTriple(target.AMD32, target.DOS))
	if err == nil {
		t.Fatal("DOS provider should not exist yet")
	}
	if !strings.Contains(err.Error(), "not currently implemented") {
		t.Errorf("error = %q", err)
	}
}
