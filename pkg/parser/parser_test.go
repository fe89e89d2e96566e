package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/raymyers/uasm/pkg/vasm"
)

func parseOne(t *testing.T, line string) vasm.Instruction {
	t.Helper()
	prog, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", line, err)
	}
	if len(prog) != 1 {
		t.Fatalf("Parse(%q) = %d instructions, want 1", line, len(prog))
	}
	return prog[0]
}

func TestParseInstructions(t *testing.T) {
	tests := []struct {
		line string
		want vasm.Instruction
	}{
		{"mov r0, 42", vasm.Mov{Dst: "r0", Src: "42"}},
		{"MOV r0, r1", vasm.Mov{Dst: "r0", Src: "r1"}},
		{"lea r1, [buffer]", vasm.Lea{Dst: "r1", Src: "[buffer]"}},
		{"load r2, [r1+8]", vasm.Load{Dst: "r2", Src: "[r1+8]"}},
		{"store [r1], r2", vasm.Store{Dst: "[r1]", Src: "r2"}},
		{"push r0", vasm.Push{Src: "r0"}},
		{"pop r3", vasm.Pop{Dst: "r3"}},
		{"pusha", vasm.Pusha{}},
		{"pushad", vasm.Pusha{}},
		{"popa", vasm.Popa{}},
		{"enter 32, 0", vasm.Enter{FrameSize: "32", Nesting: "0"}},
		{"leave", vasm.Leave{}},
		{"add r0, r1", vasm.Add{Dst: "r0", Src: "r1"}},
		{"mod r4, 7", vasm.Mod{Dst: "r4", Src: "7"}},
		{"andn r0, r1", vasm.Andn{Dst: "r0", Src: "r1"}},
		{"inc r0", vasm.Inc{Dst: "r0"}},
		{"neg r2", vasm.Neg{Dst: "r2"}},
		{"not r2", vasm.Not{Dst: "r2"}},
		{"rol r0, 5", vasm.Rol{Dst: "r0", Src: "5"}},
		{"bsf r0, r1", vasm.Bsf{Dst: "r0", Src: "r1"}},
		{"bsr r0, r1", vasm.Bsr{Dst: "r0", Src: "r1"}},
		{"cmp r0, 10", vasm.Cmp{A: "r0", B: "10"}},
		{"test r0, r0", vasm.Test{A: "r0", B: "r0"}},
		{"bt r0, 3", vasm.Bt{Dst: "r0", Bit: "3"}},
		{"btc r0, r1", vasm.Btc{Dst: "r0", Bit: "r1"}},
		{"jmp done", vasm.Jmp{Target: "done"}},
		{"call fn", vasm.Call{Target: "fn"}},
		{"ret", vasm.Ret{}},
		{"retn", vasm.Ret{}},
		{"loope top", vasm.LoopCond{Cond: vasm.CondEq, Target: "top"}},
		{"loopnz top", vasm.LoopCond{Cond: vasm.CondNe, Target: "top"}},
		{"cdqe r0", vasm.Cdqe{Dst: "r0"}},
		{"in r0, 0x60", vasm.In{Dst: "r0", Port: "0x60"}},
		{"out 0x60, r0", vasm.Out{Port: "0x60", Src: "r0"}},
		{"cpuid", vasm.Cpuid{}},
		{"mfence", vasm.Mfence{}},
		{"prefetch [r0]", vasm.Prefetch{Addr: "[r0]"}},
		{"clwb [r0]", vasm.Clwb{Addr: "[r0]"}},
		{"syscall write", vasm.Syscall{Name: "write"}},
		{"global _start", vasm.Global{Symbol: "_start"}},
		{"globl _start", vasm.Global{Symbol: "_start"}},
		{"extern printf", vasm.Extern{Symbol: "printf"}},
		{"align 16", vasm.Align{N: "16"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := parseOne(t, tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseConditionFamilies(t *testing.T) {
	tests := []struct {
		line string
		want vasm.Instruction
	}{
		{"je done", vasm.Jcc{Cond: vasm.CondEq, Target: "done"}},
		{"jz done", vasm.Jcc{Cond: vasm.CondEq, Target: "done"}},
		{"jnz done", vasm.Jcc{Cond: vasm.CondNe, Target: "done"}},
		{"jnge done", vasm.Jcc{Cond: vasm.CondLt, Target: "done"}},
		{"jae done", vasm.Jcc{Cond: vasm.CondAe, Target: "done"}},
		{"jc done", vasm.Jcc{Cond: vasm.CondB, Target: "done"}},
		{"jpe done", vasm.Jcc{Cond: vasm.CondP, Target: "done"}},
		{"cmove r0, r1", vasm.Cmov{Cond: vasm.CondEq, Dst: "r0", Src: "r1"}},
		{"cmovnz r0, 5", vasm.Cmov{Cond: vasm.CondNe, Dst: "r0", Src: "5"}},
		{"cmovge r2, r3", vasm.Cmov{Cond: vasm.CondGe, Dst: "r2", Src: "r3"}},
		{"sete r0", vasm.Set{Cond: vasm.CondEq, Dst: "r0"}},
		{"setl r0", vasm.Set{Cond: vasm.CondLt, Dst: "r0"}},
		{"setnbe r0", vasm.Set{Cond: vasm.CondA, Dst: "r0"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := parseOne(t, tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseStringOps(t *testing.T) {
	tests := []struct {
		line string
		want vasm.Instruction
	}{
		{"cmps [r0], [r1]", vasm.Cmps{A: "[r0]", B: "[r1]"}},
		{"cmpsb [r0], [r1]", vasm.Cmps{A: "[r0]", B: "[r1]"}},
		{"scasq [r0], 0", vasm.Scas{Src: "[r0]", Val: "0"}},
		{"stosd [r0], r1", vasm.Stos{Dst: "[r0]", Src: "r1"}},
		{"lodsw r1, [r0]", vasm.Lods{Dst: "r1", Src: "[r0]"}},
		{"movsq [r0], [r1]", vasm.Movs{Dst: "[r0]", Src: "[r1]"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := parseOne(t, tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseBextrControlForms(t *testing.T) {
	// The packed control operand contains its own comma.
	got := parseOne(t, "bextr r0, r1, 5,8")
	want := vasm.Bextr{Dst: "r0", Src: "r1", Ctrl: "5,8"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}

	got = parseOne(t, "bextr r0, r1, r2")
	want = vasm.Bextr{Dst: "r0", Src: "r1", Ctrl: "r2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestParseLabelsAndSections(t *testing.T) {
	src := `section .text
main:
    mov r0, 1
section .data
msg db "hi", 0
section .custom_sec
`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := []vasm.Instruction{
		vasm.SectionDir{Section: vasm.Section{Kind: vasm.SectionText}},
		vasm.Label{Name: "main"},
		vasm.Mov{Dst: "r0", Src: "1"},
		vasm.SectionDir{Section: vasm.Section{Kind: vasm.SectionData}},
		vasm.Data{Size: vasm.Byte, Name: "msg", Values: []string{`"hi"`, "0"}},
		vasm.SectionDir{Section: vasm.Section{Kind: vasm.SectionCustom, Name: "custom_sec"}},
	}
	if !reflect.DeepEqual(prog, want) {
		t.Errorf("Parse = %#v, want %#v", prog, want)
	}
}

func TestParseDataDirectives(t *testing.T) {
	tests := []struct {
		line string
		want vasm.Instruction
	}{
		{"nums dq 1, 2, 3", vasm.Data{Size: vasm.Qword, Name: "nums", Values: []string{"1", "2", "3"}}},
		{"half dw 0xFFFF", vasm.Data{Size: vasm.Word, Name: "half", Values: []string{"0xFFFF"}}},
		{`greet db "a,b", 10`, vasm.Data{Size: vasm.Byte, Name: "greet", Values: []string{`"a,b"`, "10"}}},
		{"buf resb 64", vasm.Reserve{Size: vasm.Byte, Name: "buf", Count: "64"}},
		{"table resq 16", vasm.Reserve{Size: vasm.Qword, Name: "table", Count: "16"}},
		{"SIZE equ 4096", vasm.Equ{Name: "SIZE", Value: "4096"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := parseOne(t, tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseComments(t *testing.T) {
	prog, err := Parse("mov r0, 1 ; set up\n; whole line comment\n\n")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(prog) != 1 {
		t.Fatalf("got %d instructions, want 1", len(prog))
	}

	// A semicolon inside a string literal is data, not a comment.
	got := parseOne(t, `msg db "a;b"`)
	want := vasm.Data{Size: vasm.Byte, Name: "msg", Values: []string{`"a;b"`}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"unknown mnemonic", "frobnicate r0", "unknown instruction"},
		{"wrong arity", "mov r0", "mov requires 2 operands"},
		{"empty label", ":", "empty label"},
		{"bad section", "section nodot", "invalid section name"},
		{"missing data value", "x db", "db requires at least one value"},
		{"missing count", "buf resw", "resw requires a count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.src)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParseErrorNamesLine(t *testing.T) {
	_, err := Parse("mov r0, 1\nbogus r1\n")
	if err == nil {
		t.Fatal("want error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q should name line 2", err)
	}
}
