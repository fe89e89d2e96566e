package vasm

import "testing"

func TestCondCodeString(t *testing.T) {
	tests := []struct {
		cc   CondCode
		want string
	}{
		{CondEq, "eq"},
		{CondNe, "ne"},
		{CondLt, "lt"},
		{CondGe, "ge"},
		{CondP, "p"},
		{CondBe, "be"},
	}
	for _, tt := range tests {
		if got := tt.cc.String(); got != tt.want {
			t.Errorf("CondCode(%d).String() = %q, want %q", tt.cc, got, tt.want)
		}
	}
}

func TestCondCodeSynthSaltOrdering(t *testing.T) {
	// Branch-around label numbering depends on these staying 0..15
	for i := CondEq; i <= CondBe; i++ {
		if i.SynthSalt() != int(i) {
			t.Errorf("SynthSalt(%v) = %d, want %d", i, i.SynthSalt(), int(i))
		}
	}
}

func TestDataSizeBytes(t *testing.T) {
	tests := []struct {
		size DataSize
		want int
	}{
		{Byte, 1},
		{Word, 2},
		{Dword, 4},
		{Qword, 8},
	}
	for _, tt := range tests {
		if got := tt.size.Bytes(); got != tt.want {
			t.Errorf("DataSize(%d).Bytes() = %d, want %d", tt.size, got, tt.want)
		}
	}
}
