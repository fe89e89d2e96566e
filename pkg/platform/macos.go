package platform

import (
	"fmt"
	"strings"

	"github.com/raymyers/uasm/pkg/vasm"
)

// macos emits Mach-O directives. Symbols carry the leading
// underscore the Darwin toolchain expects.
type macos struct{}

func (m *macos) SectionPrefix(sec vasm.Section) string {
	switch sec.Kind {
	case vasm.SectionText:
		return ".text\n"
	case vasm.SectionData:
		return ".data\n"
	case vasm.SectionBss:
		return ".bss\n"
	case vasm.SectionRodata:
		return ".const\n"
	default:
		return fmt.Sprintf(".section __DATA,__%s\n", sec.Name)
	}
}

func (m *macos) GlobalDirective(symbol string) string {
	return fmt.Sprintf(".globl _%s\n", symbol)
}

func (m *macos) ExternDirective(symbol string) string {
	return fmt.Sprintf(".extern _%s\n", symbol)
}

func (m *macos) DataDirective(size vasm.DataSize, name string, values []string) string {
	directive := map[vasm.DataSize]string{
		vasm.Byte:  ".byte",
		vasm.Word:  ".short",
		vasm.Dword: ".long",
		vasm.Qword: ".quad",
	}[size]

	var b strings.Builder
	switch size {
	case vasm.Word:
		b.WriteString(".p2align 1\n")
	case vasm.Dword:
		b.WriteString(".p2align 2\n")
	case vasm.Qword:
		b.WriteString(".p2align 3\n")
	}
	fmt.Fprintf(&b, "_%s:\n", name)
	fmt.Fprintf(&b, "    %s %s\n", directive, strings.Join(values, ", "))
	return b.String()
}

func (m *macos) ReserveDirective(name, size string) string {
	var b strings.Builder
	if a := reserveAlign(size, true); a != 0 {
		fmt.Fprintf(&b, ".p2align %d\n", a)
	}
	if name != "anonymous" {
		fmt.Fprintf(&b, "_%s:\n", name)
	}
	fmt.Fprintf(&b, "    .space %s\n", size)
	return b.String()
}

func (m *macos) EquDirective(name, value string) string {
	return fmt.Sprintf(".set _%s, %s\n", name, value)
}
