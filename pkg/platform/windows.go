package platform

import (
	"fmt"
	"strings"

	"github.com/raymyers/uasm/pkg/vasm"
)

// windows emits COFF directives in the GNU as (mingw) dialect
type windows struct{}

func (w *windows) SectionPrefix(sec vasm.Section) string {
	switch sec.Kind {
	case vasm.SectionText:
		return ".section .text,\"xr\"\n"
	case vasm.SectionData:
		return ".section .data,\"rw\"\n"
	case vasm.SectionBss:
		return ".section .bss,\"rw\"\n"
	case vasm.SectionRodata:
		return ".section .rdata,\"r\"\n"
	default:
		return fmt.Sprintf(".section .%s,\"r\"\n", sec.Name)
	}
}

func (w *windows) GlobalDirective(symbol string) string {
	return fmt.Sprintf(".globl %s\n.def %s; .scl 2; .type 32; .endef\n", symbol, symbol)
}

func (w *windows) ExternDirective(symbol string) string {
	return fmt.Sprintf(".extern %s\n", symbol)
}

func (w *windows) DataDirective(size vasm.DataSize, name string, values []string) string {
	directive := map[vasm.DataSize]string{
		vasm.Byte:  ".byte",
		vasm.Word:  ".word",
		vasm.Dword: ".long",
		vasm.Qword: ".quad",
	}[size]

	var b strings.Builder
	if size != vasm.Byte {
		fmt.Fprintf(&b, ".align %d\n", size.Bytes())
	}
	fmt.Fprintf(&b, "%s:\n", name)
	fmt.Fprintf(&b, "    %s %s\n", directive, strings.Join(values, ", "))
	return b.String()
}

func (w *windows) ReserveDirective(name, size string) string {
	var b strings.Builder
	if a := reserveAlign(size, false); a != 0 {
		fmt.Fprintf(&b, ".align %d\n", a)
	}
	if name != "anonymous" {
		fmt.Fprintf(&b, "%s:\n", name)
	}
	fmt.Fprintf(&b, "    .space %s\n", size)
	return b.String()
}

func (w *windows) EquDirective(name, value string) string {
	return fmt.Sprintf(".equ %s, %s\n", name, value)
}
