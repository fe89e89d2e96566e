package platform

import (
	"fmt"
	"strings"

	"github.com/raymyers/uasm/pkg/target"
	"github.com/raymyers/uasm/pkg/vasm"
)

// linux emits GNU as directives for ELF output, serving every ELF
// platform (BSD, Solaris and Embedded included). ARM assemblers spell
// the section type with '%' where the others use '@'.
type linux struct {
	arch target.Architecture
}

func (l *linux) typeChar() string {
	if l.arch == target.ARM32 || l.arch == target.ARM64 {
		return "%"
	}
	return "@"
}

func (l *linux) SectionPrefix(sec vasm.Section) string {
	c := l.typeChar()
	switch sec.Kind {
	case vasm.SectionText:
		return fmt.Sprintf(".section .text,\"ax\",%sprogbits\n", c)
	case vasm.SectionData:
		return fmt.Sprintf(".section .data,\"aw\",%sprogbits\n", c)
	case vasm.SectionBss:
		return fmt.Sprintf(".section .bss,\"aw\",%snobits\n", c)
	case vasm.SectionRodata:
		return fmt.Sprintf(".section .rodata,\"a\",%sprogbits\n", c)
	default:
		return fmt.Sprintf(".section .%s,\"a\",%sprogbits\n", sec.Name, c)
	}
}

func (l *linux) GlobalDirective(symbol string) string {
	return fmt.Sprintf(".globl %s\n.type %s, %sfunction\n", symbol, symbol, l.typeChar())
}

func (l *linux) ExternDirective(symbol string) string {
	return fmt.Sprintf(".extern %s\n", symbol)
}

func (l *linux) DataDirective(size vasm.DataSize, name string, values []string) string {
	directive := map[vasm.DataSize]string{
		vasm.Byte:  ".byte",
		vasm.Word:  ".2byte",
		vasm.Dword: ".4byte",
		vasm.Qword: ".8byte",
	}[size]

	var b strings.Builder
	if size != vasm.Byte {
		fmt.Fprintf(&b, ".align %d\n", size.Bytes())
	}
	fmt.Fprintf(&b, "%s:\n", name)
	fmt.Fprintf(&b, ".type %s, %sobject\n", name, l.typeChar())
	fmt.Fprintf(&b, "    %s %s\n", directive, strings.Join(values, ", "))
	fmt.Fprintf(&b, ".size %s, .-%s\n", name, name)
	return b.String()
}

func (l *linux) ReserveDirective(name, size string) string {
	var b strings.Builder
	if a := reserveAlign(size, false); a != 0 {
		fmt.Fprintf(&b, ".align %d\n", a)
	}
	if name != "anonymous" {
		fmt.Fprintf(&b, "%s:\n", name)
		fmt.Fprintf(&b, ".type %s, %sobject\n", name, l.typeChar())
	}
	fmt.Fprintf(&b, "    .space %s\n", size)
	if name != "anonymous" {
		fmt.Fprintf(&b, ".size %s, %s\n", name, size)
	}
	return b.String()
}

func (l *linux) EquDirective(name, value string) string {
	return fmt.Sprintf(".set %s, %s\n", name, value)
}
