// Package platform emits the assembler directives that differ by
// operating system: section headers, symbol visibility, data
// definitions, storage reservations and constant bindings.
package platform

import (
	"fmt"

	"github.com/raymyers/uasm/pkg/target"
	"github.com/raymyers/uasm/pkg/vasm"
)

// Provider formats platform-specific directives. Instruction
// lowering never goes through a Provider; only directives do.
type Provider interface {
	SectionPrefix(sec vasm.Section) string
	GlobalDirective(symbol string) string
	ExternDirective(symbol string) string
	DataDirective(size vasm.DataSize, name string, values []string) string
	// ReserveDirective reserves size bytes; size stays textual so
	// symbolic counts pass through. The name "anonymous" suppresses
	// the label.
	ReserveDirective(name, size string) string
	EquDirective(name, value string) string
}

// New builds the provider for the triple's platform. Every platform
// with ELF output shares the linux provider; the directives are GNU as
// and carry nothing Linux-specific.
func New(t target.Triple) (Provider, error) {
	switch t.Platform {
	case target.Linux, target.BSD, target.Solaris, target.Embedded:
		return &linux{arch: t.Arch}, nil
	case target.MacOS:
		return &macos{}, nil
	case target.Windows:
		return &windows{}, nil
	}
	return nil, fmt.Errorf("platform %s is not currently implemented", t.Platform)
}

// reserveAlign returns the .align/.p2align argument for a byte count,
// or 0 when no alignment directive should be emitted.
func reserveAlign(size string, p2 bool) int {
	var n int
	if _, err := fmt.Sscanf(size, "%d", &n); err != nil {
		return 0
	}
	switch {
	case n >= 8:
		if p2 {
			return 3
		}
		return 8
	case n >= 4:
		if p2 {
			return 2
		}
		return 4
	case n >= 2:
		if p2 {
			return 1
		}
		return 2
	}
	return 0
}
