// Package target models the architecture/platform pairs the
// generator can emit assembly for, and parses the target strings
// accepted on the command line.
package target

import (
	"fmt"
	"sort"
	"strings"
)

// Architecture identifies an instruction-set architecture
type Architecture int

const (
	AMD64 Architecture = iota
	AMD32
	ARM32
	ARM64
	RISCV
	PowerPC64
	// Recognized but without a backend yet
	MIPS32
	SPARC64
	IA64
	Alpha
	HPPA
	M68K
	AVR
	MSP430
	SuperH
	VAX
)

// String returns the canonical architecture name
func (a Architecture) String() string {
	names := []string{
		"amd64", "amd32", "arm32", "arm64", "riscv64", "ppc64",
		"mips32", "sparc64", "ia64", "alpha", "hppa", "m68k",
		"avr", "msp430", "sh", "vax",
	}
	if int(a) < len(names) {
		return names[a]
	}
	return "?"
}

// Implemented reports whether a lowering backend exists for a
func (a Architecture) Implemented() bool {
	switch a {
	case AMD64, AMD32, ARM32, ARM64, RISCV, PowerPC64:
		return true
	}
	return false
}

// Platform identifies a target operating system
type Platform int

const (
	Linux Platform = iota
	Windows
	MacOS
	BSD
	Solaris
	DOS
	Embedded
)

// String returns the canonical platform name
func (p Platform) String() string {
	names := []string{
		"linux", "windows", "macos", "bsd", "solaris", "dos", "embedded",
	}
	if int(p) < len(names) {
		return names[p]
	}
	return "?"
}

// Format is the object format implied by the platform
type Format int

const (
	ELF Format = iota
	COFF
	MachO
	MZ
)

// String returns the format name
func (f Format) String() string {
	return []string{"elf", "coff", "macho", "mz"}[f]
}

// FormatFor returns the object format the platform uses
func FormatFor(p Platform) Format {
	switch p {
	case Windows:
		return COFF
	case MacOS:
		return MachO
	case DOS:
		return MZ
	default:
		return ELF
	}
}

// Triple is a resolved compilation target
type Triple struct {
	Arch     Architecture
	Platform Platform
	Format   Format
}

// NewTriple builds a triple, deriving the object format
func NewTriple(a Architecture, p Platform) Triple {
	return Triple{Arch: a, Platform: p, Format: FormatFor(p)}
}

// String renders the triple in the form accepted by Parse
func (t Triple) String() string {
	return t.Arch.String() + "-" + t.Platform.String()
}

var archAliases = map[string]Architecture{
	"amd64": AMD64, "x86_64": AMD64, "x86-64": AMD64,
	"amd": AMD64, "x64": AMD64, "intel64": AMD64,

	"amd32": AMD32, "x86": AMD32, "x86_32": AMD32, "ia32": AMD32,
	"i386": AMD32, "i486": AMD32, "i586": AMD32, "i686": AMD32,

	"arm32": ARM32, "arm": ARM32, "armv7": ARM32, "armhf": ARM32,

	"arm64": ARM64, "aarch64": ARM64, "armv8": ARM64,

	"riscv": RISCV, "riscv64": RISCV, "rv64": RISCV,

	"ppc64": PowerPC64, "powerpc64": PowerPC64,
	"ppc": PowerPC64, "power": PowerPC64,

	"mips32": MIPS32, "mips": MIPS32,
	"sparc64": SPARC64, "sparc": SPARC64,
	"ia64": IA64, "itanium": IA64,
	"alpha":  Alpha,
	"hppa":   HPPA,
	"m68k":   M68K,
	"avr":    AVR,
	"msp430": MSP430,
	"sh": SuperH, "superh": SuperH,
	"vax": VAX,
}

var platformAliases = map[string]Platform{
	"linux":   Linux,
	"windows": Windows, "win": Windows,
	"macos": MacOS, "darwin": MacOS, "osx": MacOS,
	"bsd": BSD, "freebsd": BSD,
	"solaris":  Solaris,
	"dos":      DOS,
	"embedded": Embedded, "none": Embedded,
}

// platformsFor lists the platforms each implemented architecture
// can target.
var platformsFor = map[Architecture][]Platform{
	AMD64:     {Linux, Windows, MacOS, BSD, Solaris, Embedded},
	AMD32:     {Linux, Windows, BSD, DOS, Embedded},
	ARM32:     {Linux, BSD, Embedded},
	ARM64:     {Linux, Windows, MacOS, BSD, Embedded},
	RISCV:     {Linux, BSD, Embedded},
	PowerPC64: {Linux, BSD, Embedded},
}

// Supports reports whether the architecture can target the platform
func Supports(a Architecture, p Platform) bool {
	for _, q := range platformsFor[a] {
		if q == p {
			return true
		}
	}
	return false
}

// Parse resolves a target string of the form "arch" or
// "arch-platform". The platform defaults to linux.
func Parse(s string) (Triple, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Triple{}, fmt.Errorf("empty target")
	}
	archPart := s
	platPart := "linux"
	if i := strings.LastIndex(s, "-"); i > 0 {
		if _, ok := platformAliases[s[i+1:]]; ok {
			archPart, platPart = s[:i], s[i+1:]
		}
	}
	arch, ok := archAliases[archPart]
	if !ok {
		return Triple{}, fmt.Errorf("unknown architecture %q", archPart)
	}
	plat, ok := platformAliases[platPart]
	if !ok {
		return Triple{}, fmt.Errorf("unknown platform %q", platPart)
	}
	if arch.Implemented() && !Supports(arch, plat) {
		return Triple{}, fmt.Errorf("architecture %s is not supported on platform %s", arch, plat)
	}
	return NewTriple(arch, plat), nil
}

// List returns the target strings a generator can be built for,
// sorted. DOS pairs parse but have no MZ output provider yet, so they
// are not advertised.
func List() []string {
	var out []string
	for a, plats := range platformsFor {
		for _, p := range plats {
			if p == DOS {
				continue
			}
			out = append(out, NewTriple(a, p).String())
		}
	}
	sort.Strings(out)
	return out
}
