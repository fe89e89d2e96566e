package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raymyers/uasm/pkg/codegen"
	"github.com/raymyers/uasm/pkg/target"
	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"
)

var version = "0.1.0"

var (
	outputPath  string
	targetName  string
	toStdout    bool
	listTargets bool
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "uasm: %v\n", err)
		return 1
	}
	return 0
}

// singleDashFlags lists the long flags that also accept assembler-style
// single-dash spellings.
var singleDashFlags = []string{"list-targets", "stdout"}

// normalizeFlags converts single-dash long flags like -stdout to
// --stdout for pflag compatibility.
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		for _, flagName := range singleDashFlags {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
		if result[i] == "" {
			result[i] = arg
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "uasm [file]",
		Short: "uasm generates native assembly from virtual assembly source",
		Long: `uasm translates virtual assembly source into assembly text for a
chosen architecture and platform. One source program can target any
supported combination; operations an architecture cannot express are
synthesized or degraded to comment lines.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listTargets {
				return doListTargets(out)
			}

			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			filename := args[0]

			triple, err := target.Parse(targetName)
			if err != nil {
				return err
			}

			src, err := os.ReadFile(filename)
			if err != nil {
				return err
			}

			asm, err := codegen.Compile(string(src), triple)
			if err != nil {
				return fmt.Errorf("%s: %w", filename, err)
			}

			if toStdout {
				fmt.Fprint(out, asm)
				return nil
			}
			if err := os.WriteFile(outputPath, []byte(asm), 0644); err != nil {
				return err
			}
			fmt.Fprintf(errOut, "uasm: wrote %s for %s\n", outputPath, triple)
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "output.s", "Output file path")
	rootCmd.Flags().StringVarP(&targetName, "target", "t", env.Str("UASM_TARGET", "amd64-linux"), "Target triple, arch or arch-platform")
	rootCmd.Flags().BoolVarP(&toStdout, "stdout", "s", false, "Write assembly to stdout instead of a file")
	rootCmd.Flags().BoolVar(&listTargets, "list-targets", false, "List supported target triples")

	return rootCmd
}

// doListTargets prints every accepted arch-platform combination
func doListTargets(out io.Writer) error {
	var b strings.Builder
	for _, t := range target.List() {
		fmt.Fprintf(&b, "%s\n", t)
	}
	fmt.Fprint(out, b.String())
	return nil
}
