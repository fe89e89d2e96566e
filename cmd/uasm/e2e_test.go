package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// E2EAsmTestSpec is a single end-to-end assembly generation case
type E2EAsmTestSpec struct {
	Name         string   `yaml:"name"`
	Target       string   `yaml:"target"`
	Input        string   `yaml:"input"`
	Expect       []string `yaml:"expect"`        // Strings that must appear in output
	ExpectOrder  []string `yaml:"expect_order"`  // Strings that must appear in this order
	ExpectUnique []string `yaml:"expect_unique"` // Strings that must appear exactly once
	ExpectNot    []string `yaml:"expect_not"`    // Strings that must NOT appear in output
	Skip         string   `yaml:"skip,omitempty"`
}

// E2EAsmTestFile is the e2e_asm.yaml file structure
type E2EAsmTestFile struct {
	Tests []E2EAsmTestSpec `yaml:"tests"`
}

func TestE2EAsmYAML(t *testing.T) {
	data, err := os.ReadFile("../../testdata/e2e_asm.yaml")
	if err != nil {
		t.Fatalf("e2e_asm.yaml not found: %v", err)
	}

	var testFile E2EAsmTestFile
	if err := yaml.Unmarshal(data, &testFile); err != nil {
		t.Fatalf("failed to parse e2e_asm.yaml: %v", err)
	}

	for _, tc := range testFile.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			if tc.Skip != "" {
				t.Skip(tc.Skip)
			}

			tmpDir := t.TempDir()
			srcFile := filepath.Join(tmpDir, "test.uasm")
			if err := os.WriteFile(srcFile, []byte(tc.Input), 0644); err != nil {
				t.Fatalf("failed to write test file: %v", err)
			}

			tgt := tc.Target
			if tgt == "" {
				tgt = "amd64-linux"
			}

			var out, errOut bytes.Buffer
			cmd := newRootCmd(&out, &errOut)
			cmd.SetArgs([]string{"-t", tgt, "--stdout", srcFile})
			if err := cmd.Execute(); err != nil {
				t.Fatalf("uasm failed: %v\nStderr: %s", err, errOut.String())
			}

			output := out.String()
			for _, exp := range tc.Expect {
				if !strings.Contains(output, exp) {
					t.Errorf("expected output to contain %q\nGot:\n%s", exp, output)
				}
			}

			if len(tc.ExpectOrder) > 0 {
				lastIdx := -1
				for _, exp := range tc.ExpectOrder {
					idx := strings.Index(output, exp)
					if idx == -1 {
						t.Errorf("expected output to contain %q for order check\nGot:\n%s", exp, output)
					} else if idx <= lastIdx {
						t.Errorf("expected %q to appear after previous pattern (position %d vs %d)\nGot:\n%s", exp, idx, lastIdx, output)
					}
					lastIdx = idx
				}
			}

			for _, exp := range tc.ExpectUnique {
				count := strings.Count(output, exp)
				if count != 1 {
					t.Errorf("expected %q to appear exactly once, found %d times\nGot:\n%s", exp, count, output)
				}
			}

			for _, exp := range tc.ExpectNot {
				if strings.Contains(output, exp) {
					t.Errorf("expected output NOT to contain %q\nGot:\n%s", exp, output)
				}
			}
		})
	}
}
