package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/cppast/codebase"
	"github.com/dhamidi/cppast/format"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "scan <file-or-directory>",
		Short: "List the defines in C source files",
		Long: `Scan .h and .c files for #define directives.

Ordinary C code between directives is skipped. Each define is printed as
one tab separated line prefixed with its file. Files that stop at a syntax
error keep the defines found before it; the error goes to stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			st, err := os.Stat(root)
			if err != nil {
				return fmt.Errorf("stat: %w", err)
			}

			cb := codebase.New(root)
			if st.IsDir() {
				if err := cb.ScanAll(cmd.Context()); err != nil {
					return fmt.Errorf("scan %s: %w", root, err)
				}
			} else if err := cb.ScanFile(root); err != nil {
				return fmt.Errorf("scan %s: %w", root, err)
			}

			out := bufio.NewWriter(os.Stdout)
			defer out.Flush()

			enc := format.NewLineEncoder(nil)
			failed := 0
			for _, path := range cb.Files() {
				info := cb.GetFile(path)
				if info.ParseErr != nil {
					failed++
					fmt.Fprintln(os.Stderr, info.ParseErr)
				}
				text, err := enc.MarshalText(info.AST)
				if err != nil {
					return fmt.Errorf("encode %s: %w", path, err)
				}
				for _, line := range splitLines(text) {
					fmt.Fprintf(out, "%s\t%s\n", path, line)
				}
			}

			if strict && failed > 0 {
				return fmt.Errorf("%d of %d files had errors", failed, len(cb.Files()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any file has a syntax error")

	return cmd
}

func splitLines(text []byte) []string {
	s := strings.TrimSuffix(string(text), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
