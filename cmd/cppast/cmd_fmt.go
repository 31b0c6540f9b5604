package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dhamidi/cppast/cpp"
	"github.com/dhamidi/cppast/format"
	"github.com/spf13/cobra"
)

func newFmtCmd() *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Pretty-print a file of #define directives and comments",
		Long: `Pretty-print a file of #define directives and comments to stdout.

If no file is provided, reads from stdin.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fmtOverwrite && len(args) == 0 {
				return fmt.Errorf("-w requires a file argument")
			}

			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			output, err := formatSource(in)
			if err != nil {
				return err
			}

			if fmtOverwrite {
				return os.WriteFile(in.name, output, 0644)
			}
			_, err = os.Stdout.Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}

func formatSource(in *input) ([]byte, error) {
	p := cpp.NewParser()
	if err := p.Parse(cpp.NewTokenizer(in.r, cpp.WithFile(in.name))); err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	var buf bytes.Buffer
	if err := format.NewPrettyPrinter(&buf).Encode(p.Ast()); err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	return buf.Bytes(), nil
}
