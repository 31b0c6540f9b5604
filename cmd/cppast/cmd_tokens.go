package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/cppast/cpp"
	"github.com/dhamidi/cppast/format"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	var outputFormat string
	var symbols string

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			opts, err := in.tokenizerOptions(symbols)
			if err != nil {
				return err
			}

			encoder, err := format.NewTokenEncoder(outputFormat, os.Stdout, styledOutput(os.Stdout))
			if err != nil {
				return err
			}

			for tok, err := range cpp.NewTokenizer(in.r, opts...).All() {
				if err != nil {
					return fmt.Errorf("tokenize: %w", err)
				}
				if err := encoder.Encode(tok); err != nil {
					return fmt.Errorf("encode token: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", format.TokenNames[0], "output format ("+strings.Join(format.TokenNames, ", ")+")")
	cmd.Flags().StringVar(&symbols, "symbols", "default", "symbol table (default, c)")

	return cmd
}
