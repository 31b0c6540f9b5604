package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/cppast/cpp"
	"github.com/dhamidi/cppast/format"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var symbols string
	var partial bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse #define directives and comments and dump the AST",
		Long: `Parse a file made of #define directives and comments.

Reads stdin when no file is given. With --partial the statements parsed
before a syntax error are printed too.`,
		Args: cobra.MaximumNArgs(1),
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

			encoder, err := format.New(outputFormat, os.Stdout)
			if err != nil {
				return err
			}

			p := cpp.NewParser()
			parseErr := p.Parse(cpp.NewTokenizer(in.r, opts...))
			log.Debugf("parsed %d statements from %s", len(p.Ast().Nodes), in.name)

			if parseErr != nil && !partial {
				return fmt.Errorf("parse: %w", parseErr)
			}

			if jsonEnc, ok := encoder.(*format.ASTJSONEncoder); ok && partial {
				if err := jsonEnc.EncodeResult(p.Ast(), parseErr); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				if parseErr != nil {
					return fmt.Errorf("parse: %w", parseErr)
				}
				return nil
			}

			if err := encoder.Encode(p.Ast()); err != nil {
				return fmt.Errorf("encode %s: %w", outputFormat, err)
			}
			if parseErr != nil {
				return fmt.Errorf("parse: %w", parseErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", format.Names[0], "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().StringVar(&symbols, "symbols", "default", "symbol table (default, c)")
	cmd.Flags().BoolVar(&partial, "partial", false, "print the statements parsed before an error")

	return cmd
}
