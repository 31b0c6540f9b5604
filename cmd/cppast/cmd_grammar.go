package main

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/dhamidi/cppast/cpp/grammar"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "grammar",
		Short:         "Print the EBNF grammar of the directive language",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := os.Stdout.Write(grammar.Source())
			return err
		},
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarLexCmd())
	cmd.AddCommand(newGrammarMatchCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check [file]",
		Short:         "Parse and verify an EBNF grammar (the built-in one by default)",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(args)
			if err != nil {
				printErrors(err)
				return err
			}

			if startProduction == "" {
				return nil
			}
			if err := ebnf.Verify(g, startProduction); err != nil {
				printErrors(err)
				return err
			}
			fmt.Printf("ok: %d productions reachable from %s\n", len(g), startProduction)
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newGrammarLexCmd() *cobra.Command {
	var grammarFile string

	cmd := &cobra.Command{
		Use:   "lex [file]",
		Short: "Tokenize input with the grammar's lexical productions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var grammarArgs []string
			if grammarFile != "" {
				grammarArgs = []string{grammarFile}
			}
			g, err := loadGrammar(grammarArgs)
			if err != nil {
				printErrors(err)
				return err
			}

			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			data, err := io.ReadAll(in.r)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			for _, tok := range grammar.NewLexer(g, data, in.name).Tokenize() {
				fmt.Println(tok)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "", "EBNF file to use instead of the built-in grammar")

	return cmd
}

func newGrammarMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match [file]",
		Short: "Check input against the grammar's Directives production",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load()
			if err != nil {
				return err
			}

			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			data, err := io.ReadAll(in.r)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			if err := grammar.CheckDirectives(g, data, in.name); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}

	return cmd
}

func loadGrammar(args []string) (ebnf.Grammar, error) {
	if len(args) == 0 {
		return grammar.Load()
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ebnf.Parse(args[0], f)
}

// printErrors prints each error of an error list on its own line.
func printErrors(err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(os.Stderr, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
}
