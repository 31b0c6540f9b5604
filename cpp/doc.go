// Package cpp parses C preprocessor directives into a syntax tree.
//
// # Overview
//
// Text flows one way through three stages:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Peeker    │────▶│  Tokenizer  │────▶│   Parser    │
//	│   (runes)   │     │  (tokens)   │     │   (Ast)     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// Peeker buffers runes so the tokenizer can look ahead while matching
// symbols. Tokenizer buffers whole tokens so the parser can look ahead
// while choosing a production. Neither buffer ever rewinds the underlying
// reader; every rune and every token is produced exactly once.
//
// # Tokens
//
// Tokens are symbols, words, integer literals, string literals and new
// lines. Whitespace other than line terminators is dropped. "\n" and
// "\r\n" both end a line; a lone "\r" is whitespace. At end of input the
// tokenizer appends one synthetic new line and then reports io.EOF.
//
// Symbols are matched longest first against a configurable table, so "+="
// is one symbol and never "+" followed by "=".
//
// # Grammar
//
//	File     = { NewLine | Directive | Comment } .
//	Directive = "#" "define" Word ( Params | ) [ Expr ] [ Comment ] NewLine .
//	Params   = "(" [ Expr ] { "," [ Expr ] } ")" .
//	Expr     = Word | Integer .
//
// Every element of a parameter list must be an identifier. Comments keep
// their kind and their verbatim body text.
//
// # Errors
//
// The first error ends the parse. Errors are *Error values with a closed
// ErrorKind, the offending token and its position:
//
//	ast, err := cpp.ParseString("#define F(a, 1) a\n")
//	if cpp.IsKind(err, cpp.ErrExpectedIdentifier) {
//		// ...
//	}
//
// Statements completed before the error remain in the Ast.
//
// A panic carrying *InternalError means the parser reached a state it had
// already ruled out. It signals a bug, never bad input.
package cpp
