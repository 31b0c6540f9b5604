package cpp

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Parser builds an Ast from a token stream by recursive descent. Each
// parse method owns one production. The first error aborts the whole parse;
// statements completed before it stay in the Ast.
type Parser struct {
	ast *Ast
}

func NewParser() *Parser {
	return &Parser{ast: NewAst()}
}

// Ast returns the statements parsed so far. After a failed Parse it holds
// only the statements that completed before the error.
func (p *Parser) Ast() *Ast {
	return p.ast
}

// ParseString tokenizes and parses src in one step.
func ParseString(src string, opts ...Option) (*Ast, error) {
	p := NewParser()
	err := p.Parse(NewTokenizer(strings.NewReader(src), opts...))
	return p.Ast(), err
}

func (p *Parser) Parse(t *Tokenizer) error {
	for {
		tok, err := t.Peek()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch tok.Kind {
		case NewLine:
			t.Eat()
		case Symbol:
			stmts, err := p.parseSymbolStatement(t, tok)
			if err != nil {
				return err
			}
			for _, stmt := range stmts {
				p.ast.push(stmt)
			}
		case Word, Integer, StringLiteral:
			return newError(ErrUnknownToken, tok)
		default:
			panic(&InternalError{Err: fmt.Errorf("unhandled token kind %v", tok.Kind)})
		}
	}
}

// parseSymbolStatement dispatches on a peeked symbol that starts a line.
// A directive followed by a comment on the same line yields both.
func (p *Parser) parseSymbolStatement(t *Tokenizer, tok Token) ([]Stmt, error) {
	switch tok.Text {
	case "#":
		return p.parseDirective(t)
	case "//", "/*":
		comment, err := p.parseComment(t)
		if err != nil {
			return nil, err
		}
		return []Stmt{comment}, nil
	}
	return nil, newError(ErrUnknownToken, tok)
}

func isCommentStart(tok Token) bool {
	return tok.Equal(LineStart) || tok.Equal(BlockStart)
}

func (p *Parser) parseDirective(t *Tokenizer) ([]Stmt, error) {
	hash := ExpectToken(Hash).Assert(t.Next())

	name, err := ExpectKind(Word).Check(t.Peek())
	if err != nil {
		return nil, err
	}

	switch name.Text {
	case "define":
		return p.parseDefine(t, hash)
	}
	return nil, newError(ErrUnknownDirective, name)
}

func (p *Parser) parseDefine(t *Tokenizer, hash Token) ([]Stmt, error) {
	ExpectToken(DefineWord).Assert(t.Next())

	nameTok, err := Something.Check(t.Next())
	if err != nil {
		return nil, err
	}
	if !nameTok.Is(Word) {
		return nil, newError(ErrExpectedIdentifier, nameTok)
	}
	name, ok := NewIdentifier(nameTok.Text)
	if !ok {
		return nil, newError(ErrInvalidIdentifier, nameTok)
	}

	var stmt Define
	next, err := t.Peek()
	switch {
	case err != nil && !errors.Is(err, io.EOF):
		return nil, err
	case err == nil && next.Equal(LParen):
		stmt, err = p.parseFunction(t, name)
	default:
		stmt, err = p.parseConstant(t, name)
	}
	if err != nil {
		return nil, err
	}

	end, err := Something.Check(t.Peek())
	if err != nil {
		return nil, err
	}
	span := Span{Start: hash.Span.Start, End: end.Span.Start}
	switch d := stmt.(type) {
	case *Constant:
		d.Span = span
	case *Function:
		d.Span = span
	}

	stmts := []Stmt{stmt}
	if isCommentStart(end) {
		comment, err := p.parseComment(t)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, comment)
		if comment.Kind == CommentLine {
			return stmts, nil
		}
	}
	if _, err := ExpectKind(NewLine).Check(t.Next()); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) parseFunction(t *Tokenizer, name Identifier) (Define, error) {
	args, err := p.parseArgumentList(t)
	if err != nil {
		return nil, err
	}

	params := make([]Identifier, 0, len(args))
	for _, arg := range args {
		id, ok := arg.expr.(Identifier)
		if !ok {
			return nil, newError(ErrExpectedIdentifier, arg.tok)
		}
		params = append(params, id)
	}

	expr, err := p.parseOptionalExpression(t)
	if err != nil {
		return nil, err
	}
	return &Function{Name: name, Params: params, Expr: expr}, nil
}

func (p *Parser) parseConstant(t *Tokenizer, name Identifier) (Define, error) {
	expr, err := p.parseOptionalExpression(t)
	if err != nil {
		return nil, err
	}
	return &Constant{Name: name, Expr: expr}, nil
}

// parseOptionalExpression returns nil when the directive ends right here.
func (p *Parser) parseOptionalExpression(t *Tokenizer) (Expr, error) {
	tok, err := t.Peek()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if tok.Is(NewLine) || isCommentStart(tok) {
		return nil, nil
	}
	return p.parseExpression(t)
}

// argument is a parsed list element together with the token it started at,
// for error positions.
type argument struct {
	expr Expr
	tok  Token
}

// parseArgumentList parses "(" [expr] {"," [expr]} ")".
func (p *Parser) parseArgumentList(t *Tokenizer) ([]argument, error) {
	if _, err := ExpectToken(LParen).Check(t.Next()); err != nil {
		return nil, err
	}

	var args []argument
	for {
		tok, err := Something.Check(t.Peek())
		if err != nil {
			return nil, err
		}
		if tok.Equal(RParen) {
			break
		}
		if tok.Equal(Comma) {
			t.Eat()
			continue
		}

		expr, err := p.parseExpression(t)
		if err != nil {
			return nil, err
		}
		args = append(args, argument{expr: expr, tok: tok})

		if _, err := ExpectOneOf(Comma, RParen).Check(t.Peek()); err != nil {
			return nil, err
		}
	}

	ExpectToken(RParen).Assert(t.Next())
	return args, nil
}

func (p *Parser) parseExpression(t *Tokenizer) (Expr, error) {
	tok, err := Something.Check(t.Next())
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case Word:
		id, ok := NewIdentifier(tok.Text)
		if !ok {
			return nil, newError(ErrInvalidIdentifier, tok)
		}
		return id, nil
	case Integer:
		return IntegerLiteral{Text: tok.Text}, nil
	case Symbol, StringLiteral, NewLine:
		return nil, newError(ErrUnexpectedToken, tok)
	}
	panic(&InternalError{Err: fmt.Errorf("unhandled token kind %v", tok.Kind)})
}

// parseComment reads the comment body verbatim from the tokenizer. Line
// comments also consume their terminating new line.
func (p *Parser) parseComment(t *Tokenizer) (*Comment, error) {
	open := ExpectOneOf(LineStart, BlockStart).Assert(t.Next())

	if open.Equal(LineStart) {
		body := t.readLineComment()
		end := t.position()
		if _, err := ExpectKind(NewLine).Check(t.Next()); err != nil {
			return nil, err
		}
		return &Comment{
			Kind: CommentLine,
			Body: body,
			Span: Span{Start: open.Span.Start, End: end},
		}, nil
	}

	body, err := t.readBlockComment(open)
	if err != nil {
		return nil, err
	}
	return &Comment{
		Kind: CommentBlock,
		Body: body,
		Span: Span{Start: open.Span.Start, End: t.position()},
	}, nil
}
