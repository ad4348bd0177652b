package parser

import (
	"fmt"

	"sortle/interpreter-go/pkg/ast"
)

// Parser consumes a lexer's token stream one line at a time, each line
// being a single "name := term term ..." expression declaration.
type Parser struct {
	lex *lexer
	tok token

	// lastNameLine/lastNameCol are the position of the most recently parsed
	// expression's name token, so diagnostics about that name (e.g. the
	// duplicate-name check in ParseProgram) can point at it instead of
	// wherever the lexer head has since advanced to.
	lastNameLine, lastNameCol int
}

// ParseProgram parses Sortle source text into the parser input contract
// (spec §6): a sequence of (name, terms) pairs. Names are not required to
// already be sorted here — NewState sorts them before the engine runs — but
// duplicate names are rejected, matching "no duplicate names" in the
// contract.
func ParseProgram(source string) ([]ast.Expression, error) {
	p := &Parser{lex: newLexer(source)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var exprs []ast.Expression
	for {
		for p.tok.kind == tokNewline {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if p.tok.kind == tokEOF {
			break
		}
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if seen[e.Name] {
			return nil, newParseError(p.lastNameLine, p.lastNameCol, p.lex.lineText(p.lastNameLine),
				"a unique name", fmt.Sprintf("duplicate expression name %q", e.Name))
		}
		seen[e.Name] = true
		exprs = append(exprs, e)
	}
	return exprs, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	if p.tok.kind != tokName {
		return ast.Expression{}, p.unexpected("an expression name")
	}
	name := p.tok.text
	line, col := p.tok.line, p.tok.col
	p.lastNameLine, p.lastNameCol = line, col
	if err := p.advance(); err != nil {
		return ast.Expression{}, err
	}
	if p.tok.kind != tokAssign {
		return ast.Expression{}, p.unexpected("':='")
	}
	if err := p.advance(); err != nil {
		return ast.Expression{}, err
	}

	var terms []ast.Term
	for p.tok.kind != tokNewline && p.tok.kind != tokEOF {
		term, err := p.parseTerm()
		if err != nil {
			return ast.Expression{}, err
		}
		terms = append(terms, term)
		if err := p.advance(); err != nil {
			return ast.Expression{}, err
		}
	}
	if len(name) == 0 {
		return ast.Expression{}, newParseError(line, col, p.lex.lineText(line), "a non-empty name", "empty name")
	}
	return ast.Expression{Name: name, Terms: terms}, nil
}

func (p *Parser) parseTerm() (ast.Term, error) {
	t := ast.Term{Line: p.tok.line, Column: p.tok.col}
	switch p.tok.kind {
	case tokInteger:
		t.Kind = ast.TermInteger
		t.Int = p.tok.intVal
	case tokString:
		t.Kind = ast.TermString
		t.Str = p.tok.text
	case tokOperator:
		t.Kind = ast.TermOperator
		t.Op = ast.Operator([]rune(p.tok.text)[0])
	default:
		return ast.Term{}, p.unexpected("a term (integer, string, or operator)")
	}
	return t, nil
}

func (p *Parser) unexpected(expected string) *ParseError {
	return newParseError(p.tok.line, p.tok.col, p.lex.lineText(p.tok.line), expected, p.describeCurrent())
}

func (p *Parser) describeCurrent() string {
	switch p.tok.kind {
	case tokEOF:
		return "end of input"
	case tokNewline:
		return "end of line"
	case tokName:
		return fmt.Sprintf("name %q", p.tok.text)
	case tokAssign:
		return "':='"
	case tokInteger:
		return fmt.Sprintf("integer %d", p.tok.intVal)
	case tokString:
		return fmt.Sprintf("string %q", p.tok.text)
	case tokOperator:
		return fmt.Sprintf("operator %q", p.tok.text)
	default:
		return "unknown token"
	}
}
