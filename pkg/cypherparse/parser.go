package cypherparse

import (
	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/expr"
)

// Parser is a recursive-descent parser over a pre-lexed token stream: a
// struct holding tokens+pos, one parseX method per grammar production,
// look-ahead via peek/peekAt rather than backtracking.
type Parser struct {
	tokens  []Token
	pos     int
	maxHops int
}

// Parse lexes and parses one statement, capping any unbounded
// variable-length relationship pattern (`*` or `*2..`) at DefaultMaxHops.
func Parse(input string) (*Statement, error) {
	return ParseWithMaxHops(input, DefaultMaxHops)
}

// ParseWithMaxHops is Parse with the unbounded variable-length pattern
// cap set to maxHops instead of DefaultMaxHops (a non-positive maxHops
// falls back to DefaultMaxHops rather than parsing an unusable pattern).
func ParseWithMaxHops(input string, maxHops int) (*Statement, error) {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	lex := NewLexer(input)
	tokens, err := lex.Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens, maxHops: maxHops}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != TokenEOF {
		return nil, p.errorf("unexpected trailing input " + p.peek().Value)
	}
	return stmt, nil
}

func (p *Parser) peek() Token { return p.tokens[p.pos] }

func (p *Parser) peekAt(off int) Token {
	i := p.pos + off
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) advance() Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(tt TokenType) bool { return p.peek().Type == tt }

func (p *Parser) expect(tt TokenType, what string) (Token, error) {
	if !p.at(tt) {
		return Token{}, p.errorf("expected " + what + ", got " + p.peek().Value)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(msg string) error {
	tok := p.peek()
	return cerr.New("cypherparse.Parser", cerr.KindSyntaxError,
		msg+" at line "+itoa(tok.Line)+", column "+itoa(tok.Column))
}

func (p *Parser) parseStatement() (*Statement, error) {
	stmt := &Statement{}
	if p.at(TokenExplain) {
		p.advance()
		stmt.Explain = true
	} else if p.at(TokenProfile) {
		p.advance()
		stmt.Profile = true
	}
	q, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	stmt.Query = q
	return stmt, nil
}

func (p *Parser) parseQuery() (*Query, error) {
	first, err := p.parseQueryPart()
	if err != nil {
		return nil, err
	}
	q := &Query{Parts: []QueryPart{first}}
	for p.at(TokenUnion) {
		p.advance()
		all := false
		if p.at(TokenAll) {
			p.advance()
			all = true
		}
		next, err := p.parseQueryPart()
		if err != nil {
			return nil, err
		}
		q.Parts = append(q.Parts, next)
		q.UnionAll = append(q.UnionAll, all)
	}
	return q, nil
}

func (p *Parser) parseQueryPart() (QueryPart, error) {
	var part QueryPart
	for {
		var (
			c   Clause
			err error
		)
		switch p.peek().Type {
		case TokenMatch, TokenOptional:
			c, err = p.parseMatchClause()
		case TokenWith:
			c, err = p.parseWithClause()
		case TokenReturn:
			c, err = p.parseReturnClause()
		case TokenCreate:
			c, err = p.parseCreateClause()
		case TokenMerge:
			c, err = p.parseMergeClause()
		case TokenSet:
			c, err = p.parseSetClause()
		case TokenDelete, TokenDetach:
			c, err = p.parseDeleteClause()
		case TokenUnwind:
			c, err = p.parseUnwindClause()
		default:
			if len(part.Clauses) == 0 {
				return part, p.errorf("expected a clause, got " + p.peek().Value)
			}
			return part, nil
		}
		if err != nil {
			return part, err
		}
		part.Clauses = append(part.Clauses, c)
		if p.at(TokenSemicolon) || p.at(TokenEOF) || p.at(TokenUnion) {
			return part, nil
		}
	}
}

func (p *Parser) parseMatchClause() (Clause, error) {
	c := MatchClause{}
	if p.at(TokenOptional) {
		p.advance()
		c.Optional = true
	}
	if _, err := p.expect(TokenMatch, "MATCH"); err != nil {
		return nil, err
	}
	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	c.Patterns = append(c.Patterns, pat)
	for p.at(TokenComma) {
		p.advance()
		next, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		c.Patterns = append(c.Patterns, next)
	}
	if p.at(TokenWhere) {
		p.advance()
		w, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		c.Where = w
	}
	return c, nil
}

// defaultAlias mirrors Cypher's rule that an un-aliased projection item
// takes the name of the variable or property it came from (`RETURN n` ->
// column "n", `RETURN n.name` -> column "name").
func defaultAlias(e expr.Expr) string {
	switch t := e.(type) {
	case expr.Variable:
		return t.Name
	case expr.Property:
		return t.Key
	default:
		return ""
	}
}

func (p *Parser) parseProjectionItems() ([]ProjectionItem, error) {
	var items []ProjectionItem
	for {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		item := ProjectionItem{Expr: e, Alias: defaultAlias(e)}
		if p.at(TokenAs) {
			p.advance()
			name, err := p.expect(TokenIdentifier, "alias")
			if err != nil {
				return nil, err
			}
			item.Alias = name.Value
		}
		items = append(items, item)
		if !p.at(TokenComma) {
			break
		}
		p.advance()
	}
	return items, nil
}

func (p *Parser) parseOrderByClause() ([]OrderItem, error) {
	if !p.at(TokenOrder) {
		return nil, nil
	}
	p.advance()
	if _, err := p.expect(TokenBy, "BY"); err != nil {
		return nil, err
	}
	var items []OrderItem
	for {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		desc := false
		if p.at(TokenAsc) {
			p.advance()
		} else if p.at(TokenDesc) {
			p.advance()
			desc = true
		}
		items = append(items, OrderItem{Expr: e, Descending: desc})
		if !p.at(TokenComma) {
			break
		}
		p.advance()
	}
	return items, nil
}

func (p *Parser) parseSkipLimit() (skip, limit expr.Expr, err error) {
	if p.at(TokenSkip) {
		p.advance()
		skip, err = p.parseExpression()
		if err != nil {
			return nil, nil, err
		}
	}
	if p.at(TokenLimit) {
		p.advance()
		limit, err = p.parseExpression()
		if err != nil {
			return nil, nil, err
		}
	}
	return skip, limit, nil
}

func (p *Parser) parseWithClause() (Clause, error) {
	p.advance() // WITH
	c := WithClause{}
	if p.at(TokenDistinct) {
		p.advance()
		c.Distinct = true
	}
	items, err := p.parseProjectionItems()
	if err != nil {
		return nil, err
	}
	c.Items = items
	if p.at(TokenWhere) {
		p.advance()
		w, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		c.Where = w
	}
	ob, err := p.parseOrderByClause()
	if err != nil {
		return nil, err
	}
	c.OrderBy = ob
	skip, limit, err := p.parseSkipLimit()
	if err != nil {
		return nil, err
	}
	c.Skip, c.Limit = skip, limit
	return c, nil
}

func (p *Parser) parseReturnClause() (Clause, error) {
	p.advance() // RETURN
	c := ReturnClause{}
	if p.at(TokenDistinct) {
		p.advance()
		c.Distinct = true
	}
	items, err := p.parseProjectionItems()
	if err != nil {
		return nil, err
	}
	c.Items = items
	ob, err := p.parseOrderByClause()
	if err != nil {
		return nil, err
	}
	c.OrderBy = ob
	skip, limit, err := p.parseSkipLimit()
	if err != nil {
		return nil, err
	}
	c.Skip, c.Limit = skip, limit
	return c, nil
}

func (p *Parser) parseCreateClause() (Clause, error) {
	p.advance() // CREATE
	c := CreateClause{}
	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	c.Patterns = append(c.Patterns, pat)
	for p.at(TokenComma) {
		p.advance()
		next, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		c.Patterns = append(c.Patterns, next)
	}
	return c, nil
}

func (p *Parser) parseSetItems() ([]SetItem, error) {
	var items []SetItem
	for {
		varTok, err := p.expect(TokenIdentifier, "variable")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenDot, "'.'"); err != nil {
			return nil, err
		}
		keyTok, err := p.expect(TokenIdentifier, "property name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenEquals, "'='"); err != nil {
			return nil, err
		}
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, SetItem{Variable: varTok.Value, Key: keyTok.Value, Value: val})
		if !p.at(TokenComma) {
			break
		}
		p.advance()
	}
	return items, nil
}

func (p *Parser) parseSetClause() (Clause, error) {
	p.advance() // SET
	items, err := p.parseSetItems()
	if err != nil {
		return nil, err
	}
	return SetClause{Items: items}, nil
}

func (p *Parser) parseMergeClause() (Clause, error) {
	p.advance() // MERGE
	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	c := MergeClause{Pattern: pat}
	for p.at(TokenOn) {
		p.advance()
		switch p.peek().Type {
		case TokenCreate:
			p.advance()
			if _, err := p.expect(TokenSet, "SET"); err != nil {
				return nil, err
			}
			items, err := p.parseSetItems()
			if err != nil {
				return nil, err
			}
			c.OnCreate = append(c.OnCreate, items...)
		case TokenMatch:
			p.advance()
			if _, err := p.expect(TokenSet, "SET"); err != nil {
				return nil, err
			}
			items, err := p.parseSetItems()
			if err != nil {
				return nil, err
			}
			c.OnMatch = append(c.OnMatch, items...)
		default:
			return nil, p.errorf("expected CREATE or MATCH after ON, got " + p.peek().Value)
		}
	}
	return c, nil
}

func (p *Parser) parseDeleteClause() (Clause, error) {
	c := DeleteClause{}
	if p.at(TokenDetach) {
		p.advance()
		c.Detach = true
	}
	if _, err := p.expect(TokenDelete, "DELETE"); err != nil {
		return nil, err
	}
	for {
		name, err := p.expect(TokenIdentifier, "variable")
		if err != nil {
			return nil, err
		}
		c.Variables = append(c.Variables, name.Value)
		if !p.at(TokenComma) {
			break
		}
		p.advance()
	}
	return c, nil
}

func (p *Parser) parseUnwindClause() (Clause, error) {
	p.advance() // UNWIND
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenAs, "AS"); err != nil {
		return nil, err
	}
	alias, err := p.expect(TokenIdentifier, "alias")
	if err != nil {
		return nil, err
	}
	return UnwindClause{Expr: e, Alias: alias.Value}, nil
}
