package cypherparse

import (
	"strconv"
	"strings"

	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/types"
)

// parseExpression is the precedence-climbing entry point: OR -> AND ->
// NOT -> comparison -> add/sub -> mul/div/mod -> power -> unary ->
// primary. Every production builds a pkg/expr.Expr node directly rather
// than an intermediate AST.
func (p *Parser) parseExpression() (expr.Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (expr.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.at(TokenOr) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = expr.Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (expr.Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.at(TokenAnd) {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = expr.And{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (expr.Expr, error) {
	if p.at(TokenNot) {
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return expr.Not{Operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (expr.Expr, error) {
	left, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Type {
		case TokenEquals:
			p.advance()
			right, err := p.parseAddSub()
			if err != nil {
				return nil, err
			}
			left = expr.Comparison{Op: expr.OpEquals, Left: left, Right: right}
		case TokenNotEquals:
			p.advance()
			right, err := p.parseAddSub()
			if err != nil {
				return nil, err
			}
			left = expr.Comparison{Op: expr.OpNotEquals, Left: left, Right: right}
		case TokenLess:
			p.advance()
			right, err := p.parseAddSub()
			if err != nil {
				return nil, err
			}
			left = expr.Comparison{Op: expr.OpLessThan, Left: left, Right: right}
		case TokenLessEquals:
			p.advance()
			right, err := p.parseAddSub()
			if err != nil {
				return nil, err
			}
			left = expr.Comparison{Op: expr.OpLessThanOrEqual, Left: left, Right: right}
		case TokenGreater:
			p.advance()
			right, err := p.parseAddSub()
			if err != nil {
				return nil, err
			}
			left = expr.Comparison{Op: expr.OpGreaterThan, Left: left, Right: right}
		case TokenGreaterEquals:
			p.advance()
			right, err := p.parseAddSub()
			if err != nil {
				return nil, err
			}
			left = expr.Comparison{Op: expr.OpGreaterThanOrEqual, Left: left, Right: right}
		case TokenRegex:
			p.advance()
			right, err := p.parseAddSub()
			if err != nil {
				return nil, err
			}
			left = expr.StringPredicate{Op: expr.OpRegexMatch, Left: left, Right: right}
		case TokenIn:
			p.advance()
			right, err := p.parseAddSub()
			if err != nil {
				return nil, err
			}
			left = expr.In{Left: left, Right: right}
		case TokenStarts:
			p.advance()
			if _, err := p.expect(TokenWith, "WITH"); err != nil {
				return nil, err
			}
			right, err := p.parseAddSub()
			if err != nil {
				return nil, err
			}
			left = expr.StringPredicate{Op: expr.OpStartsWith, Left: left, Right: right}
		case TokenEnds:
			p.advance()
			if _, err := p.expect(TokenWith, "WITH"); err != nil {
				return nil, err
			}
			right, err := p.parseAddSub()
			if err != nil {
				return nil, err
			}
			left = expr.StringPredicate{Op: expr.OpEndsWith, Left: left, Right: right}
		case TokenContains:
			p.advance()
			right, err := p.parseAddSub()
			if err != nil {
				return nil, err
			}
			left = expr.StringPredicate{Op: expr.OpContains, Left: left, Right: right}
		case TokenIs:
			p.advance()
			neg := false
			if p.at(TokenNot) {
				p.advance()
				neg = true
			}
			if _, err := p.expect(TokenNull, "NULL"); err != nil {
				return nil, err
			}
			if neg {
				left = expr.IsNotNull{Operand: left}
			} else {
				left = expr.IsNull{Operand: left}
			}
		case TokenNot:
			// "NOT IN" — only meaningful directly after a left operand.
			if p.peekAt(1).Type == TokenIn {
				p.advance()
				p.advance()
				right, err := p.parseAddSub()
				if err != nil {
					return nil, err
				}
				left = expr.Not{Operand: expr.In{Left: left, Right: right}}
				continue
			}
			return left, nil
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseAddSub() (expr.Expr, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for p.at(TokenPlus) || p.at(TokenDash) {
		op := expr.OpAdd
		if p.peek().Type == TokenDash {
			op = expr.OpSubtract
		}
		p.advance()
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = expr.Arithmetic{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMulDiv() (expr.Expr, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for {
		var op expr.ArithOp
		switch p.peek().Type {
		case TokenStar:
			op = expr.OpMultiply
		case TokenSlash:
			op = expr.OpDivide
		case TokenPercent:
			op = expr.OpModulo
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = expr.Arithmetic{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parsePower() (expr.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.at(TokenCaret) {
		p.advance()
		right, err := p.parsePower() // right-associative
		if err != nil {
			return nil, err
		}
		return expr.Arithmetic{Op: expr.OpPower, Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) parseUnary() (expr.Expr, error) {
	if p.at(TokenDash) {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return expr.Arithmetic{Op: expr.OpSubtract, Left: expr.IntegerLiteral{Value: 0}, Right: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix handles the property/index/label chains that can trail a
// primary expression: `n.name`, `n["key"]`, `n:Label`.
func (p *Parser) parsePostfix() (expr.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Type {
		case TokenDot:
			p.advance()
			key, err := p.expect(TokenIdentifier, "property name")
			if err != nil {
				return nil, err
			}
			e = expr.Property{Source: e, Key: key.Value}
		case TokenLBracket:
			p.advance()
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokenRBracket, "']'"); err != nil {
				return nil, err
			}
			e = expr.ContainerIndex{Container: e, Index: idx}
		case TokenColon:
			p.advance()
			label, err := p.expect(TokenIdentifier, "label")
			if err != nil {
				return nil, err
			}
			labels := []string{label.Value}
			for p.at(TokenColon) {
				p.advance()
				l, err := p.expect(TokenIdentifier, "label")
				if err != nil {
					return nil, err
				}
				labels = append(labels, l.Value)
			}
			e = expr.HasLabels{Operand: e, Labels: labels}
		default:
			return e, nil
		}
	}
}

func (p *Parser) parsePrimary() (expr.Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenInteger:
		p.advance()
		n, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid integer literal " + tok.Value)
		}
		return expr.IntegerLiteral{Value: n}, nil
	case TokenFloat:
		p.advance()
		f, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.errorf("invalid float literal " + tok.Value)
		}
		return expr.DoubleLiteral{Value: f}, nil
	case TokenString:
		p.advance()
		return expr.StringLiteral{Value: tok.Value}, nil
	case TokenTrue:
		p.advance()
		return expr.BooleanLiteral{Value: true}, nil
	case TokenFalse:
		p.advance()
		return expr.BooleanLiteral{Value: false}, nil
	case TokenNull:
		p.advance()
		return expr.NullLiteral{}, nil
	case TokenParameter:
		p.advance()
		return expr.Parameter{Name: tok.Value, Type: types.Any}, nil
	case TokenLParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case TokenLBracket:
		return p.parseListLiteral()
	case TokenLBrace:
		entries, err := p.parseMapEntries()
		if err != nil {
			return nil, err
		}
		return mapExprFrom(entries), nil
	case TokenCase:
		return p.parseCaseExpression()
	case TokenNot:
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return expr.Not{Operand: operand}, nil
	case TokenIdentifier:
		return p.parseIdentifierExpression()
	}
	return nil, p.errorf("unexpected token " + tok.Value)
}

func (p *Parser) parseListLiteral() (expr.Expr, error) {
	p.advance() // '['
	lit := expr.ListLiteral{}
	if p.at(TokenRBracket) {
		p.advance()
		return lit, nil
	}
	for {
		item, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		lit.Items = append(lit.Items, item)
		if !p.at(TokenComma) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(TokenRBracket, "']'"); err != nil {
		return nil, err
	}
	return lit, nil
}

// parseMapEntries parses `{ key: expr, key2: expr2 }`, used both for
// pattern property maps and standalone map-literal expressions.
func (p *Parser) parseMapEntries() (map[string]expr.Expr, error) {
	if _, err := p.expect(TokenLBrace, "'{'"); err != nil {
		return nil, err
	}
	entries := map[string]expr.Expr{}
	if p.at(TokenRBrace) {
		p.advance()
		return entries, nil
	}
	for {
		key, err := p.expect(TokenIdentifier, "property key")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenColon, "':'"); err != nil {
			return nil, err
		}
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		entries[key.Value] = val
		if !p.at(TokenComma) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(TokenRBrace, "'}'"); err != nil {
		return nil, err
	}
	return entries, nil
}

func mapExprFrom(entries map[string]expr.Expr) expr.MapExpression {
	m := expr.MapExpression{}
	for k, v := range entries {
		m.Entries = append(m.Entries, expr.MapEntry{Key: k, Value: v})
	}
	return m
}

func (p *Parser) parseCaseExpression() (expr.Expr, error) {
	p.advance() // CASE
	c := expr.CaseExpression{}
	if !p.at(TokenWhen) {
		subj, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		c.Subject = subj
	}
	for p.at(TokenWhen) {
		p.advance()
		pred, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenThen, "THEN"); err != nil {
			return nil, err
		}
		result, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		c.Alternatives = append(c.Alternatives, expr.CaseAlternative{Predicate: pred, Result: result})
	}
	if p.at(TokenElse) {
		p.advance()
		def, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		c.Default = def
	}
	if _, err := p.expect(TokenEnd, "END"); err != nil {
		return nil, err
	}
	return c, nil
}

// parseIdentifierExpression handles a bare identifier and everything that
// can follow one at primary position: a plain Variable, a bare or
// single-segment namespaced function call (`count(*)`, `size(x)`,
// `ns.f(x)`), and DISTINCT at the start of a call's argument list.
func (p *Parser) parseIdentifierExpression() (expr.Expr, error) {
	name := p.advance().Value
	namespace := ""
	// A single `ns.fn(` prefix names a namespaced procedure call; any other
	// dotted access (`n.name`) is ordinary property access handled by
	// parsePostfix once this function returns a bare Variable.
	if p.at(TokenDot) && p.peekAt(1).Type == TokenIdentifier && p.peekAt(2).Type == TokenLParen {
		p.advance()
		namespace = name
		name = p.advance().Value
	}

	if !p.at(TokenLParen) {
		return expr.Variable{Name: name}, nil
	}

	p.advance() // '('
	if strings.EqualFold(name, "count") && namespace == "" && p.at(TokenStar) {
		p.advance()
		if _, err := p.expect(TokenRParen, "')'"); err != nil {
			return nil, err
		}
		return expr.CountStar{}, nil
	}

	inv := expr.ProcedureInvocation{Namespace: namespace, Name: name}
	if p.at(TokenDistinct) {
		p.advance()
		inv.Distinct = true
	}
	if !p.at(TokenRParen) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			inv.Args = append(inv.Args, arg)
			if !p.at(TokenComma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(TokenRParen, "')'"); err != nil {
		return nil, err
	}
	return expr.ProcedureExpression{Invocation: inv}, nil
}
