package cypherparse

import (
	"strconv"

	"github.com/lattixdb/cyphercore/pkg/expr"
)

// parsePattern parses one path: node (rel node)*.
func (p *Parser) parsePattern() (Pattern, error) {
	var pat Pattern
	node, err := p.parseNodePattern()
	if err != nil {
		return pat, err
	}
	pat.Nodes = append(pat.Nodes, node)

	for p.at(TokenDash) || p.at(TokenArrowLeft) {
		rel, err := p.parseRelPattern()
		if err != nil {
			return pat, err
		}
		pat.Rels = append(pat.Rels, rel)
		next, err := p.parseNodePattern()
		if err != nil {
			return pat, err
		}
		pat.Nodes = append(pat.Nodes, next)
	}
	return pat, nil
}

// parseNodePattern parses `(variable? :Label:Label2? {props}?)`.
func (p *Parser) parseNodePattern() (NodePattern, error) {
	var n NodePattern
	if _, err := p.expect(TokenLParen, "'('"); err != nil {
		return n, err
	}
	if p.at(TokenIdentifier) {
		n.Variable = p.advance().Value
	}
	for p.at(TokenColon) {
		p.advance()
		label, err := p.expect(TokenIdentifier, "label")
		if err != nil {
			return n, err
		}
		n.Labels = append(n.Labels, label.Value)
	}
	if p.at(TokenLBrace) {
		props, err := p.parseProperties()
		if err != nil {
			return n, err
		}
		n.Properties = props
	}
	if _, err := p.expect(TokenRParen, "')'"); err != nil {
		return n, err
	}
	return n, nil
}

// parseRelPattern parses one of:
//
//	-[var:TYPE|TYPE2*min..max {props}]->
//	<-[...]-
//	-[...]-
//
// Direction is read off which arrow head(s) are present.
func (p *Parser) parseRelPattern() (RelPattern, error) {
	rel := RelPattern{MinHops: 1, MaxHops: 1}

	if p.at(TokenArrowLeft) {
		p.advance()
		rel.Incoming = true
	} else {
		if _, err := p.expect(TokenDash, "'-'"); err != nil {
			return rel, err
		}
	}

	if p.at(TokenLBracket) {
		p.advance()
		if p.at(TokenIdentifier) {
			rel.Variable = p.advance().Value
		}
		if p.at(TokenColon) {
			p.advance()
			t, err := p.expect(TokenIdentifier, "relationship type")
			if err != nil {
				return rel, err
			}
			rel.Types = append(rel.Types, t.Value)
			for p.at(TokenPipe) {
				p.advance()
				t, err := p.expect(TokenIdentifier, "relationship type")
				if err != nil {
					return rel, err
				}
				rel.Types = append(rel.Types, t.Value)
			}
		}
		if p.at(TokenStar) {
			p.advance()
			minHops, maxHops, err := p.parseHopRange()
			if err != nil {
				return rel, err
			}
			rel.MinHops, rel.MaxHops = minHops, maxHops
		}
		if p.at(TokenLBrace) {
			props, err := p.parseProperties()
			if err != nil {
				return rel, err
			}
			rel.Properties = props
		}
		if _, err := p.expect(TokenRBracket, "']'"); err != nil {
			return rel, err
		}
	}

	switch p.peek().Type {
	case TokenArrowRight:
		p.advance()
		rel.Outgoing = true
	case TokenDash:
		p.advance()
	default:
		return rel, p.errorf("expected '-' or '->' to close relationship pattern, got " + p.peek().Value)
	}

	if !rel.Incoming && !rel.Outgoing {
		// A plain -[...]- with neither arrow head is an undirected match:
		// leave both flags false and let the compiler treat it as such.
	}
	return rel, nil
}

// parseHopRange parses the `min..max` (or `min`, or nothing) that follows a
// '*' variable-length quantifier. Cypher writes this as a bare integer
// range with no separating whitespace requirement; this lexer tokenizes
// '..' as its own token so `1..3` lexes as Integer(1) DotDot Integer(3).
func (p *Parser) parseHopRange() (int, int, error) {
	min, max := 1, -1 // max=-1 means "unbounded", resolved by the caller
	if p.at(TokenInteger) {
		n, err := strconv.Atoi(p.advance().Value)
		if err != nil {
			return 0, 0, p.errorf("invalid hop count")
		}
		min = n
		max = n
	}
	if p.at(TokenDotDot) {
		p.advance()
		if p.at(TokenInteger) {
			n, err := strconv.Atoi(p.advance().Value)
			if err != nil {
				return 0, 0, p.errorf("invalid hop count")
			}
			max = n
		} else {
			max = p.maxHops
		}
	}
	if max < 0 {
		max = p.maxHops
	}
	return min, max, nil
}

// DefaultMaxHops caps an unbounded variable-length pattern (`*` or
// `*2..`) when a caller parses via Parse rather than ParseWithMaxHops.
const DefaultMaxHops = 15

func (p *Parser) parseProperties() (map[string]expr.Expr, error) {
	return p.parseMapEntries()
}
