package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser parses SQL queries into AST
type Parser struct {
	tokens       []Token
	pos          int
	depthCounter *ExpressionDepthCounter
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens:       tokens,
		pos:          0,
		depthCounter: NewExpressionDepthCounter(),
	}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Value: ""}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

// expect checks if current token matches expected type and advances
func (p *Parser) expect(tokType TokenType) error {
	if p.current().Type != tokType {
		return fmt.Errorf("expected %v, got %v (%q)", tokType, p.current().Type, p.current().Value)
	}
	p.advance()
	return nil
}

// Parse parses a SQL query
func Parse(query string) (*Query, error) {
	if err := ValidateQuery(query); err != nil {
		return nil, err
	}

	tokens := Tokenize(query)

	if err := ValidateTokens(tokens); err != nil {
		return nil, err
	}

	parser := NewParser(tokens)
	q, err := parser.parseQuery()
	if err != nil {
		return nil, err
	}

	if parser.current().Type != TokenEOF {
		return nil, fmt.Errorf("unexpected trailing input at %q", parser.current().Value)
	}

	return q, nil
}

// parseQuery parses:
//
//	SELECT <list> FROM source [WHERE expr] [ORDER BY ...] [LIMIT n [OFFSET m]]
func (p *Parser) parseQuery() (*Query, error) {
	if err := p.expect(TokenSelect); err != nil {
		return nil, fmt.Errorf("query must start with SELECT: %w", err)
	}

	selectList, err := p.parseSelectList()
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenFrom); err != nil {
		return nil, fmt.Errorf("expected FROM after select list: %w", err)
	}

	// The source is a file path, either bare or quoted
	if p.current().Type != TokenIdent && p.current().Type != TokenString {
		return nil, fmt.Errorf("expected source path after FROM, got %q", p.current().Value)
	}
	source := p.current().Value
	p.advance()

	if err := ValidateSourcePath(source); err != nil {
		return nil, err
	}

	q := &Query{
		Source: source,
		Select: selectList,
	}

	if p.current().Type == TokenWhere {
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		q.Filter = expr
	}

	if p.current().Type == TokenOrder {
		p.advance()
		if err := p.expect(TokenBy); err != nil {
			return nil, fmt.Errorf("expected BY after ORDER: %w", err)
		}
		items, err := p.parseOrderBy()
		if err != nil {
			return nil, err
		}
		q.OrderBy = items
	}

	if p.current().Type == TokenLimit {
		p.advance()
		limit, err := p.parseNonNegativeInt("LIMIT")
		if err != nil {
			return nil, err
		}
		q.Limit = &limit

		if p.current().Type == TokenOffset {
			p.advance()
			offset, err := p.parseNonNegativeInt("OFFSET")
			if err != nil {
				return nil, err
			}
			q.Offset = &offset
		}
	}

	return q, nil
}

// parseSelectList parses the projection: * or a comma-separated column list
// with optional AS aliases. A bare * yields an empty list.
func (p *Parser) parseSelectList() ([]SelectItem, error) {
	if p.current().Type == TokenIdent && p.current().Value == "*" {
		p.advance()
		return nil, nil
	}

	var items []SelectItem
	for {
		if p.current().Type != TokenIdent {
			return nil, fmt.Errorf("expected column name in select list, got %q", p.current().Value)
		}
		item := SelectItem{Column: p.current().Value}
		if err := ValidateColumnName(item.Column); err != nil {
			return nil, err
		}
		p.advance()

		if p.current().Type == TokenAs {
			p.advance()
			if p.current().Type != TokenIdent {
				return nil, fmt.Errorf("expected alias after AS, got %q", p.current().Value)
			}
			item.Alias = p.current().Value
			p.advance()
		}

		items = append(items, item)

		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}

	return items, nil
}

// parseOrderBy parses a comma-separated list of sort keys
func (p *Parser) parseOrderBy() ([]OrderByItem, error) {
	var items []OrderByItem
	for {
		if p.current().Type != TokenIdent {
			return nil, fmt.Errorf("expected column name in ORDER BY, got %q", p.current().Value)
		}
		item := OrderByItem{Column: p.current().Value}
		p.advance()

		switch p.current().Type {
		case TokenAsc:
			p.advance()
		case TokenDesc:
			item.Desc = true
			p.advance()
		}

		items = append(items, item)

		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}
	return items, nil
}

// parseNonNegativeInt parses the integer argument of LIMIT/OFFSET
func (p *Parser) parseNonNegativeInt(clause string) (int64, error) {
	if p.current().Type != TokenNumber {
		return 0, fmt.Errorf("expected number after %s, got %q", clause, p.current().Value)
	}
	n, err := strconv.ParseInt(p.current().Value, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s requires a non-negative integer, got %q", clause, p.current().Value)
	}
	p.advance()
	return n, nil
}

// parseOr parses OR expressions (lowest precedence)
func (p *Parser) parseOr() (Expression, error) {
	if err := p.depthCounter.Enter(); err != nil {
		return nil, err
	}
	defer p.depthCounter.Exit()

	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: TokenOr,
			Right:    right,
		}
	}

	return left, nil
}

// parseAnd parses AND expressions (higher precedence than OR)
func (p *Parser) parseAnd() (Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenAnd {
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: TokenAnd,
			Right:    right,
		}
	}

	return left, nil
}

// parseComparison parses comparison expressions
func (p *Parser) parseComparison() (Expression, error) {
	if p.current().Type != TokenIdent {
		return nil, fmt.Errorf("expected column name, got %q", p.current().Value)
	}
	column := p.current().Value

	if err := ValidateColumnName(column); err != nil {
		return nil, err
	}

	p.advance()

	operator := p.current().Type
	switch operator {
	case TokenEqual, TokenNotEqual, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual:
		p.advance()
	default:
		return nil, fmt.Errorf("expected comparison operator, got %q", p.current().Value)
	}

	var value interface{}
	switch p.current().Type {
	case TokenString:
		value = p.current().Value
		p.advance()
	case TokenNumber:
		numStr := p.current().Value
		// Try to parse as int first, then float
		if intVal, err := strconv.ParseInt(numStr, 10, 64); err == nil {
			value = intVal
		} else if floatVal, err := strconv.ParseFloat(numStr, 64); err == nil {
			value = floatVal
		} else {
			return nil, fmt.Errorf("invalid number: %s", numStr)
		}
		p.advance()
	case TokenBool:
		value = strings.EqualFold(p.current().Value, "true")
		p.advance()
	default:
		return nil, fmt.Errorf("expected value (string, number, or bool), got %q", p.current().Value)
	}

	return &ComparisonExpr{
		Column:   column,
		Operator: operator,
		Value:    value,
	}, nil
}
