// Package engine is the lake's embedded analytical query engine.
//
// It executes a SQL subset directly over CSV and Parquet files referenced by
// path in the FROM clause. The package includes a lexer for tokenization, a
// parser for building the query AST, an evaluator for WHERE filtering, and a
// lazy Relation handle that defers all file access until rows are consumed.
//
// Example usage:
//
//	eng := engine.New(afero.NewOsFs())
//	rel, err := eng.Query("select id, name from 'tables/0.csv' where age > 30 limit 5")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rows, err := rel.Rows()
package engine

// TokenType represents the type of a token
type TokenType int

const (
	// Keywords
	TokenSelect TokenType = iota
	TokenFrom
	TokenWhere
	TokenAnd
	TokenOr
	TokenAs
	TokenOrder
	TokenBy
	TokenAsc
	TokenDesc
	TokenLimit
	TokenOffset

	// Operators
	TokenEqual        // =
	TokenNotEqual     // !=
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=

	// Literals
	TokenString
	TokenNumber
	TokenIdent
	TokenBool

	// Delimiters
	TokenComma // ,

	// Special
	TokenEOF
	TokenError
)

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
}

// Query represents a parsed SQL query
type Query struct {
	Source  string       // File path the query reads from
	Select  []SelectItem // Empty means SELECT *
	Filter  Expression   // WHERE clause, nil if absent
	OrderBy []OrderByItem
	Limit   *int64
	Offset  *int64
}

// SelectItem is a projected column with an optional alias
type SelectItem struct {
	Column string
	Alias  string
}

// OrderByItem is a sort key
type OrderByItem struct {
	Column string
	Desc   bool
}

// Expression represents a boolean expression in the WHERE clause
type Expression interface {
	Evaluate(row map[string]interface{}) (bool, error)
}

// BinaryExpr represents a binary expression (AND/OR)
type BinaryExpr struct {
	Left     Expression
	Operator TokenType // TokenAnd or TokenOr
	Right    Expression
}

// ComparisonExpr represents a comparison expression
type ComparisonExpr struct {
	Column   string
	Operator TokenType
	Value    interface{}
}

// Evaluate evaluates a binary expression
func (b *BinaryExpr) Evaluate(row map[string]interface{}) (bool, error) {
	left, err := b.Left.Evaluate(row)
	if err != nil {
		return false, err
	}

	right, err := b.Right.Evaluate(row)
	if err != nil {
		return false, err
	}

	switch b.Operator {
	case TokenAnd:
		return left && right, nil
	case TokenOr:
		return left || right, nil
	default:
		return false, nil
	}
}

// Evaluate evaluates a comparison expression
func (c *ComparisonExpr) Evaluate(row map[string]interface{}) (bool, error) {
	value, exists := row[c.Column]
	if !exists {
		return false, nil
	}

	return compare(value, c.Operator, c.Value)
}
