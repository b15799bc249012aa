package engine

import (
	"testing"
)

func TestLexer_BasicTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "select star",
			input: "select * from data.csv",
			want: []Token{
				{Type: TokenSelect, Value: "select"},
				{Type: TokenIdent, Value: "*"},
				{Type: TokenFrom, Value: "from"},
				{Type: TokenIdent, Value: "data.csv"},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "quoted path",
			input: "select * from 'my-datalake/tables/0.csv'",
			want: []Token{
				{Type: TokenSelect, Value: "select"},
				{Type: TokenIdent, Value: "*"},
				{Type: TokenFrom, Value: "from"},
				{Type: TokenString, Value: "my-datalake/tables/0.csv"},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "comparison operators",
			input: "a = 1 and b != 2 or c >= 3",
			want: []Token{
				{Type: TokenIdent, Value: "a"},
				{Type: TokenEqual, Value: "="},
				{Type: TokenNumber, Value: "1"},
				{Type: TokenAnd, Value: "and"},
				{Type: TokenIdent, Value: "b"},
				{Type: TokenNotEqual, Value: "!="},
				{Type: TokenNumber, Value: "2"},
				{Type: TokenOr, Value: "or"},
				{Type: TokenIdent, Value: "c"},
				{Type: TokenGreaterEqual, Value: ">="},
				{Type: TokenNumber, Value: "3"},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "order limit offset keywords",
			input: "order by x desc limit 10 offset 5",
			want: []Token{
				{Type: TokenOrder, Value: "order"},
				{Type: TokenBy, Value: "by"},
				{Type: TokenIdent, Value: "x"},
				{Type: TokenDesc, Value: "desc"},
				{Type: TokenLimit, Value: "limit"},
				{Type: TokenNumber, Value: "10"},
				{Type: TokenOffset, Value: "offset"},
				{Type: TokenNumber, Value: "5"},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "uppercase keywords",
			input: "SELECT * FROM x.csv WHERE a < 1",
			want: []Token{
				{Type: TokenSelect, Value: "SELECT"},
				{Type: TokenIdent, Value: "*"},
				{Type: TokenFrom, Value: "FROM"},
				{Type: TokenIdent, Value: "x.csv"},
				{Type: TokenWhere, Value: "WHERE"},
				{Type: TokenIdent, Value: "a"},
				{Type: TokenLess, Value: "<"},
				{Type: TokenNumber, Value: "1"},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "select list with commas",
			input: "select id, name as n from x.csv",
			want: []Token{
				{Type: TokenSelect, Value: "select"},
				{Type: TokenIdent, Value: "id"},
				{Type: TokenComma, Value: ","},
				{Type: TokenIdent, Value: "name"},
				{Type: TokenAs, Value: "as"},
				{Type: TokenIdent, Value: "n"},
				{Type: TokenFrom, Value: "from"},
				{Type: TokenIdent, Value: "x.csv"},
				{Type: TokenEOF, Value: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexer_StringEscapes(t *testing.T) {
	tokens := Tokenize(`select * from x.csv where name = 'o\'brien'`)

	var str *Token
	for i := range tokens {
		if tokens[i].Type == TokenString && tokens[i].Value != "" {
			str = &tokens[i]
			break
		}
	}
	if str == nil {
		t.Fatal("no string token found")
	}
	if str.Value != "o'brien" {
		t.Errorf("string value = %q, want %q", str.Value, "o'brien")
	}
}

func TestLexer_NegativeNumber(t *testing.T) {
	tokens := Tokenize("a > -5")
	if tokens[2].Type != TokenNumber || tokens[2].Value != "-5" {
		t.Errorf("token = %+v, want negative number -5", tokens[2])
	}
}
