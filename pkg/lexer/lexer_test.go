package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `int main() { return 42; }`

	tests := []struct {
		expectedKind   Kind
		expectedLexeme string
	}{
		{KwInt, "int"},
		{Ident, "main"},
		{LParen, "("},
		{RParen, ")"},
		{LBrace, "{"},
		{KwReturn, "return"},
		{IntLit, "42"},
		{Semicolon, ";"},
		{RBrace, "}"},
		{EOF, ""},
	}

	l := New("t.c", input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%q, got=%q",
				i, tt.expectedKind, tok.Kind)
		}

		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q",
				i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * / % = == != < <= > >= && || ! & | ^ ~ << >> ++ -- ? :`

	tests := []struct {
		expectedKind   Kind
		expectedLexeme string
	}{
		{Plus, "+"}, {Minus, "-"}, {Star, "*"}, {Slash, "/"}, {Percent, "%"},
		{Assign, "="}, {Eq, "=="}, {Ne, "!="}, {Lt, "<"}, {Le, "<="},
		{Gt, ">"}, {Ge, ">="}, {AndAnd, "&&"}, {OrOr, "||"}, {Not, "!"},
		{Amp, "&"}, {Pipe, "|"}, {Caret, "^"}, {Tilde, "~"}, {Shl, "<<"},
		{Shr, ">>"}, {Inc, "++"}, {Dec, "--"}, {Question, "?"}, {Colon, ":"},
		{EOF, ""},
	}

	l := New("t.c", input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%q, got=%q",
				i, tt.expectedKind, tok.Kind)
		}

		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q",
				i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestComments(t *testing.T) {
	input := `int // comment
main /* block
comment */ ()`

	tests := []struct {
		expectedKind   Kind
		expectedLexeme string
	}{
		{KwInt, "int"},
		{Ident, "main"},
		{LParen, "("},
		{RParen, ")"},
		{EOF, ""},
	}

	l := New("t.c", input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%q, got=%q",
				i, tt.expectedKind, tok.Kind)
		}

		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q",
				i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestIntLiteralValues(t *testing.T) {
	input := `42 0x2A 052`
	l := New("t.c", input)

	want := []int32{42, 42, 42}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Kind != IntLit {
			t.Fatalf("tests[%d]: expected IntLit, got %v", i, tok.Kind)
		}
		if tok.IntValue != w {
			t.Fatalf("tests[%d]: expected value %d, got %d", i, w, tok.IntValue)
		}
	}
}

func TestCharLiteral(t *testing.T) {
	l := New("t.c", `'a' '\n'`)

	tok := l.NextToken()
	if tok.Kind != CharLit || tok.IntValue != int32('a') {
		t.Fatalf("expected CharLit 'a', got %v %d", tok.Kind, tok.IntValue)
	}

	tok = l.NextToken()
	if tok.Kind != CharLit || tok.IntValue != int32('\n') {
		t.Fatalf("expected CharLit '\\n', got %v %d", tok.Kind, tok.IntValue)
	}
}

func TestStringLiteral(t *testing.T) {
	l := New("t.c", `"hi\n"`)

	tok := l.NextToken()
	if tok.Kind != StringLit || tok.Lexeme != "hi\n" {
		t.Fatalf("expected StringLit %q, got %v %q", "hi\n", tok.Kind, tok.Lexeme)
	}
}

func TestBreakContinueAreIdentifiers(t *testing.T) {
	l := New("t.c", `break continue`)

	tok := l.NextToken()
	if tok.Kind != Ident || tok.Lexeme != "break" {
		t.Fatalf("expected break as IDENT, got %v %q", tok.Kind, tok.Lexeme)
	}
	tok = l.NextToken()
	if tok.Kind != Ident || tok.Lexeme != "continue" {
		t.Fatalf("expected continue as IDENT, got %v %q", tok.Kind, tok.Lexeme)
	}
}
