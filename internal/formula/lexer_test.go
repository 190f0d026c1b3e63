package formula

import "testing"

func TestTokenizePositionsAreByteOffsets(t *testing.T) {
	tokens, err := NewLexer("a ∧ b").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Token{
		{TokenVar, "a", 0},
		{TokenAnd, "∧", 2}, // the operator is 3 bytes wide
		{TokenVar, "b", 6},
		{TokenEOF, "", 7},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, tok := range tokens {
		if tok != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, tok, want[i])
		}
	}
}

func TestTokenizeMultiByteOperators(t *testing.T) {
	tokens, err := NewLexer("a<=>b<=c=>d").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	types := []TokenType{TokenVar, TokenIff, TokenVar, TokenConverse, TokenVar, TokenImplies, TokenVar, TokenEOF}
	if len(tokens) != len(types) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(types))
	}
	for i, tok := range tokens {
		if tok.Type != types[i] {
			t.Errorf("token %d type = %v, want %v", i, tok.Type, types[i])
		}
	}
}

func TestTokenizeRejectsUnknownCharacter(t *testing.T) {
	_, err := NewLexer("a ? b").Tokenize()
	if err == nil {
		t.Fatal("expected error for '?', got none")
	}
	syn, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	if syn.Offset != 2 {
		t.Errorf("Offset = %d, want 2", syn.Offset)
	}
}
