package lsp

import (
	"stackcc/token"
)

// SemanticTokenTypes is the legend advertised to the client. Token types are
// sent as indices into it.
var SemanticTokenTypes = []string{
	"keyword",
	"variable",
	"number",
	"operator",
}

// SemanticTokenModifiers are sent as a bitmask over this list.
var SemanticTokenModifiers = []string{
	"declaration",
}

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask
}

// collectSemanticTokens classifies the scanned tokens. Punctuation is left to
// the editor's own highlighting. The first mention of a variable carries the
// declaration modifier, since that is where its stack slot is allocated.
func collectSemanticTokens(tokens []token.Token) []SemanticToken {
	var result []SemanticToken
	seen := make(map[string]bool)

	for _, tok := range tokens {
		switch {
		case tok.Kind.IsKeyword():
			result = append(result, makeToken(tok, "keyword", 0)...)
		case tok.Kind == token.IDENT:
			decl := 0
			if !seen[tok.Lexeme] {
				seen[tok.Lexeme] = true
				decl = 1
			}
			result = append(result, makeToken(tok, "variable", decl)...)
		case tok.Kind == token.INT:
			result = append(result, makeToken(tok, "number", 0)...)
		case tok.Kind.IsOperator():
			result = append(result, makeToken(tok, "operator", 0)...)
		}
	}

	return result
}

func makeToken(tok token.Token, tokenType string, declModifier int) []SemanticToken {
	if tok.Lexeme == "" {
		return nil
	}

	return []SemanticToken{{
		Line:           uint32(tok.Position.Line - 1),   // LSP uses 0-based line numbers
		StartChar:      uint32(tok.Position.Column - 1), // LSP uses 0-based column numbers
		Length:         uint32(len(tok.Lexeme)),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: declModifier << indexOf("declaration", SemanticTokenModifiers),
	}}
}

// encodeSemanticTokens produces the relative encoding the protocol expects:
// each entry is positioned against the previous one.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, t := range tokens {
		deltaLine := t.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = t.StartChar - prevStart
		} else {
			deltaStart = t.StartChar
		}

		data = append(data, deltaLine, deltaStart, t.Length, uint32(t.TokenType), uint32(t.TokenModifiers))

		prevLine = t.Line
		prevStart = t.StartChar
	}

	return data
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
