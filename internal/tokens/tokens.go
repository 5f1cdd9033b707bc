// Package tokens splits message text into hashtag and plain-text tokens.
package tokens

import "strings"

// Kind tells a hashtag token apart from a plain word.
type Kind int

// Supported token kinds.
const (
	Text Kind = iota
	Hashtag
)

func (k Kind) String() string {
	if k == Hashtag {
		return "hashtag"
	}
	return "text"
}

// Token is a single classified word of a message.
type Token struct {
	Kind  Kind
	Value string
}

// NewHashtag returns a hashtag token with the given text (without the leading #).
func NewHashtag(value string) Token {
	return Token{Kind: Hashtag, Value: value}
}

// NewText returns a plain-text token.
func NewText(value string) Token {
	return Token{Kind: Text, Value: value}
}

// Parse splits text on whitespace and classifies every word.
// A word starting with # becomes a Hashtag with that single # removed,
// anything else is kept verbatim as Text.
func Parse(text string) []Token {
	words := strings.Fields(text)
	out := make([]Token, 0, len(words))
	for _, w := range words {
		if strings.HasPrefix(w, "#") {
			out = append(out, NewHashtag(w[1:]))
			continue
		}
		out = append(out, NewText(w))
	}
	return out
}

// Hashtags converts configured tag names into Hashtag tokens, preserving order.
func Hashtags(tags []string) []Token {
	out := make([]Token, 0, len(tags))
	for _, t := range tags {
		out = append(out, NewHashtag(t))
	}
	return out
}
