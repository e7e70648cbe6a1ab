package analytics

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const MinKeywordLength = 4

// DefaultStopWords are Spanish greetings and filler words that say nothing
// about what a customer asked.
var DefaultStopWords = NewStopWords(
	"hola", "gracias", "buenas", "buenos", "dias", "días", "tardes", "noches",
	"para", "como", "cómo", "este", "esta", "esto", "estos", "estas", "pero",
	"porque", "quiero", "tengo", "tiene", "sobre", "desde", "donde", "dónde",
	"cuando", "cuándo", "favor", "saludos", "quisiera", "puede", "pueden",
	"ustedes", "usted", "también", "tambien", "entonces", "bueno", "muchas",
	"mucho", "todo", "todos", "nada", "algo", "aqui", "aquí", "sería", "seria",
	"okay", "claro", "perfecto",
)

type StopWords map[string]struct{}

func NewStopWords(words ...string) StopWords {
	s := make(StopWords, len(words))
	for _, w := range words {
		s[strings.ToLower(w)] = struct{}{}
	}
	return s
}

func (s StopWords) Has(w string) bool {
	_, ok := s[w]
	return ok
}

// NormalizeText lowercases text and strips every rune that is not a letter,
// a digit or whitespace. Accented letters are kept.
func NormalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Keywords tokenizes text and drops stop words and tokens shorter than
// MinKeywordLength runes.
func Keywords(text string, stop StopWords) []string {
	var out []string
	for _, tok := range strings.Fields(NormalizeText(text)) {
		if utf8.RuneCountInString(tok) < MinKeywordLength || stop.Has(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// TopKeywords counts keywords across texts and returns the top n by
// descending frequency, ties in first-encountered order. n <= 0 returns all.
func TopKeywords(texts []string, stop StopWords, n int) []GroupCount {
	g := NewGroupCounter("")
	for _, t := range texts {
		for _, kw := range Keywords(t, stop) {
			g.AddN(kw, 1)
		}
	}
	out := g.Result()
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
