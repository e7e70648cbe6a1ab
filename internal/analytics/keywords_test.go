package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopKeywords_DropsStopWordsAndShortTokens(t *testing.T) {
	texts := []string{"Hola hola gracias amigo amigo amigo"}

	got := TopKeywords(texts, NewStopWords("hola", "gracias"), 10)

	assert.Equal(t, []GroupCount{{Label: "amigo", Count: 3}}, got)
}

func TestTopKeywords_KeepsAccentsAndStripsPunctuation(t *testing.T) {
	texts := []string{
		"¿Cuánto cuesta el departamento?",
		"Precio del DEPARTAMENTO, por favor!!",
		"cuánto",
	}

	got := TopKeywords(texts, NewStopWords("favor"), 2)

	assert.Equal(t, []GroupCount{
		{Label: "cuánto", Count: 2},
		{Label: "departamento", Count: 2},
	}, got)
}

func TestTopKeywords_AllWhenNonPositive(t *testing.T) {
	got := TopKeywords([]string{"casa playa casa vista"}, DefaultStopWords, 0)

	assert.Equal(t, []GroupCount{
		{Label: "casa", Count: 2},
		{Label: "playa", Count: 1},
		{Label: "vista", Count: 1},
	}, got)
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "ñandú 3 recámaras", NormalizeText("Ñandú #3, ¡recámaras!"))
}

func TestKeywords_RuneLength(t *testing.T) {
	// "baño" is four runes even though it is five bytes.
	assert.Equal(t, []string{"baño"}, Keywords("baño sol", StopWords{}))
}
