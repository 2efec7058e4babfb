// Package language contains a deliberately small word-frequency heuristic.
// It only decides whether a document needs translation before it becomes
// an article; it is not a statistical language model.
package language

import "strings"

const (
	German  = "de"
	English = "en"
)

// Function words chosen for being frequent and near-exclusive to one of
// the two supported languages.
var (
	germanWords = []string{
		"der", "die", "das", "und", "ist", "nicht", "mit", "ein",
		"eine", "für", "auf", "den", "von", "im", "zu", "sich",
	}
	englishWords = []string{
		"the", "and", "is", "of", "to", "in", "that", "it",
		"for", "with", "as", "on", "at", "this", "are", "was",
	}
)

// Detect classifies text as German or English by counting space-delimited
// occurrences of each language's function words. Ties favor German, the
// target language of the knowledge base.
func Detect(text string) string {
	// Pad so words at the very start and end still match.
	padded := " " + strings.ToLower(text) + " "

	germanCount := countWords(padded, germanWords)
	englishCount := countWords(padded, englishWords)

	if englishCount > germanCount {
		return English
	}
	return German
}

func countWords(padded string, words []string) int {
	count := 0
	for _, word := range words {
		count += strings.Count(padded, " "+word+" ")
	}
	return count
}
