package genai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAnalysis(t *testing.T) {
	response := `ZUSAMMENFASSUNG:
Das Dokument beschreibt den Buchungsprozess.
Es richtet sich an neue Mitarbeiter.

ÜBERSCHRIFTEN:
- Einleitung
- Buchungsablauf

HAUPTPUNKTE:
- Buchungen laufen über das interne System
- Stornierungen brauchen eine Freigabe`

	analysis := ParseAnalysis(response)

	assert.Equal(t, "Das Dokument beschreibt den Buchungsprozess. Es richtet sich an neue Mitarbeiter.", analysis.Summary)
	assert.Equal(t, []string{"Einleitung", "Buchungsablauf"}, analysis.Headlines)
	assert.Equal(t, []string{
		"Buchungen laufen über das interne System",
		"Stornierungen brauchen eine Freigabe",
	}, analysis.Bulletpoints)
}

func TestParseAnalysisInlineSummary(t *testing.T) {
	analysis := ParseAnalysis("ZUSAMMENFASSUNG: Kurz und knapp.")
	assert.Equal(t, "Kurz und knapp.", analysis.Summary)
}

func TestParseAnalysisMalformedResponse(t *testing.T) {
	analysis := ParseAnalysis("Ich kann diesen Text leider nicht analysieren.")
	assert.Empty(t, analysis.Summary)
	assert.Empty(t, analysis.Headlines)
	assert.Empty(t, analysis.Bulletpoints)
}
