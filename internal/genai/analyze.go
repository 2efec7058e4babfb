package genai

import (
	"context"
	"fmt"
	"strings"
)

const analyzeBudget = 8000

// Analysis is the structured result of a document analysis.
type Analysis struct {
	Summary      string
	Headlines    []string
	Bulletpoints []string
}

// DocumentAnalyzer extends TextGenerator with structured analysis of
// extracted document text.
type DocumentAnalyzer interface {
	TextGenerator
	Analyze(ctx context.Context, text string) (*Analysis, error)
}

const analyzeSystem = "Du bist ein Experte für Dokumentenanalyse und Wissensmanagement. Antworte immer auf Deutsch."

const analyzePrompt = `Analysiere den folgenden Text und erstelle:
1. Eine kurze Zusammenfassung (max. 200 Wörter)
2. Wichtige Überschriften/Abschnitte
3. Die Hauptpunkte als Bulletpoints

Text:
%s

Antworte im folgenden Format:
ZUSAMMENFASSUNG:
[Zusammenfassung]

ÜBERSCHRIFTEN:
- [Überschrift 1]
- [Überschrift 2]

HAUPTPUNKTE:
- [Punkt 1]
- [Punkt 2]`

func (c *GeminiClient) Analyze(ctx context.Context, text string) (*Analysis, error) {
	response, err := c.generate(ctx, analyzeSystem, fmt.Sprintf(analyzePrompt, truncate(text, analyzeBudget)))
	if err != nil {
		return nil, err
	}
	return ParseAnalysis(response), nil
}

// ParseAnalysis reads the sectioned German response format. Unknown
// lines outside a section are ignored; a malformed response yields an
// empty but valid Analysis.
func ParseAnalysis(response string) *Analysis {
	analysis := &Analysis{}
	section := ""

	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "ZUSAMMENFASSUNG:"):
			section = "summary"
			if rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "ZUSAMMENFASSUNG:")); rest != "" {
				analysis.Summary = rest
			}
		case strings.HasPrefix(trimmed, "ÜBERSCHRIFTEN:"):
			section = "headlines"
		case strings.HasPrefix(trimmed, "HAUPTPUNKTE:"):
			section = "bulletpoints"
		case section == "summary" && trimmed != "":
			if analysis.Summary != "" {
				analysis.Summary += " "
			}
			analysis.Summary += trimmed
		case section == "headlines" && strings.HasPrefix(trimmed, "-"):
			analysis.Headlines = append(analysis.Headlines, strings.TrimSpace(trimmed[1:]))
		case section == "bulletpoints" && strings.HasPrefix(trimmed, "-"):
			analysis.Bulletpoints = append(analysis.Bulletpoints, strings.TrimSpace(trimmed[1:]))
		}
	}
	return analysis
}
