package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectGerman(t *testing.T) {
	text := "Die Buchung ist nicht mit der Stornierung zu verwechseln und das Team hilft gerne."
	assert.Equal(t, German, Detect(text))
}

func TestDetectEnglish(t *testing.T) {
	text := "The booking process is explained in this guide and it covers all the steps for new employees."
	assert.Equal(t, English, Detect(text))
}

func TestDetectTieFavorsGerman(t *testing.T) {
	assert.Equal(t, German, Detect(""))
	assert.Equal(t, German, Detect("12345 67890"))
}

func TestDetectCaseInsensitive(t *testing.T) {
	assert.Equal(t, German, Detect("DER HUND UND DIE KATZE SIND NICHT DA"))
}

func TestDetectPunctuationBreaksMatch(t *testing.T) {
	// Words followed by punctuation are not counted; the heuristic only
	// needs enough plain hits in running prose.
	text := "the, and, is, of, der und die das ist nicht mit ein"
	assert.Equal(t, German, Detect(text))
}
