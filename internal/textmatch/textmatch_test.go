package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func brackets(s string) string { return "[" + s + "]" }

func TestFold(t *testing.T) {
	assert.Equal(t, "tecnologia", Fold("Tecnología"))
	assert.Equal(t, "pina", Fold("PIÑA"))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("Cámara Canon", "camara"))
	assert.True(t, Contains("anything", "  "))
	assert.False(t, Contains("Zapato", "camisa"))
}

func TestFindMapsBackToOriginalBytes(t *testing.T) {
	text := "Tecnología Avanzada"
	spans := Find(text, "tecnologia")
	assert.Equal(t, []Span{{Start: 0, End: len("Tecnología")}}, spans)
	assert.Equal(t, "Tecnología", text[spans[0].Start:spans[0].End])
}

func TestFindEndingOnAccent(t *testing.T) {
	text := "Café Molido"
	spans := Find(text, "cafe")
	assert.Equal(t, "Café", text[spans[0].Start:spans[0].End])
}

func TestHighlight(t *testing.T) {
	assert.Equal(t, "[Zapato] y [ZAPATO]", Highlight("Zapato y ZAPATO", "zapato", brackets))
	assert.Equal(t, "Tenis [Niño]", Highlight("Tenis Niño", "nino", brackets))
	assert.Equal(t, "sin cambios", Highlight("sin cambios", "", brackets))
	assert.Equal(t, "sin cambios", Highlight("sin cambios", "xyz", brackets))
}
