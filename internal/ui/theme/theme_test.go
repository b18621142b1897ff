package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	t.Cleanup(func() { Apply(Standard) })

	Apply(HighContrast)
	assert.Equal(t, HighContrast.Text, Text)
	assert.Equal(t, HighContrast.BgCard, BgCard)

	Apply(ForPreferences(false))
	assert.Equal(t, Standard.Primary, Primary)
}

func TestForPreferences(t *testing.T) {
	assert.Equal(t, HighContrast, ForPreferences(true))
	assert.Equal(t, Standard, ForPreferences(false))
}
