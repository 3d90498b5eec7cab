// internal/gazetteer/gazetteer_test.go

package gazetteer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrectFixesCloseMisspellings(t *testing.T) {
	g := New()

	assert.Equal(t, "London", g.Correct("Londin"))
	assert.Equal(t, "Dubai", g.Correct("dubay"))
	assert.Equal(t, "Islamabad", g.Correct("ISLAMABAD"))
}

func TestCorrectPassesThroughUnknownNames(t *testing.T) {
	g := New()

	// Nothing in the list is close enough; the title-cased input
	// comes back untouched.
	assert.Equal(t, "Zzqx", g.Correct("zzqx"))
}

func TestCorrectTitleCasesMultiWordInput(t *testing.T) {
	g := NewWithCities([]string{"New York"})

	assert.Equal(t, "New York", g.Correct("new  york"))
	assert.Equal(t, "Puerto Viejo", g.Correct("puerto viejo"))
}

func TestCorrectEmptyInput(t *testing.T) {
	assert.Empty(t, New().Correct("   "))
}
