// internal/pipeline/preferences/preferences_test.go

package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretEmpty(t *testing.T) {
	flags, residual := Interpret("")

	assert.False(t, flags.SkipHotels)
	assert.False(t, flags.SkipRentals)
	assert.False(t, flags.SkipRestaurants)
	assert.Empty(t, residual)
}

func TestInterpretPlainPreferencesPassThrough(t *testing.T) {
	flags, residual := Interpret("vegetarian food, quiet areas")

	assert.Equal(t, ExclusionFlags{}, flags)
	assert.Equal(t, []string{"vegetarian food", "quiet areas"}, residual)
}

func TestInterpretCarAndFood(t *testing.T) {
	flags, residual := Interpret("have a car, no food")

	assert.True(t, flags.SkipRentals)
	assert.True(t, flags.SkipRestaurants)
	assert.False(t, flags.SkipHotels)

	require.Len(t, residual, 4)
	assert.Equal(t, "have a car", residual[0])
	assert.Equal(t, "no food", residual[1])
	assert.Contains(t, residual, RentalSkipNotice)
	assert.Contains(t, residual, RestaurantSkipNotice)
}

func TestInterpretHotelTrigger(t *testing.T) {
	flags, residual := Interpret("staying at my cousin's place")

	assert.True(t, flags.SkipHotels)
	assert.Contains(t, residual, HotelSkipNotice)
}

func TestInterpretCaseInsensitive(t *testing.T) {
	flags, _ := Interpret("Already Booked Hotel")

	assert.True(t, flags.SkipHotels)
}

func TestInterpretDropsEmptyTokens(t *testing.T) {
	_, residual := Interpret("  , vegetarian , ,")

	assert.Equal(t, []string{"vegetarian"}, residual)
}

func TestInterpretFlagsAreMonotonic(t *testing.T) {
	// A later token that does not match must not clear a flag set earlier.
	flags, _ := Interpret("have a car, loves museums, scenic drives")

	assert.True(t, flags.SkipRentals)
}
