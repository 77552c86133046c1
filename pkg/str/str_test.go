package str

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringToInt(t *testing.T) {
	v, err := StringToInt(" 30 ")
	assert.NoError(t, err)
	assert.Equal(t, 30, v)

	_, err = StringToInt("30.5")
	assert.Error(t, err)

	_, err = StringToInt("")
	assert.Error(t, err)

	_, err = StringToInt("thirty")
	assert.Error(t, err)
}

func TestStringToFloat(t *testing.T) {
	v, err := StringToFloat("2200")
	assert.NoError(t, err)
	assert.Equal(t, float64(2200), v)

	v, err = StringToFloat(" 70.5 ")
	assert.NoError(t, err)
	assert.Equal(t, 70.5, v)

	v, err = StringToFloat("-80")
	assert.NoError(t, err)
	assert.Equal(t, float64(-80), v)

	_, err = StringToFloat("")
	assert.Error(t, err)

	_, err = StringToFloat("about 2000")
	assert.Error(t, err)
}

func TestFormatMacro(t *testing.T) {
	assert.Equal(t, "2200", FormatMacro(2200))
	assert.Equal(t, "0", FormatMacro(0))
	assert.Equal(t, "143.5", FormatMacro(143.5))
	assert.Equal(t, "144.0", FormatMacro(143.99))
}

func TestContainsAnyFold(t *testing.T) {
	assert.True(t, ContainsAnyFold("I want to GAIN muscle", []string{"gain", "bulk"}))
	assert.True(t, ContainsAnyFold("bulking", []string{"gain", "bulk"}))
	assert.False(t, ContainsAnyFold("stay the same", []string{"gain", "bulk"}))
	assert.False(t, ContainsAnyFold("", []string{"gain"}))
}
