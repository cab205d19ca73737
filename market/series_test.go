package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCandles() []Candle {
	return []Candle{
		{Open: 100, High: 105, Low: 99, Close: 102},
		{Open: 102, High: 107, Low: 101, Close: 105},
		{Open: 105, High: 108, Low: 104, Close: 106},
		{Open: 106, High: 110, Low: 96, Close: 108},
		{Open: 108, High: 112, Low: 107, Close: 110},
	}
}

func TestCloses(t *testing.T) {
	closes := Closes(testCandles())
	assert.Equal(t, []float64{102, 105, 106, 108, 110}, closes)
}

func TestLowestLow(t *testing.T) {
	low, err := LowestLow(testCandles(), 3)
	assert.NoError(t, err)
	assert.Equal(t, 96.0, low)

	// Window excluding the 96 dip.
	low, err = LowestLow(testCandles(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 107.0, low)
}

func TestHighestHigh(t *testing.T) {
	high, err := HighestHigh(testCandles(), 5)
	assert.NoError(t, err)
	assert.Equal(t, 112.0, high)
}

func TestWindowErrors(t *testing.T) {
	_, err := LowestLow(testCandles(), 6)
	assert.Error(t, err)

	_, err = HighestHigh(testCandles(), 0)
	assert.Error(t, err)

	_, err = LowestLow(nil, 1)
	assert.Error(t, err)
}
