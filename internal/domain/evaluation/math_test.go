package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPercentage(t *testing.T) {
	pct, ok := ToPercentage(80, 100)
	assert.True(t, ok)
	assert.Equal(t, 80.0, pct)

	pct, ok = ToPercentage(15, 20)
	assert.True(t, ok)
	assert.Equal(t, 75.0, pct)

	// Missing or non-positive maximums yield no percentage at all.
	_, ok = ToPercentage(10, 0)
	assert.False(t, ok)
	_, ok = ToPercentage(10, -5)
	assert.False(t, ok)
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Mean([]float64{}))
	assert.Equal(t, 5.0, Mean([]float64{5}))
	assert.Equal(t, 80.0, Mean([]float64{70, 80, 90}))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 83.3, Round1(83.333333))
	assert.Equal(t, 66.7, Round1(66.666666))
	assert.Equal(t, 0.0, Round1(0))
}
