package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_SamePointIsZero(t *testing.T) {
	assert.Zero(t, Distance(55.7558, 37.6173, 55.7558, 37.6173))
}

func TestDistance_Symmetric(t *testing.T) {
	a := Distance(55.7558, 37.6173, 59.9343, 30.3351)
	b := Distance(59.9343, 30.3351, 55.7558, 37.6173)
	assert.InDelta(t, a, b, 1e-9)
}

func TestDistance_MoscowToSaintPetersburg(t *testing.T) {
	// Прямая между центрами городов - около 634 км
	d := Distance(55.7558, 37.6173, 59.9343, 30.3351)
	assert.InDelta(t, 634, d, 5)
}

func TestDistance_ShortHop(t *testing.T) {
	// 0.01 градуса широты - чуть больше километра
	d := Distance(55.7558, 37.6173, 55.7658, 37.6173)
	assert.InDelta(t, 1.11, d, 0.02)
}
