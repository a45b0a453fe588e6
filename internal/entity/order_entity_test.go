package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalQuantity(t *testing.T) {
	tests := []struct {
		name   string
		daily  int64
		weeks  int64
		want   int64
		wantOk bool
	}{
		{"five a day for two weeks", 5, 2, 70, true},
		{"zero weeks", 3, 0, 0, true},
		{"negative daily", -1, 2, 0, false},
		{"wraps int64", 1 << 40, 1 << 20, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TotalQuantity(tt.daily, tt.weeks)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestItemPriceAndAddAmount(t *testing.T) {
	price, ok := ItemPrice(70, 1000)
	assert.True(t, ok)
	assert.Equal(t, int64(70000), price)

	_, ok = ItemPrice(math.MaxInt64/2+1, 2)
	assert.False(t, ok)

	sum, ok := AddAmount(math.MaxInt64-1, 1)
	assert.True(t, ok)
	assert.Equal(t, int64(math.MaxInt64), sum)

	_, ok = AddAmount(math.MaxInt64, 1)
	assert.False(t, ok)
}
