package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func route(n int) []string {
	cities := []string{"Bangkok", "Chiang Mai", "Krabi", "Phuket", "Koh Samui", "Pai", "Hua Hin"}
	out := append([]string(nil), cities[:n-1]...)
	return append(out, "Bangkok")
}

func TestAllocateSegmentDays(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		route    []string
		want     []int
	}{
		{"single city", 5, []string{"Bangkok"}, []int{5}},
		{"empty route", 4, nil, []int{4}},
		{"long loop", 22, []string{"Bangkok", "Chiang Mai", "Krabi", "Bangkok"}, []int{4, 8, 7, 3}},
		{"week", 6, route(3), []int{2, 3, 1}},
		{"ten days", 10, route(4), []int{3, 3, 2, 2}},
		{"two weeks three middles", 14, route(5), []int{4, 3, 2, 2, 3}},
		{"tight fit shrinks start", 3, route(3), []int{1, 1, 1}},
		{"more cities than days", 4, route(6), []int{1, 1, 1, 1}},
		{"one day", 1, route(4), []int{1}},
		{"two stops keep both", 7, []string{"Bangkok", "Krabi"}, []int{4, 3}},
		{"two days over three stops", 2, route(3), []int{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllocateSegmentDays(tt.duration, tt.route))
		})
	}
}

func TestAllocateSegmentDays_Invariants(t *testing.T) {
	for d := 1; d <= 40; d++ {
		for n := 1; n <= 7; n++ {
			r := route(n)
			if n == 1 {
				r = []string{"Bangkok"}
			}
			got := AllocateSegmentDays(d, r)

			sum := 0
			for _, v := range got {
				sum += v
				assert.GreaterOrEqual(t, v, 1, "duration %d route %d: %v", d, n, got)
			}
			assert.Equal(t, d, sum, "duration %d route %d: %v", d, n, got)

			wantLen := n
			if wantLen > d {
				wantLen = d
			}
			assert.Len(t, got, wantLen, "duration %d route %d", d, n)
		}
	}
}

func TestAllocateSegmentDays_NonPositive(t *testing.T) {
	assert.Nil(t, AllocateSegmentDays(0, route(3)))
}
