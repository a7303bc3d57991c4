// Package stats contains usage aggregation and reporting.
package stats

import (
	"sort"

	"github.com/verte-zerg/usageheat/internal/model"
)

// BusiestSlots returns the n grid cells with the highest usage.
// Ties keep week order.
func BusiestSlots(grid []model.GridCell, n int) []model.GridCell {
	return rankSlots(grid, n, func(a, b model.GridCell) bool { return a.Usage > b.Usage })
}

func rankSlots(grid []model.GridCell, n int, less func(a, b model.GridCell) bool) []model.GridCell {
	if n <= 0 || len(grid) == 0 {
		return nil
	}
	items := make([]model.GridCell, len(grid))
	copy(items, grid)
	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
