package stats

import "github.com/verte-zerg/usageheat/internal/model"

// QuietestSlots returns the n grid cells with the lowest usage.
func QuietestSlots(grid []model.GridCell, n int) []model.GridCell {
	return rankSlots(grid, n, func(a, b model.GridCell) bool { return a.Usage < b.Usage })
}
