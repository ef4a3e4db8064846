package main

import (
	"math"

	"nexusstrike/internal/entity"
)

// hudRows are reserved at the top of the terminal.
const hudRows = 2

// viewport maps the playfield onto the terminal cells below the HUD.
type viewport struct {
	cols, rows int
	field      entity.Size
}

func (v viewport) playRows() int { return max(v.rows-hudRows, 1) }

// toCell returns the cell containing pos, and false when pos is off screen.
func (v viewport) toCell(pos entity.Vec) (int, int, bool) {
	if v.cols <= 0 || v.field.W <= 0 || v.field.H <= 0 {
		return 0, 0, false
	}
	x := int(math.Floor(pos.X / v.field.W * float64(v.cols)))
	y := int(math.Floor(pos.Y / v.field.H * float64(v.playRows())))
	if x < 0 || x >= v.cols || y < 0 || y >= v.playRows() {
		return 0, 0, false
	}
	return x, y + hudRows, true
}

// toField returns the playfield point at the centre of a cell.
func (v viewport) toField(x, y int) entity.Vec {
	return entity.Vec{
		X: (float64(x) + 0.5) / float64(max(v.cols, 1)) * v.field.W,
		Y: (float64(y-hudRows) + 0.5) / float64(v.playRows()) * v.field.H,
	}
}

// span returns how many cells a box of the given size covers, at least one each way.
func (v viewport) span(sz entity.Size) (int, int) {
	w := int(math.Round(sz.W / v.field.W * float64(v.cols)))
	h := int(math.Round(sz.H / v.field.H * float64(v.playRows())))
	return max(w, 1), max(h, 1)
}
