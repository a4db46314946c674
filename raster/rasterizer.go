package raster

import (
	"github.com/paulmach/orb"
)

//*******************************************
// rasterizer
//*******************************************

// Maps pixel indices onto a planar bound. Row 0 is the top (max y) edge.
type Rasterizer struct {
	Bound  orb.Bound
	Width  int
	Height int
}

// Square raster of size km in every direction around center.
func NewRasterizer(center orb.Point, size float64, width, height int) Rasterizer {
	return Rasterizer{
		Bound: orb.Bound{
			Min: orb.Point{center[0] - size, center[1] - size},
			Max: orb.Point{center[0] + size, center[1] + size},
		},
		Width:  width,
		Height: height,
	}
}

func (self Rasterizer) PixelCount() int {
	return self.Width * self.Height
}

// Planar location of the upper left corner of pixel (x, y).
func (self Rasterizer) IndexToPoint(x, y int) orb.Point {
	fx := float64(x) / float64(self.Width)
	fy := float64(y) / float64(self.Height)
	return orb.Point{
		self.Bound.Min[0] + fx*(self.Bound.Max[0]-self.Bound.Min[0]),
		self.Bound.Max[1] - fy*(self.Bound.Max[1]-self.Bound.Min[1]),
	}
}

// Pixel containing point, ok is false if point lies outside of the raster.
func (self Rasterizer) PointToIndex(point orb.Point) (int, int, bool) {
	dx := self.Bound.Max[0] - self.Bound.Min[0]
	dy := self.Bound.Max[1] - self.Bound.Min[1]
	if dx <= 0 || dy <= 0 {
		return 0, 0, false
	}
	fx := (point[0] - self.Bound.Min[0]) / dx * float64(self.Width)
	fy := (self.Bound.Max[1] - point[1]) / dy * float64(self.Height)
	if !(fx >= 0 && fy >= 0 && fx < float64(self.Width) && fy < float64(self.Height)) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}
