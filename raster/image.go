package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/ttpr0/heat-transit/structs"
	. "github.com/ttpr0/heat-transit/util"
)

//*******************************************
// normalization
//*******************************************

// Scales all present values linearly into [0, 1]. If all values are equal
// they map to 0.
func NormalizeScalar(values Array[Optional[float64]]) Array[Optional[float64]] {
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, value := range values {
		if !value.HasValue() {
			continue
		}
		min = math.Min(min, value.Value)
		max = math.Max(max, value.Value)
	}
	result := NewArray[Optional[float64]](values.Length())
	for i, value := range values {
		if !value.HasValue() {
			continue
		}
		result[i] = Some(_Scale(value.Value, min, max))
	}
	return result
}

// Scales walk, bus and wait time independently into [0, 1].
func NormalizeChannels(values Array[Optional[structs.TimeCost]]) Array[Optional[[3]float64]] {
	min := structs.WorstTimeCost()
	max := structs.BestTimeCost()
	for _, value := range values {
		if !value.HasValue() {
			continue
		}
		min = min.Min(value.Value)
		max = max.Max(value.Value)
	}
	result := NewArray[Optional[[3]float64]](values.Length())
	for i, value := range values {
		if !value.HasValue() {
			continue
		}
		result[i] = Some([3]float64{
			_Scale(value.Value.WalkTime, min.WalkTime, max.WalkTime),
			_Scale(value.Value.BusTime, min.BusTime, max.BusTime),
			_Scale(value.Value.WaitTime, min.WaitTime, max.WaitTime),
		})
	}
	return result
}

func _Scale(value, min, max float64) float64 {
	if !(max > min) {
		return 0
	}
	return (value - min) / (max - min)
}

func _ToByte(value float64) uint8 {
	if !(value > 0) {
		return 0
	}
	if value >= 1 {
		return 255
	}
	return uint8(value * 255)
}

//*******************************************
// images
//*******************************************

var NO_PATH_SCALAR = color.RGBA{R: 255, A: 255}
var NO_PATH_VECTOR = color.RGBA{}

// Grayscale image of normalized values, missing values are drawn red.
func ScalarImage(values Array[Optional[float64]], width, height int) (*image.RGBA, error) {
	if values.Length() != width*height {
		return nil, fmt.Errorf("expected %d values for a %dx%d image, got %d", width*height, width, height, values.Length())
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, value := range values {
		x, y := i%width, i/width
		if !value.HasValue() {
			img.SetRGBA(x, y, NO_PATH_SCALAR)
			continue
		}
		v := _ToByte(value.Value)
		img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
	}
	return img, nil
}

// Image with walk, bus and wait time in the red, green and blue channel.
// Missing values are fully transparent.
func VectorImage(values Array[Optional[[3]float64]], width, height int) (*image.RGBA, error) {
	if values.Length() != width*height {
		return nil, fmt.Errorf("expected %d values for a %dx%d image, got %d", width*height, width, height, values.Length())
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, value := range values {
		x, y := i%width, i/width
		if !value.HasValue() {
			img.SetRGBA(x, y, NO_PATH_VECTOR)
			continue
		}
		img.SetRGBA(x, y, color.RGBA{
			R: _ToByte(value.Value[0]),
			G: _ToByte(value.Value[1]),
			B: _ToByte(value.Value[2]),
			A: 255,
		})
	}
	return img, nil
}

func SavePNG(img image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}
