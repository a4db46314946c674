package main

import (
	"context"
	"image/png"
	"os"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/heat-transit/geo"
	"github.com/ttpr0/heat-transit/structs"
	. "github.com/ttpr0/heat-transit/util"
)

func TestRenderRasterizerCenter(t *testing.T) {
	proj := geo.NewProjection(47.6, -122.33)
	r := NewRenderRasterizer(proj, RenderOptions{Width: 10, Height: 10, Size: 2})
	assert.Equal(t, orb.Bound{Min: orb.Point{-2, -2}, Max: orb.Point{2, 2}}, r.Bound)

	r = NewRenderRasterizer(proj, RenderOptions{Width: 10, Height: 10, Size: 2, Center: &LocationOptions{Lat: 47.6, Lon: -122.33}})
	assert.InDelta(t, 0, r.Bound.Center()[0], 1e-9)
	assert.InDelta(t, 0, r.Bound.Center()[1], 1e-9)
}

func TestRunRender(t *testing.T) {
	for _, mode := range []RenderMode{SCALAR, VECTOR} {
		manager, metrics := testManager(t)
		options := manager.config.Render
		options.Mode = mode
		options.Workers = 2

		require.NoError(t, RunRender(context.Background(), manager, options, metrics))

		file, err := os.Open(options.Output)
		require.NoError(t, err)
		img, err := png.Decode(file)
		file.Close()
		require.NoError(t, err)
		assert.Equal(t, 40, img.Bounds().Dx())
		assert.Equal(t, 30, img.Bounds().Dy())
	}
}

func TestBuildImage(t *testing.T) {
	values := Array[Optional[structs.TimeCost]]{
		Some(structs.TimeCost{WalkTime: 100}),
		Some(structs.TimeCost{WalkTime: 50, BusTime: 300, WaitTime: 450, Transfers: 1}),
		None[structs.TimeCost](),
		Some(structs.TimeCost{WalkTime: 0}),
	}

	img, err := BuildImage(values, RenderOptions{Width: 2, Height: 2, Mode: SCALAR})
	require.NoError(t, err)
	r, g, b, a := img.At(1, 0).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff, 0xffff}, []uint32{r, g, b, a})
	r, g, b, a = img.At(0, 1).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0, 0xffff}, []uint32{r, g, b, a})

	img, err = BuildImage(values, RenderOptions{Width: 2, Height: 2, Mode: VECTOR})
	require.NoError(t, err)
	r, g, b, a = img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0, 0xffff}, []uint32{r, g, b, a})
	_, _, _, a = img.At(0, 1).RGBA()
	assert.Equal(t, uint32(0), a)

	_, err = BuildImage(values, RenderOptions{Width: 3, Height: 3})
	assert.Error(t, err)
}
