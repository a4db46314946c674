package main

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/paulmach/orb"
	"github.com/ttpr0/heat-transit/geo"
	"github.com/ttpr0/heat-transit/raster"
	"github.com/ttpr0/heat-transit/routing"
	"github.com/ttpr0/heat-transit/structs"
	. "github.com/ttpr0/heat-transit/util"
	"golang.org/x/exp/slog"
)

//**********************************************************
// heat map rendering
//**********************************************************

func NewRenderRasterizer(projection geo.Projection, options RenderOptions) raster.Rasterizer {
	center := orb.Point{0, 0}
	if options.Center != nil {
		center = projection.Proj(geo.NewCoord(options.Center.Lat, options.Center.Lon))
	}
	return raster.NewRasterizer(center, options.Size, options.Width, options.Height)
}

// Runs one search per pixel and writes the heat map to options.Output.
func RunRender(ctx context.Context, manager *TransitManager, options RenderOptions, metrics *Collector) error {
	rasterizer := NewRenderRasterizer(manager.Graph().Projection(), options)
	render_options := raster.RenderOptions{
		Workers: options.Workers,
		Progress: func(rows_done, rows_total int) {
			metrics.RenderRows.Inc()
			metrics.RenderPixels.Add(float64(rasterizer.Width))
			if rows_done%50 == 0 || rows_done == rows_total {
				slog.Info(fmt.Sprintf("rendered %d / %d rows", rows_done, rows_total))
			}
		},
	}

	slog.Info(fmt.Sprintf("start rendering %dx%d %s image", options.Width, options.Height, options.Mode))
	t1 := time.Now()
	values, err := raster.Render(ctx, rasterizer, render_options, func(p orb.Point) Optional[structs.TimeCost] {
		return manager.SearchCost(routing.PlanarPoint(p[0], p[1]))
	})
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	reachable := 0
	for _, value := range values {
		if value.HasValue() {
			reachable += 1
		}
	}
	slog.Info(fmt.Sprintf("rendering finished after %s", time.Since(t1)), "reachable", reachable, "pixels", values.Length())

	img, err := BuildImage(values, options)
	if err != nil {
		return err
	}
	if err := raster.SavePNG(img, options.Output); err != nil {
		return err
	}
	slog.Info("image written to " + options.Output)
	return nil
}

func BuildImage(values Array[Optional[structs.TimeCost]], options RenderOptions) (image.Image, error) {
	switch options.Mode {
	case VECTOR:
		return raster.VectorImage(raster.NormalizeChannels(values), options.Width, options.Height)
	default:
		totals := NewArray[Optional[float64]](values.Length())
		for i, value := range values {
			if value.HasValue() {
				totals[i] = Some(value.Value.Total())
			}
		}
		return raster.ScalarImage(raster.NormalizeScalar(totals), options.Width, options.Height)
	}
}
