package raster

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/paulmach/orb"
	. "github.com/ttpr0/heat-transit/util"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

type RenderOptions struct {
	// number of rows rendered concurrently, runtime.NumCPU() if <= 0
	Workers int
	// called after every finished row
	Progress func(rows_done, rows_total int)
}

// Evaluates fn at the upper left corner of every pixel.
//
// Rows are distributed over the workers; the result is in row major order
// starting at the top row. Returns ctx.Err() if ctx is cancelled before all
// rows are done.
func Render[T any](ctx context.Context, rasterizer Rasterizer, options RenderOptions, fn func(orb.Point) Optional[T]) (Array[Optional[T]], error) {
	workers := options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	values := NewArray[Optional[T]](rasterizer.PixelCount())

	var done atomic.Int64
	group, group_ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for y := 0; y < rasterizer.Height; y++ {
		if group_ctx.Err() != nil {
			break
		}
		y := y
		group.Go(func() error {
			if err := group_ctx.Err(); err != nil {
				return err
			}
			row := values[y*rasterizer.Width : (y+1)*rasterizer.Width]
			for x := 0; x < rasterizer.Width; x++ {
				row[x] = fn(rasterizer.IndexToPoint(x, y))
			}
			count := int(done.Add(1))
			slog.Debug(fmt.Sprintf("rendered row %d / %d", count, rasterizer.Height))
			if options.Progress != nil {
				options.Progress(count, rasterizer.Height)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return values, nil
}
