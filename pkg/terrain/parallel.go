package terrain

import "golang.org/x/sync/errgroup"

// forEachRow calls fn for every z in [0, rows). With more than one worker the
// rows run concurrently; fn must only write texels of its own row.
func forEachRow(rows, workers int, fn func(z int)) {
	if workers <= 1 || rows <= 1 {
		for z := range rows {
			fn(z)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for z := range rows {
		g.Go(func() error {
			fn(z)
			return nil
		})
	}
	_ = g.Wait()
}
