package collision

import (
	"github.com/notargets/gompc/geometry"
	"github.com/notargets/gompc/utils"
	"go.uber.org/multierr"
)

// CheckPointsParallel locates a batch of points, splitting the batch across
// nThreads goroutines. cells[i] holds the ascending cells containing points[i].
// The finder and source must be safe for concurrent reads.
func CheckPointsParallel(points []geometry.Point, finder CandidateFinder, src VertexSource,
	nThreads int) (cells [][]int, err error) {
	var (
		pm   = utils.NewPartitionMap(nThreads, len(points))
		errs = make([]error, pm.ParallelDegree)
	)
	cells = make([][]int, len(points))
	pm.Run(func(bn, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			var cerr error
			cells[k], cerr = ComputeCollisions(finder, points[k], src)
			errs[bn] = multierr.Append(errs[bn], cerr)
		}
	})
	err = multierr.Combine(errs...)
	return
}
