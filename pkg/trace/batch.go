package trace

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/df07/go-fiber-raytracer/pkg/core"
	"github.com/df07/go-fiber-raytracer/pkg/fiber"
)

// BatchConfig controls a batch of independent rays through one geometry.
type BatchConfig struct {
	Rays           int     // number of rays to launch
	Workers        int     // <= 0 means runtime.NumCPU()
	MaxLatitudeDeg float64 // zenith cone for sampled launch angles, degrees
	Seed           int64   // base seed; ray i uses Seed + i
}

// BatchResult pairs a trajectory with the index of the ray that produced
// it. Err is set when that ray's trace aborted on degenerate geometry;
// other rays in the batch are unaffected.
type BatchResult struct {
	Index      int
	Trajectory *Trajectory
	Err        error
}

// TraceBatch fans independent rays out over a worker pool. Each ray owns a
// sampler seeded from the base seed plus its index, so results are
// reproducible regardless of worker count or scheduling. Geometry is shared
// read-only; every ray writes only its own trajectory buffer.
func TraceBatch(f fiber.Fiber, cfg Config, batch BatchConfig) ([]BatchResult, error) {
	tracer, err := NewTracer(f, cfg)
	if err != nil {
		return nil, err
	}

	workers := batch.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	tasks := make(chan int, batch.Rays)
	results := make([]BatchResult, batch.Rays)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				sampler := core.NewRandomSampler(rand.New(rand.NewSource(batch.Seed + int64(idx))))
				var ray Ray
				ray.RandomStart(sampler, f.CoreRadius())
				ray.RandomAngles(sampler, batch.MaxLatitudeDeg)
				traj, err := tracer.Trace(ray, sampler)
				results[idx] = BatchResult{Index: idx, Trajectory: traj, Err: err}
			}
		}()
	}

	for i := 0; i < batch.Rays; i++ {
		tasks <- i
	}
	close(tasks)
	wg.Wait()

	return results, nil
}
