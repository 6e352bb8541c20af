// Package worker runs independent jobs on a bounded set of goroutines.
package worker

import (
	"context"
	"sync"
)

// Result is the outcome of one job. Index is the job's position in the input.
type Result[R any] struct {
	Index int
	Value R
	Err   error
}

type job[T any] struct {
	index   int
	payload T
}

// FanOut runs fn for every job using at most workers goroutines and returns
// the results in input order. Jobs not yet started when ctx is cancelled
// report ctx.Err().
func FanOut[T, R any](ctx context.Context, workers int, jobs []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(jobs))
	if len(jobs) == 0 {
		return results
	}
	if workers < 1 {
		workers = 1
	}
	workers = min(workers, len(jobs))

	queue := make(chan job[T], len(jobs))
	for i, j := range jobs {
		queue <- job[T]{index: i, payload: j}
	}
	close(queue)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				results[j.index] = run(ctx, j, fn)
			}
		}()
	}
	wg.Wait()
	return results
}

func run[T, R any](ctx context.Context, j job[T], fn func(context.Context, T) (R, error)) Result[R] {
	if err := ctx.Err(); err != nil {
		return Result[R]{Index: j.index, Err: err}
	}
	v, err := fn(ctx, j.payload)
	return Result[R]{Index: j.index, Value: v, Err: err}
}

// Chunk splits items into consecutive slices of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if size < 1 {
		size = 1
	}
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end:end])
	}
	return out
}
