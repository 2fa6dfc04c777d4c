package tide

import (
	"golang.org/x/sync/errgroup"
)

// runAll runs fn concurrently for every element of items and waits until
// all invocations returned, also when one of them failed.
// A failing invocation does not cancel or abort the wait for the others.
// After all returned, the first error that occurred is returned, the errors
// of the other invocations are discarded and must be logged by fn.
func runAll[T any](items []T, fn func(T) error) error {
	var g errgroup.Group

	for _, it := range items {
		g.Go(func() error {
			return fn(it)
		})
	}

	return g.Wait()
}
