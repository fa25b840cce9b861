package main

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// maxWorkers is the largest -conc value runBatch accepts as given,
// mirroring cmd/caire's own ceiling on its -conc flag; a value outside
// 1..maxWorkers is replaced by runtime.NumCPU().
const maxWorkers = 20

// batchResult pairs one processed file path with the error (if any)
// encountered while handling it.
type batchResult struct {
	path string
	err  error
}

// walkFiles walks root recursively and sends the path of every regular
// file whose extension matches one of exts on the returned channel. It is
// modeled directly on cmd/caire's walkDir: a producer goroutine closes the
// path channel when the walk finishes and reports a single terminal error
// on errChan.
func walkFiles(done <-chan struct{}, root string, exts []string) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		defer close(pathChan)

		errChan <- filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.Mode().IsRegular() {
				return nil
			}

			ext := filepath.Ext(path)
			matched := false
			for _, e := range exts {
				if e == ext {
					matched = true
					break
				}
			}
			if !matched {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// runBatch spawns workers goroutines, each draining paths and calling fn
// on every one, and returns once every path has been processed -- the
// same worker-pool/job-channel/sync.WaitGroup shape cmd/caire's
// consumer/wg.Wait pairing uses for its own directory mode.
func runBatch(paths <-chan string, workers int, fn func(path string) error) []batchResult {
	if workers <= 0 || workers > maxWorkers {
		workers = runtime.NumCPU()
	}

	results := make(chan batchResult)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for path := range paths {
				results <- batchResult{path: path, err: fn(path)}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var out []batchResult
	for r := range results {
		out = append(out, r)
	}
	return out
}
