package internal

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/Vorticode/expect.js/scanner"
)

// ProcessPaths runs process over every matching file under the given paths.
// Directories are expanded with sc and worked through a bounded pool with a
// progress bar; plain files are processed directly. The count of files whose
// processing failed is returned alongside the first traversal error.
func ProcessPaths(
	ctx context.Context,
	logger *zap.Logger,
	sc *scanner.Scanner,
	paths []string,
	process func(path string) error,
) (failed int, err error) {
	for _, path := range paths {
		info, statErr := os.Stat(path)
		if statErr != nil {
			return failed, fmt.Errorf("error accessing %s: %w", path, statErr)
		}
		if !info.IsDir() {
			if procErr := process(path); procErr != nil {
				logger.Error("processing failed", zap.String("path", path), zap.Error(procErr))
				failed++
			}
			continue
		}

		files, scanErr := sc.Scan(path)
		if scanErr != nil {
			return failed, scanErr
		}
		n, poolErr := processPool(ctx, logger, path, files, process)
		failed += n
		if poolErr != nil {
			return failed, poolErr
		}
	}
	return failed, nil
}

func processPool(
	ctx context.Context,
	logger *zap.Logger,
	root string,
	files []string,
	process func(path string) error,
) (failed int, err error) {
	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(root),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	sem := make(chan struct{}, runtime.NumCPU())

	for _, file := range files {
		select {
		case <-ctx.Done():
			wg.Wait()
			return failed, ctx.Err()
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()
			procErr := process(fp)
			mu.Lock()
			if procErr != nil {
				logger.Error("processing failed", zap.String("path", fp), zap.Error(procErr))
				failed++
			}
			_ = bar.Add(1)
			mu.Unlock()
		}(file)
	}
	wg.Wait()
	_ = bar.Finish()
	fmt.Println()
	return failed, nil
}
