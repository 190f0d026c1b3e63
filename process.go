package dncheck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	tt "github.com/dnlab/dncheck/internal/types"
)

// FileResult pairs one proof file with its verdict.
type FileResult struct {
	Path    string
	Verdict tt.Verdict
}

// ProcessFiles checks every path in order and concatenates the
// results. Directories are walked recursively.
func ProcessFiles(ctx context.Context, logger *zap.Logger, engine Checker, paths []string) ([]FileResult, error) {
	var all []FileResult
	for _, path := range paths {
		results, err := ProcessPath(ctx, logger, engine, path)
		if err != nil {
			if logger != nil {
				logger.Error("error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		all = append(all, results...)
	}
	return all, nil
}

// ProcessPath checks one file or directory tree. Directory entries run
// on a bounded worker pool behind a progress bar; results come back
// sorted by path.
func ProcessPath(ctx context.Context, logger *zap.Logger, engine Checker, path string) ([]FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		verdict, err := engine.CheckFile(path)
		if err != nil {
			return nil, err
		}
		return []FileResult{{Path: path, Verdict: verdict}}, nil
	}

	var files []string
	err = filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fileInfo.IsDir() && engine.IsProofFile(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
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
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []FileResult
	)
	sem := make(chan struct{}, runtime.NumCPU())

	var ctxErr error
	for _, filePath := range files {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			verdict, err := engine.CheckFile(fp)
			if err != nil {
				if logger != nil {
					logger.Error("error checking file", zap.String("file", fp), zap.Error(err))
				}
			} else {
				mu.Lock()
				results = append(results, FileResult{Path: fp, Verdict: verdict})
				mu.Unlock()
			}
			_ = bar.Add(1)
		}(filePath)
	}
	wg.Wait()
	fmt.Println()

	if ctxErr != nil {
		return nil, ctxErr
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}
