package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sdl/internal/diag"
	"sdl/internal/source"
	"sdl/internal/trace"
)

// Ext is the file extension picked up by directory runs.
const Ext = ".sdl"

// ParseDirResult содержит результат разбора одного файла каталога.
type ParseDirResult struct {
	Path string // путь к файлу
	*ParseResult
}

// ListFiles возвращает отсортированный список всех *.sdl файлов в директории
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, Ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every *.sdl file under dir with up to jobs workers
// (GOMAXPROCS when jobs <= 0). Results follow sorted path order.
// A file that fails to load yields an IOLoadFileError diagnostic in its Bag.
func ParseDir(ctx context.Context, dir string, opts Options, jobs int) (*source.FileSet, []ParseDirResult, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	for _, path := range files {
		opts.progress(ProgressEvent{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	span, ctx := trace.Start(ctx, trace.ScopePass, "load")
	// FileSet не потокобезопасен: грузим всё до запуска воркеров
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	opts.Timer.Measure("load", func() string {
		for _, path := range files {
			fileID, loadErr := fileSet.Load(path)
			if loadErr != nil {
				// пустой виртуальный файл, чтобы диагностика указывала на путь
				loadErrors[path] = loadErr
				fileID = fileSet.AddVirtual(path, nil)
			}
			fileIDs[path] = fileID
		}
		return fmt.Sprintf("%d files", len(files))
	})
	span.End(fmt.Sprintf("%d files", len(files)))

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]ParseDirResult, len(files))

	pass, ctx := trace.Start(ctx, trace.ScopePass, "parse")
	phase := opts.Timer.Begin("parse")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				file := fileSet.Get(fileIDs[path])
				bag := opts.newBag()
				sp := source.Span{File: file.ID, Line: 1}
				bag.Add(diag.NewError(diag.IOLoadFileError, sp, "failed to load file: "+loadErr.Error()))
				results[i] = ParseDirResult{
					Path:        path,
					ParseResult: &ParseResult{FileSet: fileSet, File: file, Bag: bag},
				}
				opts.progress(ProgressEvent{File: path, Stage: StageLoad, Status: StatusError})
				return nil
			}

			started := time.Now()
			opts.progress(ProgressEvent{File: path, Stage: StageParse, Status: StatusWorking})
			fileSpan, fctx := trace.Start(gctx, trace.ScopeFile, "file:"+path)
			res := parseFile(fctx, fileSet, fileSet.Get(fileIDs[path]), opts, "parse:"+path)
			fileSpan.End("")
			results[i] = ParseDirResult{Path: path, ParseResult: res}
			opts.progress(ProgressEvent{
				File:    path,
				Stage:   StageParse,
				Status:  finalStatus(res),
				Elapsed: time.Since(started),
			})
			return nil
		})
	}

	err = g.Wait()
	opts.Timer.End(phase, fmt.Sprintf("%d files", len(files)))
	pass.End(fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeBags collects every per-file Bag of results into one sorted Bag.
func MergeBags(results []ParseDirResult, max int) *diag.Bag {
	out := diag.NewBag(max)
	for _, r := range results {
		if r.ParseResult != nil && r.Bag != nil {
			out.Merge(r.Bag)
		}
	}
	out.Sort()
	return out
}
