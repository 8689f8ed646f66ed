package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"lunar/internal/diag"
	"lunar/internal/observ"
	"lunar/internal/source"
	"lunar/internal/trace"
)

// SourceExt: расширение исходников lunar.
const SourceExt = ".lr"

// DirResult: результат разбора одного файла директории.
type DirResult struct {
	Path   string
	Result *ParseResult // nil только если файл не загрузился
	Bag    *diag.Bag    // тот же Bag, что и Result.Bag, либо Bag с IO-ошибкой
	Err    error        // arena exhausted / cancelled for this file
}

// Failed reports whether the file produced errors or could not be parsed.
func (r DirResult) Failed() bool {
	if r.Err != nil || r.Result == nil {
		return true
	}
	return r.Result.Failed()
}

// ListSourceFiles возвращает отсортированный список *.lr файлов в директории.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// детерминированный порядок вывода
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every *.lr file under dir on a bounded worker pool.
// Results are in ListSourceFiles order. The returned error is only set when
// listing the directory failed or ctx was cancelled.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []DirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet заполняется до старта воркеров и дальше только читается
	fileIDs := make([]source.FileID, len(files))
	timers := make([]*observ.Timer, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		opts.emit(Event{File: path, Stage: StageLoad, Status: StatusQueued})
		timers[i] = observ.NewTimer()
		fileIDs[i], loadErrors[i] = loadFile(ctx, fileSet, path, timers[i])
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	tracer := trace.FromContext(ctx)

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]DirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()

			if loadErr := loadErrors[i]; loadErr != nil {
				bag := opts.newBag()
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{Path: path}, "failed to load file: "+loadErr.Error()))
				results[i] = DirResult{Path: path, Bag: bag}
				opts.emit(Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr, Elapsed: time.Since(start)})
				return nil
			}

			span := trace.Begin(tracer, trace.ScopeFile, "file", 0)
			opts.emit(Event{File: path, Stage: StageParse, Status: StatusWorking})
			res, perr := parseLoaded(gctx, fileSet, fileIDs[i], opts, timers[i])

			status := StatusDone
			if perr != nil || res.Failed() {
				status = StatusError
			}
			span.End(path + " " + string(status))
			results[i] = DirResult{Path: path, Result: res, Err: perr}
			if res != nil {
				results[i].Bag = res.Bag
			}
			opts.emit(Event{File: path, Stage: StageParse, Status: status, Err: perr, Elapsed: time.Since(start)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeTimings folds per-file timings into one report labelled by file name.
func MergeTimings(results []DirResult) observ.Report {
	var all observ.Report
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		all.Merge(filepath.Base(r.Path), r.Result.Timing)
	}
	return all
}
