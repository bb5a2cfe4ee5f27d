package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	corecache "github.com/penwyp/go-lineup-timeline/internal/core/cache"
	"github.com/penwyp/go-lineup-timeline/internal/core/constants"
	"github.com/penwyp/go-lineup-timeline/internal/core/model"
	"github.com/penwyp/go-lineup-timeline/internal/core/roleparser"
	"github.com/penwyp/go-lineup-timeline/internal/core/timeline"
	"github.com/penwyp/go-lineup-timeline/internal/data/cache"
	"github.com/penwyp/go-lineup-timeline/internal/data/parser"
	"github.com/penwyp/go-lineup-timeline/internal/data/scanner"
	"github.com/penwyp/go-lineup-timeline/internal/presentation/formatter"
	"github.com/penwyp/go-lineup-timeline/internal/util"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoLineupFiles is returned when the paths contain no lineup file.
	ErrNoLineupFiles = errors.New("no lineup files found")

	// ErrNoLineups is returned when no lineup file could be loaded.
	ErrNoLineups = errors.New("no lineup could be loaded")
)

type Config struct {
	Paths       []string
	CacheDir    string
	Output      string
	Layout      string
	Timezone    string
	BandYears   string
	Width       int
	Concurrency int
	Strict      bool
}

type Analyzer struct {
	config  *Config
	cache   cache.Cache
	memo    *corecache.MemoryCache
	scanner *scanner.FileScanner
	loader  *parser.Parser
	roles   *roleparser.Parser
}

func New(config *Config) (*Analyzer, error) {
	if config.Concurrency == 0 {
		config.Concurrency = runtime.NumCPU()
	}

	tp, err := util.NewTimeProvider(config.Timezone)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		config:  config,
		memo:    corecache.NewMemoryCache(),
		scanner: scanner.NewFileScanner(config.Paths...),
		loader:  parser.NewParser(config.Concurrency),
		roles:   roleparser.New(roleparser.WithYearSource(tp)),
	}

	if config.CacheDir != "" {
		fileCache, err := cache.NewFileCache(config.CacheDir)
		if err != nil {
			util.LogWarn(fmt.Sprintf("Parse cache disabled, cannot use %s: %v", config.CacheDir, err))
		} else {
			a.cache = fileCache
		}
	}

	return a, nil
}

// CurrentYear is the year "present" resolves to.
func (a *Analyzer) CurrentYear() int {
	return a.roles.CurrentYear()
}

// bandYears returns the configured active years override, the zero span
// when there is none.
func (a *Analyzer) bandYears(currentYear int) model.YearSpan {
	if strings.TrimSpace(a.config.BandYears) == "" {
		return model.YearSpan{}
	}
	return model.ParseActiveYears(a.config.BandYears, currentYear)
}

type memberOutcome struct {
	sections []model.RoleInterval
	dropped  string
	err      error
}

// Analyze parses every member of lineup. Members are parsed in parallel but
// kept in input order. A member that fails to parse is skipped with a
// warning, or aborts the whole lineup in strict mode.
func (a *Analyzer) Analyze(ctx context.Context, lineup *model.Lineup) (*model.ParsedLineup, error) {
	currentYear := a.CurrentYear()
	span := a.bandYears(currentYear)
	if span == (model.YearSpan{}) {
		span = lineup.Span(currentYear)
	}

	logCtx := util.WithLogFields(ctx, lineup.Band, lineup.Source)
	outcomes := make([]memberOutcome, len(lineup.Members))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.Concurrency)
	for i, record := range lineup.Members {
		i, record := i, record
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = a.parseMember(record.Roles, span, currentYear)
			if a.config.Strict && outcomes[i].err != nil {
				return fmt.Errorf("%s: member %q: %w", lineup.Band, record.Name, outcomes[i].err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	parsed := &model.ParsedLineup{
		Band:        lineup.Band,
		Source:      lineup.Source,
		Span:        span,
		CurrentYear: currentYear,
		Members:     make([]model.BandMember, 0, len(lineup.Members)),
	}
	for i, record := range lineup.Members {
		outcome := outcomes[i]
		if outcome.err != nil {
			util.LogWarnContext(logCtx, "Skipping member with unreadable roles",
				util.Field{Key: "member", Value: record.Name},
				util.Field{Key: "roles", Value: record.Roles},
				util.Field{Key: "error", Value: outcome.err.Error()})
			parsed.Skipped = append(parsed.Skipped, model.SkippedMember{
				Name:   record.Name,
				Roles:  record.Roles,
				Reason: outcome.err.Error(),
			})
			continue
		}
		if outcome.dropped != "" {
			util.LogDebug(fmt.Sprintf("Ignoring unterminated role text of %s: %q", record.Name, outcome.dropped))
			parsed.Dropped = append(parsed.Dropped, model.DroppedGroup{Name: record.Name, Text: outcome.dropped})
		}
		parsed.Members = append(parsed.Members, model.NewBandMember(record.Name, outcome.sections))
	}

	return parsed, nil
}

func (a *Analyzer) parseMember(raw string, span model.YearSpan, currentYear int) memberOutcome {
	key := corecache.Key(raw, span, currentYear)
	if entry, ok := a.memo.Get(key); ok {
		return memberOutcome{sections: entry.Sections, dropped: entry.Dropped, err: entry.Err}
	}

	var outcome memberOutcome
	result, err := a.roles.Parse(raw, span)
	if err != nil {
		outcome.err = err
	} else {
		outcome.sections = result.Sections
		outcome.dropped = result.Dropped
	}

	a.memo.Set(key, &corecache.MemoryCacheEntry{Sections: outcome.sections, Dropped: outcome.dropped, Err: outcome.err})
	return outcome
}

// Forget drops the loaded copies of paths so that the next Load reads them
// again.
func (a *Analyzer) Forget(paths []string) {
	for _, path := range paths {
		a.loader.Forget(path)
	}
}

// Build turns a parsed lineup into its timeline, spanning at least the
// band's active years.
func (a *Analyzer) Build(lineup *model.ParsedLineup) (*timeline.Timeline, error) {
	return timeline.NewTimelineBuilder(timeline.WithBandYears(lineup.Span)).Build(lineup.Members)
}

// Load scans the configured paths and returns one band per readable lineup
// file, in path order.
func (a *Analyzer) Load(ctx context.Context) ([]formatter.BandTimeline, error) {
	startTime := time.Now()
	currentYear := a.CurrentYear()
	bandYears := a.bandYears(currentYear)

	// Phase 1: Preload cache into memory
	preloadStart := time.Now()
	if a.cache != nil {
		if err := a.cache.Preload(); err != nil {
			util.LogWarn(fmt.Sprintf("Cache preload failed: %v", err))
		}
		memoryCount, fileCount := a.cache.GetCacheStats()
		util.LogDebug(fmt.Sprintf("Cache holds %d entries in memory, %d on disk", memoryCount, fileCount))
	}
	preloadDuration := time.Since(preloadStart)
	util.LogDebug(fmt.Sprintf("Phase 1 - Cache preload duration: %s", util.FormatDuration(preloadDuration)))

	// Phase 2: Scan files
	scanStart := time.Now()
	files, err := a.scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan paths: %w", err)
	}
	scanDuration := time.Since(scanStart)
	util.LogDebug(fmt.Sprintf("Phase 2 - File scan duration: %s, found %d files", util.FormatDuration(scanDuration), len(files)))

	if len(files) == 0 {
		return nil, ErrNoLineupFiles
	}

	// Phase 3: Use cached parses, load and parse the rest
	parseStart := time.Now()
	stats := NewCacheStats()
	lineups := make([]*model.ParsedLineup, len(files))

	var toParse []string
	missReasons := make(map[string]cache.CacheMissReason)
	for i, file := range files {
		if a.cache == nil {
			toParse = append(toParse, file)
			continue
		}
		result := a.cache.Get(file, bandYears, currentYear)
		// strict runs re-parse so a skipped member fails the run
		if result.Found && a.config.Strict && len(result.Entry.Lineup.Skipped) > 0 {
			result = cache.CacheResult{MissReason: cache.MissReasonSkipped}
		}
		if result.Found {
			stats.IncrementTotal()
			stats.IncrementHit()
			lineups[i] = &result.Entry.Lineup
			continue
		}
		toParse = append(toParse, file)
		missReasons[file] = result.MissReason
	}

	util.LogDebug(fmt.Sprintf("Cache hit for %d files, need to parse %d files", len(files)-len(toParse), len(toParse)))

	index := make(map[string]int, len(files))
	for i, file := range files {
		index[file] = i
	}

	for _, result := range a.loader.ParseAll(toParse) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stats.IncrementTotal()

		if result.Error != nil {
			stats.IncrementFailure()
			if a.config.Strict {
				return nil, fmt.Errorf("failed to load %s: %w", result.File, result.Error)
			}
			util.LogWarn(fmt.Sprintf("Failed to load lineup file %s: %v", result.File, result.Error))
			continue
		}

		parsed, err := a.Analyze(ctx, result.Lineup)
		if err != nil {
			return nil, err
		}
		lineups[index[result.File]] = parsed

		if a.cache != nil {
			stats.IncrementMiss(result.File, missReasons[result.File])
			if err := a.cache.Set(result.File, bandYears, parsed); err != nil {
				util.LogWarn(fmt.Sprintf("Failed to save cache for %s: %v", result.File, err))
			}
		}
	}

	parseDuration := time.Since(parseStart)
	util.LogDebug(fmt.Sprintf("Phase 3 - Lineup parsing duration: %s", util.FormatDuration(parseDuration)))
	if a.cache != nil {
		stats.PrintPeriodicStats()
		stats.PrintFinalStats()
	}

	// Phase 4: Build timelines
	buildStart := time.Now()
	var bands []formatter.BandTimeline
	for _, lineup := range lineups {
		if lineup == nil {
			continue
		}
		tl, err := a.Build(lineup)
		if err != nil {
			if a.config.Strict {
				return nil, fmt.Errorf("%s: %w", lineup.Band, err)
			}
			util.LogWarn(fmt.Sprintf("No timeline for %s: %v", lineup.Band, err))
		}
		bands = append(bands, formatter.BandTimeline{Lineup: lineup, Timeline: tl})
	}
	buildDuration := time.Since(buildStart)
	util.LogDebug(fmt.Sprintf("Phase 4 - Timeline build duration: %s, %d bands", util.FormatDuration(buildDuration), len(bands)))

	pruned := a.memo.Prune(constants.ParseCacheTTLSeconds)
	hits, misses := a.memo.Stats()
	util.LogDebug(fmt.Sprintf("Role cache: %d entries, %d hits, %d misses (hit rate %s), %d pruned",
		a.memo.Len(), hits, misses, util.FormatPercent(hits, hits+misses), pruned))

	if len(bands) == 0 {
		return nil, ErrNoLineups
	}

	util.LogDebug(fmt.Sprintf("Load duration: %s (preload:%s scan:%s parse:%s build:%s)",
		util.FormatDuration(time.Since(startTime)), util.FormatDuration(preloadDuration),
		util.FormatDuration(scanDuration), util.FormatDuration(parseDuration), util.FormatDuration(buildDuration)))

	return bands, nil
}

// Run loads every lineup and writes it to w in the configured format.
func (a *Analyzer) Run(ctx context.Context, w io.Writer) error {
	util.LogInfo("Starting lineup analysis...")

	bands, err := a.Load(ctx)
	if err != nil {
		return err
	}

	// Phase 5: Format and output
	outputStart := time.Now()
	err = a.formatAndOutput(w, bands)
	util.LogDebug(fmt.Sprintf("Phase 5 - Formatting and output duration: %s", util.FormatDuration(time.Since(outputStart))))
	return err
}

func (a *Analyzer) formatAndOutput(w io.Writer, bands []formatter.BandTimeline) error {
	output := a.config.Output
	if output == "" {
		output = constants.OutputTable
	}
	f, err := formatter.New(output, formatter.Options{Width: a.config.Width, Style: a.config.Layout})
	if err != nil {
		return err
	}
	return f.Format(w, bands)
}
