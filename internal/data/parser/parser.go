package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/penwyp/go-lineup-timeline/internal/core/model"
	"github.com/penwyp/go-lineup-timeline/internal/util"
)

// Parser loads lineup files.
type Parser struct {
	concurrency int
	mu          sync.Mutex
	cache       map[string]cachedLineup
}

type cachedLineup struct {
	info   util.FileInfo
	lineup *model.Lineup
}

// ParseResult represents the result of loading a single file.
type ParseResult struct {
	File   string
	Lineup *model.Lineup
	Error  error
}

// NewParser creates a new Parser instance.
func NewParser(concurrency int) *Parser {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Parser{
		concurrency: concurrency,
		cache:       make(map[string]cachedLineup),
	}
}

// ParseFile loads the lineup at path. A file that has not changed since
// the last call is not read again.
func (p *Parser) ParseFile(path string) (*model.Lineup, error) {
	info, err := util.GetFileInfo(path)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if cached, ok := p.cache[path]; ok && cached.info == *info {
		p.mu.Unlock()
		return copyLineup(cached.lineup), nil
	}
	p.mu.Unlock()

	util.LogDebug(fmt.Sprintf("Start parsing file: %s", path))

	data, err := os.ReadFile(path) // #nosec G304 -- lineup paths come from the user
	if err != nil {
		util.LogDebug(fmt.Sprintf("Failed to read file: %s - %v", path, err))
		return nil, err
	}

	lineup, err := Decode(data, filepath.Ext(path), bandNameFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	lineup.Source = path

	p.mu.Lock()
	p.cache[path] = cachedLineup{info: *info, lineup: lineup}
	p.mu.Unlock()

	util.LogDebug(fmt.Sprintf("Parsed file: %s, band %q, %d members", path, lineup.Band, len(lineup.Members)))
	return copyLineup(lineup), nil
}

// Forget drops the cached copy of path.
func (p *Parser) Forget(path string) {
	p.mu.Lock()
	delete(p.cache, path)
	p.mu.Unlock()
}

// ParseFiles parses multiple files concurrently and returns a channel of ParseResult.
func (p *Parser) ParseFiles(files []string) <-chan ParseResult {
	start := time.Now()
	results := make(chan ParseResult, len(files))
	var wg sync.WaitGroup

	util.LogDebug(fmt.Sprintf("Start concurrent parsing of %d files, concurrency: %d", len(files), p.concurrency))

	semaphore := make(chan struct{}, p.concurrency)

	for _, file := range files {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			fileStart := time.Now()
			lineup, err := p.ParseFile(f)
			if err != nil {
				util.LogDebug(fmt.Sprintf("File parsing failed: %s, duration %v - %v", f, time.Since(fileStart), err))
			}

			results <- ParseResult{
				File:   f,
				Lineup: lineup,
				Error:  err,
			}
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
		util.LogDebug(fmt.Sprintf("Concurrent parsing finished, total duration: %v", time.Since(start)))
	}()

	return results
}

// ParseAll loads files concurrently and returns the results in input order.
func (p *Parser) ParseAll(files []string) []ParseResult {
	index := make(map[string]int, len(files))
	for i, f := range files {
		index[f] = i
	}

	ordered := make([]ParseResult, len(files))
	for result := range p.ParseFiles(files) {
		ordered[index[result.File]] = result
	}
	return ordered
}

func copyLineup(l *model.Lineup) *model.Lineup {
	out := *l
	out.Members = append([]model.MemberRecord(nil), l.Members...)
	return &out
}
