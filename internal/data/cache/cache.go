package cache

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-lineup-timeline/internal/core/model"
	"github.com/penwyp/go-lineup-timeline/internal/util"
)

type CacheMissReason int

const (
	MissReasonNone CacheMissReason = iota
	MissReasonError
	MissReasonInode
	MissReasonSize
	MissReasonModTime
	MissReasonFingerprint
	MissReasonNoFingerprint
	MissReasonNotFound
	MissReasonYear
	MissReasonSpan
	MissReasonSkipped
)

func (r CacheMissReason) String() string {
	switch r {
	case MissReasonNone:
		return "none"
	case MissReasonError:
		return "Cache read error"
	case MissReasonInode:
		return "File inode changed"
	case MissReasonSize:
		return "File size changed"
	case MissReasonModTime:
		return "Modification time changed"
	case MissReasonFingerprint:
		return "File fingerprint changed"
	case MissReasonNoFingerprint:
		return "Cached file has no fingerprint"
	case MissReasonNotFound:
		return "Cache not found"
	case MissReasonYear:
		return "Current year changed"
	case MissReasonSpan:
		return "Band years changed"
	case MissReasonSkipped:
		return "Cached lineup has skipped members"
	default:
		return "Unknown reason"
	}
}

// Entry is a parsed lineup stored together with the identity of the file it
// came from.
type Entry struct {
	FilePath           string             `json:"filePath"`
	File               util.FileInfo      `json:"file"`
	ContentFingerprint string             `json:"contentFingerprint"`
	BandYears          model.YearSpan     `json:"bandYears"`
	Lineup             model.ParsedLineup `json:"lineup"`
}

type CacheResult struct {
	Entry      *Entry
	Found      bool
	MissReason CacheMissReason
}

// Cache stores parsed lineups between runs. bandYears is the active years
// override the lineup was parsed with, the zero span when there was none.
type Cache interface {
	Get(filePath string, bandYears model.YearSpan, currentYear int) CacheResult
	Set(filePath string, bandYears model.YearSpan, lineup *model.ParsedLineup) error
	Clear() error
	Preload() error
	GetCacheStats() (memoryCount, fileCount int)
}

// FileCache keeps one JSON document per lineup file in baseDir and mirrors
// valid entries in memory.
type FileCache struct {
	baseDir     string
	mu          sync.RWMutex
	memoryCache map[string]*Entry
}

func NewFileCache(baseDir string) (*FileCache, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &FileCache{
		baseDir:     baseDir,
		memoryCache: make(map[string]*Entry),
	}, nil
}

// cacheKey names the cache document of a lineup file,
// e.g. "/data/iron-maiden.yaml" -> "iron-maiden-1a2b3c4d".
func cacheKey(filePath string) string {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		abs = filePath
	}
	base := filepath.Base(abs)
	return fmt.Sprintf("%s-%08x", strings.TrimSuffix(base, filepath.Ext(base)), crc32.ChecksumIEEE([]byte(abs)))
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.baseDir, key+".json")
}

func (c *FileCache) Get(filePath string, bandYears model.YearSpan, currentYear int) CacheResult {
	key := cacheKey(filePath)

	c.mu.RLock()
	entry, exists := c.memoryCache[key]
	c.mu.RUnlock()

	if !exists {
		var reason CacheMissReason
		entry, reason = c.readEntry(c.path(key))
		if entry == nil {
			return CacheResult{MissReason: reason}
		}
	}

	if reason := validate(entry, bandYears, currentYear); reason != MissReasonNone {
		c.mu.Lock()
		delete(c.memoryCache, key)
		c.mu.Unlock()
		return CacheResult{MissReason: reason}
	}

	c.mu.Lock()
	c.memoryCache[key] = entry
	c.mu.Unlock()

	return CacheResult{Entry: entry, Found: true, MissReason: MissReasonNone}
}

func (c *FileCache) readEntry(path string) (*Entry, CacheMissReason) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, MissReasonNotFound
	}

	var entry Entry
	if err := sonic.Unmarshal(data, &entry); err != nil {
		util.LogDebug(fmt.Sprintf("Cache entry %s unreadable: %v", path, err))
		return nil, MissReasonError
	}
	return &entry, MissReasonNone
}

// validate compares the entry against the lineup file on disk and the
// parse inputs that affect the result.
func validate(entry *Entry, bandYears model.YearSpan, currentYear int) CacheMissReason {
	if entry.Lineup.CurrentYear != currentYear {
		return MissReasonYear
	}
	if entry.BandYears != bandYears {
		return MissReasonSpan
	}

	currentInfo, err := util.GetFileInfo(entry.FilePath)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Cache validation failed for %s: unable to get file info: %v", entry.FilePath, err))
		return MissReasonError
	}

	if currentInfo.Inode != entry.File.Inode {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: inode changed (cached: %d, current: %d)",
			entry.FilePath, entry.File.Inode, currentInfo.Inode))
		return MissReasonInode
	}
	if currentInfo.Size != entry.File.Size {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: size changed (cached: %d, current: %d)",
			entry.FilePath, entry.File.Size, currentInfo.Size))
		return MissReasonSize
	}
	if currentInfo.ModTime != entry.File.ModTime {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: modtime changed", entry.FilePath))
		return MissReasonModTime
	}

	if entry.ContentFingerprint == "" {
		return MissReasonNoFingerprint
	}
	fingerprint, err := util.CalculateFileFingerprint(entry.FilePath)
	if err != nil {
		return MissReasonNoFingerprint
	}
	if fingerprint != entry.ContentFingerprint {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: fingerprint mismatch (cached: %s, current: %s)",
			entry.FilePath, entry.ContentFingerprint, fingerprint))
		return MissReasonFingerprint
	}
	return MissReasonNone
}

func (c *FileCache) Set(filePath string, bandYears model.YearSpan, lineup *model.ParsedLineup) error {
	fileInfo, err := util.GetFileInfo(filePath)
	if err != nil {
		return err
	}

	fingerprint, err := util.CalculateFileFingerprint(filePath)
	if err != nil {
		return err
	}

	entry := &Entry{
		FilePath:           filePath,
		File:               *fileInfo,
		ContentFingerprint: fingerprint,
		BandYears:          bandYears,
		Lineup:             *lineup,
	}

	data, err := sonic.ConfigStd.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	key := cacheKey(filePath)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.WriteFile(c.path(key), data, 0644); err != nil {
		return err
	}
	c.memoryCache[key] = entry
	return nil
}

func (c *FileCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.memoryCache = make(map[string]*Entry)

	matches, err := filepath.Glob(filepath.Join(c.baseDir, "*.json"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Preload reads every cache document into memory using one worker per CPU.
// Entries are validated lazily by Get.
func (c *FileCache) Preload() error {
	cacheFiles, err := filepath.Glob(filepath.Join(c.baseDir, "*.json"))
	if err != nil {
		return fmt.Errorf("scan cache directory: %w", err)
	}
	if len(cacheFiles) == 0 {
		util.LogDebug("Cache directory is empty, skipping preload")
		return nil
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > len(cacheFiles) {
		numWorkers = len(cacheFiles)
	}

	filesChan := make(chan string, len(cacheFiles))
	resultsChan := make(chan preloadResult, len(cacheFiles))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go c.preloadWorker(filesChan, resultsChan, &wg)
	}

	for _, file := range cacheFiles {
		filesChan <- file
	}
	close(filesChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	loaded, failed := 0, 0
	c.mu.Lock()
	for result := range resultsChan {
		if result.entry == nil {
			failed++
			util.LogDebug(fmt.Sprintf("Failed to preload cache file %s: %s", result.path, result.reason))
			continue
		}
		c.memoryCache[result.key] = result.entry
		loaded++
	}
	c.mu.Unlock()

	util.LogDebug(fmt.Sprintf("Cache preload complete: %d loaded, %d failed (total %d)", loaded, failed, len(cacheFiles)))
	return nil
}

type preloadResult struct {
	path   string
	key    string
	entry  *Entry
	reason CacheMissReason
}

func (c *FileCache) preloadWorker(filesChan <-chan string, resultsChan chan<- preloadResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for path := range filesChan {
		entry, reason := c.readEntry(path)
		resultsChan <- preloadResult{
			path:   path,
			key:    strings.TrimSuffix(filepath.Base(path), ".json"),
			entry:  entry,
			reason: reason,
		}
	}
}

// GetCacheStats returns the number of entries in memory and on disk.
func (c *FileCache) GetCacheStats() (memoryCount, fileCount int) {
	c.mu.RLock()
	memoryCount = len(c.memoryCache)
	c.mu.RUnlock()

	matches, _ := filepath.Glob(filepath.Join(c.baseDir, "*.json"))
	return memoryCount, len(matches)
}
