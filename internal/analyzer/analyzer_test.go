package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/penwyp/go-lineup-timeline/internal/core/constants"
	"github.com/penwyp/go-lineup-timeline/internal/core/model"
	"github.com/penwyp/go-lineup-timeline/internal/core/timeline"
	"github.com/penwyp/go-lineup-timeline/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleYAML = `band: Example
active_years: 1990-2004
members:
  - name: Alice
    roles: Bass (1990-1995), drums (1996-1999)
  - name: Bob
    roles: Vocals (?-1994)
  - name: Eve
    roles: Bass (199x)
`

const otherJSONL = `{"band": "Other", "activeYears": "2000-2002"}
{"name": "Carol", "roles": "Keys (2000-2002)"}
{"name": "Dan", "roles": "Keys, vocals (2001)"}
`

func newAnalyzer(t *testing.T, cfg *Config) *Analyzer {
	t.Helper()
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	a, err := New(cfg)
	require.NoError(t, err)
	return a
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDefaults(t *testing.T) {
	cfg := &Config{Timezone: "UTC"}
	a := newAnalyzer(t, cfg)
	assert.Positive(t, cfg.Concurrency)
	assert.Nil(t, a.cache)

	_, err := New(&Config{Timezone: "Nowhere/Special"})
	assert.Error(t, err)
}

func TestAnalyzeKeepsInputOrder(t *testing.T) {
	a := newAnalyzer(t, &Config{Concurrency: 4})

	lineup := &model.Lineup{Band: "Many", ActiveYears: "1990-2020", Source: "many.json"}
	for i := 0; i < 20; i++ {
		lineup.Members = append(lineup.Members, model.MemberRecord{
			Name:  fmt.Sprintf("m%02d", i),
			Roles: fmt.Sprintf("Bass (%d)", 1990+i),
		})
	}

	parsed, err := a.Analyze(context.Background(), lineup)
	require.NoError(t, err)
	require.Len(t, parsed.Members, 20)
	for i, member := range parsed.Members {
		assert.Equal(t, fmt.Sprintf("m%02d", i), member.Name)
		assert.Equal(t, 1990+i, member.Sections[0].Years[0].Start)
	}
	assert.Equal(t, "many.json", parsed.Source)
	assert.Equal(t, model.YearSpan{Start: 1990, End: 2020}, parsed.Span)
	assert.Equal(t, a.CurrentYear(), parsed.CurrentYear)
}

func TestAnalyzeSkipsAndDrops(t *testing.T) {
	a := newAnalyzer(t, &Config{})

	parsed, err := a.Analyze(context.Background(), &model.Lineup{
		Band:        "Example",
		ActiveYears: "1990-2004",
		Members: []model.MemberRecord{
			{Name: "Alice", Roles: "Bass (1990), guitar (1991"},
			{Name: "Eve", Roles: "Bass (199x)"},
			{Name: "Nobody", Roles: "   "},
		},
	})
	require.NoError(t, err)

	require.Len(t, parsed.Members, 1)
	assert.Equal(t, "Alice: Bass (1990-1990)", parsed.Members[0].String())
	assert.Equal(t, []model.DroppedGroup{{Name: "Alice", Text: "guitar (1991"}}, parsed.Dropped)

	require.Len(t, parsed.Skipped, 2)
	assert.Equal(t, "Eve", parsed.Skipped[0].Name)
	assert.Equal(t, "Bass (199x)", parsed.Skipped[0].Roles)
	assert.Contains(t, parsed.Skipped[0].Reason, "199x")
	assert.Equal(t, "Nobody", parsed.Skipped[1].Name)
}

func TestLoadSkipsOutOfRangeYears(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "wide.yaml", `band: Wide
active_years: 1990-2000
members:
  - name: Ann
    roles: Bass (1990-1995)
  - name: Zed
    roles: Drums (1990-99999999999)
`)

	a := newAnalyzer(t, &Config{Paths: []string{path}})
	bands, err := a.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, bands, 1)

	band := bands[0]
	require.Len(t, band.Lineup.Skipped, 1)
	assert.Equal(t, "Zed", band.Lineup.Skipped[0].Name)
	require.NotNil(t, band.Timeline)
	assert.Equal(t, model.YearSpan{Start: 1990, End: 2000}, band.Timeline.Span())
}

func TestAnalyzeStrict(t *testing.T) {
	a := newAnalyzer(t, &Config{Strict: true})

	_, err := a.Analyze(context.Background(), &model.Lineup{
		Band: "Example",
		Members: []model.MemberRecord{
			{Name: "Alice", Roles: "Bass (1990)"},
			{Name: "Eve", Roles: "Bass (199x)"},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrMalformedYearToken)
	assert.Contains(t, err.Error(), `member "Eve"`)
}

func TestAnalyzeCanceled(t *testing.T) {
	a := newAnalyzer(t, &Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Analyze(ctx, &model.Lineup{
		Band:    "Example",
		Members: []model.MemberRecord{{Name: "Alice", Roles: "Bass (1990)"}},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeBandYearsOverride(t *testing.T) {
	a := newAnalyzer(t, &Config{BandYears: "1981-1990"})

	parsed, err := a.Analyze(context.Background(), &model.Lineup{
		Band:        "Example",
		ActiveYears: "2000-2010",
		Members:     []model.MemberRecord{{Name: "Alice", Roles: "Bass ()"}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.YearSpan{Start: 1981, End: 1990}, parsed.Span)
	assert.Equal(t, "Alice: Bass (1981-1990)", parsed.Members[0].String())
}

func TestAnalyzeMemoizesRoleStrings(t *testing.T) {
	a := newAnalyzer(t, &Config{Concurrency: 1})
	lineup := &model.Lineup{
		Band:        "Example",
		ActiveYears: "1990-2004",
		Members: []model.MemberRecord{
			{Name: "Alice", Roles: "Bass (1990-1995)"},
			{Name: "Bob", Roles: "Bass (1990-1995)"},
		},
	}

	_, err := a.Analyze(context.Background(), lineup)
	require.NoError(t, err)
	_, err = a.Analyze(context.Background(), lineup)
	require.NoError(t, err)

	hits, misses := a.memo.Stats()
	assert.Equal(t, int64(1), misses)
	assert.Equal(t, int64(3), hits)
	assert.Equal(t, 1, a.memo.Len())
}

func TestBuild(t *testing.T) {
	a := newAnalyzer(t, &Config{})
	parsed, err := a.Analyze(context.Background(), &model.Lineup{
		Band:        "Example",
		ActiveYears: "1990-2004",
		Members: []model.MemberRecord{
			{Name: "Alice", Roles: "Bass (1995-1999)"},
			{Name: "Bob", Roles: "Vocals (?-1994)"},
		},
	})
	require.NoError(t, err)

	tl, err := a.Build(parsed)
	require.NoError(t, err)
	assert.Equal(t, 1990, tl.StartYear)
	assert.Equal(t, 2004, tl.EndYear)
	assert.Equal(t, 4|timeline.IndeterminateStart, tl.Cell(1, 1990))
	assert.Equal(t, 2, tl.Cell(0, 1995))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "example.yaml", exampleYAML)
	writeFile(t, dir, "other.jsonl", otherJSONL)
	writeFile(t, dir, "notes.txt", "not a lineup")

	a := newAnalyzer(t, &Config{Paths: []string{dir}, Output: constants.OutputCSV})

	var buf bytes.Buffer
	require.NoError(t, a.Run(context.Background(), &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Band,Member,Year,Roles,Cell,Uncertain Start,Uncertain End\n"))
	assert.Contains(t, out, "Example,Alice,1990,Bass,2,false,false\n")
	assert.Contains(t, out, "Example,Bob,1990,Vocals,536870920,true,false\n")
	assert.Contains(t, out, "Other,Dan,2001,Keys; vocals,6,false,false\n")
	assert.NotContains(t, out, "Eve")
	// example.yaml sorts before other.jsonl
	assert.Less(t, strings.Index(out, "Example,"), strings.Index(out, "Other,"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "example.yaml", exampleYAML)

	a := newAnalyzer(t, &Config{Paths: []string{path}})
	bands, err := a.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, bands, 1)

	band := bands[0]
	assert.Equal(t, "Example", band.Lineup.Band)
	assert.Equal(t, path, band.Lineup.Source)
	assert.Len(t, band.Lineup.Members, 2)
	assert.Len(t, band.Lineup.Skipped, 1)
	require.NotNil(t, band.Timeline)
	assert.Equal(t, []string{"Bass", "drums", "Vocals"}, band.Timeline.Registry.Names())
}

func TestLoadGeneratedLineups(t *testing.T) {
	gen := fixtures.NewLineupGenerator(t.TempDir())
	lineup := fixtures.LargeLineup("Generated", 30, 1980)

	_, err := gen.WriteYAML("generated.yaml", lineup)
	require.NoError(t, err)
	_, err = gen.WriteJSON("generated.json", lineup)
	require.NoError(t, err)
	_, err = gen.WriteJSONL("generated.jsonl", lineup)
	require.NoError(t, err)

	a := newAnalyzer(t, &Config{Paths: []string{gen.GetBaseDir()}, Concurrency: 4})
	bands, err := a.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, bands, 3)

	for _, band := range bands {
		assert.Equal(t, "Generated", band.Lineup.Band, band.Lineup.Source)
		require.Len(t, band.Lineup.Members, 30)
		assert.Empty(t, band.Lineup.Skipped)
		assert.Equal(t, "Member 000", band.Lineup.Members[0].Name)

		tl := band.Timeline
		require.NotNil(t, tl)
		assert.Equal(t, 1980, tl.StartYear)
		assert.Equal(t, 2012, tl.EndYear)
		assert.Equal(t, []string{"Vocals", "Guitar", "Bass", "Drums", "Keyboards"}, tl.Registry.Names())

		// Member 002 starts at "?" and inherits the band start
		assert.Equal(t, 8|timeline.IndeterminateStart, tl.Cell(2, 1980))
		assert.Equal(t, 8|timeline.IndeterminateStart, tl.Cell(2, 1984))
		assert.Zero(t, tl.Cell(2, 1985))
		assert.Equal(t, 2, tl.Cell(0, 1982))
	}

	// every parse after the first file comes from the memo
	hits, _ := a.memo.Stats()
	assert.Positive(t, hits)
}

func TestRunWithFileCache(t *testing.T) {
	dir := t.TempDir()
	cacheDir := t.TempDir()
	writeFile(t, dir, "example.yaml", exampleYAML)
	writeFile(t, dir, "other.jsonl", otherJSONL)

	cfg := func() *Config {
		return &Config{Paths: []string{dir}, CacheDir: cacheDir, Output: constants.OutputJSON}
	}

	var first bytes.Buffer
	require.NoError(t, newAnalyzer(t, cfg()).Run(context.Background(), &first))

	entries, err := filepath.Glob(filepath.Join(cacheDir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// a fresh analyzer reads the cached parses
	second := newAnalyzer(t, cfg())
	var out bytes.Buffer
	require.NoError(t, second.Run(context.Background(), &out))
	assert.Equal(t, first.String(), out.String())
	hits, misses := second.memo.Stats()
	assert.Zero(t, hits+misses)
}

func TestRunStrictIgnoresCachedSkips(t *testing.T) {
	dir := t.TempDir()
	cacheDir := t.TempDir()
	writeFile(t, dir, "example.yaml", exampleYAML)

	var warm bytes.Buffer
	warmer := newAnalyzer(t, &Config{Paths: []string{dir}, CacheDir: cacheDir})
	require.NoError(t, warmer.Run(context.Background(), &warm))

	strict := newAnalyzer(t, &Config{Paths: []string{dir}, CacheDir: cacheDir, Strict: true})
	var out bytes.Buffer
	err := strict.Run(context.Background(), &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrMalformedYearToken)
	assert.Contains(t, err.Error(), `Example: member "Eve"`)

	// non-strict runs keep using the cached entry
	again := newAnalyzer(t, &Config{Paths: []string{dir}, CacheDir: cacheDir})
	require.NoError(t, again.Run(context.Background(), &out))
	hits, misses := again.memo.Stats()
	assert.Zero(t, hits+misses)
}

func TestRunErrors(t *testing.T) {
	t.Run("no_files", func(t *testing.T) {
		a := newAnalyzer(t, &Config{Paths: []string{t.TempDir()}})
		assert.ErrorIs(t, a.Run(context.Background(), &bytes.Buffer{}), ErrNoLineupFiles)
	})

	t.Run("missing_path", func(t *testing.T) {
		a := newAnalyzer(t, &Config{Paths: []string{filepath.Join(t.TempDir(), "absent")}})
		assert.Error(t, a.Run(context.Background(), &bytes.Buffer{}))
	})

	t.Run("only_broken_files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "broken.json", "{not json")
		a := newAnalyzer(t, &Config{Paths: []string{dir}})
		assert.ErrorIs(t, a.Run(context.Background(), &bytes.Buffer{}), ErrNoLineups)
	})

	t.Run("broken_file_is_skipped", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "broken.json", "{not json")
		writeFile(t, dir, "example.yaml", exampleYAML)
		a := newAnalyzer(t, &Config{Paths: []string{dir}, Output: constants.OutputSummary})

		var buf bytes.Buffer
		require.NoError(t, a.Run(context.Background(), &buf))
		assert.Contains(t, buf.String(), "Band Lineup Summary: Example")
	})

	t.Run("broken_file_strict", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "broken.json", "{not json")
		writeFile(t, dir, "good.yaml", "band: Good\nmembers:\n  - name: A\n    roles: Bass (1990)\n")
		a := newAnalyzer(t, &Config{Paths: []string{dir}, Strict: true})

		err := a.Run(context.Background(), &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken.json")
	})

	t.Run("unknown_output", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "example.yaml", exampleYAML)
		a := newAnalyzer(t, &Config{Paths: []string{dir}, Output: "xml"})
		assert.Error(t, a.Run(context.Background(), &bytes.Buffer{}))
	})
}

func TestRunRoleCapacity(t *testing.T) {
	var members strings.Builder
	members.WriteString("band: Huge\nactive_years: 1990-2000\nmembers:\n")
	for i := 0; i <= timeline.MaxRoles; i++ {
		fmt.Fprintf(&members, "  - name: m%d\n    roles: Role%d (1990)\n", i, i)
	}
	dir := t.TempDir()
	writeFile(t, dir, "huge.yaml", members.String())

	a := newAnalyzer(t, &Config{Paths: []string{dir}, Output: constants.OutputTable, Width: 80})
	var buf bytes.Buffer
	require.NoError(t, a.Run(context.Background(), &buf))
	assert.Equal(t, "Huge: no timeline\n", buf.String())

	strict := newAnalyzer(t, &Config{Paths: []string{dir}, Strict: true})
	assert.ErrorIs(t, strict.Run(context.Background(), &bytes.Buffer{}), timeline.ErrRoleCapacityExceeded)
}
