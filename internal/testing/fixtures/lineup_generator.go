// Package fixtures writes lineup files for tests.
package fixtures

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-lineup-timeline/internal/core/model"
	"gopkg.in/yaml.v3"
)

// Roles cycled through by the generated members
var generatedRoles = []string{"Vocals", "Guitar", "Bass", "Drums", "Keyboards"}

// LineupGenerator writes lineup documents below baseDir
type LineupGenerator struct {
	baseDir string
}

// NewLineupGenerator creates a new lineup generator
func NewLineupGenerator(baseDir string) *LineupGenerator {
	return &LineupGenerator{
		baseDir: baseDir,
	}
}

// GetBaseDir returns the base directory
func (g *LineupGenerator) GetBaseDir() string {
	return g.baseDir
}

// WriteYAML writes lineup as a YAML document and returns its path.
func (g *LineupGenerator) WriteYAML(filename string, lineup model.Lineup) (string, error) {
	data, err := yaml.Marshal(lineup)
	if err != nil {
		return "", err
	}
	return g.write(filename, data)
}

// WriteJSON writes lineup as a JSON document and returns its path.
func (g *LineupGenerator) WriteJSON(filename string, lineup model.Lineup) (string, error) {
	data, err := sonic.ConfigStd.MarshalIndent(lineup, "", "  ")
	if err != nil {
		return "", err
	}
	return g.write(filename, data)
}

// WriteJSONL writes a header line with the band followed by one line per
// member and returns the file path.
func (g *LineupGenerator) WriteJSONL(filename string, lineup model.Lineup) (string, error) {
	var buf bytes.Buffer

	header, err := sonic.Marshal(map[string]string{"band": lineup.Band, "activeYears": lineup.ActiveYears})
	if err != nil {
		return "", err
	}
	buf.Write(header)
	buf.WriteByte('\n')

	for _, member := range lineup.Members {
		line, err := sonic.Marshal(member)
		if err != nil {
			return "", err
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return g.write(filename, buf.Bytes())
}

// LargeLineup builds a band with the given number of members. Member i
// plays one role for three years starting at startYear+i, and every third
// member has an unknown start.
func LargeLineup(band string, members, startYear int) model.Lineup {
	lineup := model.Lineup{
		Band:        band,
		ActiveYears: fmt.Sprintf("%d-%d", startYear, startYear+members+2),
		Members:     make([]model.MemberRecord, members),
	}
	for i := range lineup.Members {
		start := fmt.Sprint(startYear + i)
		if i%3 == 2 {
			start = model.UnknownToken
		}
		lineup.Members[i] = model.MemberRecord{
			Name:  fmt.Sprintf("Member %03d", i),
			Roles: fmt.Sprintf("%s (%s-%d)", generatedRoles[i%len(generatedRoles)], start, startYear+i+2),
		}
	}
	return lineup
}

// CleanupTestData removes every generated file
func (g *LineupGenerator) CleanupTestData() error {
	return os.RemoveAll(g.baseDir)
}

func (g *LineupGenerator) write(filename string, data []byte) (string, error) {
	path := filepath.Join(g.baseDir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
