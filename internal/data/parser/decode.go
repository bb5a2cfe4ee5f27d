package parser

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-lineup-timeline/internal/core/constants"
	"github.com/penwyp/go-lineup-timeline/internal/core/model"
	"github.com/penwyp/go-lineup-timeline/internal/util"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files whose extension is not a
// lineup format.
var ErrUnsupportedFormat = errors.New("unsupported lineup format")

// document is the on-disk lineup shape. Both spellings of the active years
// key are accepted.
type document struct {
	Band             string               `json:"band" yaml:"band"`
	ActiveYears      string               `json:"activeYears" yaml:"activeYears"`
	ActiveYearsSnake string               `json:"active_years" yaml:"active_years"`
	Members          []model.MemberRecord `json:"members" yaml:"members"`
}

func (d *document) lineup() *model.Lineup {
	years := d.ActiveYears
	if years == "" {
		years = d.ActiveYearsSnake
	}
	return &model.Lineup{
		Band:        strings.TrimSpace(d.Band),
		ActiveYears: strings.TrimSpace(years),
		Members:     d.Members,
	}
}

// jsonlLine is either a header carrying band and activeYears or a member.
type jsonlLine struct {
	document
	Name  *string `json:"name"`
	Roles string  `json:"roles"`
}

// Decode reads a lineup from data in the format given by ext. name is used
// as the band name when the document has none.
func Decode(data []byte, ext, name string) (*model.Lineup, error) {
	var (
		lineup *model.Lineup
		err    error
	)

	switch strings.ToLower(ext) {
	case constants.ExtJSON:
		lineup, err = decodeJSON(data)
	case constants.ExtYAML, constants.ExtYML:
		lineup, err = decodeYAML(data)
	case constants.ExtJSONL:
		lineup, err = decodeJSONL(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	if lineup.Band == "" {
		lineup.Band = name
	}
	return lineup, nil
}

func decodeJSON(data []byte) (*model.Lineup, error) {
	var doc document
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode json lineup: %w", err)
	}
	return doc.lineup(), nil
}

func decodeYAML(data []byte) (*model.Lineup, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml lineup: %w", err)
	}
	return doc.lineup(), nil
}

// decodeJSONL reads one member per line. Invalid lines are skipped.
func decodeJSONL(data []byte) (*model.Lineup, error) {
	lineup := &model.Lineup{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineCount := 0
	for scanner.Scan() {
		lineCount++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var line jsonlLine
		if err := sonic.Unmarshal(raw, &line); err != nil {
			util.LogDebug(fmt.Sprintf("Skip invalid JSON line %d - %v", lineCount, err))
			continue
		}

		if line.Name == nil {
			if header := line.document.lineup(); header.Band != "" || header.ActiveYears != "" {
				lineup.Band = header.Band
				lineup.ActiveYears = header.ActiveYears
			}
			continue
		}
		lineup.Members = append(lineup.Members, model.MemberRecord{Name: *line.Name, Roles: line.Roles})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read jsonl lineup: %w", err)
	}
	return lineup, nil
}

// bandNameFromPath derives a band name from a file name,
// e.g. "/data/iron-maiden.yaml" -> "iron-maiden".
func bandNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
