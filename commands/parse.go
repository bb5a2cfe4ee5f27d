package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-lineup-timeline/internal/core/constants"
	"github.com/penwyp/go-lineup-timeline/internal/core/model"
	"github.com/penwyp/go-lineup-timeline/internal/core/roleparser"
	"github.com/penwyp/go-lineup-timeline/internal/util"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   `parse "<role string>"...`,
	Short: "Parse role strings and print their sections",
	Long: `Parses each role string and prints its sections in canonical form.

Unknown years are kept as "?", "present" becomes the current year and a group
without years gets the band's active years (see --band-years).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

type parsedRoles struct {
	Input    string               `json:"input"`
	Sections []model.RoleInterval `json:"sections,omitempty"`
	Dropped  string               `json:"dropped,omitempty"`
	Error    string               `json:"error,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	tp := util.GetTimeProvider()
	p := roleparser.New(roleparser.WithYearSource(tp))
	span := model.ParseActiveYears(cfg.BandYears, p.CurrentYear())

	results := make([]parsedRoles, len(args))
	failed := 0
	for i, raw := range args {
		results[i].Input = raw
		res, err := p.Parse(raw, span)
		if err != nil {
			failed++
			results[i].Error = err.Error()
			util.LogDebug(fmt.Sprintf("Failed to parse %q: %v", raw, err))
			continue
		}
		results[i].Sections = res.Sections
		results[i].Dropped = res.Dropped
	}

	out := cmd.OutOrStdout()
	if cfg.Output == constants.OutputJSON {
		err = writeParsedJSON(out, results)
	} else {
		err = writeParsedText(out, results)
	}
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d role strings could not be parsed", failed, len(args))
	}
	return nil
}

func writeParsedJSON(w io.Writer, results []parsedRoles) error {
	data, err := sonic.ConfigStd.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func writeParsedText(w io.Writer, results []parsedRoles) error {
	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%q\n", r.Input)
		if r.Error != "" {
			fmt.Fprintf(&sb, "  error: %s\n", r.Error)
			continue
		}
		for _, section := range r.Sections {
			fmt.Fprintf(&sb, "  %s\n", section)
		}
		if r.Dropped != "" {
			fmt.Fprintf(&sb, "  ignored: %q\n", r.Dropped)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
