package constants

// Lineup file extensions recognised by the scanner and loader
const (
	ExtJSON  = ".json"
	ExtJSONL = ".jsonl"
	ExtYAML  = ".yaml"
	ExtYML   = ".yml"
)

// LineupExtensions lists every supported lineup file extension.
var LineupExtensions = []string{ExtJSON, ExtJSONL, ExtYAML, ExtYML}

// Output formats
const (
	OutputTable   = "table"
	OutputJSON    = "json"
	OutputCSV     = "csv"
	OutputSummary = "summary"
)

// OutputFormats lists every supported output format.
var OutputFormats = []string{OutputTable, OutputJSON, OutputCSV, OutputSummary}

// Table layouts
const (
	LayoutFull    = "full"
	LayoutMinimal = "minimal"
)

// Layouts lists every table layout.
var Layouts = []string{LayoutFull, LayoutMinimal}
