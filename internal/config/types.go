package config

// Config holds the settings of a render, parse or watch run. Command-line
// flags override values loaded from a file.
type Config struct {
	// Paths are lineup files or directories to render.
	Paths []string `yaml:"paths"`

	// Output is one of table, json, csv or summary.
	Output string `yaml:"output"`

	// Timezone decides which calendar year "present" means.
	Timezone string `yaml:"timezone"`

	// BandYears overrides the active years of every lineup, e.g. "1981-present".
	BandYears string `yaml:"band_years"`

	// Concurrency bounds parallel member parsing. 0 means one worker per CPU.
	Concurrency int `yaml:"concurrency"`

	// Strict aborts on the first member that fails to parse.
	Strict bool `yaml:"strict"`

	// CacheDir enables the on-disk parse cache when set.
	CacheDir string `yaml:"cache_dir"`

	// Width of the table view in terminal cells. 0 uses the terminal width.
	Width int `yaml:"width"`

	// Layout of the table view: full (boxed) or minimal.
	Layout string `yaml:"layout"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures the diagnostic logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
	Format string `yaml:"format"`
}
