package constants

import "time"

const (
	// Debounce applied to bursts of file events before a watch re-render
	WatchDebounce = 300 * time.Millisecond

	// Year axis labels in the table view
	YearLabelInterval = 5

	// Parse cache entries not touched for this long are pruned
	ParseCacheTTLSeconds = int64(10 * 60)

	// Clock shown in the watch footer
	WatchClockFormat = "15:04:05"
)
