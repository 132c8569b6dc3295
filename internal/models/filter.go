package models

import "strings"

// LogFilter restricts which taken events a history query returns.
type LogFilter string

const (
	LogFilterAll   LogFilter = "all"
	LogFilterToday LogFilter = "today"
)

// ParseLogFilter maps user input onto a LogFilter. Unrecognized values
// behave as LogFilterAll.
func ParseLogFilter(s string) LogFilter {
	if strings.EqualFold(strings.TrimSpace(s), string(LogFilterToday)) {
		return LogFilterToday
	}
	return LogFilterAll
}
