package combatlog

import (
	"regexp"
	"strconv"
)

var (
	bracketPattern = regexp.MustCompile(`^\[([^\]]*)\]`)
	clockPattern   = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})\.(\d{3})$`)
)

// ParseClock converts "HH:mm:ss.SSS" to milliseconds since the start of the clock.
// Hours are not capped at 23; minutes and seconds must be below 60.
func ParseClock(clock string) (int64, bool) {
	m := clockPattern.FindStringSubmatch(clock)
	if m == nil {
		return 0, false
	}

	hours, _ := strconv.ParseInt(m[1], 10, 64)
	minutes, _ := strconv.ParseInt(m[2], 10, 64)
	seconds, _ := strconv.ParseInt(m[3], 10, 64)
	millis, _ := strconv.ParseInt(m[4], 10, 64)

	if minutes >= 60 || seconds >= 60 {
		return 0, false
	}

	return ((hours*60+minutes)*60+seconds)*1000 + millis, true
}

// lineTimestamp reads the leading bracketed clock of a line, 0 when absent or malformed
func lineTimestamp(line string) int64 {
	m := bracketPattern.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	ts, ok := ParseClock(m[1])
	if !ok {
		return 0
	}
	return ts
}
