package subtitle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	SeparatorSRT = ','
	SeparatorVTT = '.'
)

// floatSlack absorbs binary representation error (2.3*1000 = 2299.9999...)
// so truncation lands on the intended millisecond.
const floatSlack = 1e-6

// FormatTimestamp renders seconds as HH:MM:SS{sep}mmm, truncating to whole
// milliseconds. Negative offsets render as zero.
func FormatTimestamp(seconds float64, sep byte) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	totalMillis := int64(math.Floor(seconds*1000 + floatSlack))

	hours := totalMillis / 3_600_000
	minutes := (totalMillis % 3_600_000) / 60_000
	secs := (totalMillis % 60_000) / 1000
	millis := totalMillis % 1000

	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, millis)
}

// ParseTimestamp reads HH:MM:SS,mmm or HH:MM:SS.mmm back into seconds.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 || len(timeParts[1]) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 || millis < 0 {
		return 0, fmt.Errorf("timestamp out of range %q", value)
	}
	total := int64(hours)*3_600_000 + int64(minutes)*60_000 + int64(seconds)*1000 + int64(millis)
	return float64(total) / 1000, nil
}
