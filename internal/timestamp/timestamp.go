// Package timestamp converts floating-point second offsets into the clock
// strings used by transcript and subtitle documents, and parses SRT
// timestamps back into seconds.
package timestamp

import (
	"fmt"
	"strconv"
	"strings"
)

// split decomposes a non-negative seconds offset into hour, minute, second,
// and millisecond fields. Fractional milliseconds truncate toward zero.
func split(seconds float64) (hours, minutes, secs, millis int) {
	total := int(seconds)
	hours = total / 3600
	minutes = (total % 3600) / 60
	secs = total % 60
	millis = int((seconds - float64(total)) * 1000)
	return hours, minutes, secs, millis
}

// Clock formats seconds as HH:MM:SS. Hours widen past two digits when needed.
func Clock(seconds float64) string {
	hours, minutes, secs, _ := split(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// SRT formats seconds as HH:MM:SS,mmm per the SubRip standard.
func SRT(seconds float64) string {
	hours, minutes, secs, millis := split(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// VTT formats seconds as HH:MM:SS.mmm per the WebVTT standard.
func VTT(seconds float64) string {
	hours, minutes, secs, millis := split(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
}

// ParseSRT converts an SRT or VTT timestamp back into seconds. The period
// millisecond separator is normalized to the SRT comma before parsing.
func ParseSRT(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
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
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
