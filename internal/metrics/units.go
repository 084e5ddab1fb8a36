package metrics

import "github.com/magarciasopo/nagios-plugins/internal/util"

// perfUnits maps Cloudera Manager unit names and plain symbols to
// performance-data units.
var perfUnits = map[string]string{
	"":             "",
	"%":            "%",
	"percent":      "%",
	"percentage":   "%",
	"s":            "s",
	"sec":          "s",
	"secs":         "s",
	"second":       "s",
	"seconds":      "s",
	"ms":           "ms",
	"millisecond":  "ms",
	"milliseconds": "ms",
	"us":           "us",
	"microsecond":  "us",
	"microseconds": "us",
	"b":            "B",
	"byte":         "B",
	"bytes":        "B",
	"kb":           "KB",
	"kilobyte":     "KB",
	"kilobytes":    "KB",
	"mb":           "MB",
	"megabyte":     "MB",
	"megabytes":    "MB",
	"gb":           "GB",
	"gigabyte":     "GB",
	"gigabytes":    "GB",
	"tb":           "TB",
	"terabyte":     "TB",
	"terabytes":    "TB",
	"c":            "c",
	"counter":      "c",
}

// NormalizeUnit maps a raw unit to a performance-data unit symbol. ok is
// false for units perfdata cannot express, such as bytes_per_second.
func NormalizeUnit(raw string) (unit string, ok bool) {
	unit, ok = perfUnits[util.NormalizeKey(raw)]
	return unit, ok
}
