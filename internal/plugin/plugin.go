// Package plugin implements the monitoring-plugin output contract: the
// four standard statuses, their exit codes, the single status line and
// Nagios threshold ranges.
package plugin

import (
	"errors"
	"fmt"
	"io"

	"github.com/magarciasopo/nagios-plugins/internal/domain"

	"github.com/olorin/nagiosplugin"
)

// Status is a monitoring-plugin status. Its numeric value is the exit code.
type Status = nagiosplugin.Status

const (
	OK       = nagiosplugin.OK
	WARNING  = nagiosplugin.WARNING
	CRITICAL = nagiosplugin.CRITICAL
	UNKNOWN  = nagiosplugin.UNKNOWN
)

// StatusName returns the upper-case name printed in front of the message.
func StatusName(s Status) string {
	switch s {
	case OK:
		return "OK"
	case WARNING:
		return "WARNING"
	case CRITICAL:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Result is the terminal outcome of a check.
type Result struct {
	Status  Status
	Message string

	// Raw, when set, is printed verbatim instead of a status line. Used
	// for informational listings that terminate the check early.
	Raw bool
}

// ExitCode returns the process exit code for the result.
func (r Result) ExitCode() int {
	return int(r.Status)
}

// String renders the status line, e.g. "OK: load=1 | load=1".
func (r Result) String() string {
	if r.Raw {
		return r.Message
	}
	return StatusName(r.Status) + ": " + r.Message
}

// Write prints the result followed by a newline.
func (r Result) Write(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.String())
	return err
}

// FromError classifies a check failure into a result. Usage, timeout,
// contract and shape errors are UNKNOWN; everything else about the
// remote end is CRITICAL.
func FromError(err error) Result {
	switch {
	case err == nil:
		return Result{Status: OK}
	case errors.Is(err, domain.ErrUsage),
		errors.Is(err, domain.ErrTimeout),
		errors.Is(err, domain.ErrInternal),
		errors.Is(err, domain.ErrMalformedResponse):
		return Result{Status: UNKNOWN, Message: err.Error()}
	default:
		return Result{Status: CRITICAL, Message: err.Error()}
	}
}
