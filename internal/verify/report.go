// Package verify checks a structure before analysis: connectivity, coincident
// nodes, zero-length bars and support sufficiency.
package verify

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/goframe/internal/errors"
)

// Severity orders findings; the run severity is the maximum over entries.
type Severity int

const (
	OK Severity = iota
	Warning
	Critical
)

func (s Severity) String() string {
	switch s {
	case OK:
		return "OK"
	case Warning:
		return "Warning"
	case Critical:
		return "Critical"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Check names.
const (
	CheckConnectivity = "connectivity"
	CheckDuplicates   = "duplicate nodes"
	CheckZeroLength   = "zero-length bars"
	CheckSupports     = "supports"
	CheckPositions    = "node positions"
)

// ErrCritical is returned by Report.Err when analysis must not proceed.
var ErrCritical = errors.New(errors.CodeVerification, "structure failed verification")

// Entry is one report line.
type Entry struct {
	Check    string
	Severity Severity
	Detail   string
}

// Report is built once per run and not modified afterwards.
type Report struct {
	Entries []Entry
}

func (r *Report) add(check string, sev Severity, format string, args ...interface{}) {
	r.Entries = append(r.Entries, Entry{Check: check, Severity: sev, Detail: fmt.Sprintf(format, args...)})
}

// Severity returns the maximum severity, OK for an empty report.
func (r *Report) Severity() Severity {
	worst := OK
	for _, e := range r.Entries {
		if e.Severity > worst {
			worst = e.Severity
		}
	}
	return worst
}

// Filter returns the entries with the given severity.
func (r *Report) Filter(sev Severity) []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Severity == sev {
			out = append(out, e)
		}
	}
	return out
}

// Err returns ErrCritical listing the critical lines, or nil.
func (r *Report) Err() error {
	crit := r.Filter(Critical)
	if len(crit) == 0 {
		return nil
	}
	msgs := make([]string, len(crit))
	for i, e := range crit {
		msgs[i] = e.Check + ": " + e.Detail
	}
	return errors.Wrap(ErrCritical, strings.Join(msgs, "; "))
}
