package runlog

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// recentFailures caps how many failing invocations a report keeps.
const recentFailures = 10

// Report aggregates an invocation log.
type Report struct {
	Runs     int         `json:"runs"`
	Passed   int         `json:"passed"`
	Failed   int         `json:"failed"`
	ByStatus map[int]int `json:"by_status"`

	// Failures holds the most recent failing invocations, oldest first.
	Failures []*Entry `json:"failures"`
}

func NewReport() *Report {
	return &Report{ByStatus: make(map[int]int)}
}

func (r *Report) Update(e *Entry) {
	r.Runs++
	r.ByStatus[e.ExitCode]++

	if e.ExitCode == 0 {
		r.Passed++
		return
	}

	r.Failed++
	r.Failures = append(r.Failures, e)
	if len(r.Failures) > recentFailures {
		r.Failures = r.Failures[len(r.Failures)-recentFailures:]
	}
}

// PassRate returns the fraction of runs that exited zero.
func (r *Report) PassRate() float64 {
	if r.Runs == 0 {
		return 0
	}
	return float64(r.Passed) / float64(r.Runs)
}

// Render writes the report as text.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "runs: %d\n", r.Runs)
	fmt.Fprintf(w, "passed: %d\n", r.Passed)
	fmt.Fprintf(w, "failed: %d\n", r.Failed)
	if r.Runs > 0 {
		fmt.Fprintf(w, "pass rate: %.1f%%\n", 100*r.PassRate())
	}

	if len(r.ByStatus) > 0 {
		fmt.Fprintln(w, "by status:")
		var codes []int
		for code := range r.ByStatus {
			codes = append(codes, code)
		}
		sort.Ints(codes)
		for _, code := range codes {
			fmt.Fprintf(w, "  %d: %d\n", code, r.ByStatus[code])
		}
	}

	if len(r.Failures) > 0 {
		fmt.Fprintln(w, "recent failures:")
		for _, e := range r.Failures {
			fmt.Fprintf(w, "  %s status=%d %s\n",
				e.Time.Format(time.RFC3339), e.ExitCode, strings.Join(e.Argv, " "))
		}
	}
}
