package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Delimiter brackets the sections of the console output.
var Delimiter = strings.Repeat("-", 80)

// RenderRunSummary renders the console block printed when the run ends.
func (a *Aggregator) RenderRunSummary() string {
	s := a.Summary()

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Delimiter)
	fmt.Fprintf(&b, "TESTS DURATION: %s\n", FormatClock(s.Duration))
	fmt.Fprintf(&b, "TESTS DURATION TOTALSECONDS: %.3f\n", s.Duration.Seconds())
	fmt.Fprintf(&b, "%s\n", Delimiter)
	b.WriteString("ALL UI TESTS FINISHED\n")

	if s.Total == 0 {
		fmt.Fprintf(&b, "%s\nNO UI TESTS EXECUTED\n%s\n", Delimiter, Delimiter)
		return b.String()
	}

	if s.AllPassed() {
		fmt.Fprintf(&b, "%s\nALL UI TESTS PASSED\n", Delimiter)
	}
	results := fmt.Sprintf("TEST RESULTS: %.3f%% = %d/%d", s.PassRate, s.Passed, s.Total)
	fmt.Fprintf(&b, "%s\n%s\n", Delimiter, results)

	a.mu.RLock()
	for _, fr := range a.fixtures {
		fmt.Fprintf(&b, "\tTest Fixture : %s\n", fr.Name)
		for _, r := range fr.Tests {
			fmt.Fprintf(&b, "\t\t%s : %s (%s)\n", a.status(r), r.Name, seconds(r.Duration)+"s")
		}
	}
	a.mu.RUnlock()

	fmt.Fprintf(&b, "%s\n%s\n", Delimiter, results)
	return b.String()
}

func (a *Aggregator) status(r *TestReport) string {
	if r.Failed() {
		if a.opts.Color {
			return text.Colors{text.FgRed, text.Bold}.Sprint("FAILED")
		}
		return "FAILED"
	}
	if a.opts.Color {
		return text.FgGreen.Sprint("OK") + "    "
	}
	return "OK    "
}

// FormatClock renders d as HH:MM:SS.
func FormatClock(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	sec := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}
