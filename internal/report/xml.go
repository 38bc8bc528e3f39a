package report

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"
)

type xmlTestSuite struct {
	XMLName   xml.Name      `xml:"testsuite"`
	Name      string        `xml:"name,attr"`
	Tests     int           `xml:"tests,attr"`
	Skipped   int           `xml:"skipped,attr"`
	Failures  int           `xml:"failures,attr"`
	Errors    int           `xml:"errors,attr"`
	Timestamp string        `xml:"timestamp,attr"`
	Time      string        `xml:"time,attr"`
	TestCases []xmlTestCase `xml:"testcase"`
}

type xmlTestCase struct {
	Name      string      `xml:"name,attr"`
	Classname string      `xml:"classname,attr"`
	Time      string      `xml:"time,attr"`
	Failure   *xmlFailure `xml:"failure,omitempty"`
	SystemOut xmlCDATA    `xml:"system-out"`
}

type xmlFailure struct {
	Message string `xml:"message,attr"`
	Trace   string `xml:",cdata"`
}

type xmlCDATA struct {
	Text string `xml:",cdata"`
}

// RenderFixtureXML writes the JUnit-style document of one fixture.
func (a *Aggregator) RenderFixtureXML(w io.Writer, fixture string) error {
	a.mu.RLock()
	fr, ok := a.byName[fixture]
	if !ok {
		a.mu.RUnlock()
		return fmt.Errorf("no reports for fixture %s", fixture)
	}
	suite := xmlTestSuite{
		Name:      fr.Name,
		Tests:     len(fr.Tests),
		Failures:  fr.Failures(),
		Timestamp: fr.Started.Format("2006-01-02T15:04:05"),
		Time:      seconds(fr.Duration()),
	}
	for _, r := range fr.Tests {
		tc := xmlTestCase{
			Name:      r.ShortName(),
			Classname: fr.Name,
			Time:      seconds(r.Duration),
			SystemOut: xmlCDATA{Text: xmlSafe(r.Log.String())},
		}
		if r.Failure != nil {
			tc.Failure = &xmlFailure{
				Message: xmlSafe(FirstLine(r.Failure.Message)),
				Trace:   xmlSafe(r.Failure.StackTrace),
			}
		}
		suite.TestCases = append(suite.TestCases, tc)
	}
	a.mu.RUnlock()

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(suite); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// xmlSafe replaces characters XML 1.0 cannot carry, such as NUL or the
// escape of coloured terminal output, with U+FFFD.
func xmlSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r >= 0x20 && r <= 0xD7FF,
			r >= 0xE000 && r <= 0xFFFD,
			r >= 0x10000 && r <= 0x10FFFF:
			return r
		}
		return utf8.RuneError
	}, s)
}

// FirstLine returns s up to its first line break.
func FirstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r")
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
