package app

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/giantswarm/uitest/internal/orchestrator"
	"github.com/giantswarm/uitest/internal/report"
)

// progressObserver shows a spinner naming the running test and its phase.
// The spinner only animates on a terminal.
type progressObserver struct {
	orchestrator.NopObserver

	spinner *spinner.Spinner
	test    string
	done    int
	failed  int
}

func newProgressObserver(w io.Writer) *progressObserver {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " Discovering UI tests..."
	return &progressObserver{spinner: s}
}

func (p *progressObserver) RunStarted(int) {
	p.spinner.Start()
}

func (p *progressObserver) TestStarted(_, test string) {
	p.test = test
	p.setSuffix(orchestrator.PhaseSetup)
}

func (p *progressObserver) PhaseChanged(_ string, phase orchestrator.Phase) {
	p.setSuffix(phase)
}

func (p *progressObserver) TestFinished(r *report.TestReport) {
	p.done++
	if r.Failed() {
		p.failed++
	}
}

func (p *progressObserver) RunFinished(s report.Summary) {
	p.spinner.Lock()
	if s.Failed > 0 {
		p.spinner.FinalMSG = text.FgRed.Sprintf("✗ %d of %d UI tests failed\n", s.Failed, s.Total)
	} else {
		p.spinner.FinalMSG = text.FgGreen.Sprintf("✓ %d UI tests passed\n", s.Total)
	}
	p.spinner.Unlock()
	p.spinner.Stop()
}

// Suffix returns the text next to the spinner.
func (p *progressObserver) Suffix() string {
	p.spinner.Lock()
	defer p.spinner.Unlock()
	return p.spinner.Suffix
}

func (p *progressObserver) setSuffix(phase orchestrator.Phase) {
	suffix := fmt.Sprintf(" [%d done, %d failed] %s (%s)", p.done, p.failed, p.test, phase)
	p.spinner.Lock()
	p.spinner.Suffix = suffix
	p.spinner.Unlock()
}
