package terminal

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// progress shows a spinner on a terminal and does nothing otherwise.
type progress struct {
	s *spinner.Spinner
}

func newProgress(w io.Writer) *progress {
	f, ok := w.(*os.File)
	if !ok {
		return &progress{}
	}
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond, spinner.WithWriterFile(f))
	return &progress{s: s}
}

func (p *progress) Start(format string, args ...any) {
	if p.s == nil {
		return
	}
	p.s.Suffix = " " + fmt.Sprintf(format, args...)
	p.s.Start()
}

func (p *progress) Update(format string, args ...any) {
	if p.s == nil {
		return
	}
	p.s.Lock()
	p.s.Suffix = " " + fmt.Sprintf(format, args...)
	p.s.Unlock()
}

func (p *progress) Stop(final string) {
	if p.s == nil {
		return
	}
	if final != "" {
		p.s.FinalMSG = final + "\n"
	}
	p.s.Stop()
}
