package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
)

// progress drives one progress bar per stage.
type progress struct {
	bar *progressbar.ProgressBar
}

func (p *progress) start(total int, description string) {
	p.finish()
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
	)
}

func (p *progress) add() {
	if p.bar != nil {
		p.bar.Add(1)
	}
}

func (p *progress) finish() {
	if p.bar == nil {
		return
	}
	p.bar.Finish()
	fmt.Println()
	p.bar = nil
}
