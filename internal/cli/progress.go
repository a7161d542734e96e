package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"

	"github.com/lread/cljdoc-analyzer/internal/reader"
)

// progressReporter implements reader.ProgressReporter with a progress
// bar over the per-file analysis pass.
type progressReporter struct {
	quiet   bool
	fileBar *progressbar.ProgressBar
}

func newProgressReporter(quiet bool) reader.ProgressReporter {
	if quiet {
		return reader.NoOpProgressReporter{}
	}
	return &progressReporter{}
}

func (p *progressReporter) OnDiscoveryComplete(files int) {
	log.Info("discovered source files", "count", files)
}

func (p *progressReporter) OnFileProcessingStart(totalFiles int) {
	p.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Analyzing files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (p *progressReporter) OnFileProcessed(file string) {
	if p.fileBar != nil {
		p.fileBar.Add(1)
	}
}

func (p *progressReporter) OnComplete(namespaces int) {
	log.Info("extraction complete", "namespaces", namespaces)
}
