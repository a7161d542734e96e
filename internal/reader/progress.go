package reader

// ProgressReporter provides callbacks for reporting extraction
// progress. Implementations can display progress bars, log messages,
// or remain silent.
type ProgressReporter interface {
	// OnDiscoveryComplete is called after file discovery with the
	// number of analyzable files found.
	OnDiscoveryComplete(files int)

	// OnFileProcessingStart is called before per-file analysis begins.
	OnFileProcessingStart(totalFiles int)

	// OnFileProcessed is called after each file, whether it succeeded
	// or was routed to the exception handler.
	OnFileProcessed(file string)

	// OnComplete is called after the merge with the final namespace
	// count.
	OnComplete(namespaces int)
}

// NoOpProgressReporter is a progress reporter that does nothing.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnDiscoveryComplete(files int)        {}
func (NoOpProgressReporter) OnFileProcessingStart(totalFiles int) {}
func (NoOpProgressReporter) OnFileProcessed(file string)          {}
func (NoOpProgressReporter) OnComplete(namespaces int)            {}
