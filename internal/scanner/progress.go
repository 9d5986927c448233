package scanner

// ProgressReporter provides callbacks for reporting scan progress.
// Implementations can display progress bars, log messages, or remain silent.
// OnFileProcessed and OnFileSkipped are called from worker goroutines.
type ProgressReporter interface {
	// OnDiscoveryStart is called when file discovery begins.
	OnDiscoveryStart()

	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(files int)

	// OnFileProcessingStart is called before extraction begins.
	OnFileProcessingStart(totalFiles int)

	// OnFileProcessed is called after each file is extracted.
	OnFileProcessed(fileName string)

	// OnFileSkipped is called for each file that could not be read.
	OnFileSkipped(fileName string, err error)

	// OnComplete is called when a scan completes successfully.
	OnComplete(report *Report)
}

// NoOpProgressReporter is a progress reporter that does nothing.
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()                        {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(files int)            {}
func (n *NoOpProgressReporter) OnFileProcessingStart(totalFiles int)     {}
func (n *NoOpProgressReporter) OnFileProcessed(fileName string)          {}
func (n *NoOpProgressReporter) OnFileSkipped(fileName string, err error) {}
func (n *NoOpProgressReporter) OnComplete(report *Report)                {}
