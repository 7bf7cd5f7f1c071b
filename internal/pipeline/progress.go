package pipeline

// Step names reported through ProgressCallback
const (
	StepExtractKeywords = "extract_keywords"
	StepOptimize        = "optimize"
	StepScore           = "score"
	StepCompare         = "compare"
	StepPersist         = "persist"
)

// ProgressEvent represents a progress update during an analysis
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when analysis progress occurs
type ProgressCallback func(event ProgressEvent)

// emitProgress calls the progress callback if configured
func (a *Analyzer) emitProgress(step, message string, content any) {
	if a.onProgress != nil {
		a.onProgress(ProgressEvent{
			Step:    step,
			Message: message,
			Content: content,
		})
	}
}
