package exporter

// ProgressEvent is one step of a running export, for UI display.
type ProgressEvent struct {
	Percent int
	Stage   string
}

func reportProgress(progress func(ProgressEvent), percent int, stage string) {
	if progress == nil {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	progress(ProgressEvent{
		Percent: percent,
		Stage:   stage,
	})
}
