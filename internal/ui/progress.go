package ui

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// NewSpinner returns an indeterminate spinner for long operations such as
// a full index rebuild. Callers must Finish it.
func NewSpinner(w io.Writer, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
