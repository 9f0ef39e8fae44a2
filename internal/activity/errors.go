package activity

import (
	"fmt"
	"strings"
)

// ConfigError reports missing credentials for a source. It is raised before
// any network or file I/O.
type ConfigError struct {
	Source  string
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: missing required configuration: %s", e.Source, strings.Join(e.Missing, ", "))
}

// FetchError wraps a network or payload failure. The pipeline treats it as
// "no records" and logs it.
type FetchError struct {
	Source string
	Mode   Mode
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: fetch %s stats: %v", e.Source, e.Mode, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// EmptyDataError means nothing was left to draw after fallback and selection.
type EmptyDataError struct {
	Source string
}

func (e *EmptyDataError) Error() string {
	return fmt.Sprintf("%s: no activity to display", e.Source)
}

// RenderError is returned when a chart cannot be produced or written.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("render chart: %v", e.Err)
	}
	return fmt.Sprintf("render chart %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
