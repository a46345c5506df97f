package domain

import "errors"

var (
	ErrAnalysisNotFound      = errors.New("analysis not found")
	ErrEmptyText             = errors.New("analysis text is empty")
	ErrMissingSecondText     = errors.New("comparison requires two document texts")
	ErrSummarizerUnavailable = errors.New("no summarizer provider is configured")
	ErrExportFailed          = errors.New("report export failed")
)
