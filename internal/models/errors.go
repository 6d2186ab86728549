package models

import "fmt"

// ValidationError reports malformed operation input. It is raised before
// the operation enters the ledger.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// DataSourceUnavailable reports a category fetch that exhausted its
// retries. It degrades to absent prices for that category and is never
// fatal to the application.
type DataSourceUnavailable struct {
	Category string
	Cause    error
}

func (e *DataSourceUnavailable) Error() string {
	return fmt.Sprintf("market data unavailable for category %s: %v", e.Category, e.Cause)
}

func (e *DataSourceUnavailable) Unwrap() error {
	return e.Cause
}
