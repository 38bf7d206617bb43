// Package errors holds the module's sentinel errors. Degenerate analysis
// input is not an error (the pipeline degrades to the general report);
// these cover the conditions that genuinely cannot proceed.
package errors

import "fmt"

var (
	ErrWorkerPanic    = fmt.Errorf("worker panic")
	ErrNilCatalog     = fmt.Errorf("pattern catalog is nil")
	ErrReportNotFound = fmt.Errorf("workflow report not found")
)
