package cell

import "fmt"

// ReadOnlyCellError is returned when Set is called on a derived cell that was
// created without a write function.
type ReadOnlyCellError struct {
	Cell string
}

func (e *ReadOnlyCellError) Error() string {
	return fmt.Sprintf("cell %q is read-only", e.Cell)
}

// Hint returns a user-friendly suggestion for resolving this error.
func (e *ReadOnlyCellError) Hint() string {
	return "Create the cell with cell.Writable to accept writes, or set the cells it is derived from."
}

// CycleError is returned when a derived cell depends on itself.
type CycleError struct {
	Cell string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cell %q depends on itself", e.Cell)
}
