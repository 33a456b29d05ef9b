package parser

import "fmt"

// ErrCategoryNotFound indicates the page has no navigation body to read
// the category label from.
type ErrCategoryNotFound struct {
	Selector string
}

func (e ErrCategoryNotFound) Error() string {
	return fmt.Sprintf("category not found: no element matches %q", e.Selector)
}

// ErrLabelNotFound indicates a size element without a nested heading.
type ErrLabelNotFound struct {
	ID string
}

func (e ErrLabelNotFound) Error() string {
	return fmt.Sprintf("label not found: element %q has no %s heading", e.ID, labelSelector)
}
