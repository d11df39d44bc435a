package data

import "fmt"

// ResourceError describes one resource map entry that could not be built.
type ResourceError struct {
	Class  string
	Name   string
	Reason string
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s resource %s: %s", e.Class, e.Name, e.Reason)
}
