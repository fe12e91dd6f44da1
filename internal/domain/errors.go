package domain

import "fmt"

// InvalidAttributeError reports an out-of-domain attribute value. The UI
// only offers valid values, so seeing this means the UI and core disagree.
type InvalidAttributeError struct {
	Attribute Attribute
	Value     string
}

func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("invalid value %q for attribute %q", e.Value, e.Attribute)
}

// UnknownServiceError reports a service key missing from the catalog.
type UnknownServiceError struct {
	Key string
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("unknown service %q", e.Key)
}
