package boards

import (
	"errors"
	"fmt"
)

// InvalidFragmentNameError reports a fragment file whose name does not end in
// the required suffix. This is a structural error: the scan that hit it is
// aborted rather than downgraded to a warning.
type InvalidFragmentNameError struct {
	Name string
}

// Error implements the error interface.
func (e *InvalidFragmentNameError) Error() string {
	return fmt.Sprintf("%s: invalid fragment name (missing %q suffix)", e.Name, ConfigSuffix)
}

// IsInvalidFragmentName returns true if the error is an invalid fragment name
// error. Uses errors.As to handle wrapped errors.
func IsInvalidFragmentName(err error) bool {
	var fe *InvalidFragmentNameError
	return errors.As(err, &fe)
}
