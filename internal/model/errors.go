package model

import (
	"fmt"

	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

// UnknownTypeError is returned by GetElementsOfType for names the type
// table does not map. It matches types.ErrUnknownType with errors.Is.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("%v: %q", types.ErrUnknownType, e.Name)
}

func (e *UnknownTypeError) Unwrap() error {
	return types.ErrUnknownType
}
