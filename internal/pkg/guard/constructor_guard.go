// Package guard holds the constructor guard embedded by domain value objects
// and entities.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when no
// specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor. A zero value
// guard fails validation, so a struct literal such as quotation.Line{} is
// rejected before it reaches a repository.
//
//	type Line struct {
//	    quantity decimal.Decimal
//	    guard    guard.ConstructorGuard
//	}
//
//	func (l *Line) Validate() error {
//	    return l.guard.Validate(ErrLineNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard was not created by NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
