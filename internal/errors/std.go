package errors

import stderrors "errors"

// As is errors.As from the standard library, re-exported so callers can
// import a single errors package.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Is is errors.Is from the standard library.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// Join is errors.Join from the standard library.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}
