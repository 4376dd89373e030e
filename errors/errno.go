// Portable error codes named after their POSIX errno counterparts. They are
// plain string constants, independent of the syscall package and of the
// platform.

package errors

import (
	"fmt"
)

type DiskoError string

const ErrDirectoryNotEmpty = DiskoError("Directory not empty")
const ErrExists = DiskoError("File exists")
const ErrFileTooLarge = DiskoError("File too large")
const ErrInvalidArgument = DiskoError("Invalid argument")
const ErrIOFailed = DiskoError("Input/output error")
const ErrNameTooLong = DiskoError("File name too long")
const ErrNoSpaceOnDevice = DiskoError("No space left on device")
const ErrNotFound = DiskoError("No such file or directory")

func (e DiskoError) Error() string {
	return string(e)
}

func (e DiskoError) WithMessage(message string) DriverError {
	return customDriverError{
		message:       message,
		originalError: e,
	}
}

func (e DiskoError) WrapError(err error) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s %s", e.Error(), err.Error()),
		originalError: err,
	}
}
