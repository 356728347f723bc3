package imgstore

import "errors"

// One sentinel per error kind. Operations fail with exactly one of these,
// usually wrapped with context; match with errors.Is.
var (
	ErrIO                 = errors.New("I/O Error")
	ErrOutOfMemory        = errors.New("out of memory")
	ErrNotEnoughArguments = errors.New("Not enough arguments")
	ErrInvalidFilename    = errors.New("Invalid filename")
	ErrInvalidCommand     = errors.New("Invalid command")
	ErrInvalidArgument    = errors.New("Invalid argument")
	ErrMaxFiles           = errors.New("Invalid max_files number")
	ErrResolutions        = errors.New("Invalid resolution(s)")
	ErrInvalidImgID       = errors.New("Invalid image ID")
	ErrFullImgStore       = errors.New("Full imgStore")
	ErrFileNotFound       = errors.New("File not found")
	ErrNotImplemented     = errors.New("Not implemented")
	ErrDuplicateID        = errors.New("Existing image ID")
	ErrImgLib             = errors.New("Image manipulation library error")
	ErrDebug              = errors.New("Debug")
)

// exitCodes maps each error kind to its process exit code, in taxonomy
// order. Exit code 0 is success.
var exitCodes = []struct {
	err  error
	code int
}{
	{ErrIO, 1},
	{ErrOutOfMemory, 2},
	{ErrNotEnoughArguments, 3},
	{ErrInvalidFilename, 4},
	{ErrInvalidCommand, 5},
	{ErrInvalidArgument, 6},
	{ErrMaxFiles, 7},
	{ErrResolutions, 8},
	{ErrInvalidImgID, 9},
	{ErrFullImgStore, 10},
	{ErrFileNotFound, 11},
	{ErrNotImplemented, 12},
	{ErrDuplicateID, 13},
	{ErrImgLib, 14},
	{ErrDebug, 15},
}

// ExitCode returns the process exit code for err: 0 for nil, the taxonomy
// code for a recognised kind, and the IO code for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	for _, m := range exitCodes {
		if errors.Is(err, m.err) {
			return m.code
		}
	}

	return 1
}

// Message returns the human message for err's kind, falling back to the
// error text for unrecognised errors.
func Message(err error) string {
	for _, m := range exitCodes {
		if errors.Is(err, m.err) {
			return m.err.Error()
		}
	}

	return err.Error()
}
