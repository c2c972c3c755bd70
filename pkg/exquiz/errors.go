package exquiz

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a readable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrUnknownLevel indicates no valid level could be derived from the file name.
var ErrUnknownLevel = errors.New("unknown level")

// ErrNoWorkbooks indicates a batch matched no files.
var ErrNoWorkbooks = errors.New("no workbooks matched")

// ErrNoQuestions indicates a batch produced zero questions across all files.
var ErrNoQuestions = errors.New("no questions parsed")

// WorkbookOpenError is returned when a whole workbook cannot be processed.
// It matches its Kind sentinel with errors.Is.
type WorkbookOpenError struct {
	Path string
	Kind error // ErrFileNotFound, ErrInvalidFormat or ErrUnknownLevel
	Err  error
}

func (e *WorkbookOpenError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("open workbook %q: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("open workbook %q: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *WorkbookOpenError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewWorkbookOpenError creates a new WorkbookOpenError.
func NewWorkbookOpenError(path string, kind, err error) *WorkbookOpenError {
	return &WorkbookOpenError{
		Path: path,
		Kind: kind,
		Err:  err,
	}
}
