package resumes

import "errors"

var (
	// ErrNotFound indicates no résumé matched the lookup.
	ErrNotFound = errors.New("resume not found")
	// ErrInvalidInput indicates a missing file or file name.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidFormat indicates the declared type is not PDF, DOC or DOCX.
	ErrInvalidFormat = errors.New("only PDF, DOC, and DOCX files are allowed")
	// ErrTooLarge indicates the upload exceeds MaxUploadBytes.
	ErrTooLarge = errors.New("file exceeds the 5MB limit")
	// ErrStore indicates the file or its record could not be persisted.
	ErrStore = errors.New("resume store failure")
)
