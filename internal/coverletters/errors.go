package coverletters

import "errors"

var (
	// ErrNotFound indicates no cover letter matched the lookup.
	ErrNotFound = errors.New("cover letter not found")
	// ErrInvalidInput indicates missing job title or company.
	ErrInvalidInput = errors.New("job title and company are required")
	// ErrResumeNotFound indicates no résumé has been uploaded yet.
	ErrResumeNotFound = errors.New("no resume found, upload a resume first")
	// ErrStore indicates the record could not be read or written.
	ErrStore = errors.New("cover letter store failure")
)
