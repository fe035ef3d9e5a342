package resumes

import "time"

// Resume is the single stored résumé and its extracted text.
type Resume struct {
	ID           int64
	FileName     string
	OriginalName string
	FilePath     string
	FileSize     int64
	MimeType     string
	Content      string
	UploadedAt   time.Time
}
