package coverletters

import "time"

// CoverLetter is a generated letter and its rendered document.
type CoverLetter struct {
	ID             int64
	JobTitle       string
	Company        string
	JobDescription string
	Text           string
	FileName       string
	FilePath       string
	CreatedAt      time.Time
}

// HistoryLimit bounds the history listing.
const HistoryLimit = 10
