package render

import (
	"strings"
	"time"
)

// Fixed wording around the generated body.
const (
	Header     = "COVER LETTER"
	Recipient  = "Hiring Manager"
	Salutation = "Dear Hiring Manager,"
	Closing    = "Sincerely,"
)

// SignatureLines are placeholders the candidate fills in after download.
var SignatureLines = []string{"[Your Name]", "[Your Email]", "[Your Phone]"}

// Letter is the laid-out content of one cover letter document.
type Letter struct {
	JobTitle   string
	Company    string
	Date       string
	Paragraphs []string
}

// SplitParagraphs splits text on blank-line boundaries ("\n\n"), trims each fragment
// and drops the empty ones.
func SplitParagraphs(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(normalized, "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// FormatDate renders t as a long US date, e.g. "January 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// Compose builds the Letter for text generated on date now.
func Compose(text, jobTitle, company string, now time.Time) Letter {
	return Letter{
		JobTitle:   jobTitle,
		Company:    company,
		Date:       FormatDate(now),
		Paragraphs: SplitParagraphs(text),
	}
}
