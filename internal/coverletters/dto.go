package coverletters

import "time"

// Documents are served from the artifact download route.
const downloadPrefix = "/uploads/"

type generateRequest struct {
	JobTitle       string `json:"jobTitle"`
	Company        string `json:"company"`
	JobDescription string `json:"jobDescription"`
}

// GenerateResponse is returned after a letter is generated.
type GenerateResponse struct {
	ID          int64     `json:"id"`
	CoverLetter string    `json:"coverLetter"`
	PDFURL      string    `json:"pdfUrl"`
	JobTitle    string    `json:"jobTitle"`
	Company     string    `json:"company"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SummaryResponse is one history entry. It omits the letter text.
type SummaryResponse struct {
	ID        int64     `json:"id"`
	JobTitle  string    `json:"jobTitle"`
	Company   string    `json:"company"`
	PDFURL    string    `json:"pdfUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// DetailResponse is a full stored letter.
type DetailResponse struct {
	ID             int64     `json:"id"`
	JobTitle       string    `json:"jobTitle"`
	Company        string    `json:"company"`
	JobDescription string    `json:"jobDescription"`
	CoverLetter    string    `json:"coverLetter"`
	PDFURL         string    `json:"pdfUrl"`
	CreatedAt      time.Time `json:"createdAt"`
}

func pdfURL(fileName string) string {
	return downloadPrefix + fileName
}

func toGenerateResponse(cl CoverLetter) GenerateResponse {
	return GenerateResponse{
		ID:          cl.ID,
		CoverLetter: cl.Text,
		PDFURL:      pdfURL(cl.FileName),
		JobTitle:    cl.JobTitle,
		Company:     cl.Company,
		CreatedAt:   cl.CreatedAt,
	}
}

func toSummaryResponse(cl CoverLetter) SummaryResponse {
	return SummaryResponse{
		ID:        cl.ID,
		JobTitle:  cl.JobTitle,
		Company:   cl.Company,
		PDFURL:    pdfURL(cl.FileName),
		CreatedAt: cl.CreatedAt,
	}
}

func toDetailResponse(cl CoverLetter) DetailResponse {
	return DetailResponse{
		ID:             cl.ID,
		JobTitle:       cl.JobTitle,
		Company:        cl.Company,
		JobDescription: cl.JobDescription,
		CoverLetter:    cl.Text,
		PDFURL:         pdfURL(cl.FileName),
		CreatedAt:      cl.CreatedAt,
	}
}
