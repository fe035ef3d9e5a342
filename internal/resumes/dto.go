package resumes

import "time"

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	ID           int64     `json:"id"`
	FileName     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	FileSize     int64     `json:"fileSize"`
	MimeType     string    `json:"mimeType"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// ResumeResponse includes the extracted text.
type ResumeResponse struct {
	UploadResponse
	Content string `json:"content"`
}

func toUploadResponse(r Resume) UploadResponse {
	return UploadResponse{
		ID:           r.ID,
		FileName:     r.FileName,
		OriginalName: r.OriginalName,
		FileSize:     r.FileSize,
		MimeType:     r.MimeType,
		UploadedAt:   r.UploadedAt,
	}
}

func toResumeResponse(r Resume) ResumeResponse {
	return ResumeResponse{UploadResponse: toUploadResponse(r), Content: r.Content}
}
