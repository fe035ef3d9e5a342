package extract

import (
	"archive/zip"
	"bytes"
	"strings"
)

// Format is the closed set of résumé encodings the service accepts.
type Format int

const (
	FormatUnsupported Format = iota
	FormatPDF
	FormatDOC
	FormatDOCX
)

const (
	mimePDF  = "application/pdf"
	mimeDOC  = "application/msword"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeZIP  = "application/zip"
)

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatDOC:
		return "doc"
	case FormatDOCX:
		return "docx"
	default:
		return "unsupported"
	}
}

// MimeType returns the canonical media type, or "" for FormatUnsupported.
func (f Format) MimeType() string {
	switch f {
	case FormatPDF:
		return mimePDF
	case FormatDOC:
		return mimeDOC
	case FormatDOCX:
		return mimeDOCX
	default:
		return ""
	}
}

// Extension returns the file extension used when no original extension is available.
func (f Format) Extension() string {
	switch f {
	case FormatPDF:
		return ".pdf"
	case FormatDOC:
		return ".doc"
	case FormatDOCX:
		return ".docx"
	default:
		return ""
	}
}

// ParseFormat maps a declared media type to a Format. Parameters are stripped and case
// is folded. A generic zip upload is accepted as DOCX when it carries word/document.xml.
func ParseFormat(mimeType string, data []byte) Format {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case mimePDF:
		return FormatPDF
	case mimeDOC:
		return FormatDOC
	case mimeDOCX:
		return FormatDOCX
	case mimeZIP:
		if isWordPackage(data) {
			return FormatDOCX
		}
	}
	return FormatUnsupported
}

func isWordPackage(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return true
		}
	}
	return false
}

func isZip(data []byte) bool {
	return bytes.HasPrefix(data, []byte("PK\x03\x04"))
}
