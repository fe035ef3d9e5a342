package extract

import (
	"context"
	"fmt"

	"coverletter-backend/internal/shared/metrics"
	"coverletter-backend/internal/shared/telemetry"
)

// Extract returns the plain text of data. Unsupported formats yield "". Extractor
// failures are logged as extract.degraded and also yield "", so an upload never fails
// because its text could not be read.
func Extract(ctx context.Context, data []byte, format Format) string {
	text, err := Text(ctx, data, format)
	if err != nil {
		metrics.IncExtractionDegraded()
		telemetry.Warn("extract.degraded", map[string]any{
			"format": format.String(),
			"bytes":  len(data),
			"error":  err,
		})
		return ""
	}
	return text
}

// Text is the strict form of Extract and reports extractor errors to the caller.
func Text(ctx context.Context, data []byte, format Format) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%s extractor panic: %v", format, r)
		}
	}()

	switch format {
	case FormatPDF:
		return extractPDF(data)
	case FormatDOCX:
		return extractDOCX(data)
	case FormatDOC:
		// Some tools save OOXML packages with a .doc name and type.
		if isZip(data) {
			return extractDOCX(data)
		}
		return extractDOC(data)
	default:
		return "", nil
	}
}
