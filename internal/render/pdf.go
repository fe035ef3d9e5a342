package render

import (
	"context"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin   = 50.0
	bodyFontSize = 12.0
	lineHeight   = 16.0
)

// PDFEngine draws letters directly with fpdf on A4 pages measured in points.
type PDFEngine struct{}

// NewPDFEngine returns the default engine.
func NewPDFEngine() *PDFEngine {
	return &PDFEngine{}
}

func (PDFEngine) Render(ctx context.Context, letter Letter, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.SetTitle("Cover Letter - "+letter.JobTitle+" at "+letter.Company, true)
	doc.SetCreator("coverletter-backend", true)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 24, Header, "", 1, "C", false, 0, "")
	doc.Ln(lineHeight * 1.5)

	doc.SetFont("Helvetica", "", bodyFontSize)
	line := func(s string) {
		doc.CellFormat(0, lineHeight, tr(s), "", 1, "L", false, 0, "")
	}

	line(letter.Date)
	doc.Ln(lineHeight)
	line(Recipient)
	line(letter.Company)
	doc.Ln(lineHeight)
	line(Salutation)
	doc.Ln(lineHeight / 2)

	for _, p := range letter.Paragraphs {
		doc.MultiCell(0, lineHeight, tr(p), "", "J", false)
		doc.Ln(lineHeight / 2)
	}

	doc.Ln(lineHeight / 2)
	line(Closing)
	doc.Ln(lineHeight)
	for _, s := range SignatureLines {
		line(s)
	}

	if doc.Err() {
		return doc.Error()
	}
	return doc.Output(w)
}

var _ Engine = PDFEngine{}
