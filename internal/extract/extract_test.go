package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Senior</w:t><w:tab/><w:t>Engineer</w:t></w:r></w:p>` +
	`</w:body></w:document>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

func buildDocx(t *testing.T, withRels bool) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/document.xml":   documentXML,
	}
	if withRels {
		files["word/_rels/document.xml.rels"] = documentRels
	}
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func buildPDF(t *testing.T, text string) []byte {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Cell(40, 10, text)
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	return buf.Bytes()
}

func TestParseFormat(t *testing.T) {
	docx := buildDocx(t, true)

	var plain bytes.Buffer
	zw := zip.NewWriter(&plain)
	if _, err := zw.Create("notes.txt"); err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	_ = zw.Close()

	tests := []struct {
		name string
		mime string
		data []byte
		want Format
	}{
		{name: "pdf", mime: "application/pdf", want: FormatPDF},
		{name: "pdf upper with params", mime: "Application/PDF; charset=binary", want: FormatPDF},
		{name: "doc", mime: "application/msword", want: FormatDOC},
		{name: "docx", mime: mimeDOCX, want: FormatDOCX},
		{name: "zip carrying word package", mime: "application/zip", data: docx, want: FormatDOCX},
		{name: "plain zip", mime: "application/zip", data: plain.Bytes(), want: FormatUnsupported},
		{name: "text", mime: "text/plain", want: FormatUnsupported},
		{name: "empty", mime: "", want: FormatUnsupported},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseFormat(tt.mime, tt.data); got != tt.want {
				t.Fatalf("ParseFormat(%q) = %s, want %s", tt.mime, got, tt.want)
			}
		})
	}
}

func TestFormatAccessors(t *testing.T) {
	if FormatDOCX.MimeType() != mimeDOCX || FormatDOCX.Extension() != ".docx" {
		t.Fatalf("unexpected docx accessors")
	}
	if FormatUnsupported.MimeType() != "" || FormatUnsupported.String() != "unsupported" {
		t.Fatalf("unexpected unsupported accessors")
	}
}

func TestExtractPDF(t *testing.T) {
	data := buildPDF(t, "ZEBRAQUARTZ")
	got := Extract(context.Background(), data, FormatPDF)
	if !strings.Contains(got, "ZEBRAQUARTZ") {
		t.Fatalf("expected marker in extracted text, got %q", got)
	}
}

func TestExtractDOCX(t *testing.T) {
	for _, withRels := range []bool{true, false} {
		got := Extract(context.Background(), buildDocx(t, withRels), FormatDOCX)
		if got != "Jane Doe\nSenior\tEngineer" {
			t.Fatalf("withRels=%v: unexpected text %q", withRels, got)
		}
	}
}

func TestExtractDOCRoutesOOXMLPayload(t *testing.T) {
	got := Extract(context.Background(), buildDocx(t, true), FormatDOC)
	if !strings.HasPrefix(got, "Jane Doe") {
		t.Fatalf("expected docx text from .doc payload, got %q", got)
	}
}

func TestExtractUnsupportedIsEmpty(t *testing.T) {
	text, err := Text(context.Background(), []byte("hello"), FormatUnsupported)
	if err != nil || text != "" {
		t.Fatalf("expected empty text without error, got %q, %v", text, err)
	}
}

func TestExtractCorruptFilesDegradeToEmpty(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		format Format
	}{
		{name: "pdf", data: []byte("%PDF-1.4 not really a pdf"), format: FormatPDF},
		{name: "docx", data: []byte("PK\x03\x04 truncated"), format: FormatDOCX},
		{name: "doc", data: []byte("definitely not ole2"), format: FormatDOC},
		{name: "empty pdf", data: nil, format: FormatPDF},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Text(context.Background(), tt.data, tt.format); err == nil {
				t.Fatalf("expected strict extraction error")
			}
			if got := Extract(context.Background(), tt.data, tt.format); got != "" {
				t.Fatalf("expected empty text, got %q", got)
			}
		})
	}
}

func TestTextHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Text(ctx, buildDocx(t, true), FormatDOCX); err == nil {
		t.Fatalf("expected context error")
	}
}
