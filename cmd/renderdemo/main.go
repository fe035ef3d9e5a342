package main

// Render a sample cover letter to disk and check it reads back:
//   go run ./cmd/renderdemo -engine pdf -out ./out

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"coverletter-backend/internal/extract"
	"coverletter-backend/internal/render"
	localstore "coverletter-backend/internal/shared/storage/object/local"
)

const sampleLetter = `I am writing to express my interest in the Backend Engineer position at Acme Corp. Over the past six years I have designed and operated services that handle millions of requests a day.

At my current role I led the migration of our document pipeline to Go, cutting processing time in half while keeping the system simple to operate.

I would welcome the chance to bring the same care to Acme's platform team. Thank you for your time and consideration.`

func main() {
	outDir := flag.String("out", "./out", "output directory")
	engineName := flag.String("engine", "pdf", "layout engine: pdf or chromedp")
	company := flag.String("company", "Acme Corp", "company name")
	jobTitle := flag.String("job-title", "Backend Engineer", "job title")
	flag.Parse()

	var engine render.Engine
	switch strings.ToLower(strings.TrimSpace(*engineName)) {
	case "pdf":
		engine = render.NewPDFEngine()
	case "chromedp", "chrome":
		engine = render.NewChromeEngine()
	default:
		exitErr(fmt.Sprintf("unknown engine %q", *engineName))
	}

	store := localstore.New(*outDir)
	ctx := context.Background()

	art, err := render.New(engine, store).Render(ctx, sampleLetter, *jobTitle, *company, time.Now())
	if err != nil {
		exitErr(fmt.Sprintf("render failed: %v", err))
	}

	if err := validate(ctx, store, art.Name); err != nil {
		exitErr(fmt.Sprintf("render validation failed: %v", err))
	}

	color.Green("OK: wrote %s (%d bytes)", art.Path, art.Size)
}

func validate(ctx context.Context, store *localstore.Store, name string) error {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return fmt.Errorf("%s is not a PDF", name)
	}
	text, err := extract.Text(ctx, data, extract.FormatPDF)
	if err != nil {
		return fmt.Errorf("read back: %w", err)
	}
	for _, want := range []string{render.Salutation, render.Closing} {
		if !strings.Contains(text, want) {
			return fmt.Errorf("missing %q in rendered text", want)
		}
	}
	return nil
}

func exitErr(msg string) {
	color.Red("error: %s", msg)
	os.Exit(1)
}
