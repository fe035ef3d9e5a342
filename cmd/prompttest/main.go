package main

// Try the cover letter prompt against a real provider:
//   go run ./cmd/prompttest -resume ./cv.pdf -job-title "Backend Engineer" -company Acme

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"coverletter-backend/internal/bootstrap"
	"coverletter-backend/internal/extract"
	"coverletter-backend/internal/llm"
	"coverletter-backend/internal/shared/config"
	"coverletter-backend/internal/shared/util"
)

func main() {
	cfg := config.Load()

	resumePath := flag.String("resume", "", "Path to resume file (pdf, doc or docx)")
	jobTitle := flag.String("job-title", "", "Job title")
	company := flag.String("company", "", "Company name")
	jdPath := flag.String("jd", "", "Path to job description file (optional)")
	outPath := flag.String("out", "", "Path to write the generated letter (optional)")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider: gemini, openai or ollama")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	showPrompt := flag.Bool("show-prompt", false, "Print the prompt before sending it")
	flag.Parse()

	if strings.TrimSpace(*resumePath) == "" || strings.TrimSpace(*jobTitle) == "" || strings.TrimSpace(*company) == "" {
		exitErr("resume, job-title and company are required")
	}

	format := formatFromExt(*resumePath)
	if format == extract.FormatUnsupported {
		exitErr("unsupported resume extension; use .pdf, .doc or .docx")
	}
	resumeBytes, err := os.ReadFile(*resumePath)
	if err != nil {
		exitErr(fmt.Sprintf("read resume: %v", err))
	}
	resumeText, err := extract.Text(context.Background(), resumeBytes, format)
	if err != nil {
		exitErr(fmt.Sprintf("extract resume text: %v", err))
	}
	color.Cyan("Extracted %d characters from %s", len(resumeText), *resumePath)

	jobDescription := ""
	if strings.TrimSpace(*jdPath) != "" {
		jdBytes, err := os.ReadFile(*jdPath)
		if err != nil {
			exitErr(fmt.Sprintf("read job description: %v", err))
		}
		jobDescription = string(jdBytes)
	}

	req := llm.Request{
		ResumeText:     resumeText,
		JobTitle:       *jobTitle,
		Company:        *company,
		JobDescription: jobDescription,
	}
	if *showPrompt {
		color.Blue("--- prompt %s ---", llm.PromptVersion)
		fmt.Println(llm.BuildPrompt(req))
	}

	cfg.LLMProvider = *provider
	cfg.LLMModel = *model
	cfg.Env = "production"
	gen, err := bootstrap.NewGenerator(cfg)
	if err != nil {
		exitErr(err.Error())
	}

	spinner := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString("generating with %s", *provider)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = spinner.Add(1)
			}
		}
	}()

	start := time.Now()
	text, err := gen.Generate(context.Background(), req)
	close(done)
	_ = spinner.Finish()
	fmt.Println()
	if err != nil {
		exitErr(fmt.Sprintf("generate: %v", err))
	}

	words := len(strings.Fields(text))
	fmt.Println(text)
	fmt.Println()
	report := color.GreenString
	if words < 300 || words > 400 {
		report = color.YellowString
	}
	fmt.Println(report("%d words in %s", words, time.Since(start).Round(time.Millisecond)))

	if strings.TrimSpace(*outPath) != "" {
		if err := os.WriteFile(*outPath, []byte(text), 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
		color.Green("OK: wrote %s", *outPath)
	}
}

func formatFromExt(path string) extract.Format {
	switch util.Ext(path) {
	case ".pdf":
		return extract.FormatPDF
	case ".doc":
		return extract.FormatDOC
	case ".docx":
		return extract.FormatDOCX
	default:
		return extract.FormatUnsupported
	}
}

func exitErr(msg string) {
	color.Red("error: %s", msg)
	os.Exit(1)
}
