package llm

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"strings"
)

// PromptVersion identifies the embedded template in logs.
const PromptVersion = "cover_letter_v1"

//go:embed prompts/cover_letter_v1.txt
var coverLetterPrompt string

// BuildPrompt fills the template with the request fields. Fields are inserted verbatim
// in a single pass, so placeholder text inside a field is never expanded.
func BuildPrompt(req Request) string {
	replacer := strings.NewReplacer(
		"{{RESUME_TEXT}}", req.ResumeText,
		"{{JOB_TITLE}}", req.JobTitle,
		"{{COMPANY}}", req.Company,
		"{{JOB_DESCRIPTION}}", req.JobDescription,
	)
	return replacer.Replace(coverLetterPrompt)
}

func hashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
