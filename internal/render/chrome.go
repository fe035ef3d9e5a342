package render

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

//go:embed templates/letter.html
var letterHTML string

var letterTemplate = template.Must(template.New("letter").Parse(letterHTML))

// ChromeEngine prints an HTML rendition of the letter to PDF with headless Chrome.
type ChromeEngine struct {
	execPath string
	timeout  time.Duration
}

// NewChromeEngine uses CHROME_PATH when set, otherwise chromedp's browser lookup.
func NewChromeEngine() *ChromeEngine {
	return &ChromeEngine{execPath: os.Getenv("CHROME_PATH"), timeout: 60 * time.Second}
}

type htmlView struct {
	Letter
	Header     string
	Recipient  string
	Salutation string
	Closing    string
	Signature  []string
}

// HTML returns the letter as a standalone HTML document.
func (e *ChromeEngine) HTML(letter Letter) (string, error) {
	var buf bytes.Buffer
	err := letterTemplate.Execute(&buf, htmlView{
		Letter:     letter,
		Header:     Header,
		Recipient:  Recipient,
		Salutation: Salutation,
		Closing:    Closing,
		Signature:  SignatureLines,
	})
	if err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

func (e *ChromeEngine) Render(ctx context.Context, letter Letter, w io.Writer) error {
	html, err := e.HTML(letter)
	if err != nil {
		return err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.execPath != "" {
		opts = append(opts, chromedp.ExecPath(e.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	runCtx, cancelRun := context.WithTimeout(browserCtx, e.timeout)
	defer cancelRun()

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 in inches.
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("chromedp print: %w", err)
	}
	_, err = w.Write(pdfBuf)
	return err
}

var _ Engine = (*ChromeEngine)(nil)
