// Package pdf extracts and chunks text from PDF documents for indexing.
package pdf

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Page holds the extracted text of one PDF page.
type Page struct {
	Number int // 1-based
	Text   string
}

// Extract reads the text content of every page in the PDF at path.
// Pages that fail to decode are skipped rather than failing the whole
// document; a PDF with no extractable text at all is an error.
func Extract(path string) ([]Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	var pages []Page
	total := r.NumPage()
	for num := 1; num <= total; num++ {
		p := r.Page(num)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = Normalize(text)
		if text == "" {
			continue
		}
		pages = append(pages, Page{Number: num, Text: text})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("no extractable text in %s", path)
	}
	return pages, nil
}
