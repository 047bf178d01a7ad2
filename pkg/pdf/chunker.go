package pdf

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/nikhilkoche/Home-Assignment/pkg/vectordb"
)

const (
	// minChunkLen drops fragments too short to be a useful passage.
	minChunkLen = 100
	// maxChunkLen bounds how much text goes into one embedding.
	maxChunkLen = 1200
)

// Normalize canonicalizes extracted PDF text: NFC normalization, control
// characters dropped, runs of spaces collapsed. Newlines survive so the
// chunker can still see paragraph boundaries.
func Normalize(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		switch {
		case r == '\n':
			pendingSpace = false
			b.WriteRune('\n')
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsControl(r):
			// skip
		default:
			if pendingSpace && b.Len() > 0 {
				b.WriteRune(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// SplitText breaks text into passage-sized chunks. Paragraph boundaries
// are respected; paragraphs are merged until a chunk reaches maxLen.
// Chunks shorter than minChunkLen are discarded, matching the indexing
// behavior for stray headers and page numbers.
func SplitText(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = maxChunkLen
	}

	var chunks []string
	var current strings.Builder
	flush := func() {
		chunk := strings.TrimSpace(current.String())
		current.Reset()
		if len(chunk) > minChunkLen {
			chunks = append(chunks, chunk)
		}
	}

	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(para) > maxLen {
			flush()
		}
		if current.Len() > 0 {
			current.WriteRune(' ')
		}
		current.WriteString(para)
	}
	flush()
	return chunks
}

// ChunkPages converts extracted pages into store-ready chunks carrying
// page metadata and fresh chunk ids.
func ChunkPages(pages []Page, documentID, source string) []vectordb.Chunk {
	var out []vectordb.Chunk
	for _, page := range pages {
		for _, text := range SplitText(page.Text, maxChunkLen) {
			out = append(out, vectordb.Chunk{
				ID:         uuid.NewString(),
				DocumentID: documentID,
				Source:     source,
				Page:       page.Number,
				Index:      len(out),
				Content:    text,
			})
		}
	}
	return out
}
