// Package document builds and reads the DOCX output: one paragraph per text
// span, each holding a single run with an optional highlight.
package document

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/Yara1604/InnovNation-Hackathon/internal/highlight"
)

// Paragraph is the inspectable content of one output paragraph.
type Paragraph struct {
	Text  string          `json:"text"`
	Color highlight.Color `json:"color"`
}

// Document is an ordered list of single-run paragraphs.
type Document struct {
	doc        *docx.Docx
	paragraphs []Paragraph
}

// New returns an empty document.
func New() *Document {
	return &Document{doc: docx.New().WithDefaultTheme()}
}

// AddRun appends a paragraph holding text followed by one space, highlighted
// with c. The colour is validated before anything is appended.
func (d *Document) AddRun(text string, c highlight.Color) error {
	val, err := HighlightValue(c)
	if err != nil {
		return err
	}

	run := d.doc.AddParagraph().AddText(text + " ")
	preserveSpace(run)
	if val != "" {
		run.Highlight(val)
	}
	d.paragraphs = append(d.paragraphs, Paragraph{Text: text + " ", Color: c})
	return nil
}

// preserveSpace keeps leading and trailing blanks of every text node.
func preserveSpace(run *docx.Run) {
	for _, child := range run.Children {
		if t, ok := child.(*docx.Text); ok {
			t.XMLSpace = "preserve"
		}
	}
}

// Len returns the number of paragraphs.
func (d *Document) Len() int { return len(d.paragraphs) }

// Paragraphs returns a copy of the paragraphs in insertion order.
func (d *Document) Paragraphs() []Paragraph {
	out := make([]Paragraph, len(d.paragraphs))
	copy(out, d.paragraphs)
	return out
}

// Bytes serialises the document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialise document: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the document to path, replacing any existing file. The data goes
// to a temporary file in the same directory that is renamed into place, so a
// failed save never leaves a partial document at path.
func (d *Document) Save(path string) (err error) {
	if path == "" {
		return errors.New("output path is empty")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	if _, err = d.doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync document: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close document: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set document permissions: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move document into place: %w", err)
	}

	slog.Debug("Document saved", "path", path, "paragraphs", len(d.paragraphs))
	return nil
}

// Read parses a DOCX file and returns its paragraphs. Runs within a paragraph
// are concatenated; the paragraph takes the highlight of its first
// highlighted run.
func Read(path string) ([]Paragraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}
	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
	}
	return paragraphsOf(doc)
}

func paragraphsOf(doc *docx.Docx) ([]Paragraph, error) {
	var out []Paragraph
	for _, item := range doc.Document.Body.Items {
		p, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		var (
			sb    strings.Builder
			color = highlight.None
		)
		for _, child := range p.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			if color == highlight.None && run.RunProperties != nil && run.RunProperties.Highlight != nil {
				c, err := colorFromValue(run.RunProperties.Highlight.Val)
				if err != nil {
					return nil, err
				}
				color = c
			}
			for _, rc := range run.Children {
				if t, ok := rc.(*docx.Text); ok {
					sb.WriteString(t.Text)
				}
			}
		}
		out = append(out, Paragraph{Text: sb.String(), Color: color})
	}
	return out, nil
}
