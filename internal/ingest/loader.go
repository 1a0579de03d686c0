// Package ingest loads raw documents from a directory for knowledge-base
// construction. Each file format has its own loader; an unsupported file
// fails on its own without aborting the batch.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dslipak/pdf"

	"wrench/internal/kb"
)

// ErrUnsupportedExtension is returned for file types no loader handles.
var ErrUnsupportedExtension = errors.New("unsupported extension")

// LoadDirectory walks dir and loads every regular file into a document.
// Files that fail to load produce one error each; the rest of the batch
// still loads. Hidden files and directories are skipped.
func LoadDirectory(dir string) ([]kb.Document, []error) {
	var docs []kb.Document
	var errs []error

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		doc, err := LoadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}

	return docs, errs
}

// LoadFile loads a single document. Supported extensions: .pdf, .txt, .md,
// .csv, .tsv.
func LoadFile(path string) (kb.Document, error) {
	var text string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = loadPDF(path)
	case ".txt", ".md":
		text, err = loadText(path)
	case ".csv":
		text, err = loadCSV(path, ',')
	case ".tsv":
		text, err = loadCSV(path, '\t')
	default:
		return kb.Document{}, ErrUnsupportedExtension
	}
	if err != nil {
		return kb.Document{}, err
	}
	if strings.TrimSpace(text) == "" {
		return kb.Document{}, fmt.Errorf("no text content")
	}

	return kb.Document{
		Text:     text,
		Metadata: map[string]string{"source": path},
	}, nil
}

func loadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

func loadPDF(path string) (string, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

// loadCSV flattens rows into lines so tabular maintenance data stays
// searchable as prose.
func loadCSV(path string, sep rune) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = sep
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}

	var b strings.Builder
	for _, rec := range records {
		b.WriteString(strings.Join(rec, ", "))
		b.WriteByte('\n')
	}
	return b.String(), nil
}
