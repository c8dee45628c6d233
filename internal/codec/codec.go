// Package codec reads and writes thread export files.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bryan-buckman/redditviewer/internal/apperr"
	"github.com/bryan-buckman/redditviewer/internal/model"
)

// Version is written into every export.
const Version = "1.0"

// maxImportBytes caps the size of an import file.
const maxImportBytes = 64 << 20

const (
	msgInvalidJSON   = "Invalid JSON file. Please select a valid Reddit export file."
	msgInvalidFormat = "Invalid file format. Please select a valid Reddit export file."
	msgReadFailed    = "Failed to read file. Please try again."
)

// Export is the self-describing export envelope.
type Export struct {
	Version     string          `json:"version"`
	ExportedAt  string          `json:"exportedAt"`
	OriginalURL string          `json:"originalUrl"`
	Post        model.Post      `json:"post"`
	Comments    []model.Comment `json:"comments"`
	Metadata    Metadata        `json:"metadata"`
}

// Metadata describes an export.
type Metadata struct {
	TotalComments   int   `json:"totalComments"`
	ExportTimestamp int64 `json:"exportTimestamp"`
}

// Thread returns the thread carried by the export.
func (e *Export) Thread() model.Thread {
	comments := e.Comments
	if comments == nil {
		comments = []model.Comment{}
	}
	return model.Thread{Post: e.Post, Comments: comments}
}

// Encode renders t as an indented export document.
func Encode(t model.Thread, sourceURL string, now time.Time) ([]byte, error) {
	comments := t.Comments
	if comments == nil {
		comments = []model.Comment{}
	}
	doc := Export{
		Version:     Version,
		ExportedAt:  now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		OriginalURL: sourceURL,
		Post:        t.Post,
		Comments:    comments,
		Metadata: Metadata{
			TotalComments:   len(comments),
			ExportTimestamp: now.UnixMilli(),
		},
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Decode validates raw and decodes it. Failures are InvalidImportFormat
// errors.
func Decode(raw []byte) (*Export, error) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, apperr.InvalidImportFormat(msgInvalidJSON, err)
	}
	if !validate(generic) {
		return nil, apperr.InvalidImportFormat(msgInvalidFormat, errors.New("export shape check failed"))
	}
	var doc Export
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperr.InvalidImportFormat(msgInvalidFormat, fmt.Errorf("decode export: %w", err))
	}
	return &doc, nil
}

// Parse reads an export file from r and decodes it.
func Parse(r io.Reader) (*Export, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxImportBytes))
	if err != nil {
		return nil, apperr.InvalidImportFormat(msgReadFailed, err)
	}
	return Decode(raw)
}
