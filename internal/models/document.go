package models

import (
	"time"
)

// DocumentStatus tracks a document through the ingestion pipeline.
type DocumentStatus string

const (
	DocumentPending    DocumentStatus = "pending"
	DocumentProcessing DocumentStatus = "processing"
	DocumentCompleted  DocumentStatus = "completed"
	DocumentFailed     DocumentStatus = "failed"
)

// Table is one extracted table rendered as an HTML fragment.
type Table struct {
	Page  int    `json:"page" bson:"page"`
	Index int    `json:"index" bson:"index"`
	HTML  string `json:"html" bson:"html"`
	Rows  int    `json:"rows" bson:"rows"`
	Cols  int    `json:"cols" bson:"cols"`
}

// StructuredContent is the structured view of an extracted document,
// populated only once the document reached the completed state.
type StructuredContent struct {
	Headlines    []string `json:"headlines" bson:"headlines"`
	Bulletpoints []string `json:"bulletpoints" bson:"bulletpoints"`
	Tables       []Table  `json:"tables" bson:"tables"`
	HTML         string   `json:"html" bson:"html"`
}

// Document is an uploaded PDF and the state of its processing pipeline.
//
// Invariants: status=completed implies ExtractedText is non-empty and
// Structured is set; status=failed implies ErrorMessage is set. Terminal
// documents are immutable except for deletion, which also removes the
// backing file from blob storage.
type Document struct {
	DocumentID       string             `json:"document_id" bson:"document_id"`
	Filename         string             `json:"filename" bson:"filename"`
	OriginalLanguage string             `json:"original_language,omitempty" bson:"original_language,omitempty"`
	TargetLanguage   string             `json:"target_language" bson:"target_language"`
	Status           DocumentStatus     `json:"status" bson:"status"`
	PageCount        int                `json:"page_count" bson:"page_count"`
	ExtractedText    string             `json:"extracted_text,omitempty" bson:"extracted_text,omitempty"`
	Summary          string             `json:"summary,omitempty" bson:"summary,omitempty"`
	Structured       *StructuredContent `json:"structured_content,omitempty" bson:"structured_content,omitempty"`
	ErrorMessage     string             `json:"error_message,omitempty" bson:"error_message,omitempty"`
	StorageKey       string             `json:"-" bson:"storage_key"`
	UploadedBy       string             `json:"uploaded_by" bson:"uploaded_by"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	ProcessedAt      *time.Time         `json:"processed_at,omitempty" bson:"processed_at,omitempty"`
}

// Terminal reports whether the document reached a final state.
func (d *Document) Terminal() bool {
	return d.Status == DocumentCompleted || d.Status == DocumentFailed
}
