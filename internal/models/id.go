package models

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// newID returns prefix + "_" + 12 hex chars, e.g. "art_3f9c01ab2de4".
func newID(prefix string) string {
	u := uuid.New()
	return prefix + "_" + hex.EncodeToString(u[:])[:12]
}

func NewDocumentID() string { return newID("doc") }
func NewArticleID() string  { return newID("art") }
func NewCategoryID() string { return newID("cat") }
func NewUserID() string     { return newID("user") }
