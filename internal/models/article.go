package models

import "time"

// ArticleStatus is the editorial state of an article. Only published
// articles are indexed for vector search and served by the widget API.
type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "draft"
	ArticleReview    ArticleStatus = "review"
	ArticlePublished ArticleStatus = "published"
)

// Visibility restricts who may read an article. It is stored with the
// article and enforced by the permission layer, not by the search engine.
type Visibility string

const (
	VisibilityAll     Visibility = "all"
	VisibilityEditors Visibility = "editors"
	VisibilityAdmins  Visibility = "admins"
)

// Article is a knowledge-base entry, authored directly or materialized
// from a completed document.
type Article struct {
	ArticleID        string        `json:"article_id" bson:"article_id"`
	Title            string        `json:"title" bson:"title"`
	Content          string        `json:"content" bson:"content"`
	Summary          string        `json:"summary,omitempty" bson:"summary,omitempty"`
	CategoryID       string        `json:"category_id,omitempty" bson:"category_id,omitempty"`
	Status           ArticleStatus `json:"status" bson:"status"`
	Visibility       Visibility    `json:"visibility" bson:"visibility"`
	Tags             []string      `json:"tags" bson:"tags"`
	SourceDocumentID string        `json:"source_document_id,omitempty" bson:"source_document_id,omitempty"`
	FavoritedBy      []string      `json:"favorited_by" bson:"favorited_by"`
	ViewCount        int64         `json:"view_count" bson:"view_count"`
	CreatedBy        string        `json:"created_by" bson:"created_by"`
	UpdatedBy        string        `json:"updated_by" bson:"updated_by"`
	CreatedAt        time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" bson:"updated_at"`
}

// ArticleUpdate carries the mutable fields of an article; nil pointers
// leave the stored value untouched.
type ArticleUpdate struct {
	Title      *string        `json:"title,omitempty"`
	Content    *string        `json:"content,omitempty"`
	Summary    *string        `json:"summary,omitempty"`
	CategoryID *string        `json:"category_id,omitempty"`
	Status     *ArticleStatus `json:"status,omitempty"`
	Visibility *Visibility    `json:"visibility,omitempty"`
	Tags       *[]string      `json:"tags,omitempty"`
}

// IsFavoritedBy reports whether the given user has favorited the article.
func (a *Article) IsFavoritedBy(userID string) bool {
	for _, id := range a.FavoritedBy {
		if id == userID {
			return true
		}
	}
	return false
}
