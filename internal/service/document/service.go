// Package document implements the PDF ingestion pipeline. Uploads land
// in blob storage with a pending record; the worker then runs the
// document through extraction, language detection, analysis and optional
// translation, and finally marks it completed or failed.
package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/canusa-hub/knowledge-nexus/internal/extractor"
	"github.com/canusa-hub/knowledge-nexus/internal/genai"
	"github.com/canusa-hub/knowledge-nexus/internal/language"
	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/service/article"
	"github.com/canusa-hub/knowledge-nexus/internal/store"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
	"github.com/canusa-hub/knowledge-nexus/pkg/queue"
	"github.com/canusa-hub/knowledge-nexus/pkg/storage"
)

// articleContentLimit caps the document text copied into a seeded article.
const articleContentLimit = 10000

// Extractor turns a PDF stream into text, HTML and tables.
type Extractor interface {
	Extract(ctx context.Context, r io.Reader) (*extractor.Result, error)
}

// Analyzer is the AI capability the pipeline uses. May be nil.
type Analyzer interface {
	genai.TextGenerator
	Analyze(ctx context.Context, text string) (*genai.Analysis, error)
}

// ArticleCreator seeds articles from completed documents.
type ArticleCreator interface {
	Create(ctx context.Context, input article.CreateInput, userID string) (*models.Article, error)
}

type Service struct {
	docs           store.DocumentStore
	blobs          storage.Storage
	queue          queue.Queue
	extractor      Extractor
	gen            Analyzer
	articles       ArticleCreator
	targetLanguage string
	log            logger.Logger
}

// NewService wires the pipeline. queue may be nil (worker side), gen may
// be nil (no AI), articles may be nil if article seeding is not needed.
func NewService(
	docs store.DocumentStore,
	blobs storage.Storage,
	q queue.Queue,
	ext Extractor,
	gen Analyzer,
	articles ArticleCreator,
	targetLanguage string,
	log logger.Logger,
) *Service {
	return &Service{
		docs:           docs,
		blobs:          blobs,
		queue:          q,
		extractor:      ext,
		gen:            gen,
		articles:       articles,
		targetLanguage: targetLanguage,
		log:            log.Named("document"),
	}
}

// Upload stores the PDF, creates a pending record and enqueues
// processing. A duplicate filename is rejected unless force is set,
// which removes the prior document and its stored file first.
func (s *Service) Upload(ctx context.Context, filename string, data io.Reader, targetLanguage, userID string, force bool) (*models.Document, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return nil, fmt.Errorf("%w: only PDF files are allowed", models.ErrInvalidInput)
	}
	if targetLanguage == "" {
		targetLanguage = s.targetLanguage
	}

	existing, err := s.docs.GetByFilename(ctx, filename)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for duplicates: %w", err)
	}
	if existing != nil {
		if !force {
			return nil, fmt.Errorf("%w: a document named %q already exists", models.ErrConflict, filename)
		}
		// Force replaces: the prior record and its stored file go first.
		if err := s.docs.Delete(ctx, existing.DocumentID); err != nil {
			return nil, fmt.Errorf("failed to replace existing document: %w", err)
		}
		if err := s.blobs.Delete(ctx, existing.StorageKey); err != nil {
			s.log.Warn("failed to delete replaced pdf",
				logger.String("document_id", existing.DocumentID),
				logger.Error(err))
		}
	}

	doc := &models.Document{
		DocumentID:     models.NewDocumentID(),
		Filename:       filename,
		TargetLanguage: targetLanguage,
		Status:         models.DocumentPending,
		UploadedBy:     userID,
		CreatedAt:      time.Now().UTC(),
	}
	doc.StorageKey = doc.DocumentID + ".pdf"

	if _, err := s.blobs.Store(ctx, data, doc.StorageKey); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if err := s.docs.Insert(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert document: %w", err)
	}

	if err := s.queue.EnqueueDocument(ctx, doc.DocumentID); err != nil {
		s.fail(ctx, doc, fmt.Errorf("failed to enqueue processing: %w", err))
		return nil, fmt.Errorf("failed to enqueue processing: %w", err)
	}

	s.log.Info("document uploaded",
		logger.String("document_id", doc.DocumentID),
		logger.String("filename", filename))
	return doc, nil
}

// Process runs the pipeline for one document. AI steps degrade to
// heuristics; extraction failures mark the document failed.
func (s *Service) Process(ctx context.Context, documentID string) error {
	doc, err := s.docs.Get(ctx, documentID)
	if err != nil {
		return err
	}
	// Terminal documents stay terminal; a redelivered task is a no-op.
	if doc.Status == models.DocumentCompleted || doc.Status == models.DocumentFailed {
		s.log.Warn("skipping document in terminal state",
			logger.String("document_id", documentID),
			logger.String("status", string(doc.Status)))
		return nil
	}

	doc.Status = models.DocumentProcessing
	doc.ErrorMessage = ""
	if err := s.docs.Update(ctx, doc); err != nil {
		return fmt.Errorf("failed to mark document processing: %w", err)
	}

	blob, err := s.blobs.Get(ctx, doc.StorageKey)
	if err != nil {
		return s.fail(ctx, doc, fmt.Errorf("failed to read upload: %w", err))
	}
	defer blob.Close()

	result, err := s.extractor.Extract(ctx, blob)
	if err != nil {
		return s.fail(ctx, doc, err)
	}

	doc.PageCount = result.PageCount
	doc.ExtractedText = result.PlainText
	doc.OriginalLanguage = language.Detect(result.PlainText)
	doc.Structured = &models.StructuredContent{
		Headlines:    []string{},
		Bulletpoints: []string{},
		Tables:       result.Tables,
		HTML:         result.HTML,
	}

	s.analyze(ctx, doc)
	if len(doc.Structured.Headlines) == 0 {
		doc.Structured.Headlines = extractHeadings(result.PlainText)
	}
	s.translate(ctx, doc)

	now := time.Now().UTC()
	doc.Status = models.DocumentCompleted
	doc.ProcessedAt = &now
	if err := s.docs.Update(ctx, doc); err != nil {
		return fmt.Errorf("failed to mark document completed: %w", err)
	}

	s.log.Info("document processed",
		logger.String("document_id", doc.DocumentID),
		logger.Int("pages", doc.PageCount),
		logger.String("language", doc.OriginalLanguage))
	return nil
}

func (s *Service) Get(ctx context.Context, documentID string) (*models.Document, error) {
	return s.docs.Get(ctx, documentID)
}

func (s *Service) List(ctx context.Context, limit int) ([]models.Document, error) {
	return s.docs.List(ctx, limit)
}

// Delete removes the record and, best effort, the stored PDF.
func (s *Service) Delete(ctx context.Context, documentID string) error {
	doc, err := s.docs.Get(ctx, documentID)
	if err != nil {
		return err
	}
	if err := s.docs.Delete(ctx, documentID); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, doc.StorageKey); err != nil {
		s.log.Warn("failed to delete stored pdf",
			logger.String("document_id", documentID),
			logger.Error(err))
	}
	return nil
}

// OpenPDF streams the stored original for inline embedding.
func (s *Service) OpenPDF(ctx context.Context, documentID string) (io.ReadCloser, *models.Document, error) {
	doc, err := s.docs.Get(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}
	blob, err := s.blobs.Get(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read stored pdf: %w", err)
	}
	return blob, doc, nil
}

// CreateArticle seeds a draft article from a completed document.
func (s *Service) CreateArticle(ctx context.Context, documentID, title, categoryID, userID string) (*models.Article, error) {
	doc, err := s.docs.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != models.DocumentCompleted {
		return nil, fmt.Errorf("%w: document %s has status %s", models.ErrNotProcessed, documentID, doc.Status)
	}

	if title == "" {
		title = strings.TrimSuffix(doc.Filename, ".pdf")
	}

	return s.articles.Create(ctx, article.CreateInput{
		Title:            title,
		Content:          buildArticleContent(doc),
		Summary:          doc.Summary,
		CategoryID:       categoryID,
		Status:           models.ArticleDraft,
		SourceDocumentID: doc.DocumentID,
	}, userID)
}

// analyze fills summary and structured content from the AI service.
// Failures leave the heuristic values in place.
func (s *Service) analyze(ctx context.Context, doc *models.Document) {
	if s.gen == nil || !s.gen.Available() {
		return
	}
	analysis, err := s.gen.Analyze(ctx, doc.ExtractedText)
	if err != nil {
		s.log.Warn("document analysis failed",
			logger.String("document_id", doc.DocumentID),
			logger.Error(err))
		return
	}
	doc.Summary = analysis.Summary
	if len(analysis.Headlines) > 0 {
		doc.Structured.Headlines = analysis.Headlines
	}
	if len(analysis.Bulletpoints) > 0 {
		doc.Structured.Bulletpoints = analysis.Bulletpoints
	}
}

// translate replaces the extracted text with a German translation when
// the document is in another language. Failures keep the original text.
func (s *Service) translate(ctx context.Context, doc *models.Document) {
	if doc.OriginalLanguage == doc.TargetLanguage {
		return
	}
	if s.gen == nil || !s.gen.Available() {
		return
	}
	translated, err := s.gen.Translate(ctx, doc.ExtractedText)
	if err != nil {
		s.log.Warn("translation failed",
			logger.String("document_id", doc.DocumentID),
			logger.Error(err))
		return
	}
	doc.ExtractedText = translated
}

// fail marks the document failed and returns the cause tagged as
// permanent so the worker does not retry it.
func (s *Service) fail(ctx context.Context, doc *models.Document, cause error) error {
	doc.Status = models.DocumentFailed
	doc.ErrorMessage = cause.Error()
	if err := s.docs.Update(ctx, doc); err != nil {
		s.log.Error("failed to mark document failed",
			logger.String("document_id", doc.DocumentID),
			logger.Error(err))
	}
	return fmt.Errorf("%w: %w", models.ErrPermanent, cause)
}

// extractHeadings derives headlines from the text layout when no AI
// analysis is available.
func extractHeadings(text string) []string {
	headings := []string{}
	for _, paragraph := range extractor.SplitParagraphs(text) {
		if extractor.IsHeading(paragraph) {
			headings = append(headings, paragraph)
		}
	}
	return headings
}

func buildArticleContent(doc *models.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Zusammenfassung\n\n%s\n\n## Hauptpunkte\n\n", doc.Summary)
	if doc.Structured != nil {
		for _, point := range doc.Structured.Bulletpoints {
			fmt.Fprintf(&b, "- %s\n", point)
		}
	}

	text := doc.ExtractedText
	runes := []rune(text)
	if len(runes) > articleContentLimit {
		text = string(runes[:articleContentLimit])
	}
	fmt.Fprintf(&b, "\n\n## Vollständiger Inhalt\n\n%s\n", text)
	return b.String()
}
