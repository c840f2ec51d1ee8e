// Package news manages the bilingual article catalogue owned by the
// communications office: drafting, publication, archival and the featured
// ordering used by the public site.
package news

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"citizendesk/backend/internal/auth"
	"citizendesk/backend/internal/models"
	"citizendesk/backend/internal/storage"
)

// ErrForbidden is returned when the actor's role may not manage news.
var ErrForbidden = errors.New("forbidden")

// ErrValidation covers missing or malformed article fields.
var ErrValidation = errors.New("validation failed")

// Service handles the business logic for news articles.
type Service struct {
	Storage storage.Storage
}

func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// ArticleInput carries the editable fields of an article.
type ArticleInput struct {
	TitleEn   string
	TitleSw   string
	ExcerptEn string
	ExcerptSw string
	ContentEn string
	ContentSw string
	ImageURL  string
	Featured  *bool
	SortOrder *int
}

// Create drafts a new article.
func (s *Service) Create(actor *auth.Actor, in ArticleInput) (*models.NewsArticle, error) {
	if !auth.Can(actor.Role, auth.ActionManageNews) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(in.TitleEn) == "" {
		return nil, fmt.Errorf("%w: title_en is required", ErrValidation)
	}

	article := &models.NewsArticle{
		TitleEn:   in.TitleEn,
		TitleSw:   in.TitleSw,
		ExcerptEn: in.ExcerptEn,
		ExcerptSw: in.ExcerptSw,
		ContentEn: in.ContentEn,
		ContentSw: in.ContentSw,
		ImageURL:  in.ImageURL,
		Status:    models.ArticleDraft,
	}
	if in.Featured != nil {
		article.Featured = *in.Featured
	}
	if in.SortOrder != nil {
		article.SortOrder = *in.SortOrder
	}

	if err := s.Storage.CreateArticle(article); err != nil {
		return nil, err
	}
	s.recordActivity(actor, "Article created", article.TitleEn)
	return article, nil
}

// Update edits an existing article's fields. Publication state is changed
// through SetStatus, not here.
func (s *Service) Update(actor *auth.Actor, id uint, in ArticleInput) (*models.NewsArticle, error) {
	if !auth.Can(actor.Role, auth.ActionManageNews) {
		return nil, ErrForbidden
	}

	article, err := s.Storage.GetArticleByID(id)
	if err != nil {
		return nil, err
	}

	if in.TitleEn != "" {
		article.TitleEn = in.TitleEn
	}
	if in.TitleSw != "" {
		article.TitleSw = in.TitleSw
	}
	if in.ExcerptEn != "" {
		article.ExcerptEn = in.ExcerptEn
	}
	if in.ExcerptSw != "" {
		article.ExcerptSw = in.ExcerptSw
	}
	if in.ContentEn != "" {
		article.ContentEn = in.ContentEn
	}
	if in.ContentSw != "" {
		article.ContentSw = in.ContentSw
	}
	if in.ImageURL != "" {
		article.ImageURL = in.ImageURL
	}
	if in.Featured != nil {
		article.Featured = *in.Featured
	}
	if in.SortOrder != nil {
		article.SortOrder = *in.SortOrder
	}

	if err := s.Storage.UpdateArticle(article); err != nil {
		return nil, err
	}
	s.recordActivity(actor, "Article updated", article.TitleEn)
	return article, nil
}

// SetStatus moves an article between draft, published and archived.
// Publishing stamps PublishedAt the first time.
func (s *Service) SetStatus(actor *auth.Actor, id uint, status models.ArticleStatus) (*models.NewsArticle, error) {
	if !auth.Can(actor.Role, auth.ActionManageNews) {
		return nil, ErrForbidden
	}
	if !models.ValidArticleStatus(status) {
		return nil, fmt.Errorf("%w: unknown article status %q", ErrValidation, status)
	}

	article, err := s.Storage.GetArticleByID(id)
	if err != nil {
		return nil, err
	}

	article.Status = status
	if status == models.ArticlePublished && article.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.Storage.UpdateArticle(article); err != nil {
		return nil, err
	}
	s.recordActivity(actor, fmt.Sprintf("Article %s", status), article.TitleEn)
	return article, nil
}

// Delete removes an article entirely.
func (s *Service) Delete(actor *auth.Actor, id uint) error {
	if !auth.Can(actor.Role, auth.ActionManageNews) {
		return ErrForbidden
	}

	article, err := s.Storage.GetArticleByID(id)
	if err != nil {
		return err
	}
	if err := s.Storage.DeleteArticle(id); err != nil {
		return err
	}
	s.recordActivity(actor, "Article deleted", article.TitleEn)
	return nil
}

// ListForAdmin returns articles for the admin portal.
func (s *Service) ListForAdmin(actor *auth.Actor, status models.ArticleStatus, page int) ([]models.NewsArticle, error) {
	if !auth.Can(actor.Role, auth.ActionViewNews) {
		return nil, ErrForbidden
	}
	return s.Storage.ListArticles(status, page)
}

// ListPublished returns the citizen-facing feed.
func (s *Service) ListPublished(page int) ([]models.NewsArticle, error) {
	return s.Storage.ListPublishedArticles(page)
}

// GetPublished returns one published article, or storage.ErrNotFound for
// drafts and archived articles so they stay invisible to the public.
func (s *Service) GetPublished(id uint) (*models.NewsArticle, error) {
	article, err := s.Storage.GetArticleByID(id)
	if err != nil {
		return nil, err
	}
	if article.Status != models.ArticlePublished {
		return nil, storage.ErrNotFound
	}
	return article, nil
}

func (s *Service) recordActivity(actor *auth.Actor, action, details string) {
	entry := &models.ActivityLog{
		ActorName:  actor.Name,
		ActorEmail: actor.Email,
		Action:     action,
		Details:    details,
		Type:       models.ActivityNews,
	}
	if err := s.Storage.SaveActivity(entry); err != nil {
		log.Printf("ERROR: Failed to record activity %q: %v", action, err)
	}
}
