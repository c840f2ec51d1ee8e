package storage

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"citizendesk/backend/internal/config"
	"citizendesk/backend/internal/models"
)

func (s *Service) CreateArticle(article *models.NewsArticle) error {
	if article.Status == "" {
		article.Status = models.ArticleDraft
	}
	if err := s.DB.Create(article).Error; err != nil {
		log.Printf("ERROR: Failed to create article %q: %v", article.TitleEn, err)
		return err
	}
	return nil
}

func (s *Service) GetArticleByID(id uint) (*models.NewsArticle, error) {
	var article models.NewsArticle
	err := s.DB.First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *Service) UpdateArticle(article *models.NewsArticle) error {
	return s.DB.Save(article).Error
}

func (s *Service) DeleteArticle(id uint) error {
	result := s.DB.Delete(&models.NewsArticle{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListArticles returns articles for the admin portal, optionally filtered
// by publication status.
func (s *Service) ListArticles(status models.ArticleStatus, page int) ([]models.NewsArticle, error) {
	var articles []models.NewsArticle
	q := s.DB.Model(&models.NewsArticle{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if page < 1 {
		page = 1
	}
	err := q.Order("created_at desc").
		Offset((page - 1) * config.NewsPageSize).
		Limit(config.NewsPageSize).
		Find(&articles).Error
	if err != nil {
		log.Printf("ERROR: Failed to list articles: %v", err)
		return nil, err
	}
	return articles, nil
}

// ListPublishedArticles returns the citizen-facing feed: featured articles
// first, then by manual sort order, then newest publication date.
func (s *Service) ListPublishedArticles(page int) ([]models.NewsArticle, error) {
	var articles []models.NewsArticle
	if page < 1 {
		page = 1
	}
	err := s.DB.Where("status = ?", models.ArticlePublished).
		Order("featured desc").
		Order("sort_order asc").
		Order("published_at desc").
		Offset((page - 1) * config.NewsPageSize).
		Limit(config.NewsPageSize).
		Find(&articles).Error
	if err != nil {
		log.Printf("ERROR: Failed to list published articles: %v", err)
		return nil, err
	}
	return articles, nil
}

// SearchArticles matches the query against both language titles.
func (s *Service) SearchArticles(query string) ([]models.NewsArticle, error) {
	var articles []models.NewsArticle
	pattern := "%" + query + "%"
	err := s.DB.Where("title_en ILIKE ? OR title_sw ILIKE ?", pattern, pattern).
		Order("created_at desc").
		Limit(config.NewsPageSize).
		Find(&articles).Error
	if err != nil {
		log.Printf("ERROR: Article search failed: %v", err)
		return nil, err
	}
	return articles, nil
}

func (s *Service) CountPublishedArticles() (int64, error) {
	var count int64
	err := s.DB.Model(&models.NewsArticle{}).
		Where("status = ?", models.ArticlePublished).
		Count(&count).Error
	return count, err
}
