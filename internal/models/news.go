package models

import (
	"time"

	"gorm.io/gorm"
)

// ArticleStatus is the publication state of a news article.
type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "draft"
	ArticlePublished ArticleStatus = "published"
	ArticleArchived  ArticleStatus = "archived"
)

// NewsArticle is a bilingual (English/Swahili) article managed by the
// communications office. Featured articles sort ahead of the rest; within
// each group SortOrder is the manual curation key.
type NewsArticle struct {
	gorm.Model

	TitleEn   string `gorm:"not null" json:"title_en"`
	TitleSw   string `json:"title_sw"`
	ExcerptEn string `gorm:"type:text" json:"excerpt_en"`
	ExcerptSw string `gorm:"type:text" json:"excerpt_sw"`
	ContentEn string `gorm:"type:text" json:"content_en"`
	ContentSw string `gorm:"type:text" json:"content_sw"`

	Status      ArticleStatus `gorm:"type:text;not null;index" json:"status"`
	Featured    bool          `gorm:"not null;default:false" json:"featured"`
	SortOrder   int           `gorm:"not null;default:0" json:"sort_order"`
	ImageURL    string        `json:"image_url,omitempty"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
}

// ValidArticleStatus reports whether s is a known publication state.
func ValidArticleStatus(s ArticleStatus) bool {
	switch s {
	case ArticleDraft, ArticlePublished, ArticleArchived:
		return true
	}
	return false
}
