package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"citizendesk/backend/internal/complaint"
	"citizendesk/backend/internal/models"
)

type intakeRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	County        string   `json:"county" binding:"required"`
	Subject       string   `json:"subject" binding:"required"`
	Body          string   `json:"body" binding:"required"`
	AttachmentURL string   `json:"attachment_url"`
	Tags          []string `json:"tags"`
}

// SubmitComplaint is the citizen intake endpoint. The response carries the
// ticket ID and the access password, the only time the password is shown.
func (h *Handler) SubmitComplaint(c *gin.Context) {
	lang := h.lang(c)

	var req intakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.Localizer.Get(lang, "complaint.missing_fields")})
		return
	}

	created, password, err := h.Complaints.Submit(complaint.IntakeInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		County:        req.County,
		Subject:       req.Subject,
		Body:          req.Body,
		AttachmentURL: req.AttachmentURL,
		Tags:          req.Tags,
	})
	if err != nil {
		if errors.Is(err, complaint.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": h.Localizer.Get(lang, "complaint.missing_fields")})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.Localizer.Get(lang, "complaint.submit_failed")})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ticket_id":       created.TicketID,
		"access_password": password,
		"message":         h.Localizer.Get(lang, "complaint.received"),
	})
}

type statusLookupRequest struct {
	TicketID       string `json:"ticket_id" binding:"required"`
	AccessPassword string `json:"access_password" binding:"required"`
}

// LookupStatus is the anonymous status-check endpoint. Wrong ticket and
// wrong password are deliberately indistinguishable in the response.
func (h *Handler) LookupStatus(c *gin.Context) {
	lang := h.lang(c)

	var req statusLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.Localizer.Get(lang, "complaint.invalid_lookup")})
		return
	}

	found, updates, err := h.Complaints.Lookup(req.TicketID, req.AccessPassword)
	if err != nil {
		if errors.Is(err, complaint.ErrInvalidLookup) {
			c.JSON(http.StatusNotFound, gin.H{"error": h.Localizer.Get(lang, "complaint.invalid_lookup")})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"complaint": gin.H{
			"ticket_id":  found.TicketID,
			"county":     found.County,
			"subject":    found.Subject,
			"status":     found.Status,
			"created_at": found.CreatedAt,
			"replies":    found.Replies,
		},
		"status_updates": updates,
	})
}

// publicArticle is the single-language view of an article served to the
// public site. The lang parameter picks the column pair; Swahili falls
// back to English field by field when a translation is missing.
type publicArticle struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content,omitempty"`
	Featured    bool       `json:"featured"`
	ImageURL    string     `json:"image_url,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

func localizeArticle(a *models.NewsArticle, lang string) publicArticle {
	out := publicArticle{
		ID:          a.ID,
		Title:       a.TitleEn,
		Excerpt:     a.ExcerptEn,
		Content:     a.ContentEn,
		Featured:    a.Featured,
		ImageURL:    a.ImageURL,
		PublishedAt: a.PublishedAt,
	}
	if lang == "sw" {
		if a.TitleSw != "" {
			out.Title = a.TitleSw
		}
		if a.ExcerptSw != "" {
			out.Excerpt = a.ExcerptSw
		}
		if a.ContentSw != "" {
			out.Content = a.ContentSw
		}
	}
	return out
}

// PublicNews lists published articles for the public site in the
// requested language.
func (h *Handler) PublicNews(c *gin.Context) {
	lang := h.lang(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	articles, err := h.News.ListPublished(page)
	if err != nil {
		respondError(c, err)
		return
	}

	localized := make([]publicArticle, 0, len(articles))
	for i := range articles {
		localized = append(localized, localizeArticle(&articles[i], lang))
	}
	c.JSON(http.StatusOK, gin.H{"articles": localized, "page": page})
}

// PublicArticle returns one published article in the requested language.
func (h *Handler) PublicArticle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}
	article, err := h.News.GetPublished(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, localizeArticle(article, h.lang(c)))
}
