package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"citizendesk/backend/internal/models"
	"citizendesk/backend/internal/news"
)

type articleRequest struct {
	TitleEn   string `json:"title_en"`
	TitleSw   string `json:"title_sw"`
	ExcerptEn string `json:"excerpt_en"`
	ExcerptSw string `json:"excerpt_sw"`
	ContentEn string `json:"content_en"`
	ContentSw string `json:"content_sw"`
	ImageURL  string `json:"image_url"`
	Featured  *bool  `json:"featured"`
	SortOrder *int   `json:"sort_order"`
}

func (r *articleRequest) input() news.ArticleInput {
	return news.ArticleInput{
		TitleEn:   r.TitleEn,
		TitleSw:   r.TitleSw,
		ExcerptEn: r.ExcerptEn,
		ExcerptSw: r.ExcerptSw,
		ContentEn: r.ContentEn,
		ContentSw: r.ContentSw,
		ImageURL:  r.ImageURL,
		Featured:  r.Featured,
		SortOrder: r.SortOrder,
	}
}

func (h *Handler) ListArticles(c *gin.Context) {
	actor := MustActor(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	status := models.ArticleStatus(c.Query("status"))

	articles, err := h.News.ListForAdmin(actor, status, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles, "page": page})
}

func (h *Handler) CreateArticle(c *gin.Context) {
	actor := MustActor(c)

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article payload"})
		return
	}

	article, err := h.News.Create(actor, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

func (h *Handler) UpdateArticle(c *gin.Context) {
	actor := MustActor(c)
	id, ok := articleID(c)
	if !ok {
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article payload"})
		return
	}

	article, err := h.News.Update(actor, id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

type articleStatusRequest struct {
	Status models.ArticleStatus `json:"status" binding:"required"`
}

func (h *Handler) SetArticleStatus(c *gin.Context) {
	actor := MustActor(c)
	id, ok := articleID(c)
	if !ok {
		return
	}

	var req articleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	article, err := h.News.SetStatus(actor, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *Handler) DeleteArticle(c *gin.Context) {
	actor := MustActor(c)
	id, ok := articleID(c)
	if !ok {
		return
	}

	if err := h.News.Delete(actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func articleID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return 0, false
	}
	return uint(id), true
}
