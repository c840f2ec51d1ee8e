package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"citizendesk/backend/internal/models"
)

// ListActivity returns the audit trail newest-first, 20 per page.
func (h *Handler) ListActivity(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	activityType := models.ActivityType(c.Query("type"))

	entries, err := h.Store.ListActivity(page, activityType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": entries, "page": page})
}

type dashboardStats struct {
	ComplaintsByStatus   map[models.ComplaintStatus]int64   `json:"complaints_by_status"`
	ComplaintsByPriority map[models.ComplaintPriority]int64 `json:"complaints_by_priority"`
	PublishedArticles    int64                              `json:"published_articles"`
	RecentActivity       []models.ActivityEntry             `json:"recent_activity"`
}

// Dashboard returns aggregate stats plus the latest activity page, served
// from the Redis cache when fresh.
func (h *Handler) Dashboard(c *gin.Context) {
	if payload, err := h.Store.GetCachedDashboard(); err == nil {
		c.Data(http.StatusOK, "application/json", payload)
		return
	}

	byStatus, err := h.Store.CountComplaintsByStatus()
	if err != nil {
		respondError(c, err)
		return
	}
	byPriority, err := h.Store.CountComplaintsByPriority()
	if err != nil {
		respondError(c, err)
		return
	}
	published, err := h.Store.CountPublishedArticles()
	if err != nil {
		respondError(c, err)
		return
	}
	recent, err := h.Store.ListActivity(1, "")
	if err != nil {
		respondError(c, err)
		return
	}

	entries := make([]models.ActivityEntry, 0, len(recent))
	for i := range recent {
		entries = append(entries, recent[i].Entry())
	}

	stats := dashboardStats{
		ComplaintsByStatus:   byStatus,
		ComplaintsByPriority: byPriority,
		PublishedArticles:    published,
		RecentActivity:       entries,
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := h.Store.CacheDashboard(payload); err != nil {
			log.Printf("WARNING: Failed to cache dashboard stats: %v", err)
		}
	}

	c.JSON(http.StatusOK, stats)
}

// Search runs a cross-entity search over complaints and articles. The
// complaint half respects the actor's visibility.
func (h *Handler) Search(c *gin.Context) {
	actor := MustActor(c)
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	complaints, err := h.Complaints.Search(actor, query)
	if err != nil {
		respondError(c, err)
		return
	}

	articles := []models.NewsArticle{}
	if found, err := h.Store.SearchArticles(query); err == nil {
		articles = found
	}

	c.JSON(http.StatusOK, gin.H{"complaints": complaints, "articles": articles})
}
