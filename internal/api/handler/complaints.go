package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"citizendesk/backend/internal/models"
	"citizendesk/backend/internal/storage"
)

// ListComplaints returns the actor's visible complaint set, with optional
// status/priority/county filters.
func (h *Handler) ListComplaints(c *gin.Context) {
	actor := MustActor(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	filter := storage.ComplaintFilter{
		Status:   models.ComplaintStatus(c.Query("status")),
		Priority: models.ComplaintPriority(c.Query("priority")),
		County:   c.Query("county"),
		Page:     page,
	}

	complaints, err := h.Complaints.List(actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaints": complaints, "page": page})
}

// GetComplaint returns one complaint with replies and status history.
func (h *Handler) GetComplaint(c *gin.Context) {
	actor := MustActor(c)
	id, ok := complaintID(c)
	if !ok {
		return
	}

	found, updates, err := h.Complaints.Get(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaint": found, "status_updates": updates})
}

type assignRequest struct {
	AssigneeEmail string `json:"assignee_email" binding:"required"`
}

func (h *Handler) AssignComplaint(c *gin.Context) {
	actor := MustActor(c)
	id, ok := complaintID(c)
	if !ok {
		return
	}

	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assignee_email is required"})
		return
	}

	updated, err := h.Complaints.Assign(actor, id, req.AssigneeEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type replyRequest struct {
	Type models.ReplyType `json:"type" binding:"required"`
	Body string           `json:"body" binding:"required"`
}

func (h *Handler) AddReply(c *gin.Context) {
	actor := MustActor(c)
	id, ok := complaintID(c)
	if !ok {
		return
	}

	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type and body are required"})
		return
	}

	reply, err := h.Complaints.AddReply(actor, id, req.Type, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

type statusChangeRequest struct {
	Status  models.ComplaintStatus `json:"status" binding:"required"`
	Message string                 `json:"message"`
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	actor := MustActor(c)
	id, ok := complaintID(c)
	if !ok {
		return
	}

	var req statusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	updated, err := h.Complaints.ChangeStatus(actor, id, req.Status, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type priorityChangeRequest struct {
	Priority models.ComplaintPriority `json:"priority" binding:"required"`
}

func (h *Handler) ChangePriority(c *gin.Context) {
	actor := MustActor(c)
	id, ok := complaintID(c)
	if !ok {
		return
	}

	var req priorityChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "priority is required"})
		return
	}

	updated, err := h.Complaints.ChangePriority(actor, id, req.Priority)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func complaintID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return 0, false
	}
	return uint(id), true
}
