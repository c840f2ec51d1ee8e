package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"citizendesk/backend/internal/api/handler"
	"citizendesk/backend/internal/auth"
	"citizendesk/backend/internal/complaint"
	"citizendesk/backend/internal/models"
	"citizendesk/backend/internal/news"
	"citizendesk/backend/internal/storage"
	"citizendesk/backend/internal/storage/storagetest"
)

func adminRouter(t *testing.T, storageMock *storagetest.MockStorage) (*gin.Engine, *auth.TokenManager) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret")
	h := handler.NewHandler(
		complaint.NewService(storageMock),
		news.NewService(storageMock),
		storageMock,
		tokens,
		nil,
		testLocalizer(t),
	)

	r := gin.New()
	admin := r.Group("/admin", h.AuthRequired())
	admin.GET("/dashboard", h.Dashboard)
	admin.GET("/search", h.Search)
	return r, tokens
}

func issueToken(t *testing.T, tokens *auth.TokenManager, email string, role models.Role) string {
	t.Helper()
	token, err := tokens.Issue(&models.User{ID: "u-" + email, Name: email, Email: email, Role: role})
	require.NoError(t, err)
	return token
}

// TestDashboard_ComputesAndCaches: on a cache miss the stats are computed,
// include the latest activity page, and get written back to the cache.
func TestDashboard_ComputesAndCaches(t *testing.T) {
	storageMock := new(storagetest.MockStorage)

	logged := models.ActivityLog{
		ActorName: "Amina Hassan", ActorEmail: "ag@oag.go.ke",
		Action: "Complaint assigned", Type: models.ActivityComplaint,
	}
	logged.ID = 42
	logged.CreatedAt = time.Now()

	var cached []byte
	storageMock.On("GetCachedDashboard").Return(nil, storage.ErrNotFound)
	storageMock.On("CountComplaintsByStatus").
		Return(map[models.ComplaintStatus]int64{models.StatusPending: 2}, nil)
	storageMock.On("CountComplaintsByPriority").
		Return(map[models.ComplaintPriority]int64{models.PriorityMedium: 2}, nil)
	storageMock.On("CountPublishedArticles").Return(int64(3), nil)
	storageMock.On("ListActivity", 1, models.ActivityType("")).
		Return([]models.ActivityLog{logged}, nil)
	storageMock.On("CacheDashboard", mock.AnythingOfType("[]uint8")).
		Run(func(args mock.Arguments) { cached = args.Get(0).([]byte) }).
		Return(nil).Once()

	r, tokens := adminRouter(t, storageMock)
	token := issueToken(t, tokens, "ag@oag.go.ke", models.RoleAttorneyGeneral)

	w := get(r, "/admin/dashboard", token)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		ComplaintsByStatus map[models.ComplaintStatus]int64 `json:"complaints_by_status"`
		PublishedArticles  int64                            `json:"published_articles"`
		RecentActivity     []models.ActivityEntry           `json:"recent_activity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.ComplaintsByStatus[models.StatusPending])
	assert.Equal(t, int64(3), resp.PublishedArticles)
	require.Len(t, resp.RecentActivity, 1)
	assert.Equal(t, "Complaint assigned", resp.RecentActivity[0].Action)
	assert.Equal(t, uint(42), resp.RecentActivity[0].ID)

	// The cached payload is the same document the client received.
	storageMock.AssertExpectations(t)
	assert.JSONEq(t, w.Body.String(), string(cached))
}

// TestDashboard_CacheHit: a fresh cache entry is served verbatim and no
// counting query runs.
func TestDashboard_CacheHit(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	payload := []byte(`{"complaints_by_status":{"pending":5},"complaints_by_priority":{},"published_articles":1,"recent_activity":[]}`)
	storageMock.On("GetCachedDashboard").Return(payload, nil)

	r, tokens := adminRouter(t, storageMock)
	token := issueToken(t, tokens, "ag@oag.go.ke", models.RoleAttorneyGeneral)

	w := get(r, "/admin/dashboard", token)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(payload), w.Body.String())
	storageMock.AssertNotCalled(t, "CountComplaintsByStatus")
	storageMock.AssertNotCalled(t, "CountComplaintsByPriority")
	storageMock.AssertNotCalled(t, "CountPublishedArticles")
	storageMock.AssertNotCalled(t, "CacheDashboard", mock.Anything)
}

// TestSearch_HandlerScope: a complaint handler's search results exclude
// colleagues' complaints but keep pending and own work; articles are
// returned regardless.
func TestSearch_HandlerScope(t *testing.T) {
	storageMock := new(storagetest.MockStorage)

	hits := []models.Complaint{
		{TicketID: "AGA001", Status: models.StatusPending},
		{TicketID: "AGA002", Status: models.StatusInProgress, AssignedToEmail: "j.otieno@oag.go.ke"},
		{TicketID: "AGA003", Status: models.StatusInProgress, AssignedToEmail: "m.kamau@oag.go.ke"},
	}
	article := models.NewsArticle{TitleEn: "Tender probe update", Status: models.ArticlePublished}

	storageMock.On("SearchComplaints", "tender").Return(hits, nil)
	storageMock.On("SearchArticles", "tender").Return([]models.NewsArticle{article}, nil)

	r, tokens := adminRouter(t, storageMock)
	token := issueToken(t, tokens, "j.otieno@oag.go.ke", models.RoleComplaintHandler)

	w := get(r, "/admin/search?q=tender", token)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Complaints []models.Complaint   `json:"complaints"`
		Articles   []models.NewsArticle `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	tickets := make([]string, 0, len(resp.Complaints))
	for _, c := range resp.Complaints {
		tickets = append(tickets, c.TicketID)
	}
	assert.Equal(t, []string{"AGA001", "AGA002"}, tickets)
	require.Len(t, resp.Articles, 1)
	assert.Equal(t, "Tender probe update", resp.Articles[0].TitleEn)
}

// TestSearch_CommsSeesNoComplaints: head_of_communications gets only the
// article half.
func TestSearch_CommsSeesNoComplaints(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	storageMock.On("SearchArticles", "tender").Return([]models.NewsArticle{}, nil)

	r, tokens := adminRouter(t, storageMock)
	token := issueToken(t, tokens, "g.wanjiru@oag.go.ke", models.RoleHeadOfCommunications)

	w := get(r, "/admin/search?q=tender", token)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"complaints":[]`)
	storageMock.AssertNotCalled(t, "SearchComplaints", mock.Anything)
}

func TestSearch_RequiresQuery(t *testing.T) {
	r, tokens := adminRouter(t, new(storagetest.MockStorage))
	token := issueToken(t, tokens, "ag@oag.go.ke", models.RoleAttorneyGeneral)

	assert.Equal(t, http.StatusBadRequest, get(r, "/admin/search", token).Code)
}
