package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"citizendesk/backend/internal/api/handler"
	"citizendesk/backend/internal/auth"
	"citizendesk/backend/internal/complaint"
	"citizendesk/backend/internal/localization"
	"citizendesk/backend/internal/models"
	"citizendesk/backend/internal/news"
	"citizendesk/backend/internal/storage"
	"citizendesk/backend/internal/storage/storagetest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLocalizer(t *testing.T) *localization.Localizer {
	t.Helper()
	dir := t.TempDir()
	en := `{
		"complaint.received": "Your complaint has been received.",
		"complaint.invalid_lookup": "Invalid ticket ID or password.",
		"complaint.missing_fields": "Please fill in all required fields.",
		"complaint.submit_failed": "Could not submit your complaint. Please try again."
	}`
	sw := `{"complaint.invalid_lookup": "Nambari ya tikiti au nenosiri si sahihi."}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(en), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sw.json"), []byte(sw), 0o644))

	l, err := localization.NewLocalizer(dir)
	require.NoError(t, err)
	return l
}

func newTestRouter(t *testing.T, storageMock *storagetest.MockStorage) *gin.Engine {
	t.Helper()
	h := handler.NewHandler(
		complaint.NewService(storageMock),
		news.NewService(storageMock),
		storageMock,
		auth.NewTokenManager("test-secret"),
		nil,
		testLocalizer(t),
	)

	r := gin.New()
	r.POST("/api/complaints", h.SubmitComplaint)
	r.POST("/api/complaints/status", h.LookupStatus)
	r.GET("/api/news", h.PublicNews)
	r.GET("/api/news/:id", h.PublicArticle)
	r.POST("/admin/login", h.Login)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitComplaint(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	storageMock.On("CreateComplaintWithAccess", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(0).(*models.Complaint).ID = 1 }).
		Return(nil)
	storageMock.On("SaveActivity", mock.Anything).Return(nil)
	router := newTestRouter(t, storageMock)

	w := postJSON(router, "/api/complaints", gin.H{
		"county":  "Kisumu",
		"subject": "Land dispute",
		"body":    "A parcel was allocated twice.",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Regexp(t, `^AG[A-Z]\d{3}$`, resp["ticket_id"])
	assert.Len(t, resp["access_password"], 8)
	assert.Equal(t, "Your complaint has been received.", resp["message"])
}

func TestSubmitComplaint_MissingFields(t *testing.T) {
	router := newTestRouter(t, new(storagetest.MockStorage))

	w := postJSON(router, "/api/complaints", gin.H{"county": "Kisumu"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please fill in all required fields.")
}

// TestLookupStatus_OpaqueResponses: wrong ticket and wrong password get
// byte-identical responses.
func TestLookupStatus_OpaqueResponses(t *testing.T) {
	storageMock := new(storagetest.MockStorage)

	known := &models.Complaint{TicketID: "AGK123", Status: models.StatusPending}
	known.ID = 7
	hash, err := bcrypt.GenerateFromPassword([]byte("SECRET23"), bcrypt.MinCost)
	require.NoError(t, err)

	storageMock.On("GetComplaintByTicketID", "AGZ999").Return(nil, storage.ErrNotFound)
	storageMock.On("GetComplaintByTicketID", "AGK123").Return(known, nil)
	storageMock.On("GetAccessForComplaint", uint(7)).
		Return(&models.ComplaintAccess{ComplaintID: 7, PasswordHash: string(hash)}, nil)
	router := newTestRouter(t, storageMock)

	wrongTicket := postJSON(router, "/api/complaints/status", gin.H{
		"ticket_id": "AGZ999", "access_password": "SECRET23",
	})
	wrongPassword := postJSON(router, "/api/complaints/status", gin.H{
		"ticket_id": "AGK123", "access_password": "WRONG",
	})

	assert.Equal(t, http.StatusNotFound, wrongTicket.Code)
	assert.Equal(t, http.StatusNotFound, wrongPassword.Code)
	assert.Equal(t, wrongTicket.Body.String(), wrongPassword.Body.String())
}

func TestLookupStatus_Localized(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	storageMock.On("GetComplaintByTicketID", "AGZ999").Return(nil, storage.ErrNotFound)
	router := newTestRouter(t, storageMock)

	payload, _ := json.Marshal(gin.H{"ticket_id": "AGZ999", "access_password": "SECRET23"})
	req := httptest.NewRequest(http.MethodPost, "/api/complaints/status?lang=sw", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Nambari ya tikiti au nenosiri si sahihi.")
}

// TestPublicNews_Localized: lang=sw serves the Swahili columns with
// per-field English fallback; the default serves English.
func TestPublicNews_Localized(t *testing.T) {
	storageMock := new(storagetest.MockStorage)

	bilingual := models.NewsArticle{
		TitleEn: "Legal aid clinics", TitleSw: "Kliniki za msaada wa kisheria",
		ExcerptEn: "Opening in three counties.", ExcerptSw: "Zinafunguliwa katika kaunti tatu.",
		Status: models.ArticlePublished,
	}
	bilingual.ID = 1
	englishOnly := models.NewsArticle{
		TitleEn: "Office notice", ExcerptEn: "English only.",
		Status: models.ArticlePublished,
	}
	englishOnly.ID = 2

	storageMock.On("ListPublishedArticles", 1).
		Return([]models.NewsArticle{bilingual, englishOnly}, nil)
	router := newTestRouter(t, storageMock)

	type articlesResponse struct {
		Articles []struct {
			ID    uint   `json:"id"`
			Title string `json:"title"`
		} `json:"articles"`
	}

	sw := httptest.NewRecorder()
	router.ServeHTTP(sw, httptest.NewRequest(http.MethodGet, "/api/news?lang=sw", nil))
	require.Equal(t, http.StatusOK, sw.Code)

	var swResp articlesResponse
	require.NoError(t, json.Unmarshal(sw.Body.Bytes(), &swResp))
	require.Len(t, swResp.Articles, 2)
	assert.Equal(t, "Kliniki za msaada wa kisheria", swResp.Articles[0].Title)
	assert.Equal(t, "Office notice", swResp.Articles[1].Title, "missing translations fall back to English")
	assert.NotContains(t, sw.Body.String(), "title_en", "the public feed is single-language")

	en := httptest.NewRecorder()
	router.ServeHTTP(en, httptest.NewRequest(http.MethodGet, "/api/news", nil))
	require.Equal(t, http.StatusOK, en.Code)

	var enResp articlesResponse
	require.NoError(t, json.Unmarshal(en.Body.Bytes(), &enResp))
	require.Len(t, enResp.Articles, 2)
	assert.Equal(t, "Legal aid clinics", enResp.Articles[0].Title)
}

// TestLogin_OpaqueResponses: unknown email, wrong password and a
// deactivated account all answer identically.
func TestLogin_OpaqueResponses(t *testing.T) {
	storageMock := new(storagetest.MockStorage)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	active := &models.User{ID: "u-1", Email: "ag@oag.go.ke", PasswordHash: string(hash), Role: models.RoleAttorneyGeneral, Active: true}
	inactive := &models.User{ID: "u-2", Email: "gone@oag.go.ke", PasswordHash: string(hash), Role: models.RoleComplaintHandler, Active: false}

	storageMock.On("GetUserByEmail", "nobody@oag.go.ke").Return(nil, storage.ErrNotFound)
	storageMock.On("GetUserByEmail", "ag@oag.go.ke").Return(active, nil)
	storageMock.On("GetUserByEmail", "gone@oag.go.ke").Return(inactive, nil)
	router := newTestRouter(t, storageMock)

	unknown := postJSON(router, "/admin/login", gin.H{"email": "nobody@oag.go.ke", "password": "whatever1"})
	wrongPassword := postJSON(router, "/admin/login", gin.H{"email": "ag@oag.go.ke", "password": "incorrect"})
	deactivated := postJSON(router, "/admin/login", gin.H{"email": "gone@oag.go.ke", "password": "correct horse"})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, unknown.Body.String(), wrongPassword.Body.String())
	assert.Equal(t, unknown.Body.String(), deactivated.Body.String())
}

func TestLogin_Success(t *testing.T) {
	storageMock := new(storagetest.MockStorage)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: "u-1", Name: "Amina Hassan", Email: "ag@oag.go.ke", PasswordHash: string(hash), Role: models.RoleAttorneyGeneral, Active: true}

	storageMock.On("GetUserByEmail", "ag@oag.go.ke").Return(user, nil)
	router := newTestRouter(t, storageMock)

	w := postJSON(router, "/admin/login", gin.H{"email": "ag@oag.go.ke", "password": "correct horse"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
		User  struct {
			Role models.Role `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleAttorneyGeneral, resp.User.Role)

	actor, err := auth.NewTokenManager("test-secret").Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", actor.UserID)
}
