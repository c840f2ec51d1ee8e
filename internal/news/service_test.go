package news_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"citizendesk/backend/internal/auth"
	"citizendesk/backend/internal/models"
	"citizendesk/backend/internal/news"
	"citizendesk/backend/internal/storage"
	"citizendesk/backend/internal/storage/storagetest"
)

var (
	editor = &auth.Actor{
		UserID: "u-c1", Name: "Grace Wanjiru", Email: "g.wanjiru@oag.go.ke",
		Role: models.RoleHeadOfCommunications,
	}
	handler = &auth.Actor{
		UserID: "u-h1", Name: "James Otieno", Email: "j.otieno@oag.go.ke",
		Role: models.RoleComplaintHandler,
	}
)

func TestCreate_DraftsArticle(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := news.NewService(storageMock)

	storageMock.On("CreateArticle", mock.AnythingOfType("*models.NewsArticle")).
		Run(func(args mock.Arguments) { args.Get(0).(*models.NewsArticle).ID = 1 }).
		Return(nil).Once()
	storageMock.On("SaveActivity", mock.AnythingOfType("*models.ActivityLog")).Return(nil).Once()

	article, err := svc.Create(editor, news.ArticleInput{
		TitleEn:   "New legal aid clinics",
		TitleSw:   "Kliniki mpya za msaada wa kisheria",
		ContentEn: "The office is opening clinics in three counties.",
	})

	require.NoError(t, err)
	assert.Equal(t, models.ArticleDraft, article.Status)
	assert.Nil(t, article.PublishedAt)
	storageMock.AssertExpectations(t)
}

func TestCreate_RequiresEnglishTitle(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := news.NewService(storageMock)

	_, err := svc.Create(editor, news.ArticleInput{TitleSw: "Bila kichwa cha Kiingereza"})

	assert.ErrorIs(t, err, news.ErrValidation)
	storageMock.AssertNotCalled(t, "CreateArticle", mock.Anything)
}

func TestCreate_Forbidden(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := news.NewService(storageMock)

	_, err := svc.Create(handler, news.ArticleInput{TitleEn: "Should not exist"})

	assert.ErrorIs(t, err, news.ErrForbidden)
	storageMock.AssertNotCalled(t, "CreateArticle", mock.Anything)
}

// TestSetStatus_PublishStampsOnce: PublishedAt is set on first publish and
// survives an archive/republish cycle untouched.
func TestSetStatus_PublishStampsOnce(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := news.NewService(storageMock)

	article := &models.NewsArticle{TitleEn: "Clinics", Status: models.ArticleDraft}
	article.ID = 2

	storageMock.On("GetArticleByID", uint(2)).Return(article, nil)
	storageMock.On("UpdateArticle", article).Return(nil)
	storageMock.On("SaveActivity", mock.Anything).Return(nil)

	published, err := svc.SetStatus(editor, 2, models.ArticlePublished)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	firstStamp := *published.PublishedAt

	_, err = svc.SetStatus(editor, 2, models.ArticleArchived)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	republished, err := svc.SetStatus(editor, 2, models.ArticlePublished)
	require.NoError(t, err)
	assert.Equal(t, firstStamp, *republished.PublishedAt)
}

func TestSetStatus_RejectsUnknownStatus(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := news.NewService(storageMock)

	_, err := svc.SetStatus(editor, 2, models.ArticleStatus("retracted"))

	assert.ErrorIs(t, err, news.ErrValidation)
	storageMock.AssertNotCalled(t, "UpdateArticle", mock.Anything)
}

func TestUpdate_PartialEdit(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := news.NewService(storageMock)

	article := &models.NewsArticle{
		TitleEn: "Clinics", TitleSw: "Kliniki",
		ContentEn: "Original body", Featured: false,
	}
	article.ID = 3
	featured := true

	storageMock.On("GetArticleByID", uint(3)).Return(article, nil)
	storageMock.On("UpdateArticle", article).Return(nil).Once()
	storageMock.On("SaveActivity", mock.Anything).Return(nil).Once()

	updated, err := svc.Update(editor, 3, news.ArticleInput{TitleEn: "Clinics expanded", Featured: &featured})

	require.NoError(t, err)
	assert.Equal(t, "Clinics expanded", updated.TitleEn)
	assert.Equal(t, "Kliniki", updated.TitleSw, "untouched fields must survive")
	assert.Equal(t, "Original body", updated.ContentEn)
	assert.True(t, updated.Featured)
}

func TestDelete_RecordsActivity(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := news.NewService(storageMock)

	article := &models.NewsArticle{TitleEn: "Obsolete notice"}
	article.ID = 4

	var activity *models.ActivityLog
	storageMock.On("GetArticleByID", uint(4)).Return(article, nil)
	storageMock.On("DeleteArticle", uint(4)).Return(nil).Once()
	storageMock.On("SaveActivity", mock.Anything).
		Run(func(args mock.Arguments) { activity = args.Get(0).(*models.ActivityLog) }).
		Return(nil).Once()

	require.NoError(t, svc.Delete(editor, 4))
	require.NotNil(t, activity)
	assert.Equal(t, models.ActivityNews, activity.Type)
	assert.Contains(t, activity.Details, "Obsolete notice")
}

// TestGetPublished_HidesDrafts: non-published articles look exactly like
// missing ones to the public site.
func TestGetPublished_HidesDrafts(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := news.NewService(storageMock)

	draft := &models.NewsArticle{TitleEn: "Unreleased", Status: models.ArticleDraft}
	draft.ID = 5

	storageMock.On("GetArticleByID", uint(5)).Return(draft, nil)

	_, err := svc.GetPublished(5)

	assert.ErrorIs(t, err, storage.ErrNotFound)
}
