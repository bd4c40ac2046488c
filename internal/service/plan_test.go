package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/goodman-rb/ai-content-studio/internal/model"
	"github.com/goodman-rb/ai-content-studio/internal/pkg/cache"
	"github.com/goodman-rb/ai-content-studio/internal/repository"
)

func seedPlan(t *testing.T, db *gorm.DB, posts ...model.ScheduledPost) {
	t.Helper()
	for i := range posts {
		require.NoError(t, db.Create(&posts[i]).Error)
	}
}

func newPlanService(t *testing.T, db *gorm.DB) *PlanService {
	t.Helper()
	return NewPlanService(repository.NewPostRepository(db), cache.New())
}

func TestUpdatePreservesIDTypeAndCreatedAt(t *testing.T) {
	db := seededDB(t)
	seedPlan(t, db, model.ScheduledPost{
		PostID:    "POST_1",
		PublishAt: "2026-09-01 10:00",
		Status:    model.StatusReady,
		PostType:  model.PostTypeEducational,
		VKText:    "старый текст",
		CreatedAt: "2026-08-01 09:00:00",
	})

	svc := newPlanService(t, db)
	updated, err := svc.Update("POST_1", UpdatePostRequest{
		PublishAt:   "2026-10-01 18:00",
		Status:      model.StatusPublished,
		VKText:      "новый текст",
		TGText:      "новый tg",
		ImagePrompt: "новая картинка",
	})
	require.NoError(t, err)

	require.Equal(t, "POST_1", updated.PostID)
	require.Equal(t, model.PostTypeEducational, updated.PostType)
	require.Equal(t, "2026-08-01 09:00:00", updated.CreatedAt)
	require.Equal(t, "новый текст", updated.VKText)
	require.Equal(t, model.StatusPublished, updated.Status)
}

func TestUpdateUnknownPost(t *testing.T) {
	svc := newPlanService(t, seededDB(t))
	_, err := svc.Update("POST_99", UpdatePostRequest{})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListFilters(t *testing.T) {
	db := seededDB(t)
	seedPlan(t, db,
		model.ScheduledPost{PostID: "POST_1", PublishAt: "2026-09-01 10:00", Status: model.StatusReady, PostType: model.PostTypePromotional},
		model.ScheduledPost{PostID: "POST_2", PublishAt: "2026-09-02 10:00", Status: model.StatusDraft, PostType: model.PostTypeEducational},
		model.ScheduledPost{PostID: "POST_3", PublishAt: "2026-09-03 10:00", Status: model.StatusReady, PostType: model.PostTypeEducational},
	)

	svc := newPlanService(t, db)

	ready, err := svc.List(PlanFilter{Status: model.StatusReady})
	require.NoError(t, err)
	require.Len(t, ready, 2)

	edu, err := svc.List(PlanFilter{PostType: model.PostTypeEducational})
	require.NoError(t, err)
	require.Len(t, edu, 2)

	newest, err := svc.List(PlanFilter{Newest: true})
	require.NoError(t, err)
	require.Equal(t, "POST_3", newest[0].PostID)
}

func TestListDateRange(t *testing.T) {
	db := seededDB(t)
	seedPlan(t, db,
		model.ScheduledPost{PostID: "POST_1", PublishAt: "2026-09-01 10:00", Status: model.StatusReady, PostType: model.PostTypePromotional},
		model.ScheduledPost{PostID: "POST_2", PublishAt: "2026-10-05 10:00", Status: model.StatusReady, PostType: model.PostTypePromotional},
		model.ScheduledPost{PostID: "POST_3", PublishAt: "когда-нибудь", Status: model.StatusReady, PostType: model.PostTypePromotional},
	)

	svc := newPlanService(t, db)
	posts, err := svc.List(PlanFilter{
		From: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "POST_1", posts[0].PostID)
}

func TestStatsUpcomingWindow(t *testing.T) {
	db := seededDB(t)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	seedPlan(t, db,
		model.ScheduledPost{PostID: "POST_1", PublishAt: "2026-08-30 10:00", Status: model.StatusReady, PostType: model.PostTypePromotional},
		model.ScheduledPost{PostID: "POST_2", PublishAt: "2026-09-20 10:00", Status: model.StatusReady, PostType: model.PostTypeEducational},
		model.ScheduledPost{PostID: "POST_3", PublishAt: "2026-08-29 10:00", Status: model.StatusDraft, PostType: model.PostTypeEducational},
		model.ScheduledPost{PostID: "POST_4", PublishAt: "мусор", Status: model.StatusReady, PostType: model.PostTypeEducational},
	)

	svc := newPlanService(t, db)
	svc.now = func() time.Time { return now }

	stats, err := svc.Stats()
	require.NoError(t, err)

	require.Equal(t, 4, stats.Total)
	require.Equal(t, 3, stats.ByStatus[model.StatusReady])
	require.Equal(t, 1, stats.ByType[model.PostTypePromotional])
	// Only POST_1 is Ready, parsable and inside the 7-day window.
	require.Len(t, stats.Upcoming, 1)
	require.Equal(t, "POST_1", stats.Upcoming[0].PostID)
}

func TestDeleteInvalidatesCache(t *testing.T) {
	db := seededDB(t)
	seedPlan(t, db, model.ScheduledPost{PostID: "POST_1", Status: model.StatusReady, PostType: model.PostTypePromotional})

	svc := newPlanService(t, db)

	posts, err := svc.List(PlanFilter{})
	require.NoError(t, err)
	require.Len(t, posts, 1)

	require.NoError(t, svc.Delete("POST_1"))

	// The cached listing must not survive the write.
	posts, err = svc.List(PlanFilter{})
	require.NoError(t, err)
	require.Empty(t, posts)
}
