package service

import (
	"context"
	"sort"
	"time"

	"k8s.io/klog/v2"

	"github.com/goodman-rb/ai-content-studio/internal/eventbus"
	"github.com/goodman-rb/ai-content-studio/internal/model"
	"github.com/goodman-rb/ai-content-studio/internal/pkg/cache"
	"github.com/goodman-rb/ai-content-studio/internal/repository"
)

// publishAtLayouts are tried in order when parsing the free-form publish
// time. Rows that match none are kept in listings but skipped in
// date-sensitive views.
var publishAtLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"02.01.2006 15:04",
}

// PlanFilter narrows content plan listings. Zero values mean "all".
type PlanFilter struct {
	Status   string
	PostType string
	From     time.Time
	To       time.Time
	Newest   bool
}

// PlanStats is the dashboard payload.
type PlanStats struct {
	Total    int                   `json:"total"`
	ByStatus map[string]int        `json:"by_status"`
	ByType   map[string]int        `json:"by_type"`
	Upcoming []model.ScheduledPost `json:"upcoming"`
}

// UpdatePostRequest carries the editable fields of a scheduled post.
// PostID, PostType and CreatedAt are not editable.
type UpdatePostRequest struct {
	PublishAt   string `json:"publish_at"`
	Status      string `json:"status"`
	VKText      string `json:"vk_text"`
	TGText      string `json:"tg_text"`
	ImagePrompt string `json:"image_prompt"`
}

// PlanService reads and mutates the persisted content plan. Reads go
// through a short-lived cache; every write invalidates it first.
type PlanService struct {
	postRepo repository.PostRepository
	cache    *cache.Cache
	bus      *eventbus.PlanEventBus
	now      func() time.Time
}

func NewPlanService(postRepo repository.PostRepository, c *cache.Cache) *PlanService {
	return &PlanService{
		postRepo: postRepo,
		cache:    c,
		now:      time.Now,
	}
}

// SetEventBus attaches the plan change bus. Optional; nil means no
// notifications.
func (s *PlanService) SetEventBus(bus *eventbus.PlanEventBus) {
	s.bus = bus
}

func (s *PlanService) notify(eventType eventbus.PlanEventType, postID string) {
	if s.bus == nil {
		return
	}
	event := eventbus.PlanEvent{Type: eventType, PostID: postID}
	if err := s.bus.Publish(context.Background(), eventType, event); err != nil {
		klog.Errorf("plan event handler failed: %v", err)
	}
}

// List returns the filtered content plan ordered by publish time.
func (s *PlanService) List(filter PlanFilter) ([]model.ScheduledPost, error) {
	posts, err := s.loadPlan()
	if err != nil {
		return nil, err
	}

	filtered := make([]model.ScheduledPost, 0, len(posts))
	for _, post := range posts {
		if filter.Status != "" && post.Status != filter.Status {
			continue
		}
		if filter.PostType != "" && post.PostType != filter.PostType {
			continue
		}
		if !filter.From.IsZero() || !filter.To.IsZero() {
			at, ok := parsePublishAt(post.PublishAt)
			if !ok {
				continue
			}
			if !filter.From.IsZero() && at.Before(filter.From) {
				continue
			}
			if !filter.To.IsZero() && at.After(filter.To) {
				continue
			}
		}
		filtered = append(filtered, post)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		ti, iok := parsePublishAt(filtered[i].PublishAt)
		tj, jok := parsePublishAt(filtered[j].PublishAt)
		if iok != jok {
			return iok
		}
		if filter.Newest {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})

	return filtered, nil
}

// Get returns one post by its POST_<n> id.
func (s *PlanService) Get(postID string) (*model.ScheduledPost, error) {
	return s.postRepo.GetByPostID(postID)
}

// Stats builds the dashboard counters and the Ready posts of the next
// seven days.
func (s *PlanService) Stats() (*PlanStats, error) {
	posts, err := s.loadPlan()
	if err != nil {
		return nil, err
	}

	stats := &PlanStats{
		Total:    len(posts),
		ByStatus: make(map[string]int),
		ByType:   make(map[string]int),
	}

	now := s.now()
	weekLater := now.Add(7 * 24 * time.Hour)

	for _, post := range posts {
		stats.ByStatus[post.Status]++
		stats.ByType[post.PostType]++

		if post.Status != model.StatusReady {
			continue
		}
		at, ok := parsePublishAt(post.PublishAt)
		if !ok {
			klog.V(6).Infof("skipping post %s with unparsable publish time %q", post.PostID, post.PublishAt)
			continue
		}
		if at.Before(now) || at.After(weekLater) {
			continue
		}
		stats.Upcoming = append(stats.Upcoming, post)
	}

	sort.SliceStable(stats.Upcoming, func(i, j int) bool {
		ti, _ := parsePublishAt(stats.Upcoming[i].PublishAt)
		tj, _ := parsePublishAt(stats.Upcoming[j].PublishAt)
		return ti.Before(tj)
	})

	return stats, nil
}

// Update edits a scheduled post in place. PostID, PostType and CreatedAt
// are preserved unconditionally.
func (s *PlanService) Update(postID string, req UpdatePostRequest) (*model.ScheduledPost, error) {
	post, err := s.postRepo.GetByPostID(postID)
	if err != nil {
		return nil, err
	}

	post.PublishAt = req.PublishAt
	post.Status = req.Status
	post.VKText = req.VKText
	post.TGText = req.TGText
	post.ImagePrompt = req.ImagePrompt

	if err := s.postRepo.Save(post); err != nil {
		return nil, err
	}

	s.cache.Invalidate(planCacheKey)
	s.notify(eventbus.PostUpdated, post.PostID)
	return post, nil
}

// Delete removes a post by id.
func (s *PlanService) Delete(postID string) error {
	if err := s.postRepo.Delete(postID); err != nil {
		return err
	}
	s.cache.Invalidate(planCacheKey)
	s.notify(eventbus.PostDeleted, postID)
	return nil
}

func (s *PlanService) loadPlan() ([]model.ScheduledPost, error) {
	v, err := s.cache.GetOrRefresh(planCacheKey, planCacheTTL, func() (interface{}, error) {
		return s.postRepo.List()
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.ScheduledPost), nil
}

func parsePublishAt(value string) (time.Time, bool) {
	for _, layout := range publishAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
