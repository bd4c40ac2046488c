package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/goodman-rb/ai-content-studio/config"
	"github.com/goodman-rb/ai-content-studio/internal/eventbus"
	"github.com/goodman-rb/ai-content-studio/internal/model"
	"github.com/goodman-rb/ai-content-studio/internal/pkg/cache"
	"github.com/goodman-rb/ai-content-studio/internal/pkg/llm"
	"github.com/goodman-rb/ai-content-studio/internal/pkg/template"
	"github.com/goodman-rb/ai-content-studio/internal/repository"
)

// suggestionMarker prefixes every valid line of the operator-edited
// improvement list. Blank and unmarked lines are dropped silently.
const suggestionMarker = "-"

// GeneratedContent is the model's structured reply for one draft.
type GeneratedContent struct {
	VKPost      string `json:"vk_post"`
	TGPost      string `json:"tg_post"`
	ImagePrompt string `json:"image_prompt"`
}

// AnalysisScores are the five fixed dimensions, each in [0,10].
type AnalysisScores struct {
	Headline float64 `json:"headline"`
	CTA      float64 `json:"cta"`
	Emotion  float64 `json:"emotion"`
	Emoji    float64 `json:"emoji"`
	Length   float64 `json:"length"`
}

// AnalysisResult is produced on demand from the current content and cleared
// whenever the content is regenerated or improved. Never persisted.
type AnalysisResult struct {
	Scores       AnalysisScores `json:"scores"`
	OverallScore float64        `json:"overall_score"`
	Suggestions  []string       `json:"suggestions"`
	Summary      string         `json:"summary"`
}

// DraftSession holds the ephemeral state of one editing session: the
// captured form, the current content, the latest analysis and the bounded
// regeneration counter. Discarded on save.
type DraftSession struct {
	ID                string            `json:"id"`
	Form              GenerationForm    `json:"form"`
	Content           *GeneratedContent `json:"content,omitempty"`
	Analysis          *AnalysisResult   `json:"analysis,omitempty"`
	RegenerationCount int               `json:"regeneration_count"`
	CreatedAt         time.Time         `json:"created_at"`
}

// ScheduleRequest carries the operator-edited final content and the publish
// slot for saving a draft into the content plan.
type ScheduleRequest struct {
	PublishAt   string `json:"publish_at"`
	VKText      string `json:"vk_text"`
	TGText      string `json:"tg_text"`
	ImagePrompt string `json:"image_prompt"`
}

// DraftService drives the generate → analyze → improve → save workflow.
// Sessions live in memory and are keyed by id, so a second operator would
// simply get a second session.
type DraftService struct {
	cfg      *config.Config
	builder  *PromptBuilder
	client   llm.Completer
	postRepo repository.PostRepository
	cache    *cache.Cache
	bus      *eventbus.PlanEventBus

	mu       sync.Mutex
	sessions map[string]*DraftSession

	now func() time.Time
}

func NewDraftService(cfg *config.Config, builder *PromptBuilder, client llm.Completer, postRepo repository.PostRepository, c *cache.Cache) *DraftService {
	return &DraftService{
		cfg:      cfg,
		builder:  builder,
		client:   client,
		postRepo: postRepo,
		cache:    c,
		sessions: make(map[string]*DraftSession),
		now:      time.Now,
	}
}

// SetEventBus attaches the plan change bus. Optional; nil means no
// notifications.
func (s *DraftService) SetEventBus(bus *eventbus.PlanEventBus) {
	s.bus = bus
}

// Generate starts a fresh session: builds the prompt pair, calls the model
// and stores the content with the regeneration counter at zero.
func (s *DraftService) Generate(ctx context.Context, form GenerationForm) (*DraftSession, error) {
	content, err := s.generateContent(ctx, form)
	if err != nil {
		return nil, err
	}

	session := &DraftSession{
		ID:        uuid.NewString(),
		Form:      form,
		Content:   content,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	klog.V(6).Infof("draft session %s created, post type %s", session.ID, form.PostType)
	return session, nil
}

// Get returns the current session state.
func (s *DraftService) Get(sessionID string) (*DraftSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Regenerate repeats the initial generation with the captured form. Refused
// without an external call once the bound is hit; a failed call leaves the
// session untouched.
func (s *DraftService) Regenerate(ctx context.Context, sessionID string) (*DraftSession, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.RegenerationCount >= s.cfg.Studio.MaxRegenerations {
		return nil, fmt.Errorf("%w (%d/%d)", ErrRegenerationLimit, session.RegenerationCount, s.cfg.Studio.MaxRegenerations)
	}

	content, err := s.generateContent(ctx, session.Form)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	session.Content = content
	session.Analysis = nil
	session.RegenerationCount++
	s.mu.Unlock()

	klog.V(6).Infof("draft session %s regenerated (%d/%d)", sessionID, session.RegenerationCount, s.cfg.Studio.MaxRegenerations)
	return session, nil
}

// Analyze scores the current content. The analysis template plus the
// rendered post type and both texts travel as a single user message.
func (s *DraftService) Analyze(ctx context.Context, sessionID string) (*DraftSession, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Content == nil {
		return nil, ErrNoContent
	}

	analysisTemplate, err := s.builder.GetPrompt("analysis_prompt")
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("%s\n\nТип поста: %s\n\nVK текст:\n%s\n\nTelegram текст:\n%s\n",
		analysisTemplate, session.Form.PostType, session.Content.VKPost, session.Content.TGPost)

	var analysis AnalysisResult
	err = s.client.CompleteJSON(ctx, []llm.ChatMessage{
		{Role: "user", Content: prompt},
	}, &analysis)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	session.Analysis = &analysis
	s.mu.Unlock()

	return session, nil
}

// Improve rewrites the content following the operator-edited suggestion
// list. An empty list is rejected before any external call. The
// regeneration counter is not touched.
func (s *DraftService) Improve(ctx context.Context, sessionID, suggestionsText string) (*DraftSession, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Content == nil {
		return nil, ErrNoContent
	}

	suggestions := ParseSuggestions(suggestionsText)
	if len(suggestions) == 0 {
		return nil, ErrNoSuggestions
	}

	systemPrompt, userPrompt, err := s.builder.Build(session.Form)
	if err != nil {
		return nil, err
	}

	improvementTemplate, err := s.builder.GetPrompt("improvement_prompt")
	if err != nil {
		return nil, err
	}

	bullets := make([]string, 0, len(suggestions))
	for _, suggestion := range suggestions {
		bullets = append(bullets, "- "+suggestion)
	}

	instructions := template.Render(improvementTemplate, map[string]string{
		"suggestions": strings.Join(bullets, "\n"),
	})
	instructions += fmt.Sprintf("\n\nТекущий VK пост:\n%s\n\nТекущий Telegram пост:\n%s\n",
		session.Content.VKPost, session.Content.TGPost)

	var content GeneratedContent
	err = s.client.CompleteJSON(ctx, []llm.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt + "\n\n" + instructions},
	}, &content)
	if err != nil {
		return nil, err
	}

	s.applyImageOverride(&content, session.Form)

	s.mu.Lock()
	session.Content = &content
	session.Analysis = nil
	s.mu.Unlock()

	klog.V(6).Infof("draft session %s improved with %d suggestions", sessionID, len(suggestions))
	return session, nil
}

// Save persists the draft as a Ready scheduled post and discards the
// session. A store failure keeps the session so the operator does not lose
// the drafted text.
func (s *DraftService) Save(sessionID string, req ScheduleRequest) (*model.ScheduledPost, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Content == nil {
		return nil, ErrNoContent
	}

	postID, err := s.postRepo.NextPostID()
	if err != nil {
		return nil, err
	}

	vkText := req.VKText
	if vkText == "" {
		vkText = session.Content.VKPost
	}
	tgText := req.TGText
	if tgText == "" {
		tgText = session.Content.TGPost
	}
	imagePrompt := req.ImagePrompt
	if imagePrompt == "" {
		imagePrompt = session.Content.ImagePrompt
	}

	post := &model.ScheduledPost{
		PostID:      postID,
		PublishAt:   req.PublishAt,
		Status:      model.StatusReady,
		PostType:    session.Form.PostType,
		VKText:      vkText,
		TGText:      tgText,
		ImagePrompt: imagePrompt,
		CreatedAt:   s.now().Format(model.CreatedAtLayout),
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	s.cache.Invalidate(planCacheKey)
	s.notify(eventbus.PostScheduled, postID)

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	klog.V(6).Infof("draft session %s saved as %s", sessionID, postID)
	return post, nil
}

func (s *DraftService) notify(eventType eventbus.PlanEventType, postID string) {
	if s.bus == nil {
		return
	}
	event := eventbus.PlanEvent{Type: eventType, PostID: postID}
	if err := s.bus.Publish(context.Background(), eventType, event); err != nil {
		klog.Errorf("plan event handler failed: %v", err)
	}
}

func (s *DraftService) generateContent(ctx context.Context, form GenerationForm) (*GeneratedContent, error) {
	systemPrompt, userPrompt, err := s.builder.Build(form)
	if err != nil {
		return nil, err
	}

	var content GeneratedContent
	err = s.client.CompleteJSON(ctx, []llm.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}, &content)
	if err != nil {
		return nil, err
	}

	s.applyImageOverride(&content, form)
	return &content, nil
}

// applyImageOverride replaces the model's image prompt with the operator's
// own URL marker or custom prompt. The URL wins when both are given.
func (s *DraftService) applyImageOverride(content *GeneratedContent, form GenerationForm) {
	if form.CustomImageURL != "" {
		content.ImagePrompt = fmt.Sprintf("[URL картинки: %s]", form.CustomImageURL)
	} else if form.CustomImagePrompt != "" {
		content.ImagePrompt = form.CustomImagePrompt
	}
}

// ParseSuggestions extracts the valid lines of the operator-edited
// improvement list: only lines starting with "-" count, the marker and
// surrounding whitespace are stripped.
func ParseSuggestions(text string) []string {
	var suggestions []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, suggestionMarker) {
			continue
		}
		suggestion := strings.TrimSpace(strings.TrimPrefix(line, suggestionMarker))
		if suggestion == "" {
			continue
		}
		suggestions = append(suggestions, suggestion)
	}
	return suggestions
}
