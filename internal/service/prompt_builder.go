package service

import (
	"fmt"
	"time"

	"github.com/goodman-rb/ai-content-studio/config"
	"github.com/goodman-rb/ai-content-studio/internal/model"
	"github.com/goodman-rb/ai-content-studio/internal/pkg/cache"
	"github.com/goodman-rb/ai-content-studio/internal/pkg/database"
	"github.com/goodman-rb/ai-content-studio/internal/pkg/template"
	"github.com/goodman-rb/ai-content-studio/internal/repository"
)

// Cache TTLs: the content plan changes often, reference data rarely.
const (
	planCacheTTL      = 60 * time.Second
	referenceCacheTTL = 300 * time.Second

	planCacheKey     = "content_plan"
	promptsCacheKey  = "prompts"
	settingsCacheKey = "settings"
)

const defaultEducationalTheme = "косметология и уход за кожей"

// GenerationForm is the operator input captured for one draft. It is kept
// on the session so regenerate and improve can rebuild the same prompts.
type GenerationForm struct {
	PostType          string              `json:"post_type"`
	Service           *model.SalonService `json:"service,omitempty"`
	Discount          *model.Discount     `json:"discount,omitempty"`
	Theme             string              `json:"theme,omitempty"`
	Age               string              `json:"age"`
	PromoCode         string              `json:"promo_code,omitempty"`
	CustomImageURL    string              `json:"custom_image_url,omitempty"`
	CustomImagePrompt string              `json:"custom_image_prompt,omitempty"`
}

// PromptBuilder assembles the system/user prompt pair for a generation
// request from operator-edited templates and salon-wide settings.
type PromptBuilder struct {
	cfg         *config.Config
	promptRepo  repository.PromptRepository
	settingRepo repository.SettingRepository
	cache       *cache.Cache
}

func NewPromptBuilder(cfg *config.Config, promptRepo repository.PromptRepository, settingRepo repository.SettingRepository, c *cache.Cache) *PromptBuilder {
	return &PromptBuilder{
		cfg:         cfg,
		promptRepo:  promptRepo,
		settingRepo: settingRepo,
		cache:       c,
	}
}

// Build returns the (system, user) prompt pair for the form. A missing
// required template aborts with ErrTemplateNotFound. Promotional forms are
// expected to arrive with a resolved service; a nil one degrades to empty
// service fields, matching the template pass-through behavior.
func (b *PromptBuilder) Build(form GenerationForm) (string, string, error) {
	settings, err := b.loadSettings()
	if err != nil {
		return "", "", err
	}

	vars := map[string]string{
		"tone_of_voice":       settings["Tone_of_Voice"],
		"address":             settings["Address"],
		"blacklist_words":     settings["Blacklist_Words"],
		"age":                 form.Age,
		"appointment_url":     b.cfg.Studio.BookingURL,
		"promo_code":          "",
		"service_name":        "",
		"service_description": "",
		"service_equipment":   "",
		"service_keywords":    "",
		"discount_text":       "",
		"theme":               "",
	}

	if form.PromoCode != "" {
		vars["promo_code"] = promoCodeBlock(form.PromoCode)
	}

	systemTemplate, err := b.getPrompt("system_base")
	if err != nil {
		return "", "", err
	}

	var userTemplate string
	switch form.PostType {
	case model.PostTypePromotional:
		userTemplate, err = b.getPrompt("promo_post")
		if err != nil {
			return "", "", err
		}

		if form.Service != nil {
			vars["service_name"] = form.Service.Name
			vars["service_description"] = form.Service.Description
			vars["service_equipment"] = form.Service.Equipment
			vars["service_keywords"] = form.Service.Keywords
		}

		if form.Discount != nil && form.Discount.Name != model.NoDiscountLabel {
			vars["discount_text"] = form.Discount.Description
		} else {
			vars["discount_text"] = model.NoDiscountLabel
		}

		if form.PromoCode == "" {
			vars["promo_code"] = "Промокода нет, не упоминай его"
		}

	case model.PostTypeEducational:
		userTemplate, err = b.getPrompt("educational_post")
		if err != nil {
			return "", "", err
		}

		theme := form.Theme
		if theme == "" {
			theme = defaultEducationalTheme
		}
		vars["theme"] = theme

	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownPostType, form.PostType)
	}

	systemPrompt := template.Render(systemTemplate, vars)
	userPrompt := template.Render(userTemplate, vars)

	return systemPrompt, userPrompt, nil
}

// GetPrompt exposes template lookup for the workflow (analysis and
// improvement templates).
func (b *PromptBuilder) GetPrompt(promptID string) (string, error) {
	return b.getPrompt(promptID)
}

func (b *PromptBuilder) getPrompt(promptID string) (string, error) {
	v, err := b.cache.GetOrRefresh(promptsCacheKey, referenceCacheTTL, func() (interface{}, error) {
		return b.promptRepo.ListActive()
	})
	if err != nil {
		return "", err
	}

	for _, tmpl := range v.([]model.PromptTemplate) {
		if tmpl.PromptID == promptID {
			return tmpl.Text, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, promptID)
}

func (b *PromptBuilder) loadSettings() (map[string]string, error) {
	v, err := b.cache.GetOrRefresh(settingsCacheKey, referenceCacheTTL, func() (interface{}, error) {
		return b.settingRepo.GetAll()
	})
	if err != nil {
		return nil, err
	}

	settings := v.(map[string]string)
	merged := make(map[string]string, len(database.DefaultSettings))
	for key, fallback := range database.DefaultSettings {
		if value, ok := settings[key]; ok && value != "" {
			merged[key] = value
		} else {
			merged[key] = fallback
		}
	}
	return merged, nil
}

// promoCodeBlock builds the emphasis blob with platform-specific phrasing.
// Each platform instruction repeats the literal code.
func promoCodeBlock(code string) string {
	return "КРИТИЧЕСКИ ВАЖНО ПРО ПРОМОКОД:\n" +
		fmt.Sprintf("- В тексте ОБЯЗАТЕЛЬНО должен быть промокод: %s\n", code) +
		fmt.Sprintf("- Для VK: \"Используйте промокод %s при записи для получения скидки!\"\n", code) +
		fmt.Sprintf("- Для TG: \"💎 Промокод: %s\"\n", code) +
		"- Промокод должен быть выделен и заметен в тексте"
}
