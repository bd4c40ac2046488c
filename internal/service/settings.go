package service

import (
	"github.com/goodman-rb/ai-content-studio/internal/model"
	"github.com/goodman-rb/ai-content-studio/internal/pkg/cache"
	"github.com/goodman-rb/ai-content-studio/internal/pkg/database"
	"github.com/goodman-rb/ai-content-studio/internal/repository"
)

// PromptVariables lists the placeholders available to operator-edited
// templates, for display in the settings surface.
var PromptVariables = []string{
	"{tone_of_voice}",
	"{address}",
	"{blacklist_words}",
	"{age}",
	"{appointment_url}",
	"{promo_code}",
	"{service_name}",
	"{service_description}",
	"{service_equipment}",
	"{service_keywords}",
	"{discount_text}",
	"{theme}",
	"{suggestions}",
}

// SettingsService covers the operator settings surface: salon-wide facts,
// prompt template editing and the read-only reference tables.
type SettingsService struct {
	settingRepo  repository.SettingRepository
	promptRepo   repository.PromptRepository
	serviceRepo  repository.ServiceRepository
	discountRepo repository.DiscountRepository
	cache        *cache.Cache
}

func NewSettingsService(
	settingRepo repository.SettingRepository,
	promptRepo repository.PromptRepository,
	serviceRepo repository.ServiceRepository,
	discountRepo repository.DiscountRepository,
	c *cache.Cache,
) *SettingsService {
	return &SettingsService{
		settingRepo:  settingRepo,
		promptRepo:   promptRepo,
		serviceRepo:  serviceRepo,
		discountRepo: discountRepo,
		cache:        c,
	}
}

// GetSettings returns the salon-wide facts, falling back to defaults for
// missing keys.
func (s *SettingsService) GetSettings() (map[string]string, error) {
	stored, err := s.settingRepo.GetAll()
	if err != nil {
		return nil, err
	}

	settings := make(map[string]string, len(database.DefaultSettings))
	for key, fallback := range database.DefaultSettings {
		if value, ok := stored[key]; ok {
			settings[key] = value
		} else {
			settings[key] = fallback
		}
	}
	return settings, nil
}

// UpdateSettings upserts the given keys and invalidates the reference
// cache so the next generation sees fresh values.
func (s *SettingsService) UpdateSettings(values map[string]string) error {
	for key, value := range values {
		if err := s.settingRepo.Upsert(key, value); err != nil {
			return err
		}
	}
	s.cache.Invalidate(settingsCacheKey)
	return nil
}

// ListPrompts returns the active templates for the editor.
func (s *SettingsService) ListPrompts() ([]model.PromptTemplate, error) {
	return s.promptRepo.ListActive()
}

// UpdatePromptText replaces a template's body by prompt id.
func (s *SettingsService) UpdatePromptText(promptID, text string) error {
	if err := s.promptRepo.UpdateText(promptID, text); err != nil {
		return err
	}
	s.cache.Invalidate(promptsCacheKey)
	return nil
}

// ServiceWithDiscounts pairs a service row with the discounts that apply
// to its category.
type ServiceWithDiscounts struct {
	model.SalonService
	Discounts []model.Discount `json:"discounts"`
}

// ListServicesWithDiscounts attaches the applicable discounts to each
// service row for the reference surface.
func (s *SettingsService) ListServicesWithDiscounts() ([]ServiceWithDiscounts, error) {
	services, err := s.serviceRepo.List()
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]model.Discount, len(services))
	enriched := make([]ServiceWithDiscounts, 0, len(services))
	for _, svc := range services {
		discounts, ok := byCategory[svc.Category]
		if !ok {
			discounts, err = s.discountRepo.ListApplicable(svc.Category)
			if err != nil {
				return nil, err
			}
			byCategory[svc.Category] = discounts
		}
		enriched = append(enriched, ServiceWithDiscounts{SalonService: svc, Discounts: discounts})
	}
	return enriched, nil
}

// GetService resolves one service row.
func (s *SettingsService) GetService(id uint) (*model.SalonService, error) {
	return s.serviceRepo.Get(id)
}

// ListDiscounts returns all discounts, or only those applicable to a
// category when one is given.
func (s *SettingsService) ListDiscounts(category string) ([]model.Discount, error) {
	if category == "" {
		return s.discountRepo.List()
	}
	return s.discountRepo.ListApplicable(category)
}

// GetDiscount resolves one discount row.
func (s *SettingsService) GetDiscount(id uint) (*model.Discount, error) {
	return s.discountRepo.Get(id)
}
