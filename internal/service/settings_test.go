package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/goodman-rb/ai-content-studio/internal/model"
	"github.com/goodman-rb/ai-content-studio/internal/pkg/cache"
	"github.com/goodman-rb/ai-content-studio/internal/repository"
)

func newTestSettingsService(t *testing.T, db *gorm.DB) *SettingsService {
	t.Helper()
	return NewSettingsService(
		repository.NewSettingRepository(db),
		repository.NewPromptRepository(db),
		repository.NewServiceRepository(db),
		repository.NewDiscountRepository(db),
		cache.New(),
	)
}

func TestGetSettingsFallsBackToDefaults(t *testing.T) {
	db := seededDB(t)
	require.NoError(t, db.Where("1 = 1").Delete(&model.Setting{}).Error)
	svc := newTestSettingsService(t, db)

	settings, err := svc.GetSettings()
	require.NoError(t, err)
	require.NotEmpty(t, settings["Tone_of_Voice"])
	require.NotEmpty(t, settings["Address"])
}

func TestUpdateSettingsOverridesDefaults(t *testing.T) {
	db := seededDB(t)
	svc := newTestSettingsService(t, db)

	require.NoError(t, svc.UpdateSettings(map[string]string{
		"Tone_of_Voice": "строгий и деловой",
	}))

	settings, err := svc.GetSettings()
	require.NoError(t, err)
	require.Equal(t, "строгий и деловой", settings["Tone_of_Voice"])
}

func TestUpdatePromptTextVisibleToBuilder(t *testing.T) {
	db := seededDB(t)
	svc := newTestSettingsService(t, db)

	require.NoError(t, svc.UpdatePromptText("educational_post", "Тема: {theme}"))

	prompts, err := svc.ListPrompts()
	require.NoError(t, err)
	var found bool
	for _, p := range prompts {
		if p.PromptID == "educational_post" {
			found = true
			require.Equal(t, "Тема: {theme}", p.Text)
		}
	}
	require.True(t, found)
}

func TestUpdateUnknownPromptReturnsNotFound(t *testing.T) {
	svc := newTestSettingsService(t, seededDB(t))

	err := svc.UpdatePromptText("no_such_prompt", "text")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListServicesWithDiscounts(t *testing.T) {
	db := seededDB(t)
	require.NoError(t, db.Create(&model.SalonService{
		Name:     "Чистка лица",
		Category: "Косметология",
	}).Error)
	require.NoError(t, db.Create(&model.Discount{
		Name:               "Скидка 15%",
		ApplicableCategory: "Косметология",
	}).Error)
	require.NoError(t, db.Create(&model.Discount{
		Name:               "Общая акция",
		ApplicableCategory: "*",
	}).Error)
	require.NoError(t, db.Create(&model.Discount{
		Name:               "Только маникюр",
		ApplicableCategory: "Маникюр",
	}).Error)
	svc := newTestSettingsService(t, db)

	services, err := svc.ListServicesWithDiscounts()
	require.NoError(t, err)
	require.Len(t, services, 1)

	names := make([]string, 0, len(services[0].Discounts))
	for _, d := range services[0].Discounts {
		names = append(names, d.Name)
	}
	require.ElementsMatch(t, []string{"Скидка 15%", "Общая акция"}, names)
}
