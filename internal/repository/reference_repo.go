package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goodman-rb/ai-content-studio/internal/model"
)

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetAll() (map[string]string, error) {
	var rows []model.Setting
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}
	return settings, nil
}

func (r *settingRepository) Upsert(key, value string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": value}),
	}).Create(&model.Setting{Key: key, Value: value}).Error
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) List() ([]model.SalonService, error) {
	var services []model.SalonService
	err := r.db.Order("name").Find(&services).Error
	return services, err
}

func (r *serviceRepository) Get(id uint) (*model.SalonService, error) {
	var svc model.SalonService
	err := r.db.First(&svc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

type discountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) List() ([]model.Discount, error) {
	var discounts []model.Discount
	err := r.db.Order("name").Find(&discounts).Error
	return discounts, err
}

func (r *discountRepository) Get(id uint) (*model.Discount, error) {
	var d model.Discount
	err := r.db.First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *discountRepository) ListApplicable(category string) ([]model.Discount, error) {
	var discounts []model.Discount
	err := r.db.Where("applicable_category = ? OR applicable_category = ?", category, "*").
		Order("name").
		Find(&discounts).Error
	return discounts, err
}
