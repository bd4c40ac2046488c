package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/goodman-rb/ai-content-studio/internal/model"
)

type promptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &promptRepository{db: db}
}

func (r *promptRepository) GetActive(promptID string) (*model.PromptTemplate, error) {
	var tmpl model.PromptTemplate
	err := r.db.Where("prompt_id = ? AND active = ?", promptID, true).First(&tmpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *promptRepository) ListActive() ([]model.PromptTemplate, error) {
	var tmpls []model.PromptTemplate
	err := r.db.Where("active = ?", true).Order("id").Find(&tmpls).Error
	return tmpls, err
}

func (r *promptRepository) UpdateText(promptID, text string) error {
	res := r.db.Model(&model.PromptTemplate{}).
		Where("prompt_id = ?", promptID).
		Updates(map[string]interface{}{
			"text":       text,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *promptRepository) Create(tmpl *model.PromptTemplate) error {
	return r.db.Create(tmpl).Error
}

func (r *promptRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.PromptTemplate{}).Count(&count).Error
	return count, err
}
