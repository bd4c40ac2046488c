package repository

import (
	"errors"

	"github.com/goodman-rb/ai-content-studio/internal/model"
)

var ErrNotFound = errors.New("record not found")

// ErrDuplicateID is returned when a scheduled post id already exists.
// Duplicate ids are a contract violation and are rejected at write time.
var ErrDuplicateID = errors.New("duplicate post id")

type PromptRepository interface {
	// GetActive returns the active template with the given prompt id.
	GetActive(promptID string) (*model.PromptTemplate, error)
	ListActive() ([]model.PromptTemplate, error)
	UpdateText(promptID, text string) error
	Create(tmpl *model.PromptTemplate) error
	Count() (int64, error)
}

type SettingRepository interface {
	GetAll() (map[string]string, error)
	Upsert(key, value string) error
}

type ServiceRepository interface {
	List() ([]model.SalonService, error)
	Get(id uint) (*model.SalonService, error)
}

type DiscountRepository interface {
	List() ([]model.Discount, error)
	Get(id uint) (*model.Discount, error)
	// ListApplicable returns discounts for the category plus wildcard ones.
	ListApplicable(category string) ([]model.Discount, error)
}

type PostRepository interface {
	Create(post *model.ScheduledPost) error
	List() ([]model.ScheduledPost, error)
	GetByPostID(postID string) (*model.ScheduledPost, error)
	Save(post *model.ScheduledPost) error
	Delete(postID string) error
	// NextPostID computes POST_<max numeric suffix + 1> over existing ids,
	// ignoring malformed suffixes. Gaps are allowed, ids are never reused.
	NextPostID() (string, error)
}
