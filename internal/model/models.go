package model

import (
	"time"
)

// Post types selectable at creation. Immutable once a post is scheduled.
const (
	PostTypePromotional = "Promotional"
	PostTypeEducational = "Educational"
)

// Scheduled post statuses. The operator sets them directly, no transition
// function is enforced.
const (
	StatusDraft     = "Draft"
	StatusReady     = "Ready"
	StatusPublished = "Published"
)

// PostIDPrefix is the fixed prefix of scheduled post identifiers (POST_<n>).
const PostIDPrefix = "POST_"

// NoDiscountLabel is the sentinel used when a promotional post carries no
// discount.
const NoDiscountLabel = "Нет акции"

// CreatedAtLayout is the timestamp format stamped into ScheduledPost.CreatedAt.
const CreatedAtLayout = "2006-01-02 15:04:05"

// PromptTemplate is an operator-editable prompt blueprint. Placeholders of
// the form {key} are substituted at generation time; templates are never
// deleted, only deactivated.
type PromptTemplate struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PromptID  string    `json:"prompt_id" gorm:"size:64;uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"size:255"`
	Text      string    `json:"text" gorm:"type:text"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SalonService is a reference row describing one salon service.
type SalonService struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:255;not null"`
	Category    string `json:"category" gorm:"size:255"`
	Description string `json:"description" gorm:"type:text"`
	Equipment   string `json:"equipment" gorm:"size:500"`
	Keywords    string `json:"keywords" gorm:"size:500"`
	DefaultAge  string `json:"default_age" gorm:"size:50"`
}

func (SalonService) TableName() string { return "services" }

// Discount is a reference row describing a running promotion.
// ApplicableCategory "*" applies to every service category.
type Discount struct {
	ID                 uint   `json:"id" gorm:"primaryKey"`
	Name               string `json:"name" gorm:"size:255;not null"`
	Description        string `json:"description" gorm:"type:text"`
	ApplicableCategory string `json:"applicable_category" gorm:"size:255"`
}

// Setting is one key/value row of salon-wide generation facts
// (Tone_of_Voice, Address, Blacklist_Words).
type Setting struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Key   string `json:"key" gorm:"size:128;uniqueIndex;not null"`
	Value string `json:"value" gorm:"type:text"`
}

// ScheduledPost is one row of the content plan. PostID is the sole key for
// later edits and deletes; CreatedAt is stamped once at save time and
// preserved verbatim on every edit.
type ScheduledPost struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	PostID      string `json:"post_id" gorm:"size:32;uniqueIndex;not null"`
	PublishAt   string `json:"publish_at" gorm:"size:64"`
	Status      string `json:"status" gorm:"size:32;default:Draft"`
	PostType    string `json:"post_type" gorm:"size:32;not null"`
	VKText      string `json:"vk_text" gorm:"type:text"`
	TGText      string `json:"tg_text" gorm:"type:text"`
	ImagePrompt string `json:"image_prompt" gorm:"type:text"`
	CreatedAt   string `json:"created_at" gorm:"size:64"`
}
