package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/goodman-rb/ai-content-studio/internal/model"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *model.ScheduledPost) error {
	var count int64
	if err := r.db.Model(&model.ScheduledPost{}).
		Where("post_id = ?", post.PostID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, post.PostID)
	}
	return r.db.Create(post).Error
}

func (r *postRepository) List() ([]model.ScheduledPost, error) {
	var posts []model.ScheduledPost
	err := r.db.Order("id").Find(&posts).Error
	return posts, err
}

// GetByPostID uses first-match semantics: the row with the lowest primary
// key wins should a duplicate ever slip in.
func (r *postRepository) GetByPostID(postID string) (*model.ScheduledPost, error) {
	var post model.ScheduledPost
	err := r.db.Where("post_id = ?", postID).Order("id").First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Save(post *model.ScheduledPost) error {
	return r.db.Save(post).Error
}

func (r *postRepository) Delete(postID string) error {
	post, err := r.GetByPostID(postID)
	if err != nil {
		return err
	}
	return r.db.Delete(post).Error
}

func (r *postRepository) NextPostID() (string, error) {
	var ids []string
	if err := r.db.Model(&model.ScheduledPost{}).Pluck("post_id", &ids).Error; err != nil {
		return "", err
	}

	maxNum := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, model.PostIDPrefix) {
			continue
		}
		num, err := strconv.Atoi(strings.TrimPrefix(id, model.PostIDPrefix))
		if err != nil {
			// Malformed suffixes (POST_abc) do not participate.
			continue
		}
		if num > maxNum {
			maxNum = num
		}
	}

	return fmt.Sprintf("%s%d", model.PostIDPrefix, maxNum+1), nil
}
