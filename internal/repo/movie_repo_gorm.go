package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-gin-watchlist/internal/domain"
)

type MovieRepo struct{ db *gorm.DB }

func NewMovieRepo(db *gorm.DB) *MovieRepo { return &MovieRepo{db: db} }

func (r *MovieRepo) List(ctx context.Context) ([]domain.Movie, error) {
	movies := []domain.Movie{}
	if err := r.db.WithContext(ctx).Order("id").Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *MovieRepo) FindByID(ctx context.Context, id uint) (*domain.Movie, error) {
	var m domain.Movie
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MovieRepo) Create(ctx context.Context, m *domain.Movie) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// Update 只写 title/year；没有版本字段，后写覆盖先写
func (r *MovieRepo) Update(ctx context.Context, m *domain.Movie) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Movie{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{"title": m.Title, "year": m.Year})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// mysql 对未变化的行返回 0，再确认一次是否真的不存在
		if _, err := r.FindByID(ctx, m.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *MovieRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Movie{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MovieRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Movie{}).Count(&n).Error
	return n, err
}
