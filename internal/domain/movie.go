package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("record not found")

// Year 按文本存储，只校验长度
type Movie struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:60" json:"title"`
	Year  string `gorm:"size:4" json:"year"`
}

func (Movie) TableName() string { return "movie" }

type MovieRepository interface {
	// List 按插入顺序返回全部
	List(ctx context.Context) ([]Movie, error)
	FindByID(ctx context.Context, id uint) (*Movie, error)
	Create(ctx context.Context, m *Movie) error
	Update(ctx context.Context, m *Movie) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}
