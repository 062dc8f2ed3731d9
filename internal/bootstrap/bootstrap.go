// Package bootstrap 建表和灌入演示数据，由运维命令调用
package bootstrap

import (
	"context"

	"gorm.io/gorm"

	"go-gin-watchlist/internal/domain"
	"go-gin-watchlist/internal/repo"
)

const ForgeUserName = "imtinge"

// ForgeMovies 是 forge 写入的固定数据，顺序即插入顺序
var ForgeMovies = []domain.Movie{
	{Title: "My Neighbor Totoro", Year: "1988"},
	{Title: "Dead Poets Society", Year: "1989"},
	{Title: "A Perfect World", Year: "1993"},
	{Title: "Leon", Year: "1994"},
	{Title: "Mahjong", Year: "1996"},
	{Title: "Swallowtail Butterfly", Year: "1996"},
	{Title: "King of Comedy", Year: "1999"},
	{Title: "Devils on the Doorstep", Year: "1999"},
	{Title: "WALL-E", Year: "2008"},
	{Title: "The Pork of Music", Year: "2012"},
}

func models() []any { return []any{&domain.User{}, &domain.Movie{}} }

// InitDB 建表；drop 为 true 时先删表
func InitDB(ctx context.Context, db *gorm.DB, drop bool) error {
	m := db.WithContext(ctx).Migrator()
	if drop {
		if err := m.DropTable(models()...); err != nil {
			return err
		}
	}
	return db.WithContext(ctx).AutoMigrate(models()...)
}

// Forge 重建表并在一个事务里写入用户和固定电影列表
func Forge(ctx context.Context, db *gorm.DB) error {
	if err := InitDB(ctx, db, true); err != nil {
		return err
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.NewUserRepo(tx).Create(ctx, &domain.User{Name: ForgeUserName}); err != nil {
			return err
		}
		movies := repo.NewMovieRepo(tx)
		for _, fm := range ForgeMovies {
			m := domain.Movie{Title: fm.Title, Year: fm.Year}
			if err := movies.Create(ctx, &m); err != nil {
				return err
			}
		}
		return nil
	})
}
