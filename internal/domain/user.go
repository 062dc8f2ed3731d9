package domain

import "context"

// User 只由 forge 命令写入，页面只读取第一条做横幅
type User struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:20" json:"name"`
}

func (User) TableName() string { return "user" }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	// First 没有任何用户时返回 (nil, nil)
	First(ctx context.Context) (*User, error)
}
