package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role 用户角色，封闭集合.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
	// RoleUnauthorized 显式的全拒绝角色，用于测试默认拒绝路径.
	RoleUnauthorized Role = "unauthorized"
)

// User API Key 对应的用户记录；api_key 是不可变的身份令牌.
type User struct {
	ID       string  `gorm:"type:uuid;primaryKey"          json:"id"`
	Username string  `gorm:"size:255;not null;uniqueIndex" json:"username"`
	APIKey   string  `gorm:"column:api_key;size:255;not null;uniqueIndex" json:"-"`
	Password *string `gorm:"size:255"                      json:"-"`
	Role     Role    `gorm:"size:32;not null"              json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	return nil
}
