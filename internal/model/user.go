package model

import (
	"time"
)

// UserModel 平台用户模型
type UserModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Name         string `json:"name" gorm:"not null" binding:"required"`
	Email        string `json:"email" gorm:"uniqueIndex;not null" binding:"required,email"`
	Organization string `json:"organization"`

	// 角色
	Role UserRole `json:"role" gorm:"not null;index"`
}

// UserRole 用户角色
type UserRole string

const (
	UserRoleStartup  UserRole = "startup"  // 创业方
	UserRoleInvestor UserRole = "investor" // 投资方
)

// IsValid 校验角色是否合法
func (r UserRole) IsValid() bool {
	return r == UserRoleStartup || r == UserRoleInvestor
}

// TableName 自定义表名
func (UserModel) TableName() string {
	return "platform_user"
}
