package logic

import (
	"errors"
	"fmt"

	"github.com/venturebridge/vbs/internal/model"
	"gorm.io/gorm"
)

// UserLogic 用户业务逻辑
type UserLogic struct {
	db *gorm.DB
}

// NewUserLogic 创建用户业务逻辑
func NewUserLogic(db *gorm.DB) *UserLogic {
	return &UserLogic{db: db}
}

// RegisterUser 注册用户
func (u *UserLogic) RegisterUser(user *model.UserModel) error {
	if user.Name == "" {
		return &ValidationError{Field: "name", Reason: "不能为空"}
	}
	if user.Email == "" {
		return &ValidationError{Field: "email", Reason: "不能为空"}
	}
	if !user.Role.IsValid() {
		return &ValidationError{Field: "role", Reason: "必须为 startup 或 investor"}
	}

	// 邮箱唯一
	var existing model.UserModel
	if err := u.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return &ValidationError{Field: "email", Reason: "已被注册"}
	}

	if err := u.db.Create(user).Error; err != nil {
		return fmt.Errorf("注册用户失败: %w", err)
	}

	return nil
}

// GetUser 获取用户详情
func (u *UserLogic) GetUser(id int64) (*model.UserModel, error) {
	var user model.UserModel
	if err := u.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("获取用户失败: %w", err)
	}
	return &user, nil
}
