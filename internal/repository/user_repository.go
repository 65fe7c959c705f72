package repository

import (
	"errors"
	"fmt"

	"github.com/venturebridge/vbs/internal/logic"
	"github.com/venturebridge/vbs/internal/model"
	"gorm.io/gorm"
)

// UserRepository 用户查询实现，提供给融资请求的角色校验使用
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户存储
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindUser 按主键查询用户
func (r *UserRepository) FindUser(id int64) (*model.UserModel, error) {
	var user model.UserModel
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, logic.ErrNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}
