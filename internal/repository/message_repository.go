package repository

import (
	"github.com/venturebridge/vbs/internal/model"
	"gorm.io/gorm"
)

// MessageRepository 聊天消息存储实现
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息存储
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create 写入消息
func (r *MessageRepository) Create(message *model.MessageModel) error {
	return r.db.Create(message).Error
}
