package model

import (
	"time"
)

// MessageModel 聊天消息模型
//
// 融资请求创建后会异步回显一条消息给投资方，消息写入失败不影响请求本身。
type MessageModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	SenderId    int64  `json:"sender_id" gorm:"not null;index"`
	RecipientId int64  `json:"recipient_id" gorm:"not null;index"`
	Kind        string `json:"kind" gorm:"default:'fund_request'"`
	Content     string `json:"content" gorm:"type:text"`
}

// TableName 自定义表名
func (MessageModel) TableName() string {
	return "chat_message"
}
