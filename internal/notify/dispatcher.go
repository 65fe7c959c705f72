package notify

import (
	"github.com/panjf2000/ants/v2"
	"github.com/venturebridge/vbs/internal/logger"
	"github.com/venturebridge/vbs/internal/model"
	"github.com/venturebridge/vbs/internal/repository"
	"gorm.io/gorm"
)

// Dispatcher 异步消息回显分发器
//
// 融资请求创建后把一条消息写入聊天记录，任务提交到协程池执行，
// 写入失败只记日志，不影响主流程。
type Dispatcher struct {
	pool     *ants.Pool
	messages *repository.MessageRepository
}

// NewDispatcher 创建分发器
func NewDispatcher(db *gorm.DB, poolSize int) (*Dispatcher, error) {
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	return &Dispatcher{
		pool:     pool,
		messages: repository.NewMessageRepository(db),
	}, nil
}

// Publish 异步写入一条消息，尽力而为
func (d *Dispatcher) Publish(senderId, recipientId int64, content string) {
	message := &model.MessageModel{
		SenderId:    senderId,
		RecipientId: recipientId,
		Kind:        "fund_request",
		Content:     content,
	}

	err := d.pool.Submit(func() {
		if err := d.messages.Create(message); err != nil {
			logger.Warn("Failed to echo fund request message from %d to %d: %v", senderId, recipientId, err)
		}
	})
	if err != nil {
		logger.Warn("Message echo dropped, pool unavailable: %v", err)
	}
}

// Close 释放协程池
func (d *Dispatcher) Close() {
	d.pool.Release()
}
