package logic

import (
	"github.com/venturebridge/vbs/internal/model"
)

// UserDirectory 用户查询协作方，用于创建融资请求前的角色校验
type UserDirectory interface {
	FindUser(id int64) (*model.UserModel, error)
}

// FundRequestFilter 融资请求列表过滤条件
type FundRequestFilter struct {
	StartupId  int64
	InvestorId int64
	Status     model.FundRequestStatus
	Page       int
	PageSize   int
}

// FundRequestStore 融资请求存储协作方
//
// UpdateIfStatus 必须以单条原子条件更新实现（仅当当前状态等于期望
// 状态时更新），返回是否有记录被更新，状态机守卫依赖该语义。
type FundRequestStore interface {
	Create(req *model.FundRequestModel) error
	FindById(id int64) (*model.FundRequestModel, error)
	List(filter FundRequestFilter) ([]model.FundRequestModel, int64, error)
	UpdateIfStatus(id int64, expected model.FundRequestStatus, updates map[string]interface{}) (bool, error)
	// ListCompleted 查询已完成的请求，startupId/investorId 为 0 表示不过滤
	ListCompleted(startupId, investorId int64) ([]model.FundRequestModel, error)
}

// AnalysisStore 分析快照存储协作方
type AnalysisStore interface {
	Create(analysis *model.AnalysisModel) error
	FindById(id int64) (*model.AnalysisModel, error)
	ListByStartup(startupId int64, page, pageSize int) ([]model.AnalysisModel, int64, error)
}

// MessageSink 消息回显协作方，尽力而为，失败不影响主流程
type MessageSink interface {
	Publish(senderId, recipientId int64, content string)
}
