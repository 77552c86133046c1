// Package factory 服务层装配
package factory

import (
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/agent"
	"github.com/has-1997/Telegram-Nutrition-Assistant/repository/factory"
	"github.com/has-1997/Telegram-Nutrition-Assistant/service/conversation"
	"github.com/has-1997/Telegram-Nutrition-Assistant/service/dispatch"
	"github.com/has-1997/Telegram-Nutrition-Assistant/service/report"
	"github.com/has-1997/Telegram-Nutrition-Assistant/service/session"
)

// Factory 把仓库工厂、会话存储和各 LLM 组件装配成服务
// 依赖全部显式注入，方便测试时替换
type Factory struct {
	repositoryFactory factory.Factory
	sessionStore      session.Store
	classifier        *agent.Classifier
	estimator         *agent.Estimator
}

func NewServiceFactory(repositoryFactory factory.Factory, sessionStore session.Store,
	classifier *agent.Classifier, estimator *agent.Estimator) *Factory {
	return &Factory{
		repositoryFactory: repositoryFactory,
		sessionStore:      sessionStore,
		classifier:        classifier,
		estimator:         estimator,
	}
}

// NewReportService 获取日报服务
func (f *Factory) NewReportService() *report.Service {
	return report.NewService(f.repositoryFactory)
}

// NewDispatchService 获取主模式分发服务
func (f *Factory) NewDispatchService() *dispatch.Service {
	return dispatch.NewService(f.repositoryFactory, f.classifier, f.NewReportService())
}

// NewConversationEngine 获取会话路由引擎
func (f *Factory) NewConversationEngine() *conversation.Engine {
	return conversation.NewEngine(f.repositoryFactory, f.sessionStore, f.estimator, f.NewDispatchService())
}
