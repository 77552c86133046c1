// Package controller 只读查询接口
// 机器人是主要交互面，这里暴露日报和档案的 HTTP 查询，便于排查和联调
package controller

import (
	repofactory "github.com/has-1997/Telegram-Nutrition-Assistant/repository/factory"
	servicefactory "github.com/has-1997/Telegram-Nutrition-Assistant/service/factory"
)

type Controller struct {
	serviceFactory    *servicefactory.Factory
	repositoryFactory repofactory.Factory
}

func New(serviceFactory *servicefactory.Factory, repositoryFactory repofactory.Factory) *Controller {
	return &Controller{
		serviceFactory:    serviceFactory,
		repositoryFactory: repositoryFactory,
	}
}
