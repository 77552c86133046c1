package xormimplement

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"xorm.io/xorm"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/has-1997/Telegram-Nutrition-Assistant/entity"
	"github.com/has-1997/Telegram-Nutrition-Assistant/repository"
	"github.com/has-1997/Telegram-Nutrition-Assistant/repository/factory"
	"github.com/has-1997/Telegram-Nutrition-Assistant/repository/interfaces"
)

const (
	DbTypeSqlite3  = "sqlite3"
	DbTypePostgres = "postgres"
)

// DBParams 数据库连接参数，sqlite3 只用 Path，postgres 用其余字段
type DBParams struct {
	Type     string
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	Path     string
	ShowSql  bool
}

type Factory struct {
	engine *xorm.Engine
}

// NewRepositoryFactory 创建仓库工厂并同步表结构
// 连接参数由调用方显式传入，不在这里读配置
func NewRepositoryFactory(params DBParams) (factory.Factory, error) {
	engine, err := openDB(params)
	if err != nil {
		return nil, err
	}

	//启动时同步表结构，表不存在则创建
	if err := engine.Sync2(new(entity.Profile), new(entity.Meal)); err != nil {
		return nil, fmt.Errorf("failed to sync schema: %w", err)
	}

	return &Factory{engine: engine}, nil
}

// 设置xorm的连接参数
func openDB(params DBParams) (*xorm.Engine, error) {
	var dsn string
	dbType := params.Type
	switch dbType {
	case DbTypePostgres:
		//拼接数据库参数
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			params.Host,
			params.Username,
			params.Password,
			params.Name,
			params.Port)
	case DbTypeSqlite3, "":
		dbType = DbTypeSqlite3
		dsn = params.Path
		if dsn == "" {
			dsn = "nutrition.db"
		}
	default:
		return nil, fmt.Errorf("unsupported db type: %s", params.Type)
	}

	//设置连接参数
	engine, err := xorm.NewEngine(dbType, dsn)
	if err != nil {
		logrus.Errorf("Database connection failed err: %v. Database type: %s", err, dbType)
		return nil, err
	}
	//是否展示sql文件
	engine.ShowSQL(params.ShowSql)
	return engine, nil
}

// 创建一个会话
func (f *Factory) NewSession(ctx context.Context) interfaces.Session {
	return &Session{Session: f.engine.NewSession().Context(ctx)}
}

// NewProfileRepository 创建用户档案仓库
func (f *Factory) NewProfileRepository(session interfaces.Session) (repository.ProfileRepository, error) {
	if s, ok := session.(*Session); ok {
		return NewProfileRepository(s), nil
	}
	return nil, fmt.Errorf("xorm session 结构解析失败")
}

// NewMealLogRepository 创建进食记录仓库
func (f *Factory) NewMealLogRepository(session interfaces.Session) (repository.MealLogRepository, error) {
	if s, ok := session.(*Session); ok {
		return NewMealLogRepository(s), nil
	}
	return nil, fmt.Errorf("xorm session 结构解析失败")
}
