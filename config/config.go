package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/has-1997/Telegram-Nutrition-Assistant/constant"
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/file"
)

const (
	OSConfigPath      = "CONFIG_PATH"
	DefaultConfigName = "config.yaml"
	TypeYaml          = "yaml"
	ProjectName       = "Telegram-Nutrition-Assistant"

	AppLogLevel        = "app.log.level"
	AppLogReportcaller = "app.log.reportcaller"
	AppHost            = "app.host"

	// telegram 机器人配置
	TelegramBotToken    = "telegram.bot_token"
	TelegramPollTimeout = "telegram.poll_timeout"
	TelegramDownloadDir = "telegram.download_dir"
	TelegramDebug       = "telegram.debug"

	BaseDbXormType     = "base.db.xorm.type"
	BaseDbXormUsername = "base.db.xorm.username"
	BaseDbXormPassword = "base.db.xorm.password"
	BaseDbXormHost     = "base.db.xorm.host"
	BaseDbXormPort     = "base.db.xorm.port"
	BaseDbXormName     = "base.db.xorm.name"
	BaseDbXormPath     = "base.db.xorm.path" // sqlite3 数据库文件路径
	BaseDbXormShowsql  = "base.db.xorm.showsql"

	ClientsCommonRequestLog = "clients.http.requestLog" // pkg/clients http client 是否打印请求

	// 大模型调用配置
	ClientChatModelAddr        = "clients.llmModel.addr"
	ClientChatModelModel       = "clients.llmModel.model"
	ClientChatModelApiKey      = "clients.llmModel.apiKey"
	ClientChatModelTemperature = "clients.llmModel.temperature"
	ClientChatModelMaxTokens   = "clients.llmModel.maxTokens"

	// 语音转写/图片识别模型配置
	ClientMediaTranscribeModel = "clients.media.transcribeModel"
	ClientMediaVisionModel     = "clients.media.visionModel"

	// redis 配置
	RedisClientDb       = "clients.redisClient.db"
	RedisClientHost     = "clients.redisClient.host"
	RedisClientPassword = "clients.redisClient.password"

	// 会话状态存储配置
	SessionStoreBackend    = "session.store"       // memory | redis
	SessionTTLSeconds      = "session.ttl_seconds" // redis 存储时的过期时间
	SessionStoreMemory     = "memory"
	SessionStoreRedis      = "redis"
	DefaultSessionTTLSecs  = 86400
	DefaultPollTimeoutSecs = 60
)

var instance *config
var once sync.Once

type config struct {
	*viper.Viper
}

func GetInstance() *config {
	once.Do(func() {
		var configPath string

		envConfigPath := os.Getenv(OSConfigPath)
		if strings.EqualFold(envConfigPath, constant.EmptyString) {
			configPath = fmt.Sprintf("./%v", DefaultConfigName)
			if !file.CheckFileIsExist(configPath) {
				path, err := os.Getwd()
				if err != nil {
					panic("get config path error:" + err.Error())
				}
				if idx := strings.Index(path, ProjectName); idx >= 0 {
					configPath = fmt.Sprintf("%v/%v", path[:idx+len(ProjectName)], DefaultConfigName)
				}
			}
			log.Infof("use default path %s", configPath)
		} else {
			log.Infof("find success in constant CONFIG_PATH, use %s", envConfigPath)
			configPath = fmt.Sprintf("%v/%v", envConfigPath, DefaultConfigName)
		}

		configInstance := &config{Viper: viper.New()}
		configInstance.SetConfigType(TypeYaml)
		configInstance.SetConfigFile(configPath)
		if err := configInstance.ReadInConfig(); err != nil {
			panic(err)
		}

		configInstance.AutomaticEnv()
		replacer := strings.NewReplacer(".", "_")
		configInstance.SetEnvKeyReplacer(replacer)

		instance = configInstance
	})
	return instance
}

func (c *config) GetString(key string) string {
	return c.Viper.GetString(key)
}

func (c *config) GetStringOrDefault(key string, defaultValue string) string {
	if c.IsSet(key) {
		return c.GetString(key)
	}

	return defaultValue
}

func (c *config) GetInt(key string) int {
	return c.Viper.GetInt(key)
}

func (c *config) GetIntOrDefault(key string, defaultValue int) int {
	if c.IsSet(key) {
		return c.GetInt(key)
	}

	return defaultValue
}

func (c *config) GetBool(key string) bool {
	return c.Viper.GetBool(key)
}

func (c *config) GetBoolOrDefault(key string, defaultValue bool) bool {
	if c.IsSet(key) {
		return c.GetBool(key)
	}

	return defaultValue
}

func (c *config) GetFloat64(key string) float64 {
	return c.Viper.GetFloat64(key)
}

func (c *config) GetFloat64OrDefault(key string, defaultValue float64) float64 {
	if c.IsSet(key) {
		return c.GetFloat64(key)
	}

	return defaultValue
}
