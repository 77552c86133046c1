package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/has-1997/Telegram-Nutrition-Assistant/bot"
	"github.com/has-1997/Telegram-Nutrition-Assistant/config"
	"github.com/has-1997/Telegram-Nutrition-Assistant/controller"
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/agent"
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/clients/llm_model"
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/clients/media"
	redisclient "github.com/has-1997/Telegram-Nutrition-Assistant/pkg/clients/redis"
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/projectlog"
	"github.com/has-1997/Telegram-Nutrition-Assistant/repository/xormimplement"
	"github.com/has-1997/Telegram-Nutrition-Assistant/router"
	servicefactory "github.com/has-1997/Telegram-Nutrition-Assistant/service/factory"
	"github.com/has-1997/Telegram-Nutrition-Assistant/service/session"
)

func main() {
	defer func() {
		if serviceErr := recover(); serviceErr != nil {
			var buf [4096]byte
			n := runtime.Stack(buf[:], false)
			log.Println("The service exits abnormally, error message:【", serviceErr, "】")
			log.Println("Stack info: ")
			fmt.Printf("==> %s\n", string(buf[:n]))

			os.Exit(1)
		}
	}()

	// 本地开发时从 .env 读敏感配置，文件不存在不算错
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	projectlog.Init()
	cfg := config.GetInstance()

	// 凭证缺失属于启动期致命错误，不能拖到请求期按道歉路径处理
	if err := checkRequiredCredentials(
		cfg.GetString(config.TelegramBotToken),
		cfg.GetString(config.ClientChatModelApiKey),
	); err != nil {
		panic(err.Error())
	}

	repositoryFactory, err := xormimplement.NewRepositoryFactory(xormimplement.DBParams{
		Type:     cfg.GetString(config.BaseDbXormType),
		Host:     cfg.GetString(config.BaseDbXormHost),
		Port:     cfg.GetString(config.BaseDbXormPort),
		Username: cfg.GetString(config.BaseDbXormUsername),
		Password: cfg.GetString(config.BaseDbXormPassword),
		Name:     cfg.GetString(config.BaseDbXormName),
		Path:     cfg.GetString(config.BaseDbXormPath),
		ShowSql:  cfg.GetBool(config.BaseDbXormShowsql),
	})
	if err != nil {
		panic("failed to create repository factory: " + err.Error())
	}

	sessionStore := newSessionStore()

	chatClient := llm_model.NewClientWithParams(llm_model.ClientParams{
		BaseURL:   cfg.GetString(config.ClientChatModelAddr),
		APIKey:    cfg.GetString(config.ClientChatModelApiKey),
		ModelName: cfg.GetString(config.ClientChatModelModel),
	},
		llm_model.WithTemperature(float32(cfg.GetFloat64OrDefault(config.ClientChatModelTemperature, 0.2))),
		llm_model.WithMaxTokens(cfg.GetIntOrDefault(config.ClientChatModelMaxTokens, 1024)),
	)
	logrus.Infof("chat model client ready, model: %s", chatClient.GetConfig().ModelName)

	mediaClient := media.NewClientWithParams(media.ClientParams{
		BaseURL: cfg.GetString(config.ClientChatModelAddr),
		APIKey:  cfg.GetString(config.ClientChatModelApiKey),
	},
		media.WithTranscribeModel(cfg.GetString(config.ClientMediaTranscribeModel)),
		media.WithVisionModel(cfg.GetString(config.ClientMediaVisionModel)),
	)

	serviceFactory := servicefactory.NewServiceFactory(
		repositoryFactory,
		sessionStore,
		agent.NewClassifier(chatClient),
		agent.NewEstimator(chatClient),
	)

	nutritionBot, err := bot.New(bot.Params{
		Token:       cfg.GetString(config.TelegramBotToken),
		PollTimeout: cfg.GetIntOrDefault(config.TelegramPollTimeout, config.DefaultPollTimeoutSecs),
		DownloadDir: cfg.GetStringOrDefault(config.TelegramDownloadDir, "./downloads"),
		Debug:       cfg.GetBool(config.TelegramDebug),
	},
		serviceFactory.NewConversationEngine(),
		mediaClient,
		agent.NewPhotoAnalyzer(mediaClient),
	)
	if err != nil {
		panic("failed to create telegram bot: " + err.Error())
	}

	ctx, cancel := context.WithCancel(context.Background())
	go nutritionBot.Start(ctx)

	server := &http.Server{
		Addr:    cfg.GetStringOrDefault(config.AppHost, ":8080"),
		Handler: router.New(controller.New(serviceFactory, repositoryFactory)),
	}
	go startServer(server)

	waitStop(cancel, server)
}

func checkRequiredCredentials(botToken, llmAPIKey string) error {
	if strings.TrimSpace(botToken) == "" {
		return fmt.Errorf("missing required credential: %s", config.TelegramBotToken)
	}
	if strings.TrimSpace(llmAPIKey) == "" {
		return fmt.Errorf("missing required credential: %s", config.ClientChatModelApiKey)
	}
	return nil
}

func newSessionStore() session.Store {
	cfg := config.GetInstance()
	backend := cfg.GetStringOrDefault(config.SessionStoreBackend, config.SessionStoreMemory)
	if backend != config.SessionStoreRedis {
		return session.NewMemoryStore()
	}

	redisCfg := &redisclient.RedisConfig{
		Host:     cfg.GetString(config.RedisClientHost),
		Password: cfg.GetString(config.RedisClientPassword),
		Db:       cfg.GetInt(config.RedisClientDb),
	}
	client, err := redisclient.NewRedisSingleClient(redisCfg)
	if err != nil {
		panic("failed to connect redis for session store: " + err.Error())
	}

	ttl := time.Duration(cfg.GetIntOrDefault(config.SessionTTLSeconds, config.DefaultSessionTTLSecs)) * time.Second
	return session.NewRedisStore(client, ttl)
}

func startServer(server *http.Server) {
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.Errorf("Failed to ListenAndServe at %v, err = %v", server.Addr, err)
		os.Exit(1)
	}
}

func waitStop(cancel context.CancelFunc, server *http.Server) {
	sc := make(chan os.Signal, 1)
	signal.Notify(sc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	sig := <-sc
	log.Printf("exit: signal=<%d>.\n", sig)

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("http server shutdown error: %v", err)
	}

	switch sig {
	case syscall.SIGTERM:
		log.Println("exit: bye :-).")
		os.Exit(0)
	default:
		log.Println("exit: bye :-(.")
		os.Exit(1)
	}
}
