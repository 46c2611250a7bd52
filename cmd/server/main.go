package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/starpoint/forum/internal/config"
	"github.com/starpoint/forum/internal/exchange"
	"github.com/starpoint/forum/internal/forum"
	"github.com/starpoint/forum/internal/post"
	"github.com/starpoint/forum/internal/reply"
	"github.com/starpoint/forum/internal/server"
	"github.com/starpoint/forum/internal/storage/memory"
	"github.com/starpoint/forum/internal/storage/postgres"
	"github.com/starpoint/forum/internal/user"
	"github.com/starpoint/forum/models"
)

func main() {
	storageType := flag.String("storage", "memory", "Тип хранилища: memory или postgres")
	flag.Parse()

	log := logrus.New()

	// загружаем .env из нашего config.go
	config.LoadEnv()

	var postStore post.PostStorage
	var replyStore reply.ReplyStorage
	var userStore user.UserStorage

	switch *storageType {
	case "postgres":
		if err := postgres.InitDB(); err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		err := postgres.DB.AutoMigrate(&models.User{}, &models.Post{}, &models.Reply{}).Error
		if err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		log.Info("Используется PostgreSQL хранилище")
		postStore = postgres.NewPostPostgresStorage()
		replyStore = postgres.NewReplyPostgresStorage()
		userStore = postgres.NewUserPostgresStorage()

	case "memory":
		// как и в исходном деплое: данные живут до перезапуска
		log.Info("Используется in-memory хранилище")
		postStore = memory.NewPostMemoryStorage()
		replyStore = memory.NewReplyMemoryStorage(postStore)
		userStore = memory.NewUserMemoryStorage()

	default:
		log.Fatalf("неизвестный тип хранилища: %s", *storageType)
	}

	forumService := forum.NewService(
		postStore,
		replyStore,
		userStore,
		config.GetEnvBool("REQUIRE_AUTH_FOR_POSTING", true),
	)

	// ключ и адрес фида только из окружения
	exchangeClient := exchange.NewClient(
		config.GetEnv("EXCHANGE_API_URL"),
		config.GetEnv("EXCHANGE_API_KEY"),
	)

	srv := server.New(forumService, userStore, exchangeClient, log)

	// HTTP сервер
	httpServer := &http.Server{
		Addr:    ":" + config.GetEnvDefault("PORT", "8080"),
		Handler: srv.Handler(),
	}

	// запуск HTTP сервера
	go func() {
		log.Infof("Сервер запущен на http://localhost%s/", httpServer.Addr)
		// строка не возвращается (блокирует поток) пока не выполнится Shutdown() или не произойдет фатальная ошибка
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка сервера: %v", err)
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // ждет сигнал

	log.Info("Завершение...")

	if *storageType == "postgres" {
		if err := postgres.CloseDB(); err != nil {
			log.Errorf("Ошибка при закрытии БД: %v", err)
		}
	}

	if err := httpServer.Shutdown(context.Background()); err != nil {
		log.Fatalf("Ошибка при завершении сервера: %v", err)
	}

	log.Info("Сервер остановлен корректно")
}
