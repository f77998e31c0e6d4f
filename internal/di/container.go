package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	adminRepo "github.com/reshetovitsme/support-relay-bot/internal/modules/admin/repository"
	adminService "github.com/reshetovitsme/support-relay-bot/internal/modules/admin/service"
	broadcastService "github.com/reshetovitsme/support-relay-bot/internal/modules/broadcast/service"
	relayRepo "github.com/reshetovitsme/support-relay-bot/internal/modules/relay/repository"
	userRepo "github.com/reshetovitsme/support-relay-bot/internal/modules/user/repository"
	userService "github.com/reshetovitsme/support-relay-bot/internal/modules/user/service"
	welcomeRepo "github.com/reshetovitsme/support-relay-bot/internal/modules/welcome/repository"
	"github.com/reshetovitsme/support-relay-bot/internal/shared/config"
	httpServer "github.com/reshetovitsme/support-relay-bot/internal/transport/http"
	telegramHandler "github.com/reshetovitsme/support-relay-bot/internal/transport/telegram"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register User Repository
	do.Provide(injector, func(i do.Injector) (userRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := userRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize user repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Admin Repository
	do.Provide(injector, func(i do.Injector) (adminRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := adminRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize admin repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Welcome Repository
	do.Provide(injector, func(i do.Injector) (welcomeRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := welcomeRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize welcome repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Anchor Table
	do.Provide(injector, func(i do.Injector) (relayRepo.Table, error) {
		return relayRepo.NewMemoryTable(), nil
	})

	// Register User Service
	do.Provide(injector, func(i do.Injector) (*userService.Service, error) {
		repo := do.MustInvoke[userRepo.Repository](i)
		return userService.New(repo), nil
	})

	// Register Admin Service
	do.Provide(injector, func(i do.Injector) (*adminService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[adminRepo.Repository](i)
		return adminService.New(repo, cfg.OwnerID), nil
	})

	// Register Broadcast Sender
	do.Provide(injector, func(i do.Injector) (*telegramHandler.Sender, error) {
		return telegramHandler.NewSender(), nil
	})

	// Register Broadcast Service
	do.Provide(injector, func(i do.Injector) (*broadcastService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		users := do.MustInvoke[*userService.Service](i)
		sender := do.MustInvoke[*telegramHandler.Sender](i)
		delay := time.Duration(cfg.BroadcastDelayMS) * time.Millisecond
		return broadcastService.New(users, sender, delay), nil
	})

	// Register Telegram Handler
	do.Provide(injector, func(i do.Injector) (*telegramHandler.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		users := do.MustInvoke[*userService.Service](i)
		admins := do.MustInvoke[*adminService.Service](i)
		welcome := do.MustInvoke[welcomeRepo.Repository](i)
		anchors := do.MustInvoke[relayRepo.Table](i)
		broadcast := do.MustInvoke[*broadcastService.Service](i)
		return telegramHandler.New(cfg, users, admins, welcome, anchors, broadcast), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		users := do.MustInvoke[*userService.Service](i)
		admins := do.MustInvoke[*adminService.Service](i)
		server := httpServer.New(cfg, users, admins)
		server.SetLogger(slog.Default())
		return server, nil
	})

	// Register Bot (needs to be initialized after handlers are ready)
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		handler := do.MustInvoke[*telegramHandler.Handler](i)

		opts := []bot.Option{
			bot.WithDefaultHandler(handler.HandleUpdate),
		}

		b, err := bot.New(cfg.TelegramBotToken, opts...)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}

		// Register bot commands
		handler.RegisterCommands(b)

		// Attach bot to the broadcast sender
		sender := do.MustInvoke[*telegramHandler.Sender](i)
		sender.SetBot(b)

		return b, nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx := context.Background()

	// Shutdown bot if it exists
	if b, err := do.Invoke[*bot.Bot](injector); err == nil && b != nil {
		b.Close(ctx)
	}

	return nil
}
