package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/aliskhannn/spin-quiz/internal/config"
	"github.com/aliskhannn/spin-quiz/internal/delivery/telegram"
	"github.com/aliskhannn/spin-quiz/internal/delivery/terminal"
	"github.com/aliskhannn/spin-quiz/internal/domain/entities"
	"github.com/aliskhannn/spin-quiz/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/spin-quiz/internal/infra/postgres/repository"
	"github.com/aliskhannn/spin-quiz/internal/logger"
	"github.com/aliskhannn/spin-quiz/internal/repository"
	"github.com/aliskhannn/spin-quiz/internal/service"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("game stopped with error", zap.Error(err))
		_ = lg.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	lg.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	catalog, err := loadCatalog(ctx, cfg, lg)
	if err != nil {
		return err
	}

	catalogRepo, err := repository.NewCatalogRepository(catalog)
	if err != nil {
		return err
	}

	easing, err := service.ParseEasing(cfg.Wheel.Easing)
	if err != nil {
		return err
	}

	// Initialize services.
	score := service.NewScore(lg)

	wheelCfg := service.DefaultWheelConfig()
	wheelCfg.MinSpins = cfg.Wheel.MinSpins
	wheelCfg.MaxSpins = cfg.Wheel.MaxSpins
	wheelCfg.Duration = cfg.Wheel.Duration
	wheelCfg.FrameInterval = cfg.Wheel.FrameInterval
	wheelCfg.Easing = easing
	wheelCfg.SpinBonus = cfg.Wheel.SpinBonus

	wheel, err := service.NewWheel(wheelCfg, score, lg)
	if err != nil {
		return err
	}

	game := service.NewWheelGame(wheel, catalogRepo, score, lg)

	drill, err := service.NewTranslationDrill(ctx, catalogRepo, service.NewAnswerValidator(), score, lg)
	if err != nil {
		return err
	}

	lg.Info("game ready",
		zap.String("ui", cfg.UI),
		zap.String("data_source", cfg.Data.Source),
		zap.Int("questions", len(catalog.Questions)),
		zap.Int("phrases", len(catalog.Phrases)),
	)

	switch cfg.UI {
	case config.UITelegram:
		bot, err := tgbotapi.NewBotAPI(cfg.Telegram.APIToken)
		if err != nil {
			return fmt.Errorf("create bot: %w", err)
		}
		bot.Debug = cfg.Env != "production"
		lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

		commands := []tgbotapi.BotCommand{
			{Command: "start", Description: "Start the game"},
			{Command: "spin", Description: "Spin the category wheel"},
			{Command: "translate", Description: "Translation practice"},
			{Command: "score", Description: "Show the score"},
			{Command: "reset", Description: "Reset the score"},
			{Command: "help", Description: "Help"},
		}
		if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
			lg.Warn("failed to set bot commands", zap.Error(err))
		}

		handler := telegram.NewHandler(bot, lg, cfg.Telegram.OwnerChatID, game, drill, score)
		return handler.Run(ctx)

	default:
		colors := isatty.IsTerminal(os.Stdout.Fd())
		screen := terminal.NewScreen(os.Stdin, os.Stdout, colors, game, drill, score, lg)
		return screen.Run(ctx)
	}
}

// loadCatalog reads the reference data from the configured source.
func loadCatalog(ctx context.Context, cfg *config.Config, lg *zap.Logger) (*entities.Catalog, error) {
	switch cfg.Data.Source {
	case config.SourceFile:
		lg.Info("loading catalog file", zap.String("path", cfg.Data.Path))
		return repository.LoadCatalogFile(cfg.Data.Path)

	case config.SourcePostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		// The catalog is read once at startup.
		defer pool.Close()

		return pgrepo.NewCatalogSource(postgres.NewTransactor(pool)).Load(ctx)

	default:
		return repository.DefaultCatalog()
	}
}
