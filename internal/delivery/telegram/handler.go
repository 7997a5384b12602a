// Package telegram renders the game as a Telegram bot bound to one chat.
package telegram

import (
	"context"
	"sync/atomic"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/spin-quiz/internal/service"
)

type Handler struct {
	bot         Bot
	logger      *zap.Logger
	ownerChatID int64
	game        *service.WheelGame
	drill       *service.TranslationDrill
	score       *service.Score

	// translating is set while a phrase is showing; plain text is then
	// taken as a translation attempt.
	translating atomic.Bool
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	ownerChatID int64,
	game *service.WheelGame,
	drill *service.TranslationDrill,
	score *service.Score,
) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		ownerChatID: ownerChatID,
		game:        game,
		drill:       drill,
		score:       score,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started", zap.Int64("owner_chat_id", h.ownerChatID))
	defer h.logger.Info("telegram handler stopped")
	defer h.game.Close()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID

	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
	)

	if chatID != h.ownerChatID {
		h.logger.Warn("message from foreign chat", zap.Int64("chat_id", chatID))
		h.send(newMessage(chatID, md(msgPrivateGame)))
		return
	}

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			h.translating.Store(false)
			h.drill.Restart()
			h.send(newMessage(chatID, welcomeText()))

		case "spin":
			_ = h.withErrorHandling(h.spinHandler)(ctx, chatID)

		case "translate":
			_ = h.withErrorHandling(h.translateHandler)(ctx, chatID)

		case "score":
			h.send(newMessage(chatID, formatScore(h.score.Value())))

		case "reset":
			h.score.Reset()
			h.send(newMessage(chatID, md(msgScoreReset)))

		case "help":
			h.send(newMessage(chatID, md(msgHelp)))

		default:
			h.send(newMessage(chatID, md(msgUnknownCommand)))
		}

		return
	}

	if !h.translating.Load() {
		h.send(newMessage(chatID, md(msgNoActivity)))
		return
	}

	_ = h.withErrorHandling(h.checkHandler(update.Message.Text))(ctx, chatID)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// answerCallback removes the button spinner, showing text as a toast if set.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}
