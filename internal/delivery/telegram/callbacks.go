package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/spin-quiz/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb, "")
		return
	}

	chatID := cb.Message.Chat.ID
	if chatID != h.ownerChatID {
		h.answerCallback(cb, msgPrivateGame)
		return
	}

	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionQuiz:
		h.handleQuizCallback(cb, data)

	case actionWheel:
		h.answerCallback(cb, "")
		if data.param(0) == wheelAgain {
			_ = h.withErrorHandling(h.spinHandler)(ctx, chatID)
		}

	case actionTranslate:
		h.answerCallback(cb, "")
		if data.param(0) == translateNext {
			h.drill.Next()
			h.translating.Store(true)
			h.sendPhrase(chatID)
		}

	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
		h.answerCallback(cb, "")
	}
}

// handleQuizCallback locks the picked option and edits the question message
// with the result. Only the first pick of a round counts.
func (h *Handler) handleQuizCallback(cb *tgbotapi.CallbackQuery, data callbackData) {
	idx, err := strconv.Atoi(data.param(0))
	if err != nil {
		h.logger.Debug("invalid option in callback", zap.String("data", cb.Data))
		h.answerCallback(cb, "")
		return
	}

	q := h.game.Question()
	outcome, _ := h.game.Outcome()

	res, first, err := h.game.AnswerIndex(idx)
	switch {
	case errors.Is(err, service.ErrNotRevealed):
		h.answerCallback(cb, msgRoundOver)
		return
	case err != nil:
		h.logger.Debug("answer rejected", zap.Error(err))
		h.answerCallback(cb, "")
		return
	case !first:
		h.answerCallback(cb, msgAlreadyAnswered)
		return
	}

	h.answerCallback(cb, "")

	edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, formatAnswer(outcome, q, res, h.score.Value()))
	kb := buildPlayAgainKeyboard()
	edit.ReplyMarkup = &kb
	h.send(edit)
}
