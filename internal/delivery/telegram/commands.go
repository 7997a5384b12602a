package telegram

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/spin-quiz/internal/domain/entities"
	"github.com/aliskhannn/spin-quiz/internal/service"
)

// spinHandler starts a new round in a fresh message. The message is edited
// once the wheel settles.
func (h *Handler) spinHandler(ctx context.Context, chatID int64) error {
	switch h.game.State() {
	case entities.RoundSpinning:
		h.send(newMessage(chatID, md(msgAlreadySpinning)))
		return nil
	case entities.RoundRevealed:
		if h.game.Question() != nil {
			h.send(newMessage(chatID, md(msgAnswerFirst)))
			return nil
		}
	}
	h.game.PlayAgain()
	h.translating.Store(false)

	sent, err := h.bot.Send(newMessage(chatID, md(msgSpinning)))
	if err != nil {
		return fmt.Errorf("send spin message: %w", err)
	}

	view := &spinView{handler: h, chatID: chatID, messageID: sent.MessageID}
	if _, ok := h.game.Spin(ctx, view); !ok {
		h.send(newEdit(chatID, sent.MessageID, md(msgAlreadySpinning)))
	}

	return nil
}

// translateHandler shows the current phrase and switches plain text to
// translation attempts.
func (h *Handler) translateHandler(_ context.Context, chatID int64) error {
	h.translating.Store(true)
	h.sendPhrase(chatID)
	return nil
}

func (h *Handler) checkHandler(text string) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		fb, err := h.drill.Check(text)
		switch {
		case errors.Is(err, service.ErrEmptyTranslation):
			h.send(newMessage(chatID, md(msgEmptyTranslation)))
			return nil
		case errors.Is(err, service.ErrAlreadyChecked):
			msg := newMessage(chatID, md(msgPressNext))
			msg.ReplyMarkup = buildTranslateNextKeyboard(h.drill.IsLast())
			h.send(msg)
			return nil
		case err != nil:
			return fmt.Errorf("check translation: %w", err)
		}

		msg := newMessage(chatID, formatFeedback(fb, h.score.Value()))
		msg.ReplyMarkup = buildTranslateNextKeyboard(h.drill.IsLast())
		h.send(msg)
		return nil
	}
}

func (h *Handler) sendPhrase(chatID int64) {
	pos, total := h.drill.Progress()
	h.send(newMessage(chatID, formatPhrase(pos, total, h.drill.Current())))
}

// spinView edits the spin message when the wheel settles. Frames are not
// rendered, the Bot API is too slow for animation.
type spinView struct {
	handler   *Handler
	chatID    int64
	messageID int
}

func (v *spinView) OnFrame(float64) {}

func (v *spinView) OnRevealed(outcome entities.SpinOutcome, q *entities.QuizQuestion) {
	edit := newEdit(v.chatID, v.messageID, formatQuestion(outcome, q))
	if q != nil {
		kb := buildQuizAnswerKeyboard(q)
		edit.ReplyMarkup = &kb
	} else {
		kb := buildPlayAgainKeyboard()
		edit.ReplyMarkup = &kb
	}

	v.handler.logger.Debug("spin settled",
		zap.Int64("chat_id", v.chatID),
		zap.String("category", outcome.Category.String()),
	)
	v.handler.send(edit)
}
