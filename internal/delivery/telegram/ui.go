package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/spin-quiz/internal/domain/entities"
)

// buildQuizAnswerKeyboard builds keyboard for quiz question.
func buildQuizAnswerKeyboard(q *entities.QuizQuestion) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		button := tgbotapi.NewInlineKeyboardButtonData(option, buildQuizAnswerCallback(i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildPlayAgainKeyboard builds keyboard shown after a round is over.
func buildPlayAgainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎡 Play again", buildPlayAgainCallback()),
		),
	)
}

// buildTranslateNextKeyboard builds keyboard shown under translation feedback.
func buildTranslateNextKeyboard(last bool) tgbotapi.InlineKeyboardMarkup {
	label := "Next phrase ▶️"
	if last {
		label = "Start over 🔄"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildTranslateNextCallback()),
		),
	)
}
