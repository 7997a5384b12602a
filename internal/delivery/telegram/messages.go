// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/spin-quiz/internal/domain/entities"
)

// Plain messages, escaped with md before sending.
const (
	msgWelcome = "Spin the category wheel for a quiz question or practise translating English sentences into Portuguese."
	msgHelp    = "/spin - spin the wheel\n" +
		"/translate - translation practice\n" +
		"/score - show the score\n" +
		"/reset - reset the score\n" +
		"/help - show this help"
	msgPrivateGame      = "This is a private game."
	msgUnknownCommand   = "Unknown command.\n\n" + msgHelp
	msgSpinning         = "🎡 Spinning the wheel..."
	msgAlreadySpinning  = "The wheel is already spinning."
	msgAnswerFirst      = "Answer the current question first."
	msgAlreadyAnswered  = "Already answered"
	msgRoundOver        = "This round is over"
	msgEmptyTranslation = "Write a translation before checking."
	msgPressNext        = "Press Next to continue."
	msgScoreReset       = "Score reset."
	msgInternalError    = "Something went wrong. Please try again."
	msgNoActivity       = "Use /translate to practise translations or /spin to play the wheel."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// welcomeText builds the /start message.
func welcomeText() string {
	return "🎯 " + bold("Spin & Learn") + "\n\n" + md(msgWelcome) + "\n\n" + md(msgHelp)
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func formatScore(score int) string {
	return fmt.Sprintf("🏆 Score: %s", bold(fmt.Sprint(score)))
}

// formatQuestion formats the revealed category and its question.
func formatQuestion(outcome entities.SpinOutcome, q *entities.QuizQuestion) string {
	var sb strings.Builder

	sb.WriteString("🎡 ")
	sb.WriteString(bold(outcome.Category.String()))
	sb.WriteString("\n\n")

	if q == nil {
		sb.WriteString(md("There is no question for this category yet."))
		return sb.String()
	}

	sb.WriteString(md(q.Question))
	return sb.String()
}

// formatAnswer formats the locked answer of a round.
func formatAnswer(outcome entities.SpinOutcome, q *entities.QuizQuestion, res entities.AnswerResult, score int) string {
	var sb strings.Builder

	sb.WriteString(formatQuestion(outcome, q))
	sb.WriteString("\n\n")

	if res.Correct {
		sb.WriteString("✨ ")
		sb.WriteString(bold("Correct!"))
	} else {
		sb.WriteString("💡 ")
		sb.WriteString(bold("Try Again!"))
		sb.WriteString(md(" The answer is "))
		sb.WriteString(bold(res.Answer))
		sb.WriteString(md("."))
	}

	if res.Explanation != "" {
		sb.WriteString("\n\n")
		sb.WriteString(italic(res.Explanation))
	}

	sb.WriteString("\n\n")
	sb.WriteString(formatScore(score))

	return sb.String()
}

// formatPhrase formats the phrase to translate with the progress indicator.
func formatPhrase(pos, total int, phrase entities.TranslationPhrase) string {
	return fmt.Sprintf("%s %s\n\n%s\n%s\n\n%s",
		md(fmt.Sprintf("Phrase %d of %d", pos, total)),
		md(progressBar(pos, total, 10)),
		bold("English sentence:"),
		md(phrase.Sentence),
		md("Reply with the Portuguese translation."),
	)
}

// formatFeedback formats the evaluation of a translation.
func formatFeedback(fb entities.TranslationFeedback, score int) string {
	var sb strings.Builder

	if fb.Correct {
		sb.WriteString("✨ ")
		sb.WriteString(bold("Correct!"))
		sb.WriteString(md(" Great job! Your translation is correct."))
	} else {
		sb.WriteString("💡 ")
		sb.WriteString(bold("Not quite right"))
		sb.WriteString("\n\n")
		sb.WriteString(md("Expected translation:"))
		for _, e := range fb.Expected {
			sb.WriteString("\n• ")
			sb.WriteString(md(e))
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(formatScore(score))

	return sb.String()
}

func progressBar(pos, total, width int) string {
	if total <= 0 {
		return ""
	}
	filled := pos * width / total
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}
