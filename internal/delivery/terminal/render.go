package terminal

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/spin-quiz/internal/domain/entities"
)

// ANSI color codes, emptied when colors are disabled.
type palette struct {
	reset, red, green, yellow, blue, cyan, bold string
}

func newPalette(enabled bool) palette {
	if !enabled {
		return palette{}
	}
	return palette{
		reset:  "\033[0m",
		red:    "\033[31m",
		green:  "\033[32m",
		yellow: "\033[33m",
		blue:   "\033[34m",
		cyan:   "\033[36m",
		bold:   "\033[1m",
	}
}

const (
	msgWelcome = "Spin the wheel for a quiz question or practise translating into Portuguese."
	msgHelp    = "Commands:\n" +
		"  spin (s)       spin the category wheel\n" +
		"  translate (t)  translation practice\n" +
		"  score          show the score\n" +
		"  reset          reset the score\n" +
		"  help (h)       show this help\n" +
		"  quit (q)       leave the game"
	msgUnknownCommand   = "Unknown command. Type help for the list of commands."
	msgNoQuestion       = "There is no question for this category yet."
	msgPickOption       = "Pick an option by number: "
	msgInvalidOption    = "Please enter one of the option numbers."
	msgTypeTranslation  = "Type the Portuguese translation (or 'menu'): "
	msgEmptyTranslation = "Write a translation before checking."
	msgInternalError    = "Something went wrong. Please try again."
)

// wheelLine renders the wheel state under the pointer on a single line.
func wheelLine(p palette, cats []entities.Category, angle float64) string {
	idx := entities.IndexAtAngle(angle, len(cats))

	var b strings.Builder
	b.WriteString("\r🎡 ")
	for i, c := range cats {
		if i == idx {
			fmt.Fprintf(&b, "%s%s[%s]%s ", p.bold, p.yellow, c, p.reset)
			continue
		}
		fmt.Fprintf(&b, " %s  ", c)
	}
	fmt.Fprintf(&b, "%7.1f°", angle)

	return b.String()
}

func questionText(p palette, category entities.Category, q *entities.QuizQuestion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s%s\n", p.cyan, category, p.reset)
	fmt.Fprintf(&b, "%s%s%s\n", p.bold, q.Question, p.reset)
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "  %d) %s\n", i+1, opt)
	}
	return b.String()
}

func answerText(p palette, res entities.AnswerResult) string {
	if res.Correct {
		return fmt.Sprintf("%s✨ Correct!%s\n%s\n", p.green, p.reset, res.Explanation)
	}
	return fmt.Sprintf("%s💡 Try Again!%s The answer is %s.\n%s\n", p.red, p.reset, res.Answer, res.Explanation)
}

func phraseText(p palette, pos, total int, phrase entities.TranslationPhrase) string {
	return fmt.Sprintf("Phrase %d of %d %s\n%sEnglish sentence:%s %s\n",
		pos, total, progressBar(pos, total, 20), p.bold, p.reset, phrase.Sentence)
}

func feedbackText(p palette, fb entities.TranslationFeedback) string {
	if fb.Correct {
		return fmt.Sprintf("%s✨ Correct!%s Great job! Your translation is correct.\n", p.green, p.reset)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s💡 Not quite right%s\nExpected translation:\n", p.red, p.reset)
	for _, e := range fb.Expected {
		fmt.Fprintf(&b, "  • %s\n", e)
	}
	return b.String()
}

func progressBar(pos, total, width int) string {
	if total <= 0 {
		return ""
	}
	filled := pos * width / total
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func nextPrompt(last bool) string {
	if last {
		return "Press Enter to start over (or 'menu'): "
	}
	return "Press Enter for the next phrase (or 'menu'): "
}
