package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionQuiz      = "quiz"
	actionWheel     = "wheel"
	actionTranslate = "translate"
)

// Wheel sub-actions.
const (
	wheelAgain = "again"
)

// Translate sub-actions.
const (
	translateNext = "next"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildQuizAnswerCallback builds callback data for picking an answer option.
func buildQuizAnswerCallback(optionIndex int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{strconv.Itoa(optionIndex)},
	}.encode()
}

// buildPlayAgainCallback builds callback data for spinning once more.
func buildPlayAgainCallback() string {
	return callbackData{
		Action: actionWheel,
		Params: []string{wheelAgain},
	}.encode()
}

// buildTranslateNextCallback builds callback data for moving to the next phrase.
func buildTranslateNextCallback() string {
	return callbackData{
		Action: actionTranslate,
		Params: []string{translateNext},
	}.encode()
}
