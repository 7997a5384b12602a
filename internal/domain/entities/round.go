package entities

// RoundState is the state of a wheel round.
type RoundState int

const (
	RoundIdle     RoundState = iota // waiting for a spin
	RoundSpinning                   // animation in progress
	RoundRevealed                   // category revealed, waiting for an answer
	RoundAnswered                   // answer locked, waiting for play-again
)

func (s RoundState) String() string {
	switch s {
	case RoundIdle:
		return "idle"
	case RoundSpinning:
		return "spinning"
	case RoundRevealed:
		return "revealed"
	case RoundAnswered:
		return "answered"
	default:
		return "unknown"
	}
}

// AnswerResult is the locked result of a quiz question.
type AnswerResult struct {
	Selected    string // option picked by the player
	Correct     bool   // whether Selected equals the canonical answer
	Answer      string // canonical answer
	Explanation string // explanation of the canonical answer
}

// TranslationFeedback is the result of checking a translation attempt.
type TranslationFeedback struct {
	Input    string   // text submitted by the player
	Correct  bool     // whether any accepted translation matched
	Expected []string // accepted translations, shown on a miss
}
