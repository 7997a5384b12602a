package service

import (
	"sync"

	"go.uber.org/zap"
)

// Score is the shared score counter of the game. It is owned by the
// application and handed to every game mode that awards points.
type Score struct {
	mu     sync.Mutex
	value  int
	logger *zap.Logger
}

// NewScore creates a zeroed score.
func NewScore(logger *zap.Logger) *Score {
	return &Score{logger: logger}
}

// Increment adds amount to the score. Non-positive amounts are ignored.
func (s *Score) Increment(amount int) {
	if amount <= 0 {
		return
	}

	s.mu.Lock()
	s.value += amount
	v := s.value
	s.mu.Unlock()

	s.logger.Debug("score incremented", zap.Int("amount", amount), zap.Int("score", v))
}

// Reset sets the score back to zero.
func (s *Score) Reset() {
	s.mu.Lock()
	s.value = 0
	s.mu.Unlock()

	s.logger.Debug("score reset")
}

// Value returns the current score.
func (s *Score) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}
