package tracker

import "github.com/balkashynov/studylog/internal/models"

// MemoryHistory keeps archived sessions in a slice for the lifetime of the process
type MemoryHistory struct {
	sessions []models.Session
}

// NewMemoryHistory returns an empty history
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{}
}

func (h *MemoryHistory) Append(s *models.Session) error {
	s.ID = uint(len(h.sessions) + 1)
	h.sessions = append(h.sessions, *s)
	return nil
}

func (h *MemoryHistory) Recent(n int) ([]models.Session, error) {
	if n <= 0 {
		return nil, nil
	}
	start := len(h.sessions) - n
	if start < 0 {
		start = 0
	}
	return append([]models.Session(nil), h.sessions[start:]...), nil
}

func (h *MemoryHistory) All() ([]models.Session, error) {
	return append([]models.Session(nil), h.sessions...), nil
}
