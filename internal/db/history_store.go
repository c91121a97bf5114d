package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/studylog/internal/models"
)

// HistoryStore archives completed sessions in the sessions table
type HistoryStore struct {
	db  *gorm.DB
	loc *time.Location
}

// NewHistoryStore wraps an open database. Timestamps read back are converted to loc.
func NewHistoryStore(db *gorm.DB, loc *time.Location) *HistoryStore {
	if loc == nil {
		loc = time.Local
	}
	return &HistoryStore{db: db, loc: loc}
}

// Append inserts the session and assigns its ID
func (h *HistoryStore) Append(s *models.Session) error {
	if !s.IsComplete() {
		return fmt.Errorf("refusing to archive incomplete session")
	}
	s.ID = 0
	if err := h.db.Create(s).Error; err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// Recent returns up to n of the newest sessions, oldest first
func (h *HistoryStore) Recent(n int) ([]models.Session, error) {
	if n <= 0 {
		return nil, nil
	}

	var sessions []models.Session
	err := h.db.Order("id DESC").Limit(n).Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	// Restore chronological order
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	h.localize(sessions)

	return sessions, nil
}

// All returns every archived session in completion order
func (h *HistoryStore) All() ([]models.Session, error) {
	var sessions []models.Session
	if err := h.db.Order("id ASC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	h.localize(sessions)
	return sessions, nil
}

// localize moves timestamps back into the tracker's zone; SQLite only keeps the offset
func (h *HistoryStore) localize(sessions []models.Session) {
	for i := range sessions {
		sessions[i].ArchivedAt = sessions[i].ArchivedAt.In(h.loc)
		for _, f := range models.Fields {
			if t := sessions[i].Get(f); t != nil {
				sessions[i].Set(f, t.In(h.loc))
			}
		}
	}
}
