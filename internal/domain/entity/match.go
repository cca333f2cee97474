package entity

import (
	"time"
)

type MatchStatus string

const (
	MatchActive        MatchStatus = "active"
	MatchInTransaction MatchStatus = "in-transaction"
	MatchCompleted     MatchStatus = "completed"
	MatchCancelled     MatchStatus = "cancelled"
)

type MatchSide struct {
	UserID       string       `json:"user_id" firestore:"userId"`
	ClothingItem ClothingItem `json:"clothing_item" firestore:"clothingItem"`
}

// Match is physically duplicated: one copy lives embedded in each
// participant's state document. The two copies are written independently and
// can diverge when one write fails.
type Match struct {
	ID           string      `json:"id" firestore:"id"`
	User1        MatchSide   `json:"user1" firestore:"user1"`
	User2        MatchSide   `json:"user2" firestore:"user2"`
	Participants []string    `json:"participants" firestore:"participants"`
	Status       MatchStatus `json:"status" firestore:"status"`
	MatchedAt    time.Time   `json:"matched_at" firestore:"matchedAt"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
}

func (m *Match) Involves(userID string) bool {
	for _, p := range m.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Counterparty returns the other participant's ID.
func (m *Match) Counterparty(userID string) (string, bool) {
	if !m.Involves(userID) {
		return "", false
	}
	for _, p := range m.Participants {
		if p != userID {
			return p, true
		}
	}
	return "", false
}

// SideOf returns the match side owned by userID.
func (m *Match) SideOf(userID string) (*MatchSide, bool) {
	if m.User1.UserID == userID {
		return &m.User1, true
	}
	if m.User2.UserID == userID {
		return &m.User2, true
	}
	return nil, false
}

// StatusRank orders statuses by lifecycle precedence; a reconciliation pass
// keeps the further-progressed status when the two copies diverge.
func (s MatchStatus) StatusRank() int {
	switch s {
	case MatchActive:
		return 0
	case MatchInTransaction:
		return 1
	case MatchCompleted:
		return 2
	case MatchCancelled:
		return 3
	default:
		return -1
	}
}

func ValidMatchStatus(s MatchStatus) bool {
	return s.StatusRank() >= 0
}
