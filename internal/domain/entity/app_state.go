package entity

import (
	"time"
)

// UserAppState is the canonical per-user document (userAppStates/{uid}):
// every embedded collection the app works with, owned exclusively by one
// user. The store enforces no integrity across documents; each collection
// is mutated only through the methods below, never by whole-array
// read-modify-write at call sites.
type UserAppState struct {
	Closet       []ClothingItem `json:"my_closet" firestore:"myCloset"`
	Matches      []Match        `json:"matches" firestore:"matches"`
	LikedItems   []LikedItem    `json:"liked_items" firestore:"likedItems"`
	Requests     []Request      `json:"requests" firestore:"requests"`
	Transactions []Transaction  `json:"transactions" firestore:"transactions"`
	SeenItemIDs  []string       `json:"seen_item_ids" firestore:"seenItemIds"`
	UpdatedAt    time.Time      `json:"updated_at" firestore:"updatedAt"`

	// resolvedRequests remembers requests this copy consumed or rejected so
	// MergeMirrored does not resurrect them from a stale stored document.
	// In-memory only, never serialized.
	resolvedRequests map[string]bool
}

func NewUserAppState() *UserAppState {
	return &UserAppState{
		Closet:       []ClothingItem{},
		Matches:      []Match{},
		LikedItems:   []LikedItem{},
		Requests:     []Request{},
		Transactions: []Transaction{},
		SeenItemIDs:  []string{},
	}
}

// Clone returns a deep copy, used to snapshot state under lock before a
// debounced flush writes it outside the lock.
func (s *UserAppState) Clone() *UserAppState {
	c := &UserAppState{
		Closet:       make([]ClothingItem, len(s.Closet)),
		Matches:      make([]Match, len(s.Matches)),
		LikedItems:   make([]LikedItem, len(s.LikedItems)),
		Requests:     make([]Request, len(s.Requests)),
		Transactions: make([]Transaction, len(s.Transactions)),
		SeenItemIDs:  make([]string, len(s.SeenItemIDs)),
		UpdatedAt:    s.UpdatedAt,
	}
	copy(c.Closet, s.Closet)
	copy(c.Matches, s.Matches)
	copy(c.LikedItems, s.LikedItems)
	copy(c.Requests, s.Requests)
	copy(c.SeenItemIDs, s.SeenItemIDs)
	for i, t := range s.Transactions {
		parties := make(map[string]TransactionPartyDetails, len(t.Parties))
		for k, v := range t.Parties {
			parties[k] = v
		}
		t.Parties = parties
		c.Transactions[i] = t
	}
	if len(s.resolvedRequests) > 0 {
		c.resolvedRequests = make(map[string]bool, len(s.resolvedRequests))
		for id := range s.resolvedRequests {
			c.resolvedRequests[id] = true
		}
	}
	return c
}

// Closet

func (s *UserAppState) AddClosetItem(item ClothingItem) {
	s.Closet = append([]ClothingItem{item}, s.Closet...)
}

func (s *UserAppState) ClosetItem(itemID string) (*ClothingItem, bool) {
	for i := range s.Closet {
		if s.Closet[i].ID == itemID {
			return &s.Closet[i], true
		}
	}
	return nil, false
}

func (s *UserAppState) UpdateClosetItem(item ClothingItem) bool {
	for i := range s.Closet {
		if s.Closet[i].ID == item.ID {
			s.Closet[i] = item
			return true
		}
	}
	return false
}

func (s *UserAppState) RemoveClosetItem(itemID string) (ClothingItem, bool) {
	for i := range s.Closet {
		if s.Closet[i].ID == itemID {
			removed := s.Closet[i]
			s.Closet = append(s.Closet[:i], s.Closet[i+1:]...)
			return removed, true
		}
	}
	return ClothingItem{}, false
}

// Seen set

func (s *UserAppState) HasSeen(itemID string) bool {
	for _, id := range s.SeenItemIDs {
		if id == itemID {
			return true
		}
	}
	return false
}

// MarkSeen is idempotent: set semantics over the underlying array.
func (s *UserAppState) MarkSeen(itemID string) bool {
	if s.HasSeen(itemID) {
		return false
	}
	s.SeenItemIDs = append(s.SeenItemIDs, itemID)
	return true
}

// Liked items

func (s *UserAppState) AddLikedItem(like LikedItem) {
	s.LikedItems = append([]LikedItem{like}, s.LikedItems...)
}

func (s *UserAppState) LikedItemByID(likeID string) (*LikedItem, bool) {
	for i := range s.LikedItems {
		if s.LikedItems[i].ID == likeID {
			return &s.LikedItems[i], true
		}
	}
	return nil, false
}

// SetLikedStatusByItem transitions the like that references itemID.
func (s *UserAppState) SetLikedStatusByItem(itemID string, status LikedItemStatus) bool {
	for i := range s.LikedItems {
		if s.LikedItems[i].Item.ID == itemID {
			s.LikedItems[i].Status = status
			return true
		}
	}
	return false
}

func (s *UserAppState) RemoveLikedItem(likeID string) bool {
	for i := range s.LikedItems {
		if s.LikedItems[i].ID == likeID {
			s.LikedItems = append(s.LikedItems[:i], s.LikedItems[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveLikedItemByItem clears the like referencing itemID, used when the
// like resolves into a match.
func (s *UserAppState) RemoveLikedItemByItem(itemID string) bool {
	for i := range s.LikedItems {
		if s.LikedItems[i].Item.ID == itemID {
			s.LikedItems = append(s.LikedItems[:i], s.LikedItems[i+1:]...)
			return true
		}
	}
	return false
}

// Requests

func (s *UserAppState) AddRequest(req Request) {
	s.Requests = append([]Request{req}, s.Requests...)
}

func (s *UserAppState) RequestByID(requestID string) (*Request, bool) {
	for i := range s.Requests {
		if s.Requests[i].ID == requestID {
			return &s.Requests[i], true
		}
	}
	return nil, false
}

func (s *UserAppState) RemoveRequest(requestID string) bool {
	for i := range s.Requests {
		if s.Requests[i].ID == requestID {
			s.Requests = append(s.Requests[:i], s.Requests[i+1:]...)
			if s.resolvedRequests == nil {
				s.resolvedRequests = map[string]bool{}
			}
			s.resolvedRequests[requestID] = true
			return true
		}
	}
	return false
}

// Matches

func (s *UserAppState) AddMatch(match Match) {
	s.Matches = append([]Match{match}, s.Matches...)
}

func (s *UserAppState) MatchByID(matchID string) (*Match, bool) {
	for i := range s.Matches {
		if s.Matches[i].ID == matchID {
			return &s.Matches[i], true
		}
	}
	return nil, false
}

// SetMatchStatus transitions a match copy. completedAt is stamped only when
// transitioning into completed and left untouched on repeat calls.
func (s *UserAppState) SetMatchStatus(matchID string, status MatchStatus, now time.Time) bool {
	m, ok := s.MatchByID(matchID)
	if !ok {
		return false
	}
	m.Status = status
	if status == MatchCompleted && m.CompletedAt == nil {
		t := now
		m.CompletedAt = &t
	}
	return true
}

// RefreshMatchItem updates the embedded snapshot of an edited closet item in
// this document's own match copies.
func (s *UserAppState) RefreshMatchItem(item ClothingItem) int {
	updated := 0
	for i := range s.Matches {
		if s.Matches[i].User1.ClothingItem.ID == item.ID {
			s.Matches[i].User1.ClothingItem = item
			updated++
		}
		if s.Matches[i].User2.ClothingItem.ID == item.ID {
			s.Matches[i].User2.ClothingItem = item
			updated++
		}
	}
	return updated
}

// Transactions

func (s *UserAppState) TransactionByID(txnID string) (*Transaction, bool) {
	for i := range s.Transactions {
		if s.Transactions[i].ID == txnID {
			return &s.Transactions[i], true
		}
	}
	return nil, false
}

func (s *UserAppState) TransactionByMatch(matchID string) (*Transaction, bool) {
	for i := range s.Transactions {
		if s.Transactions[i].MatchID == matchID {
			return &s.Transactions[i], true
		}
	}
	return nil, false
}

// UpsertTransactionParty merges details under the caller's own key only;
// other parties' entries are never touched. Creates the transaction keyed by
// matchID when absent, reusing txnID for the new record.
func (s *UserAppState) UpsertTransactionParty(txnID, matchID, userID string, details TransactionPartyDetails) *Transaction {
	if txn, ok := s.TransactionByMatch(matchID); ok {
		if txn.Parties == nil {
			txn.Parties = map[string]TransactionPartyDetails{}
		}
		txn.Parties[userID] = details
		return txn
	}
	txn := Transaction{
		ID:      txnID,
		MatchID: matchID,
		Status:  TransactionOngoing,
		Parties: map[string]TransactionPartyDetails{userID: details},
	}
	s.Transactions = append([]Transaction{txn}, s.Transactions...)
	return &s.Transactions[0]
}

func (s *UserAppState) SetTransactionStatus(txnID string, status TransactionStatus) bool {
	txn, ok := s.TransactionByID(txnID)
	if !ok {
		return false
	}
	txn.Status = status
	return true
}

// Merging

// MergeMirrored folds writes that counterparties landed directly in the
// owner's stored document into this live copy. The live copy wins for
// everything the owner edits locally (closet, like membership, own party
// details); the stored copy contributes inbound requests, like status
// transitions, match copies and statuses, transaction mirrors, and seen ids.
func (s *UserAppState) MergeMirrored(ownerID string, stored *UserAppState) {
	// Inbound requests only ever appear via counterparty writes. Oldest
	// first so prepending keeps the newest request at the front.
	for i := len(stored.Requests) - 1; i >= 0; i-- {
		req := stored.Requests[i]
		if s.resolvedRequests[req.ID] {
			continue
		}
		if _, ok := s.RequestByID(req.ID); !ok {
			s.AddRequest(req)
		}
	}

	// Counterparties transition likes out of pending; membership stays the
	// owner's.
	for i := range s.LikedItems {
		if s.LikedItems[i].Status != LikedPending {
			continue
		}
		if theirs, ok := stored.LikedItemByID(s.LikedItems[i].ID); ok && theirs.Status != LikedPending {
			s.LikedItems[i].Status = theirs.Status
		}
	}

	// Matches union by id; on a shared id the further-progressed copy wins.
	for i := len(stored.Matches) - 1; i >= 0; i-- {
		theirs := stored.Matches[i]
		mine, ok := s.MatchByID(theirs.ID)
		if !ok {
			s.AddMatch(theirs)
			continue
		}
		if theirs.Status.StatusRank() > mine.Status.StatusRank() {
			mine.Status = theirs.Status
		}
		if mine.CompletedAt == nil && theirs.CompletedAt != nil {
			t := *theirs.CompletedAt
			mine.CompletedAt = &t
		}
	}

	// A like that resolved into a match was cleared from the stored copy
	// together with the match append; drop the live copy too.
	for _, m := range s.Matches {
		s.RemoveLikedItemByItem(m.User1.ClothingItem.ID)
		s.RemoveLikedItemByItem(m.User2.ClothingItem.ID)
	}

	// Transaction mirrors merge by match. The owner's own party entry is
	// never overwritten; counterparty entries and terminal statuses come
	// from the stored copy.
	for i := len(stored.Transactions) - 1; i >= 0; i-- {
		theirs := stored.Transactions[i]
		mine, ok := s.TransactionByMatch(theirs.MatchID)
		if !ok {
			copied := theirs
			copied.Parties = make(map[string]TransactionPartyDetails, len(theirs.Parties))
			for k, v := range theirs.Parties {
				copied.Parties[k] = v
			}
			s.Transactions = append([]Transaction{copied}, s.Transactions...)
			mine = &s.Transactions[0]
		} else {
			for k, v := range theirs.Parties {
				if k == ownerID {
					if _, exists := mine.Parties[k]; exists {
						continue
					}
				}
				if mine.Parties == nil {
					mine.Parties = map[string]TransactionPartyDetails{}
				}
				mine.Parties[k] = v
			}
			if mine.Status == TransactionOngoing && theirs.Status != TransactionOngoing {
				mine.Status = theirs.Status
			}
		}
		// A cancelled handoff reverts its match to active on the side that
		// cancelled it; mirror that transition here.
		if mine.Status == TransactionCancelled {
			if m, ok := s.MatchByID(mine.MatchID); ok && m.Status == MatchInTransaction {
				m.Status = MatchActive
			}
		}
	}

	// Seen ids are a set; union.
	for _, id := range stored.SeenItemIDs {
		s.MarkSeen(id)
	}
}

// UpsertTransaction replaces the copy keyed by the transaction's match, or
// appends it. Used for mirroring the counterparty's record.
func (s *UserAppState) UpsertTransaction(txn Transaction) {
	for i := range s.Transactions {
		if s.Transactions[i].MatchID == txn.MatchID {
			// Keep this side's own party entry if the incoming copy lacks it.
			for k, v := range s.Transactions[i].Parties {
				if _, ok := txn.Parties[k]; !ok {
					if txn.Parties == nil {
						txn.Parties = map[string]TransactionPartyDetails{}
					}
					txn.Parties[k] = v
				}
			}
			s.Transactions[i] = txn
			return
		}
	}
	s.Transactions = append([]Transaction{txn}, s.Transactions...)
}
