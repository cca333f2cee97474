package usecase

import (
	"context"
	"sync"
	"time"

	"stylemate/internal/domain/entity"
	"stylemate/pkg/errors"
)

// fakeStateRepo is an in-memory stand-in for the Firestore-backed state
// repository. Append-style operations create the target document implicitly,
// matching a merge write; update-style operations fail with NOT_FOUND when
// the document or embedded record is absent, matching a read-modify-write.
type fakeStateRepo struct {
	mu      sync.Mutex
	states  map[string]*entity.UserAppState
	failOps map[string]error

	saveCount map[string]int
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{
		states:    map[string]*entity.UserAppState{},
		failOps:   map[string]error{},
		saveCount: map[string]int{},
	}
}

func (r *fakeStateRepo) failOn(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failOps[op] = err
}

func (r *fakeStateRepo) opErr(op string) error {
	if err, ok := r.failOps[op]; ok {
		return err
	}
	return nil
}

func (r *fakeStateRepo) seed(userID string, state *entity.UserAppState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[userID] = state.Clone()
}

func (r *fakeStateRepo) stored(userID string) *entity.UserAppState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.states[userID]; ok {
		return s.Clone()
	}
	return nil
}

func (r *fakeStateRepo) Get(ctx context.Context, userID string) (*entity.UserAppState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.opErr("Get"); err != nil {
		return nil, err
	}
	state, ok := r.states[userID]
	if !ok {
		return nil, errors.NotFound("User state", nil)
	}
	return state.Clone(), nil
}

func (r *fakeStateRepo) Save(ctx context.Context, userID string, state *entity.UserAppState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.opErr("Save"); err != nil {
		return err
	}
	r.states[userID] = state.Clone()
	r.saveCount[userID]++
	return nil
}

func (r *fakeStateRepo) List(ctx context.Context, limit int) (map[string]*entity.UserAppState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.opErr("List"); err != nil {
		return nil, err
	}
	out := make(map[string]*entity.UserAppState, len(r.states))
	for id, s := range r.states {
		if limit > 0 && len(out) >= limit {
			break
		}
		out[id] = s.Clone()
	}
	return out, nil
}

func (r *fakeStateRepo) ensure(userID string) *entity.UserAppState {
	state, ok := r.states[userID]
	if !ok {
		state = entity.NewUserAppState()
		r.states[userID] = state
	}
	return state
}

func (r *fakeStateRepo) AppendSeenItem(ctx context.Context, userID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.opErr("AppendSeenItem"); err != nil {
		return err
	}
	r.ensure(userID).MarkSeen(itemID)
	return nil
}

func (r *fakeStateRepo) AppendRequest(ctx context.Context, userID string, req entity.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.opErr("AppendRequest"); err != nil {
		return err
	}
	r.ensure(userID).AddRequest(req)
	return nil
}

func (r *fakeStateRepo) RemoveRequest(ctx context.Context, userID, requestID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.opErr("RemoveRequest"); err != nil {
		return err
	}
	state, ok := r.states[userID]
	if !ok || !state.RemoveRequest(requestID) {
		return errors.NotFound("Request", nil)
	}
	return nil
}

func (r *fakeStateRepo) AppendMatch(ctx context.Context, userID string, match entity.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.opErr("AppendMatch"); err != nil {
		return err
	}
	r.ensure(userID).AddMatch(match)
	return nil
}

func (r *fakeStateRepo) UpdateMatchStatus(ctx context.Context, userID, matchID string, status entity.MatchStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.opErr("UpdateMatchStatus"); err != nil {
		return err
	}
	state, ok := r.states[userID]
	if !ok || !state.SetMatchStatus(matchID, status, time.Now()) {
		return errors.NotFound("Match", nil)
	}
	return nil
}

func (r *fakeStateRepo) SetLikedItemStatus(ctx context.Context, userID, itemID string, status entity.LikedItemStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.opErr("SetLikedItemStatus"); err != nil {
		return err
	}
	state, ok := r.states[userID]
	if !ok || !state.SetLikedStatusByItem(itemID, status) {
		return errors.NotFound("Liked item", nil)
	}
	return nil
}

func (r *fakeStateRepo) RemoveLikedItemByItem(ctx context.Context, userID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.opErr("RemoveLikedItemByItem"); err != nil {
		return err
	}
	state, ok := r.states[userID]
	if !ok || !state.RemoveLikedItemByItem(itemID) {
		return errors.NotFound("Liked item", nil)
	}
	return nil
}

func (r *fakeStateRepo) UpsertTransaction(ctx context.Context, userID string, txn entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.opErr("UpsertTransaction"); err != nil {
		return err
	}
	state, ok := r.states[userID]
	if !ok {
		return errors.NotFound("User state", nil)
	}
	state.UpsertTransaction(txn)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := *user
	r.users[user.ID] = &u
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	u := *user
	return &u, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := *user
	r.users[user.ID] = &u
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, limit int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		if limit > 0 && len(out) >= limit {
			break
		}
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	messages map[string][]*entity.Message
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{messages: map[string][]*entity.Message{}}
}

func (r *fakeChatRepo) CreateMessage(ctx context.Context, matchID string, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := *message
	r.messages[matchID] = append(r.messages[matchID], &m)
	return nil
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, matchID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.messages[matchID]
	total := int64(len(all))
	if offset >= len(all) {
		return []*entity.Message{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type fakeUploader struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
}

func (u *fakeUploader) UploadDataURL(ctx context.Context, dataURL, folder string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	url := "https://storage.googleapis.com/test-bucket/" + folder + "/obj-" + string(rune('a'+len(u.uploaded)))
	u.uploaded = append(u.uploaded, url)
	return url, nil
}

func (u *fakeUploader) DeleteFile(ctx context.Context, fileURL string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deleted = append(u.deleted, fileURL)
	return nil
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	payloads map[string][][]byte
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{payloads: map[string][][]byte{}}
}

func (b *fakeBroadcaster) BroadcastToMatch(matchID string, message []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.payloads[matchID] = append(b.payloads[matchID], message)
}

// startSession is the shared test bootstrap: registers a user profile and an
// active session with a long debounce window so tests control flushing.
func startSession(t interface{ Fatalf(string, ...interface{}) }, sm *SessionManager, userID, name string) *Session {
	session, err := sm.Start(context.Background(), &entity.User{
		ID:     userID,
		Name:   name,
		Avatar: "https://example.com/" + userID + ".png",
	})
	if err != nil {
		t.Fatalf("start session for %s: %v", userID, err)
	}
	return session
}
