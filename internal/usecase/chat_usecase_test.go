package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stylemate/internal/domain/entity"
	"stylemate/pkg/errors"
)

func newChatFixture(t *testing.T) (*matchFixture, *ChatUseCase, *fakeBroadcaster, *entity.Match) {
	f := newMatchFixture(t)
	chatRepo := newFakeChatRepo()
	broadcaster := newFakeBroadcaster()
	chatUC := NewChatUseCase(chatRepo, f.sm, broadcaster)

	proposal, err := f.requestUC.ProposeSwap("user-b", f.requestID, "item-a1")
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	match, err := f.requestUC.ConfirmProposal(context.Background(), "user-b", proposal)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}

	return f, chatUC, broadcaster, match
}

func TestSendMessagePersistsAndBroadcasts(t *testing.T) {
	_, chatUC, broadcaster, match := newChatFixture(t)

	message, err := chatUC.SendMessage(context.Background(), "user-b", match.ID, "喜歡這件外套嗎?")
	assert.NoError(t, err)
	assert.Equal(t, "user-b", message.SenderID)
	assert.NotEmpty(t, message.ID)
	assert.NotEmpty(t, message.SenderAvatar)

	messages, total, err := chatUC.ListMessages(context.Background(), "user-b", match.ID, 50, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, message.ID, messages[0].ID)

	payloads := broadcaster.payloads[match.ID]
	assert.Len(t, payloads, 1)
	var decoded entity.Message
	assert.NoError(t, json.Unmarshal(payloads[0], &decoded))
	assert.Equal(t, message.Text, decoded.Text)
}

func TestSendMessageRequiresParticipant(t *testing.T) {
	f, chatUC, _, match := newChatFixture(t)

	startSession(t, f.sm, "user-c", "Carol")

	// Carol holds no copy of the match, so from her view it does not exist.
	_, err := chatUC.SendMessage(context.Background(), "user-c", match.ID, "hello")
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	_, _, err = chatUC.ListMessages(context.Background(), "user-c", match.ID, 50, 0)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestSendMessageClosedMatch(t *testing.T) {
	f, chatUC, _, match := newChatFixture(t)

	session, _ := f.sm.Get("user-b")
	session.mutate(func(state *entity.UserAppState) {
		state.SetMatchStatus(match.ID, entity.MatchCancelled, time.Now())
	})

	_, err := chatUC.SendMessage(context.Background(), "user-b", match.ID, "still there?")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	// History stays readable after the match closes.
	_, _, err = chatUC.ListMessages(context.Background(), "user-b", match.ID, 50, 0)
	assert.NoError(t, err)
}

func TestSendMessageEmptyText(t *testing.T) {
	_, chatUC, _, match := newChatFixture(t)

	_, err := chatUC.SendMessage(context.Background(), "user-b", match.ID, "")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}
