package entity

import (
	"time"
)

// Message lives in the chats/{matchId}/messages subcollection, kept out of
// the user state document so chat traffic never bloats it.
type Message struct {
	ID           string    `json:"id" firestore:"id"`
	SenderID     string    `json:"sender_id" firestore:"senderId"`
	Text         string    `json:"text" firestore:"text"`
	SenderAvatar string    `json:"sender_avatar" firestore:"senderAvatar"`
	Timestamp    time.Time `json:"timestamp" firestore:"timestamp"`
}
