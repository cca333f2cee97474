package entity

type LikedItemStatus string

const (
	LikedPending  LikedItemStatus = "pending"
	LikedMatched  LikedItemStatus = "matched"
	LikedRejected LikedItemStatus = "rejected"
)

// LikedItem is one outbound right-swipe, pending the item owner's response.
type LikedItem struct {
	ID     string          `json:"id" firestore:"id"`
	Item   ClothingItem    `json:"item" firestore:"item"`
	Status LikedItemStatus `json:"status" firestore:"status"`
	UserID string          `json:"user_id" firestore:"userId"`
}
