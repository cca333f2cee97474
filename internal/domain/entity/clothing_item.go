package entity

// ClothingItem is owned by exactly one user. Owner name and avatar are
// denormalized for display; match records embed full item snapshots, so a
// later edit leaves stale copies on the counterparty side until the
// reconciliation sweep runs.
type ClothingItem struct {
	ID             string   `json:"id" firestore:"id"`
	UserID         string   `json:"user_id" firestore:"userId"`
	UserName       string   `json:"user_name" firestore:"userName"`
	UserAvatar     string   `json:"user_avatar" firestore:"userAvatar"`
	ImageURLs      []string `json:"image_urls" firestore:"imageUrls"`
	Category       string   `json:"category" firestore:"category"`
	Color          string   `json:"color" firestore:"color"`
	StyleTags      []string `json:"style_tags" firestore:"style_tags"`
	Description    string   `json:"description,omitempty" firestore:"description,omitempty"`
	EstimatedPrice int      `json:"estimated_price" firestore:"estimatedPrice"`
}
