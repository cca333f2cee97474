package entity

// Requester carries enough of the swiper's profile and closet for the
// recipient to pick a counter-item without another lookup.
type Requester struct {
	ID     string         `json:"id" firestore:"id"`
	Name   string         `json:"name" firestore:"name"`
	Avatar string         `json:"avatar" firestore:"avatar"`
	Closet []ClothingItem `json:"closet" firestore:"closet"`
}

// Request is the mirror-write of a LikedItem: it lives only in the liked
// item owner's document, as their inbound queue entry.
type Request struct {
	ID             string       `json:"id" firestore:"id"`
	Requester      Requester    `json:"requester" firestore:"requester"`
	ItemOfInterest ClothingItem `json:"item_of_interest" firestore:"itemOfInterest"`
}
