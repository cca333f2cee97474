package entity

type TransactionStatus string

const (
	TransactionOngoing   TransactionStatus = "ongoing"
	TransactionCompleted TransactionStatus = "completed"
	TransactionCancelled TransactionStatus = "cancelled"
)

type PickupMethod string

const (
	PickupSevenEleven  PickupMethod = "7-11"
	PickupFamilyMart   PickupMethod = "FamilyMart"
	PickupOKMart       PickupMethod = "OK Mart"
	PickupHomeDelivery PickupMethod = "Home Delivery"
	PickupInPerson     PickupMethod = "面交"
)

func ValidPickupMethod(m PickupMethod) bool {
	switch m {
	case PickupSevenEleven, PickupFamilyMart, PickupOKMart, PickupHomeDelivery, PickupInPerson:
		return true
	}
	return false
}

type TransactionPartyDetails struct {
	PhoneNumber    string       `json:"phone_number" firestore:"phoneNumber"`
	PickupMethod   PickupMethod `json:"pickup_method" firestore:"pickupMethod"`
	PickupLocation string       `json:"pickup_location" firestore:"pickupLocation"`
}

// Transaction tracks handoff logistics for a match, 1:1 by MatchID. Each
// party only ever writes its own key in Parties.
type Transaction struct {
	ID      string                             `json:"id" firestore:"id"`
	MatchID string                             `json:"match_id" firestore:"matchId"`
	Status  TransactionStatus                  `json:"status" firestore:"status"`
	Parties map[string]TransactionPartyDetails `json:"parties" firestore:"parties"`
}
