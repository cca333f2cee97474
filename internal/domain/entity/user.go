package entity

import (
	"time"
)

type User struct {
	ID          string `json:"id" firestore:"id"`
	FirebaseUID string `json:"firebase_uid" firestore:"firebaseUid"`
	Name        string `json:"name" firestore:"name"`
	Username    string `json:"username" firestore:"username"`
	Avatar      string `json:"avatar" firestore:"avatar"`
	Email       string `json:"email" firestore:"email"`
	JoinDate    string `json:"join_date" firestore:"joinDate"`
	PhoneNumber string `json:"phone_number,omitempty" firestore:"phoneNumber,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
