package model

// Identity is the owner every read and write is scoped to.
// Guests are identified by a client-generated id and never reach the relational store.
type Identity struct {
	OwnerID string `json:"ownerId"`
	Guest   bool   `json:"guest"`
}

func NewUserIdentity(userID string) *Identity {
	return &Identity{OwnerID: userID}
}

func NewGuestIdentity(guestID string) *Identity {
	return &Identity{OwnerID: guestID, Guest: true}
}
