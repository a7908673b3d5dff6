package domain

type UserID string

// User is the local view of one banking account. Balance and RewardPoints
// are authoritative only as of the last successful sync; the backend is the
// source of truth for both.
type User struct {
	ID           UserID
	Name         string
	Email        string
	Phone        string
	Balance      float64
	ProfileImage string
	RewardPoints int
}
