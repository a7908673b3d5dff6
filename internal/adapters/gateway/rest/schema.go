package rest

import (
	"time"

	"github.com/nvallen/paywise-cli/internal/domain"
)

// userSchema mirrors the backend's user record. The backend is inconsistent
// about its identifier field, so both `_id` and `id` are decoded and the
// email serves as a last-resort key.
type userSchema struct {
	MongoID      string  `json:"_id"`
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Balance      float64 `json:"balance"`
	ProfileImage string  `json:"profileImage"`
	RewardPoints int     `json:"rewardPoints"`
}

func (s userSchema) toDomain() domain.User {
	id := s.MongoID
	if id == "" {
		id = s.ID
	}
	if id == "" {
		id = s.Email
	}

	return domain.User{
		ID:           domain.UserID(id),
		Name:         s.Name,
		Email:        s.Email,
		Phone:        s.Phone,
		Balance:      s.Balance,
		ProfileImage: s.ProfileImage,
		RewardPoints: s.RewardPoints,
	}
}

type transactionSchema struct {
	MongoID   string    `json:"_id"`
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	PeerEmail string    `json:"peerEmail"`
	Status    string    `json:"status"`
}

func (s transactionSchema) toDomain() domain.TransactionRecord {
	id := s.MongoID
	if id == "" {
		id = s.ID
	}

	return domain.TransactionRecord{
		ID:        id,
		Direction: domain.Direction(s.Type),
		Amount:    s.Amount,
		Date:      s.Date,
		PeerEmail: s.PeerEmail,
		Status:    domain.TransactionStatus(s.Status),
	}
}

type registerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type updateRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type updateResponse struct {
	Message string     `json:"message"`
	User    userSchema `json:"user"`
}

type sendRequest struct {
	SenderEmail         string  `json:"senderEmail"`
	RecipientIdentifier string  `json:"recipientIdentifier"`
	Amount              float64 `json:"amount"`
}

type receiveRequest struct {
	ReceiverEmail string  `json:"receiverEmail"`
	Amount        float64 `json:"amount"`
}

type redeemRequest struct {
	Email       string `json:"email"`
	Points      int    `json:"points"`
	ProductName string `json:"productName"`
}

type rewardClaimRequest struct {
	Email       string `json:"email"`
	ProductName string `json:"productName"`
	PointsUsed  int    `json:"pointsUsed"`
}

type loanRequest struct {
	Amount   float64 `json:"amount"`
	Duration int     `json:"duration"`
	Purpose  string  `json:"purpose"`
	Email    string  `json:"email"`
}
