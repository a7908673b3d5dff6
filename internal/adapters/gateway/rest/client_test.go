package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvallen/paywise-cli/internal/domain"
	"github.com/nvallen/paywise-cli/internal/ports"
)

func TestUserByEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/a@x.com" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"_id":          "65fa0",
			"name":         "Alice Hall",
			"email":        "a@x.com",
			"balance":      120.0,
			"rewardPoints": 30,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	user, err := c.UserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("65fa0"), user.ID)
	assert.Equal(t, "Alice Hall", user.Name)
	assert.Equal(t, 120.0, user.Balance)
	assert.Equal(t, 30, user.RewardPoints)
}

func TestUserByEmailNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "user not found"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.UserByEmail(context.Background(), "ghost@x.com")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestUserByEmailIDFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"email": "a@x.com", "name": "Alice"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	user, err := c.UserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("a@x.com"), user.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "email already registered"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Register(context.Background(), "Alice", "a@x.com", "555")
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Contains(t, err.Error(), "email already registered")
}

func TestUpdateProfileUnwrapsUserEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/users/update", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@x.com", body["email"])

		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"message": "profile updated",
			"user": map[string]any{
				"_id": "65fa0", "name": "Alice M. Hall", "email": "a@x.com",
				"balance": 120.0, "rewardPoints": 45,
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	user, err := c.UpdateProfile(context.Background(), "a@x.com", "Alice M. Hall", "")
	require.NoError(t, err)
	assert.Equal(t, "Alice M. Hall", user.Name)
	assert.Equal(t, 45, user.RewardPoints)
}

func TestSendCarriesRequestID(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Request-Id")

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@x.com", body["senderEmail"])
		assert.Equal(t, "b@x.com", body["recipientIdentifier"])
		assert.Equal(t, 25.0, body["amount"])

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	err := c.Send(context.Background(), ports.SendRequest{
		RequestID:   "req-123",
		SenderEmail: "a@x.com",
		Recipient:   "b@x.com",
		Amount:      25,
	})
	require.NoError(t, err)
	assert.Equal(t, "req-123", gotHeader)
}

func TestSendInsufficientFunds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "insufficient funds"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	err := c.Send(context.Background(), ports.SendRequest{SenderEmail: "a@x.com", Recipient: "b@x.com", Amount: 1e6})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Contains(t, err.Error(), "insufficient funds")
}

func TestTransactionsByEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transactions/a@x.com", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]any{ //nolint:errcheck
			{"_id": "t1", "type": "send", "amount": 20.0, "date": "2026-08-01T10:00:00Z", "peerEmail": "b@x.com", "status": "completed"},
			{"id": "t2", "type": "receive", "amount": 50.0, "date": "2026-08-02T11:30:00Z", "peerEmail": "c@x.com", "status": "pending"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	records, err := c.TransactionsByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "t1", records[0].ID)
	assert.Equal(t, domain.DirectionSend, records[0].Direction)
	assert.Equal(t, "b@x.com", records[0].PeerEmail)
	assert.Equal(t, "t2", records[1].ID)
	assert.Equal(t, domain.StatusPending, records[1].Status)
}

func TestTransportErrorKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, nil)
	_, err := c.ListUsers(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.KindTransport, domain.KindOf(err))
}

func TestServerErrorKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	err := c.RequestLoan(context.Background(), ports.LoanRequest{Email: "a@x.com", Amount: 1000, DurationMonths: 12, Purpose: "car"})
	require.Error(t, err)
	assert.Equal(t, domain.KindTransport, domain.KindOf(err))
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
}
