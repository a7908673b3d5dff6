package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nvallen/paywise-cli/internal/domain"
	"github.com/nvallen/paywise-cli/internal/ports"
)

const (
	defaultTimeout   = 30 * time.Second
	maxErrorBodySize = 1 << 20
)

// Client is the HTTP/JSON Remote Account Gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.AccountGateway = (*Client)(nil)

// New creates a gateway client for the given API base URL, e.g.
// "http://localhost:5000/api".
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	var schema userSchema
	if err := c.get(ctx, "/users/"+url.PathEscape(email), &schema); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return domain.User{}, fmt.Errorf("gateway: user %s: %w", email, domain.ErrUserNotFound)
		}
		return domain.User{}, classify(fmt.Errorf("gateway: fetch user: %w", err))
	}
	return schema.toDomain(), nil
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var schemas []userSchema
	if err := c.get(ctx, "/users", &schemas); err != nil {
		return nil, classify(fmt.Errorf("gateway: list users: %w", err))
	}

	users := make([]domain.User, 0, len(schemas))
	for _, schema := range schemas {
		users = append(users, schema.toDomain())
	}
	return users, nil
}

func (c *Client) Register(ctx context.Context, name, email, phone string) (domain.User, error) {
	body := registerRequest{Name: name, Email: email, Phone: phone}

	var schema userSchema
	if err := c.post(ctx, "/users/register", body, &schema); err != nil {
		return domain.User{}, classify(fmt.Errorf("gateway: register: %w", err))
	}
	return schema.toDomain(), nil
}

func (c *Client) UpdateProfile(ctx context.Context, email, name, phone string) (domain.User, error) {
	body := updateRequest{Email: email, Name: name, Phone: phone}

	var resp updateResponse
	if err := c.doRequest(ctx, http.MethodPatch, "/users/update", nil, body, &resp); err != nil {
		return domain.User{}, classify(fmt.Errorf("gateway: update profile: %w", err))
	}
	return resp.User.toDomain(), nil
}

func (c *Client) TransactionsByEmail(ctx context.Context, email string) ([]domain.TransactionRecord, error) {
	var schemas []transactionSchema
	if err := c.get(ctx, "/transactions/"+url.PathEscape(email), &schemas); err != nil {
		return nil, classify(fmt.Errorf("gateway: fetch transactions: %w", err))
	}

	records := make([]domain.TransactionRecord, 0, len(schemas))
	for _, schema := range schemas {
		records = append(records, schema.toDomain())
	}
	return records, nil
}

func (c *Client) Send(ctx context.Context, req ports.SendRequest) error {
	body := sendRequest{
		SenderEmail:         req.SenderEmail,
		RecipientIdentifier: req.Recipient,
		Amount:              req.Amount,
	}

	headers := requestHeaders(req.RequestID)
	if err := c.doRequest(ctx, http.MethodPost, "/transactions/send", headers, body, nil); err != nil {
		return classify(fmt.Errorf("gateway: send: %w", err))
	}
	return nil
}

func (c *Client) Receive(ctx context.Context, req ports.ReceiveRequest) error {
	body := receiveRequest{ReceiverEmail: req.ReceiverEmail, Amount: req.Amount}

	headers := requestHeaders(req.RequestID)
	if err := c.doRequest(ctx, http.MethodPost, "/transactions/receive", headers, body, nil); err != nil {
		return classify(fmt.Errorf("gateway: receive: %w", err))
	}
	return nil
}

func (c *Client) Redeem(ctx context.Context, email string, points int, productName string) (domain.User, error) {
	body := redeemRequest{Email: email, Points: points, ProductName: productName}

	var schema userSchema
	if err := c.post(ctx, "/users/redeem", body, &schema); err != nil {
		return domain.User{}, classify(fmt.Errorf("gateway: redeem: %w", err))
	}
	return schema.toDomain(), nil
}

func (c *Client) NotifyRewardClaim(ctx context.Context, email, productName string, pointsUsed int) error {
	body := rewardClaimRequest{Email: email, ProductName: productName, PointsUsed: pointsUsed}

	if err := c.post(ctx, "/notifications/reward-claim", body, nil); err != nil {
		return classify(fmt.Errorf("gateway: notify reward claim: %w", err))
	}
	return nil
}

func (c *Client) RequestLoan(ctx context.Context, req ports.LoanRequest) error {
	body := loanRequest{
		Amount:   req.Amount,
		Duration: req.DurationMonths,
		Purpose:  req.Purpose,
		Email:    req.Email,
	}

	if err := c.post(ctx, "/loans/request", body, nil); err != nil {
		return classify(fmt.Errorf("gateway: loan request: %w", err))
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, headers http.Header, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if apiErr.Error != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
			}
			if apiErr.Message != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func requestHeaders(requestID string) http.Header {
	if requestID == "" {
		return nil
	}
	headers := make(http.Header, 1)
	headers.Set("X-Request-Id", requestID)
	return headers
}

// classify buckets gateway failures: HTTP 404 is not-found, other 4xx are
// backend-side validation rejections, everything else is transport.
func classify(err error) error {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode == http.StatusNotFound:
			return domain.Classify(domain.KindNotFound, err)
		case httpErr.StatusCode >= 400 && httpErr.StatusCode < 500:
			return domain.Classify(domain.KindValidation, err)
		default:
			return domain.Classify(domain.KindTransport, err)
		}
	}
	return domain.Classify(domain.KindTransport, err)
}
