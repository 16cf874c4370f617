package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jobdeck/jobdeck/types"
)

const defaultRequestTimeout = 10 * time.Second

// HTTPClient is the API implementation over the backend's JSON routes.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient constructs an API client for the given base URL,
// e.g. "http://localhost:8080".
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultRequestTimeout},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	DOB      string `json:"dob"`
}

type putStateRequest struct {
	UserID         string   `json:"userId"`
	AppliedJobs    *[]int64 `json:"appliedJobs,omitempty"`
	BookmarkedJobs *[]int64 `json:"bookmarkedJobs,omitempty"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (types.User, error) {
	var user types.User
	err := c.postJSON(ctx, "/auth", loginRequest{Email: email, Password: password}, http.StatusOK, &user)
	return user, err
}

func (c *HTTPClient) Signup(ctx context.Context, name, email, password, dob string) (types.User, error) {
	req := signupRequest{Name: name, Email: email, Password: password, DOB: dob}
	var user types.User
	err := c.postJSON(ctx, "/users", req, http.StatusCreated, &user)
	return user, err
}

func (c *HTTPClient) GetUserState(ctx context.Context, userID string) (types.UserState, error) {
	endpoint := c.baseURL + "/user-data?userId=" + url.QueryEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return types.UserState{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return types.UserState{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return types.UserState{}, statusError(resp.StatusCode)
	}
	var state types.UserState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return types.UserState{}, fmt.Errorf("decode user state: %w", err)
	}
	return state, nil
}

func (c *HTTPClient) PutUserState(ctx context.Context, userID string, applied, bookmarked []int64) error {
	req := putStateRequest{UserID: userID}
	if applied != nil {
		req.AppliedJobs = &applied
	}
	if bookmarked != nil {
		req.BookmarkedJobs = &bookmarked
	}
	return c.postJSON(ctx, "/user-data", req, http.StatusOK, nil)
}

// postJSON sends a JSON POST and decodes the response into out when the
// status matches wantStatus. Other statuses map to sentinel errors.
func (c *HTTPClient) postJSON(ctx context.Context, path string, body any, wantStatus int, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != wantStatus {
		return statusError(resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statusError(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrInvalid
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrConflict
	default:
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
