package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/go-resty/resty/v2"
)

type httpAccountsClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAccountsClient constructs an HTTP/REST implementation of
// [AccountsClient]. address may omit the scheme, in which case http:// is
// assumed. A zero timeout leaves requests bounded only by their context.
//
// Returns an error if address is empty or cannot be parsed as a valid URL.
func NewHTTPAccountsClient(address string, timeout time.Duration, logger *logger.Logger) (AccountsClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &httpAccountsClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAccountsClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAccountsClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login implements [AccountsClient]. It posts a form to POST /token and
// stores the returned access token.
func (h *httpAccountsClient) Login(ctx context.Context, email, password string) (models.AccessToken, error) {
	var token models.AccessToken

	resp, err := h.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": email,
			"password": password,
		}).
		SetResult(&token).
		Post("/token")
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccessToken{}, err
	}

	h.SetToken(token.AccessToken)
	h.logger.Debug().Str("email", email).Msg("logged in")
	return token, nil
}

// RefreshToken implements [AccountsClient] through POST /token/refresh.
func (h *httpAccountsClient) RefreshToken(ctx context.Context) (models.AccessToken, error) {
	var token models.AccessToken

	resp, err := h.authedRequest(ctx).
		SetResult(&token).
		Post("/token/refresh")
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("refresh token request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccessToken{}, err
	}

	h.SetToken(token.AccessToken)
	return token, nil
}

func (h *httpAccountsClient) Me(ctx context.Context) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetResult(&user).
		Get("/users/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpAccountsClient) CreateUser(ctx context.Context, user models.UserCreate) (models.UserPublic, error) {
	var created models.UserPublic

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&created).
		Post("/users/")
	if err != nil {
		return models.UserPublic{}, fmt.Errorf("create user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserPublic{}, err
	}

	return created, nil
}

func (h *httpAccountsClient) GetUser(ctx context.Context, id int64) (models.UserPublic, error) {
	var user models.UserPublic

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetResult(&user).
		Get("/users/{id}")
	if err != nil {
		return models.UserPublic{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserPublic{}, err
	}

	return user, nil
}

func (h *httpAccountsClient) ListUsers(ctx context.Context, req models.ListRequest) ([]models.UserPublic, error) {
	var users []models.UserPublic

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"offset": strconv.FormatUint(req.Offset, 10),
			"limit":  strconv.FormatUint(req.Limit, 10),
		}).
		SetResult(&users).
		Get("/users/")
	if err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return users, nil
}

func (h *httpAccountsClient) UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (models.UserPublic, error) {
	var user models.UserPublic

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(update).
		SetResult(&user).
		Patch("/users/{id}")
	if err != nil {
		return models.UserPublic{}, fmt.Errorf("update user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserPublic{}, err
	}

	return user, nil
}

func (h *httpAccountsClient) DeleteUser(ctx context.Context, id int64) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete("/users/{id}")
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAccountsClient) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return resp.String(), nil
}

func (h *httpAccountsClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
