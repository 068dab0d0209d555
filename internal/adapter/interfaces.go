// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the accounts service REST API.
//
// The primary abstraction is [AccountsClient], which hides the transport from
// callers. The package ships an HTTP/REST implementation
// ([NewHTTPAccountsClient]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-user-accounts/models"
)

// AccountsClient talks to the accounts service on behalf of one caller.
// Implementations keep the bearer token obtained by Login and attach it to
// every request that needs authorization.
type AccountsClient interface {
	// SetToken stores the bearer token attached to subsequent authorized
	// requests.
	SetToken(token string)

	// Token returns the stored bearer token or an empty string.
	Token() string

	// Login exchanges email and password for a token and stores it.
	Login(ctx context.Context, email, password string) (models.AccessToken, error)

	// RefreshToken replaces the stored token with a freshly issued one.
	RefreshToken(ctx context.Context) (models.AccessToken, error)

	// Me returns the account the stored token belongs to.
	Me(ctx context.Context) (models.User, error)

	CreateUser(ctx context.Context, user models.UserCreate) (models.UserPublic, error)
	GetUser(ctx context.Context, id int64) (models.UserPublic, error)
	ListUsers(ctx context.Context, req models.ListRequest) ([]models.UserPublic, error)
	UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (models.UserPublic, error)
	DeleteUser(ctx context.Context, id int64) error

	// Version returns the server build version.
	Version(ctx context.Context) (string, error)
}
