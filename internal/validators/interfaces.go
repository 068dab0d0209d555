// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks account input before it reaches storage:
// email syntax, password length and strength, roles, user ids and page
// sizes. Every failure wraps one of the sentinel errors in errors.go so
// callers can map it with errors.Is.
package validators

import "context"

// Validator checks a value of a known account type. When fields are given,
// only those fields are checked; otherwise the type's full rule set runs.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
