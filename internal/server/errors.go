// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated means the configuration left every listener
// disabled.
var errNoServersAreCreated = errors.New("no listener address configured")
