// Package client contains the client-side building blocks for folio.
//
// # Overview
//
//  1. HTTPClient talks to the folio JSON API. Error envelopes come back as
//     *APIError values that unwrap to the shared sentinels in
//     internal/common, so callers match them with errors.Is.
//  2. InitDatabase opens the local SQLite file and applies the embedded
//     goose migrations.
//  3. TokenStore persists the session token in the metadata table. Only
//     the token is persisted; the identity is always re-resolved.
//
// # Error Handling
//
// Transport failures (refused connection, timeout) wrap ErrUnavailable.
// 401 responses wrap ErrUnauthorized.
package client
