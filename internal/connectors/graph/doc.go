// Package graph provides the Microsoft Graph mail connector.
//
// The connector fetches Outlook messages through the Graph REST API:
//   - Paginated listing via /me/messages with $select projection,
//     following @odata.nextLink until enough messages are collected
//   - Retry with exponential backoff on transient server errors
//   - Token bucket rate limiting to stay below Graph throttling limits
//
// # OAuth2 Scopes
//
// The connector expects tokens carrying these delegated scopes:
//   - Mail.Read
//   - User.Read
package graph
