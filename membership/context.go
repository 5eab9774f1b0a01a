package membership

import (
	"context"
)

// Consumer is the authenticated consumer record attached to a request
// by the gateway's authentication layer.
type Consumer struct {
	ID       string
	Username string
}

// Credential is an authenticated credential referencing the consumer
// that owns it.
type Credential struct {
	ID         string
	ConsumerID string
}

// Context keys for authentication state.
type contextKey int

const (
	consumerKey contextKey = iota
	credentialKey
	groupsKey
)

// WithConsumer returns a new context with the authenticated consumer attached.
func WithConsumer(ctx context.Context, c *Consumer) context.Context {
	return context.WithValue(ctx, consumerKey, c)
}

// WithCredential returns a new context with the authenticated credential attached.
func WithCredential(ctx context.Context, c *Credential) context.Context {
	return context.WithValue(ctx, credentialKey, c)
}

// WithGroups returns a new context carrying a pre-resolved list of
// group names, as injected by an upstream authentication step.
func WithGroups(ctx context.Context, groups []string) context.Context {
	return context.WithValue(ctx, groupsKey, groups)
}

// ConsumerFromContext retrieves the authenticated consumer.
// Returns nil if none is present.
func ConsumerFromContext(ctx context.Context) *Consumer {
	c, _ := ctx.Value(consumerKey).(*Consumer)
	return c
}

// CredentialFromContext retrieves the authenticated credential.
// Returns nil if none is present.
func CredentialFromContext(ctx context.Context) *Credential {
	c, _ := ctx.Value(credentialKey).(*Credential)
	return c
}

// CurrentConsumerID returns the effective consumer id for the request:
// the authenticated consumer's id when present, otherwise the
// authenticated credential's consumer reference. The second return
// reports whether either was found; an unauthenticated request is
// absence, not an error.
func CurrentConsumerID(ctx context.Context) (string, bool) {
	if c := ConsumerFromContext(ctx); c != nil && c.ID != "" {
		return c.ID, true
	}
	if cr := CredentialFromContext(ctx); cr != nil && cr.ConsumerID != "" {
		return cr.ConsumerID, true
	}
	return "", false
}

// AuthenticatedGroups builds a GroupSet from the group names attached
// to the context by WithGroups, bypassing the backing store entirely.
// Returns (nil, false) when no list is attached; a missing or malformed
// list is absence, not an error.
func AuthenticatedGroups(ctx context.Context) (*GroupSet, bool) {
	names, ok := ctx.Value(groupsKey).([]string)
	if !ok || names == nil {
		return nil, false
	}
	return GroupSetFromNames(names), true
}
