package membership

import (
	"context"
	"reflect"
	"testing"
)

func TestCurrentConsumerID_ConsumerTakesPrecedence(t *testing.T) {
	ctx := WithConsumer(context.Background(), &Consumer{ID: "c1", Username: "alice"})
	ctx = WithCredential(ctx, &Credential{ID: "key-1", ConsumerID: "c2"})

	id, ok := CurrentConsumerID(ctx)
	if !ok {
		t.Fatal("expected a consumer id")
	}
	if id != "c1" {
		t.Errorf("expected 'c1' (consumer wins over credential), got %q", id)
	}
}

func TestCurrentConsumerID_CredentialFallback(t *testing.T) {
	ctx := WithCredential(context.Background(), &Credential{ID: "key-1", ConsumerID: "c2"})

	id, ok := CurrentConsumerID(ctx)
	if !ok {
		t.Fatal("expected a consumer id")
	}
	if id != "c2" {
		t.Errorf("expected 'c2' from credential reference, got %q", id)
	}
}

func TestCurrentConsumerID_Absent(t *testing.T) {
	if id, ok := CurrentConsumerID(context.Background()); ok {
		t.Errorf("expected absence, got %q", id)
	}
}

func TestCurrentConsumerID_EmptyConsumerIDFallsThrough(t *testing.T) {
	ctx := WithConsumer(context.Background(), &Consumer{ID: "", Username: "anon"})
	ctx = WithCredential(ctx, &Credential{ConsumerID: "c2"})

	id, ok := CurrentConsumerID(ctx)
	if !ok || id != "c2" {
		t.Errorf("expected fallback to credential 'c2', got (%q, %v)", id, ok)
	}
}

func TestConsumerFromContext(t *testing.T) {
	consumer := &Consumer{ID: "c1", Username: "alice"}
	ctx := WithConsumer(context.Background(), consumer)

	if got := ConsumerFromContext(ctx); got != consumer {
		t.Errorf("expected same consumer instance, got %v", got)
	}
	if got := ConsumerFromContext(context.Background()); got != nil {
		t.Errorf("expected nil on empty context, got %v", got)
	}
}

func TestCredentialFromContext(t *testing.T) {
	credential := &Credential{ID: "key-1", ConsumerID: "c2"}
	ctx := WithCredential(context.Background(), credential)

	if got := CredentialFromContext(ctx); got != credential {
		t.Errorf("expected same credential instance, got %v", got)
	}
	if got := CredentialFromContext(context.Background()); got != nil {
		t.Errorf("expected nil on empty context, got %v", got)
	}
}

func TestAuthenticatedGroups_BuildsFromInputList(t *testing.T) {
	ctx := WithGroups(context.Background(), []string{"admins", "users"})

	set, ok := AuthenticatedGroups(ctx)
	if !ok {
		t.Fatal("expected a group set")
	}

	// The set must index the supplied list, not an empty one.
	want := []string{"admins", "users"}
	if !reflect.DeepEqual(set.Names(), want) {
		t.Errorf("expected names %v, got %v", want, set.Names())
	}
	if !set.Contains("admins") || !set.Contains("users") {
		t.Error("expected supplied groups to be members")
	}
}

func TestAuthenticatedGroups_Absent(t *testing.T) {
	if set, ok := AuthenticatedGroups(context.Background()); ok || set != nil {
		t.Errorf("expected absence, got (%v, %v)", set, ok)
	}
}

func TestAuthenticatedGroups_NilListIsAbsent(t *testing.T) {
	ctx := WithGroups(context.Background(), nil)

	if set, ok := AuthenticatedGroups(ctx); ok || set != nil {
		t.Errorf("expected absence for nil list, got (%v, %v)", set, ok)
	}
}

func TestAuthenticatedGroups_EmptyListYieldsEmptySet(t *testing.T) {
	ctx := WithGroups(context.Background(), []string{})

	set, ok := AuthenticatedGroups(ctx)
	if !ok {
		t.Fatal("expected a group set for an empty (non-nil) list")
	}
	if set.Len() != 0 {
		t.Errorf("expected empty set, got %d names", set.Len())
	}
}
