package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/casafind/casafind-backend/internal/apierr"
	"github.com/casafind/casafind-backend/internal/logger"
	"github.com/casafind/casafind-backend/internal/repos"
)

func newTestAgentService(t *testing.T) AgentService {
	t.Helper()
	gdb := newTestDB(t)
	log, _ := logger.New("development")
	return NewAgentService(gdb, log, repos.NewAgentRepo(gdb, log))
}

func TestAgentService_CreateAndFetch(t *testing.T) {
	svc := newTestAgentService(t)

	created, err := svc.Create(context.Background(), CreateAgentInput{Name: "Alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("expected assigned id")
	}

	fetched, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched.Name != "Alice" || fetched.Email != "alice@example.com" {
		t.Fatalf("unexpected agent: %+v", fetched)
	}
}

func TestAgentService_DuplicateEmailConflicts(t *testing.T) {
	svc := newTestAgentService(t)

	if _, err := svc.Create(context.Background(), CreateAgentInput{Name: "Alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.Create(context.Background(), CreateAgentInput{Name: "Impostor", Email: "alice@example.com"})
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusConflict {
		t.Fatalf("expected 409 conflict, got %v", err)
	}
}

func TestAgentService_UpdateKeepingOwnEmail(t *testing.T) {
	svc := newTestAgentService(t)

	created, err := svc.Create(context.Background(), CreateAgentInput{Name: "Alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name := "Alice B"
	email := "alice@example.com"
	updated, err := svc.Update(context.Background(), created.ID, UpdateAgentInput{Name: &name, Email: &email})
	if err != nil {
		t.Fatalf("re-submitting own email must not conflict: %v", err)
	}
	if updated.Name != "Alice B" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}
}

func TestAgentService_MissingAgentIsNotFound(t *testing.T) {
	svc := newTestAgentService(t)

	_, err := svc.GetByID(context.Background(), uuid.New())
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}

	if err := svc.Delete(context.Background(), uuid.New()); err == nil {
		t.Fatalf("expected delete of unknown agent to fail")
	}
}
