// Package session contains the session opening use case.
//
// There are no passwords: a session is keyed by email alone, and the
// normalized email doubles as the user key for state isolation.
package session

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/gestor-gastos/backend/internal/application/adapter"
	"github.com/gestor-gastos/backend/internal/domain/entity"
	domainerror "github.com/gestor-gastos/backend/internal/domain/error"
)

// OpenSessionInput represents the input for opening a session.
type OpenSessionInput struct {
	Email string
}

// OpenSessionOutput represents the output of opening a session.
type OpenSessionOutput struct {
	Token string
	// UserKey is the normalized email the token resolves back to.
	UserKey string
	// State is the user's snapshot at session start, loaded from persistence
	// or freshly empty for a first visit.
	State entity.State
}

// OpenSessionUseCase issues a session token and warms the user's state.
type OpenSessionUseCase struct {
	store  adapter.StateStore
	tokens adapter.SessionTokens
}

// NewOpenSessionUseCase creates a new OpenSessionUseCase instance.
func NewOpenSessionUseCase(store adapter.StateStore, tokens adapter.SessionTokens) *OpenSessionUseCase {
	return &OpenSessionUseCase{store: store, tokens: tokens}
}

// Execute validates the email, issues a token and initializes the state.
func (uc *OpenSessionUseCase) Execute(ctx context.Context, input OpenSessionInput) (*OpenSessionOutput, error) {
	userKey, err := NormalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	state, err := uc.store.Initialize(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize state: %w", err)
	}

	return &OpenSessionOutput{
		Token:   token,
		UserKey: userKey,
		State:   state,
	}, nil
}

// NormalizeEmail lowercases and trims the email so that the same mailbox
// always maps to the same user key.
func NormalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", domainerror.ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", domainerror.ErrInvalidEmail
	}
	return normalized, nil
}
