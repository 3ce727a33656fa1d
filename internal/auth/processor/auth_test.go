package processor

import (
	"context"
	"errors"
	"testing"

	"geo-optimizer-server/internal/observability"
	"geo-optimizer-server/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type stubAuthStore struct {
	emailExists bool
	credentials store.EmailAuth
	credsErr    error
	operator    store.AuthenticatedOperator

	createdEmail string
}

func (s *stubAuthStore) CheckIfOperatorEmailExists(ctx context.Context, email string) (bool, error) {
	return s.emailExists, nil
}

func (s *stubAuthStore) CreateOperatorOnEmailSignup(ctx context.Context, firstName, lastName, email, hashedPassword string) (store.Operator, error) {
	s.createdEmail = email
	return store.Operator{ID: uuid.New(), FirstName: firstName, LastName: lastName}, nil
}

func (s *stubAuthStore) GetOperatorCredentialsByEmail(ctx context.Context, email string) (store.EmailAuth, error) {
	if s.credsErr != nil {
		return store.EmailAuth{}, s.credsErr
	}
	return s.credentials, nil
}

func (s *stubAuthStore) GetOperatorByAuthID(ctx context.Context, authID uuid.UUID) (store.AuthenticatedOperator, error) {
	return s.operator, nil
}

func TestSignupRejectsExistingEmail(t *testing.T) {
	stub := &stubAuthStore{emailExists: true}
	p := New(stub, "secret", observability.NewLogger())

	_, err := p.Signup(context.Background(), "Ada", "Ops", "ada@example.com", "password123")
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestSignupCreatesOperator(t *testing.T) {
	stub := &stubAuthStore{}
	p := New(stub, "secret", observability.NewLogger())

	signedUp, err := p.Signup(context.Background(), "Ada", "Ops", "ada@example.com", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signedUp.Email != "ada@example.com" {
		t.Errorf("expected email ada@example.com, got %s", signedUp.Email)
	}
	if stub.createdEmail != "ada@example.com" {
		t.Errorf("expected operator created for ada@example.com, got %s", stub.createdEmail)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	stub := &stubAuthStore{
		credentials: store.EmailAuth{Email: "ada@example.com", HashedPassword: string(hashed), AuthID: uuid.New()},
	}
	p := New(stub, "secret", observability.NewLogger())

	_, err = p.Login(context.Background(), "ada@example.com", "wrongpassword")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	stub := &stubAuthStore{credsErr: store.ErrNotFound}
	p := New(stub, "secret", observability.NewLogger())

	_, err := p.Login(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginIssuesValidToken(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	authID := uuid.New()
	stub := &stubAuthStore{
		credentials: store.EmailAuth{Email: "ada@example.com", HashedPassword: string(hashed), AuthID: authID},
		operator:    store.AuthenticatedOperator{OperatorID: uuid.New(), FirstName: "Ada", LastName: "Ops", AuthID: authID, AuthType: "email"},
	}
	p := New(stub, "secret", observability.NewLogger())

	token, err := p.Login(context.Background(), "ada@example.com", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := p.ValidateJWTToken(context.Background(), token)
	if err != nil {
		t.Fatalf("failed to validate issued token: %v", err)
	}
	sub, err := claims.GetSubject()
	if err != nil {
		t.Fatalf("failed to get subject: %v", err)
	}
	if sub != authID.String() {
		t.Errorf("expected subject %s, got %s", authID, sub)
	}
	if claims.AuthType != "email" {
		t.Errorf("expected auth_type email, got %s", claims.AuthType)
	}
}

func TestValidateJWTTokenRejectsGarbage(t *testing.T) {
	p := New(&stubAuthStore{}, "secret", observability.NewLogger())

	_, err := p.ValidateJWTToken(context.Background(), "not-a-token")
	if !errors.Is(err, ErrParseJWTToken) {
		t.Errorf("expected ErrParseJWTToken, got %v", err)
	}
}
