package processor

import (
	"context"
	"errors"

	"geo-optimizer-server/internal/observability"
	"geo-optimizer-server/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthStore is the persistence surface the auth processor needs.
type AuthStore interface {
	CheckIfOperatorEmailExists(ctx context.Context, email string) (bool, error)
	CreateOperatorOnEmailSignup(ctx context.Context, firstName string, lastName string, email string, hashedPassword string) (store.Operator, error)
	GetOperatorCredentialsByEmail(ctx context.Context, email string) (store.EmailAuth, error)
	GetOperatorByAuthID(ctx context.Context, authID uuid.UUID) (store.AuthenticatedOperator, error)
}

type AuthProcessor struct {
	store     AuthStore
	jwtSecret string
	logger    *observability.Logger
}

func New(store AuthStore, jwtSecret string, logger *observability.Logger) AuthProcessor {
	return AuthProcessor{
		store:     store,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

var ErrEmailAlreadyExists = errors.New("email already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

type SignedUpOperator struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type Operator struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	AuthID    uuid.UUID `json:"auth_id"`
}

func (p *AuthProcessor) Signup(
	ctx context.Context, firstName string, lastName string, email string, password string) (SignedUpOperator, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: email})
	exists, err := p.store.CheckIfOperatorEmailExists(ctx, email)
	if err != nil {
		p.logger.Error(ctx, "failed to check if email exists", err)
		return SignedUpOperator{}, err
	}
	if exists {
		return SignedUpOperator{}, ErrEmailAlreadyExists
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		p.logger.Error(ctx, "failed to hash password", err)
		return SignedUpOperator{}, err
	}
	operator, err := p.store.CreateOperatorOnEmailSignup(ctx, firstName, lastName, email, string(hashedPassword))
	if err != nil {
		p.logger.Error(ctx, "failed to create operator", err)
		return SignedUpOperator{}, err
	}
	return SignedUpOperator{
		FirstName: operator.FirstName,
		LastName:  operator.LastName,
		Email:     email,
	}, nil
}

func (p *AuthProcessor) Login(ctx context.Context, email string, password string) (string, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: email})
	credentials, err := p.store.GetOperatorCredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		p.logger.Error(ctx, "failed to get operator by email", err)
		return "", err
	}
	err = bcrypt.CompareHashAndPassword([]byte(credentials.HashedPassword), []byte(password))
	if err != nil {
		return "", ErrInvalidCredentials
	}
	operator, err := p.store.GetOperatorByAuthID(ctx, credentials.AuthID)
	if err != nil {
		p.logger.Error(ctx, "failed to get operator by auth id", err)
		return "", err
	}
	token, err := p.generateJWTToken(ctx, operator)
	if err != nil {
		p.logger.Error(ctx, "failed to generate jwt token", err)
		return "", err
	}
	return token, nil
}

func (p *AuthProcessor) GetOperatorByAuthID(ctx context.Context, authID uuid.UUID) (Operator, error) {
	operator, err := p.store.GetOperatorByAuthID(ctx, authID)
	if err != nil {
		p.logger.Error(ctx, "failed to get operator by auth id", err)
		return Operator{}, err
	}
	return Operator{
		FirstName: operator.FirstName,
		LastName:  operator.LastName,
		AuthID:    operator.AuthID,
	}, nil
}
