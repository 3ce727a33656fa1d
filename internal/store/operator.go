package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Operator struct {
	ID        uuid.UUID `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
}

type OperatorAuth struct {
	ID         uuid.UUID `db:"id"`
	OperatorID uuid.UUID `db:"operator_id"`
	AuthType   string    `db:"auth_type"`
}

type EmailAuth struct {
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	AuthID         uuid.UUID `db:"auth_id"`
}

type AuthenticatedOperator struct {
	OperatorID uuid.UUID `db:"id"`
	FirstName  string    `db:"first_name"`
	LastName   string    `db:"last_name"`
	AuthID     uuid.UUID `db:"auth_id"`
	AuthType   string    `db:"auth_type"`
}

const sqlCheckIfOperatorEmailExists = `
SELECT EXISTS(SELECT 1
              FROM email_auth
              WHERE email = $1
              )`

func (s *Store) CheckIfOperatorEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, sqlCheckIfOperatorEmailExists, email)
	if err != nil {
		s.logger.Error(ctx, "failed to check email exists", err)
		return false, fmt.Errorf("failed to check email on email_auth table: %w", err)
	}
	return exists, nil
}

const sqlCreateOperator = `
INSERT INTO operators (first_name, last_name)
VALUES ($1, $2)
RETURNING id, first_name, last_name`

const sqlCreateOperatorAuth = `
INSERT INTO operator_auth (operator_id, auth_type)
VALUES ($1, $2)
RETURNING id, operator_id, auth_type`

const sqlCreateEmailAuth = `
INSERT INTO email_auth (auth_id, email, hashed_password)
VALUES ($1, $2, $3)
RETURNING email, hashed_password, auth_id`

func (s *Store) CreateOperatorOnEmailSignup(
	ctx context.Context, firstName string, lastName string, email string, hashedPassword string) (Operator, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.Error(ctx, "failed to begin transaction", err)
		return Operator{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			s.logger.Error(ctx, "rolling back transaction", err)
			err = tx.Rollback()
			if err != nil {
				s.logger.Error(ctx, "failed to rollback transaction", err)
			}
			return
		}
	}()

	var operator Operator
	err = tx.GetContext(ctx, &operator, sqlCreateOperator, firstName, lastName)
	if err != nil {
		s.logger.Error(ctx, "failed to create operator", err)
		return Operator{}, fmt.Errorf("failed to create operator: %w", err)
	}

	var operatorAuth OperatorAuth
	err = tx.GetContext(ctx, &operatorAuth, sqlCreateOperatorAuth, operator.ID, "email")
	if err != nil {
		s.logger.Error(ctx, "failed to create operator auth entry", err)
		return Operator{}, fmt.Errorf("failed to create operator auth entry: %w", err)
	}

	var emailAuth EmailAuth
	err = tx.GetContext(ctx, &emailAuth, sqlCreateEmailAuth, operatorAuth.ID, email, hashedPassword)
	if err != nil {
		s.logger.Error(ctx, "failed to create email auth entry", err)
		return Operator{}, fmt.Errorf("failed to create email auth entry: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		s.logger.Error(ctx, "failed to commit transaction", err)
		return Operator{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return operator, nil
}

const sqlGetOperatorCredentialsByEmail = `
SELECT
    email,
    hashed_password,
    auth_id
FROM email_auth
WHERE email = $1`

func (s *Store) GetOperatorCredentialsByEmail(ctx context.Context, email string) (EmailAuth, error) {
	var credentials EmailAuth
	err := s.db.GetContext(ctx, &credentials, sqlGetOperatorCredentialsByEmail, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return EmailAuth{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get operator by email", err)
		return EmailAuth{}, fmt.Errorf("failed to get operator by email: %w", err)
	}
	return credentials, nil
}

const sqlGetOperatorByAuthID = `
SELECT
    op.id,
    op.first_name,
    op.last_name,
    auth.id as auth_id,
    auth.auth_type
FROM operators AS op
LEFT JOIN operator_auth auth
ON
    op.id = auth.operator_id
WHERE auth.id = $1
`

func (s *Store) GetOperatorByAuthID(ctx context.Context, authID uuid.UUID) (AuthenticatedOperator, error) {
	var operator AuthenticatedOperator
	err := s.db.GetContext(ctx, &operator, sqlGetOperatorByAuthID, authID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AuthenticatedOperator{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get operator by auth id", err)
		return AuthenticatedOperator{}, fmt.Errorf("failed to get operator by auth id: %w", err)
	}
	return operator, nil
}
