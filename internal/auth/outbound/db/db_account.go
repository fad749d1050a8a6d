package db

import (
	"context"

	"github.com/bagaskoro/passless/internal/auth/entity"
)

const queryGetAccountByEmail = `
SELECT id, email, full_name, status, created_at, updated_at
FROM accounts
WHERE email = $1`

func (s *DB) GetAccountByEmail(ctx context.Context, email string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByEmail")
	defer func() { s.endSpan(span, err) }()

	var acc entity.Account
	err = s.conn.QueryRow(ctx, queryGetAccountByEmail, email).Scan(
		&acc.ID,
		&acc.Email,
		&acc.FullName,
		&acc.Status,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &acc, nil
}

const queryGetAccountByID = `
SELECT id, email, full_name, status, created_at, updated_at
FROM accounts
WHERE id = $1`

func (s *DB) GetAccountByID(ctx context.Context, id int64) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByID")
	defer func() { s.endSpan(span, err) }()

	var acc entity.Account
	err = s.conn.QueryRow(ctx, queryGetAccountByID, id).Scan(
		&acc.ID,
		&acc.Email,
		&acc.FullName,
		&acc.Status,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &acc, nil
}

const queryCreateAccount = `
INSERT INTO accounts (id, email, full_name, status)
VALUES ($1, $2, $3, $4)`

func (s *DB) CreateAccount(ctx context.Context, acc entity.NewAccount) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryCreateAccount, acc.ID, acc.Email, acc.FullName, acc.Status)
	return s.mapError(err)
}
