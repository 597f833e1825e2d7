package db

import (
	"context"
	"fmt"
	"time"

	"github.com/danukusuma/authcore/internal/account/entity"
	"github.com/danukusuma/authcore/internal/pkg/goerror"
)

// UpdateUser applies a partial patch and returns the new snapshot.
//
// An empty hash leaves the stored password untouched.
func (s *DB) UpdateUser(ctx context.Context, patch entity.PatchUser, hash string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "UpdateUser")
	defer func() { s.endSpan(span, err) }()

	sets := []string{"updated_at = now()"}
	args := []any{patch.ID}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.FullName != nil {
		addSet("full_name", *patch.FullName)
	}
	if patch.CompanyName != nil {
		addSet("company_name", *patch.CompanyName)
	}
	if patch.Age != nil {
		addSet("age", *patch.Age)
	}
	if patch.DateOfBirth != nil {
		addSet("date_of_birth", *patch.DateOfBirth)
	}
	if hash != "" {
		addSet("password", hash)
	}

	query := `UPDATE account_users SET `
	for i, set := range sets {
		if i > 0 {
			query += ", "
		}
		query += set
	}
	query += ` WHERE id = $1 RETURNING ` + userColumns

	user, err := scanUser(s.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, s.mapError(err)
	}

	return user, nil
}

func (s *DB) DeleteUser(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteUser")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM account_users WHERE id = $1`, id)
	if err != nil {
		err = s.mapError(err)
		return err
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

// SetOTPChallenge stores a fresh challenge, overwriting any prior one.
func (s *DB) SetOTPChallenge(ctx context.Context, id int64, code string, expiresAt time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "SetOTPChallenge")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE account_users SET otp_code = $2, otp_expires_at = $3, updated_at = now() WHERE id = $1`,
		id, code, expiresAt,
	)
	if err != nil {
		err = s.mapError(err)
		return err
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

// ConsumeOTPChallenge clears the challenge when an active one matches the
// submitted code. The single conditional UPDATE makes consumption atomic: a
// replay, a mismatch, and an expired code all leave zero rows affected. A code
// submitted exactly at its expiry instant is still accepted.
func (s *DB) ConsumeOTPChallenge(ctx context.Context, id int64, code string, now time.Time) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ConsumeOTPChallenge")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE account_users
		SET otp_code = NULL, otp_expires_at = NULL, updated_at = now()
		WHERE id = $1 AND otp_code IS NOT NULL AND otp_code = $2 AND otp_expires_at >= $3`,
		id, code, now,
	)
	if err != nil {
		err = s.mapError(err)
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}
