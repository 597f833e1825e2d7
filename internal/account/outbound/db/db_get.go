package db

import (
	"context"

	"github.com/danukusuma/authcore/internal/account/entity"
)

const userColumns = `id, email, full_name, company_name, age, date_of_birth,
	profile_image_url, created_at, updated_at`

func (s *DB) GetUserCredentialByEmail(ctx context.Context, email string) (_ *entity.UserCredential, err error) {
	ctx, span := s.startSpan(ctx, "GetUserCredentialByEmail")
	defer func() { s.endSpan(span, err) }()

	var cred entity.UserCredential
	err = s.conn.QueryRow(ctx,
		`SELECT id, email, full_name, password FROM account_users WHERE email = $1`,
		email,
	).Scan(&cred.ID, &cred.Email, &cred.FullName, &cred.Password)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &cred, nil
}

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM account_users WHERE email = $1`, email)

	user, err := scanUser(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return user, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM account_users WHERE id = $1`, id)

	user, err := scanUser(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	var user entity.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.CompanyName,
		&user.Age,
		&user.DateOfBirth,
		&user.ProfileImageURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &user, nil
}
