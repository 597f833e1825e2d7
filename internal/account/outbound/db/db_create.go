package db

import (
	"context"

	"github.com/danukusuma/authcore/internal/account/entity"
)

func (s *DB) CreateUser(ctx context.Context, user entity.NewUser, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO account_users
			(id, email, password, full_name, company_name, age, date_of_birth, profile_image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID,
		user.Email,
		hash,
		user.FullName,
		user.CompanyName,
		user.Age,
		user.DateOfBirth,
		user.ProfileImageURL,
	)

	err = s.mapError(err)
	return err
}
