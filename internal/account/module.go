package account

import (
	"github.com/danukusuma/authcore/internal/account/inbound"
	"github.com/danukusuma/authcore/internal/account/outbound/db"
	"github.com/danukusuma/authcore/internal/account/outbound/mq"
	"github.com/danukusuma/authcore/internal/account/usecase"
	"github.com/danukusuma/authcore/internal/pkg/clock"
	"github.com/danukusuma/authcore/internal/pkg/config"
	"github.com/danukusuma/authcore/internal/pkg/goroutine"
	"github.com/danukusuma/authcore/internal/pkg/hash"
	"github.com/danukusuma/authcore/internal/pkg/idempotency"
	"github.com/danukusuma/authcore/internal/pkg/instrument"
	"github.com/danukusuma/authcore/internal/pkg/jwt"
	"github.com/danukusuma/authcore/internal/pkg/messaging"
	"github.com/danukusuma/authcore/internal/pkg/otp"
	"github.com/danukusuma/authcore/internal/pkg/router"
	"github.com/danukusuma/authcore/internal/pkg/storage"
	"github.com/danukusuma/authcore/internal/pkg/uid"
	"github.com/danukusuma/authcore/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	CacheConn   *redis.Client              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Storage     storage.Storage            `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	Bcrypt      hash.Hash                  `validate:"required"`
	OTP         *otp.Generator             `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	JWT         jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAccount := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAccount,
		RepoMessaging: repoMsg,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Storage:       dep.Storage,
		Bcrypt:        dep.Bcrypt,
		UID:           dep.UID,
		UUID:          dep.UUID,
		OTP:           dep.OTP,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
