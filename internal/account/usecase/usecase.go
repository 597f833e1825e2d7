package usecase

import (
	"context"
	"time"

	"github.com/danukusuma/authcore/internal/account/entity"
	"github.com/danukusuma/authcore/internal/pkg/clock"
	"github.com/danukusuma/authcore/internal/pkg/config"
	"github.com/danukusuma/authcore/internal/pkg/goerror"
	"github.com/danukusuma/authcore/internal/pkg/goroutine"
	"github.com/danukusuma/authcore/internal/pkg/hash"
	"github.com/danukusuma/authcore/internal/pkg/idempotency"
	"github.com/danukusuma/authcore/internal/pkg/instrument"
	"github.com/danukusuma/authcore/internal/pkg/jwt"
	"github.com/danukusuma/authcore/internal/pkg/storage"
	"github.com/danukusuma/authcore/internal/pkg/uid"
	"github.com/danukusuma/authcore/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// UserRegisteredEvent notifies downstream consumers about a new account.
type UserRegisteredEvent struct {
	UserID   int64
	Email    string
	FullName string
}

// OTPIssuedEvent hands an issued challenge to the delivery channel.
type OTPIssuedEvent struct {
	UserID    int64
	Email     string
	FullName  string
	Code      string
	ExpiresAt time.Time
}

type otpGenerator interface {
	Generate() (string, error)
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
	PublishOTPIssued(ctx context.Context, msg OTPIssuedEvent) error
}

type repoDB interface {
	GetUserCredentialByEmail(ctx context.Context, email string) (*entity.UserCredential, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)

	CreateUser(ctx context.Context, user entity.NewUser, hash string) error
	UpdateUser(ctx context.Context, patch entity.PatchUser, hash string) (*entity.User, error)
	DeleteUser(ctx context.Context, id int64) error

	SetOTPChallenge(ctx context.Context, id int64, code string, expiresAt time.Time) error
	ConsumeOTPChallenge(ctx context.Context, id int64, code string, now time.Time) (bool, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	storage       storage.Storage
	bcrypt        hash.Hash
	uid           uid.NumberID
	uuid          uid.StringID
	otp           otpGenerator
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	Storage       storage.Storage
	Bcrypt        hash.Hash
	UID           uid.NumberID
	UUID          uid.StringID
	OTP           otpGenerator
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		storage:       dep.Storage,
		bcrypt:        dep.Bcrypt,
		uid:           dep.UID,
		uuid:          dep.UUID,
		otp:           dep.OTP,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}
