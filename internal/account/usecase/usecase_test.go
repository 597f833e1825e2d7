package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/danukusuma/authcore/internal/account/entity"
	"github.com/danukusuma/authcore/internal/pkg/config"
	"github.com/danukusuma/authcore/internal/pkg/goerror"
	"github.com/danukusuma/authcore/internal/pkg/goroutine"
	"github.com/danukusuma/authcore/internal/pkg/hash"
	"github.com/danukusuma/authcore/internal/pkg/idempotency"
	"github.com/danukusuma/authcore/internal/pkg/instrument"
	"github.com/danukusuma/authcore/internal/pkg/jwt"
	"github.com/danukusuma/authcore/internal/pkg/otp"
	"github.com/danukusuma/authcore/internal/pkg/storage"
	"github.com/danukusuma/authcore/internal/pkg/validator"
)

const testConfigYAML = `
storage:
  bucket: "authcore-test"
  public_base_url: "http://localhost:9000"
modules:
  account:
    otp_ttl_minutes: 10
    expose_otp_codes: true
`

// pngBytes is the PNG magic number, enough for content type sniffing.
var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

type otpChallenge struct {
	code      string
	expiresAt time.Time
}

type fakeRepoDB struct {
	users      map[int64]*entity.User
	passwords  map[int64]string
	challenges map[int64]otpChallenge

	forcedErr error
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{
		users:      map[int64]*entity.User{},
		passwords:  map[int64]string{},
		challenges: map[int64]otpChallenge{},
	}
}

func (f *fakeRepoDB) byEmail(email string) *entity.User {
	for _, u := range f.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (f *fakeRepoDB) GetUserCredentialByEmail(_ context.Context, email string) (*entity.UserCredential, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	u := f.byEmail(email)
	if u == nil {
		return nil, goerror.ErrNotFound
	}
	return &entity.UserCredential{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Password: f.passwords[u.ID],
	}, nil
}

func (f *fakeRepoDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	u := f.byEmail(email)
	if u == nil {
		return nil, goerror.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeRepoDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeRepoDB) CreateUser(_ context.Context, user entity.NewUser, hashed string) error {
	if f.byEmail(user.Email) != nil {
		return goerror.ErrConflict
	}
	f.users[user.ID] = &entity.User{
		ID:              user.ID,
		Email:           user.Email,
		FullName:        user.FullName,
		CompanyName:     user.CompanyName,
		Age:             user.Age,
		DateOfBirth:     user.DateOfBirth,
		ProfileImageURL: user.ProfileImageURL,
	}
	f.passwords[user.ID] = hashed
	return nil
}

func (f *fakeRepoDB) UpdateUser(_ context.Context, patch entity.PatchUser, hashed string) (*entity.User, error) {
	u, ok := f.users[patch.ID]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	if patch.FullName != nil {
		u.FullName = *patch.FullName
	}
	if patch.CompanyName != nil {
		u.CompanyName = *patch.CompanyName
	}
	if patch.Age != nil {
		u.Age = *patch.Age
	}
	if patch.DateOfBirth != nil {
		u.DateOfBirth = *patch.DateOfBirth
	}
	if hashed != "" {
		f.passwords[u.ID] = hashed
	}
	clone := *u
	return &clone, nil
}

func (f *fakeRepoDB) DeleteUser(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(f.users, id)
	delete(f.passwords, id)
	delete(f.challenges, id)
	return nil
}

func (f *fakeRepoDB) SetOTPChallenge(_ context.Context, id int64, code string, expiresAt time.Time) error {
	f.challenges[id] = otpChallenge{code: code, expiresAt: expiresAt}
	return nil
}

func (f *fakeRepoDB) ConsumeOTPChallenge(_ context.Context, id int64, code string, now time.Time) (bool, error) {
	ch, ok := f.challenges[id]
	if !ok {
		return false, nil
	}
	if !otp.Match(ch.code, code) || now.After(ch.expiresAt) {
		return false, nil
	}
	delete(f.challenges, id)
	return true, nil
}

// fakeMessaging is locked because OTP events are published off the request
// goroutine.
type fakeMessaging struct {
	mu         sync.Mutex
	registered []UserRegisteredEvent
	otps       []OTPIssuedEvent
}

func (f *fakeMessaging) PublishUserRegistered(_ context.Context, msg UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, msg)
	return nil
}

func (f *fakeMessaging) PublishOTPIssued(_ context.Context, msg OTPIssuedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.otps = append(f.otps, msg)
	return nil
}

func (f *fakeMessaging) registeredEvents() []UserRegisteredEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]UserRegisteredEvent(nil), f.registered...)
}

func (f *fakeMessaging) otpEvents() []OTPIssuedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]OTPIssuedEvent(nil), f.otps...)
}

type fakeIdempotency struct {
	states map[string]idempotency.State
}

func newFakeIdempotency() *fakeIdempotency {
	return &fakeIdempotency{states: map[string]idempotency.State{}}
}

func (f *fakeIdempotency) Acquire(_ context.Context, key string, _ time.Duration) (idempotency.State, error) {
	state, ok := f.states[key]
	if !ok {
		f.states[key] = idempotency.StateInProgress
		return idempotency.StateNone, nil
	}
	return state, nil
}

func (f *fakeIdempotency) MarkCompleted(_ context.Context, key string, _ time.Duration) error {
	f.states[key] = idempotency.StateCompleted
	return nil
}

func (f *fakeIdempotency) MarkFailed(_ context.Context, key string, _ time.Duration) error {
	f.states[key] = idempotency.StateFailed
	return nil
}

func (f *fakeIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	state, err := f.Acquire(ctx, key, 0)
	if err != nil {
		return err
	}

	switch state {
	case idempotency.StateInProgress:
		return idempotency.ErrAlreadyInProgress
	case idempotency.StateCompleted:
		return idempotency.ErrAlreadyCompleted
	case idempotency.StateFailed:
		return idempotency.ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		f.states[key] = idempotency.StateFailed
		return err
	}

	f.states[key] = idempotency.StateCompleted
	return nil
}

type storedObject struct {
	bucket      string
	key         string
	size        int64
	contentType string
}

type fakeStorage struct {
	puts []storedObject
}

func (f *fakeStorage) Close() error { return nil }

func (f *fakeStorage) PutObject(_ context.Context, bucket, key string, _ io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error) {
	f.puts = append(f.puts, storedObject{bucket: bucket, key: key, size: opts.Size, contentType: opts.ContentType})
	return storage.ObjectInfo{Bucket: bucket, Key: key, Size: opts.Size, ContentType: opts.ContentType}, nil
}

func (f *fakeStorage) GetObject(context.Context, string, string, storage.GetOptions) (io.ReadCloser, storage.ObjectInfo, error) {
	return nil, storage.ObjectInfo{}, goerror.ErrNotFound
}

func (f *fakeStorage) StatObject(context.Context, string, string) (storage.ObjectInfo, error) {
	return storage.ObjectInfo{}, goerror.ErrNotFound
}

func (f *fakeStorage) DeleteObject(context.Context, string, string) error { return nil }

func (f *fakeStorage) ListObjects(context.Context, string, string, storage.ListOptions) ([]storage.ObjectInfo, error) {
	return nil, nil
}

func (f *fakeStorage) PresignGet(context.Context, string, string, time.Duration) (string, error) {
	return "", storage.ErrMissingSigner
}

func (f *fakeStorage) PresignPut(context.Context, string, string, storage.PutOptions, time.Duration) (string, error) {
	return "", storage.ErrMissingSigner
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type seqNumberID struct {
	next int64
}

func (s *seqNumberID) Generate() int64 {
	s.next++
	return s.next
}

type seqStringID struct {
	next int
}

func (s *seqStringID) Generate() string {
	s.next++
	return fmt.Sprintf("fixed-uuid-%04d", s.next)
}

type fixture struct {
	uc        *Usecase
	repo      *fakeRepoDB
	messaging *fakeMessaging
	idemp     *fakeIdempotency
	storage   *fakeStorage
	clock     *fixedClock
	bcrypt    hash.Hash
	jwt       jwt.JWT
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("build config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("build validator: %v", err)
	}

	clk := &fixedClock{now: time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)}
	uuid := &seqStringID{}

	signer, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer:    "authcore-test",
		Audiences: []string{"authcore-test"},
		TTL:       3 * 24 * time.Hour,
		Clock:     clk,
		UUID:      uuid,
	})
	if err != nil {
		t.Fatalf("build jwt: %v", err)
	}

	repo := newFakeRepoDB()
	msg := &fakeMessaging{}
	idemp := newFakeIdempotency()
	stg := &fakeStorage{}
	bc := hash.NewBcrypt(4, "")

	uc := New(Dependency{
		RepoDB:        repo,
		RepoMessaging: msg,
		Idempotency:   idemp,
		Validator:     v10,
		Config:        cfg,
		Storage:       stg,
		Bcrypt:        bc,
		UID:           &seqNumberID{next: 100},
		UUID:          uuid,
		OTP:           otp.NewGenerator(otp.DefaultDigits),
		Clock:         clk,
		JWT:           signer,
		Instrument:    instrument.NewNoop(),
		Goroutine:     goroutine.NewManager(4),
	})

	return &fixture{
		uc:        uc,
		repo:      repo,
		messaging: msg,
		idemp:     idemp,
		storage:   stg,
		clock:     clk,
		bcrypt:    bc,
		jwt:       signer,
	}
}

// seedUser stores an account with the given password directly in the fake repo.
func (f *fixture) seedUser(t *testing.T, id int64, email, password string) *entity.User {
	t.Helper()

	hashed, err := f.bcrypt.Hash(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &entity.User{
		ID:          id,
		Email:       email,
		FullName:    "Seed User",
		CompanyName: "Seed Co",
		Age:         30,
		DateOfBirth: time.Date(1995, time.January, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:   f.clock.now,
		UpdatedAt:   f.clock.now,
	}
	f.repo.users[id] = user
	f.repo.passwords[id] = string(hashed)

	return user
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func assertGoError(t *testing.T, err error, wantCode goerror.Code, wantMsg string) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected goerror, got %T: %v", err, err)
	}
	if gerr.Code() != wantCode {
		t.Fatalf("expected code %v, got %v", wantCode, gerr.Code())
	}
	if wantMsg != "" && gerr.Msg() != wantMsg {
		t.Fatalf("expected message %q, got %q", wantMsg, gerr.Msg())
	}
}
