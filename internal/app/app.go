package app

import (
	"context"
	"net/http"

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

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	otp       *otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	messaging messaging.Messaging
	storage   storage.Storage

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
