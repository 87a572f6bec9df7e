package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/events"
	"github.com/api-sage/bank-ledger/src/internal/adapter/http/controller"
	"github.com/api-sage/bank-ledger/src/internal/adapter/http/middleware"
	"github.com/api-sage/bank-ledger/src/internal/adapter/http/router"
	"github.com/api-sage/bank-ledger/src/internal/adapter/lock"
	"github.com/api-sage/bank-ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/bank-ledger/src/internal/adapter/repository/postgres"
	"github.com/api-sage/bank-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-ledger/src/internal/config"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/api-sage/bank-ledger/src/internal/logger"
	"github.com/api-sage/bank-ledger/src/internal/scheduler"
	"github.com/api-sage/bank-ledger/src/internal/usecase/services"
	"github.com/redis/go-redis/v9"
)

const settlementLockTTL = 30 * time.Minute

type repositories struct {
	accounts     repo_interfaces.AccountRepository
	cards        repo_interfaces.CardRepository
	transactions repo_interfaces.TransactionRepository
	customers    repo_interfaces.CustomerRepository
	txManager    repo_interfaces.TxManager
}

// application holds every wired component of one process.
type application struct {
	cfg       config.Config
	publisher events.Publisher
	locker    lock.Locker

	accounts   *services.AccountService
	cards      *services.CardService
	transfers  *services.TransferService
	customers  *services.CustomerService
	suspicion  *services.SuspicionService
	settlement *services.SettlementService
	guarded    *services.GuardedSettlement
	expiry     *services.ExpirySweeper

	closers []func() error
}

func newApplication(ctx context.Context, cfg config.Config) (*application, error) {
	app := &application{cfg: cfg}

	repos, err := app.openRepositories(ctx)
	if err != nil {
		return nil, err
	}
	if err := app.connectRedis(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}

	limits := domain.DefaultLimitPolicy()
	app.accounts = services.NewAccountService(repos.accounts, repos.customers, repos.txManager, limits)
	app.cards = services.NewCardService(repos.cards, repos.accounts, repos.customers, repos.txManager, limits)
	app.transfers = services.NewTransferService(repos.cards, repos.accounts, repos.transactions, repos.customers, repos.txManager, limits, app.publisher)
	app.customers = services.NewCustomerService(repos.customers)
	app.suspicion = services.NewSuspicionService(repos.customers, repos.transactions, limits, app.publisher)
	app.settlement = services.NewSettlementService(repos.accounts, repos.transactions, repos.txManager, app.suspicion, app.publisher)
	app.guarded = services.NewGuardedSettlement(app.settlement, app.locker, settlementLockTTL)
	app.expiry = services.NewExpirySweeper(app.accounts, app.cards)

	return app, nil
}

func (a *application) openRepositories(ctx context.Context) (repositories, error) {
	if a.cfg.Store == config.StoreMemory {
		logger.Warn("using in-memory store, data is lost on exit", nil)
		store := memory.NewStore()
		return repositories{
			accounts:     memory.NewAccountRepository(store),
			cards:        memory.NewCardRepository(store),
			transactions: memory.NewTransactionRepository(store),
			customers:    memory.NewCustomerRepository(store),
			txManager:    store,
		}, nil
	}

	db, err := postgres.Open(ctx, a.cfg.DatabaseDSN, postgres.Pool{MaxOpen: a.cfg.DBMaxOpenConns, MaxIdle: a.cfg.DBMaxIdleConns})
	if err != nil {
		return repositories{}, err
	}
	a.closers = append(a.closers, db.Close)

	return postgresRepositories(db), nil
}

func postgresRepositories(db *sql.DB) repositories {
	return repositories{
		accounts:     postgres.NewAccountRepository(db),
		cards:        postgres.NewCardRepository(db),
		transactions: postgres.NewTransactionRepository(db),
		customers:    postgres.NewCustomerRepository(db),
		txManager:    postgres.NewTxManager(db),
	}
}

// connectRedis enables event publishing and the cross-process run lock when REDIS_ADDR is set.
func (a *application) connectRedis(ctx context.Context) error {
	if a.cfg.RedisAddr == "" {
		a.publisher = events.NoopPublisher{}
		a.locker = lock.NewLocalLocker()
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPassword,
		DB:       a.cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("ping redis: %w", err)
	}
	a.closers = append(a.closers, client.Close)

	a.publisher = events.NewRedisPublisher(client)
	a.locker = lock.NewRedisLocker(client)
	logger.Info("redis connected", logger.Fields{"addr": a.cfg.RedisAddr})
	return nil
}

func (a *application) handler() http.Handler {
	accounts := controller.NewAccountController(a.accounts)
	cards := controller.NewCardController(a.cards)
	transactions := controller.NewTransactionController(a.transfers)

	return router.New(router.Options{
		CustomerAuth: middleware.CustomerAuth(a.cfg.JWTSecret, a.cfg.JWTIssuer),
		AdminAuth:    middleware.BasicAuth(a.cfg.ChannelID, a.cfg.ChannelKeyHash),
		Customer:     []router.CustomerRouteRegistrar{accounts, cards, transactions},
		Admin: []router.AdminRouteRegistrar{
			accounts,
			cards,
			transactions,
			controller.NewCustomerController(a.customers, a.suspicion),
			controller.NewJobController(a.guarded, a.expiry),
		},
	})
}

// jobScheduler registers the settlement and expiry jobs. The settlement job calls
// the unguarded service because the scheduler already holds the same lock.
func (a *application) jobScheduler() (*scheduler.Scheduler, error) {
	s := scheduler.New(a.locker)

	if err := s.Register(scheduler.Job{
		Name:    services.SettlementLockName,
		Spec:    a.cfg.SettlementCron,
		LockTTL: settlementLockTTL,
		Run: func(ctx context.Context) error {
			_, err := a.settlement.RunOnce(ctx)
			return err
		},
	}); err != nil {
		return nil, err
	}

	if err := s.Register(scheduler.Job{
		Name: "expiry",
		Spec: a.cfg.ExpiryCron,
		Run: func(ctx context.Context) error {
			_, err := a.expiry.Sweep(ctx)
			return err
		},
	}); err != nil {
		return nil, err
	}

	return s, nil
}

func (a *application) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}
