package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pocketly/pocketly/internal/config"
	"github.com/pocketly/pocketly/internal/event_bus"
	"github.com/pocketly/pocketly/internal/utils"
	"github.com/pocketly/pocketly/pkg/budget"
	"github.com/pocketly/pocketly/pkg/category"
	"github.com/pocketly/pocketly/pkg/period"
	"github.com/pocketly/pocketly/pkg/stats"
	"github.com/pocketly/pocketly/pkg/transaction"
	"github.com/pocketly/pocketly/pkg/user"
	"github.com/pocketly/pocketly/pkg/wallet"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	CategoryService *category.ServiceImpl
	CategoryHandler *category.Handler

	WalletService *wallet.ServiceImpl
	WalletHandler *wallet.Handler

	TransactionService *transaction.ServiceImpl
	TransactionHandler *transaction.Handler

	BudgetRepo    budget.BudgetRepo
	BudgetService *budget.BudgetServiceImpl
	BudgetHandler *budget.BudgetHandler

	StatsService     *stats.StatsServiceImpl
	CsvStatsRenderer *stats.CsvStatsRendererImpl
	StatsHandler     *stats.StatsHandler
}

// BuildDependencies initializes and wires all application services and handlers. Services that
// react to transactions subscribe to the event bus in their constructors, so wallets and budgets
// are built before transactions are.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db), cfg.Defaults)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.CategoryService = category.NewService(category.NewRepo(db))
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.WalletService = wallet.NewService(wallet.NewRepo(db), deps.EventBus)
	deps.WalletHandler = wallet.NewHandler(deps.WalletService)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetServiceImpl(deps.BudgetRepo, deps.CategoryService, deps.EventBus, deps.Clock, period.Untranslated)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)

	deps.TransactionService = transaction.NewService(transaction.NewRepo(db), deps.CategoryService, deps.WalletService, deps.EventBus, deps.Clock)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService)

	deps.StatsService = stats.NewStatsServiceImpl(deps.TransactionService, deps.CategoryService, deps.Clock)
	deps.CsvStatsRenderer = stats.NewCsvStatsRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvStatsRenderer)

	return deps
}
