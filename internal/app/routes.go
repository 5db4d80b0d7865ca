package app

import (
	"github.com/gorilla/mux"
	"github.com/pocketly/pocketly/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user/{userUid}", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Categories
	r.HandleFunc("/api/category", deps.CategoryHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/category", deps.CategoryHandler.Create).Methods("POST")
	r.HandleFunc("/api/category/{categoryId}", deps.CategoryHandler.Update).Methods("PUT")
	r.HandleFunc("/api/category/{categoryId}/position", deps.CategoryHandler.Move).Methods("PUT")
	r.HandleFunc("/api/category/{categoryId}", deps.CategoryHandler.Delete).Methods("DELETE")

	// Wallets
	r.HandleFunc("/api/wallet", deps.WalletHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/wallet", deps.WalletHandler.Create).Methods("POST")
	r.HandleFunc("/api/wallet/{walletId}", deps.WalletHandler.Update).Methods("PUT")
	r.HandleFunc("/api/wallet/{walletId}", deps.WalletHandler.Delete).Methods("DELETE")

	// Transactions
	r.HandleFunc("/api/transaction", deps.TransactionHandler.List).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/transaction", deps.TransactionHandler.Create).Methods("POST")
	r.HandleFunc("/api/transaction/{transactionId}", deps.TransactionHandler.Get).Methods("GET")
	r.HandleFunc("/api/transaction/{transactionId}", deps.TransactionHandler.Delete).Methods("DELETE")

	// Budgets
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/budget/grouped", deps.BudgetHandler.GetGrouped).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.Create).Methods("POST")
	r.HandleFunc("/api/budget/{budgetId}", deps.BudgetHandler.Get).Methods("GET")
	r.HandleFunc("/api/budget/{budgetId}", deps.BudgetHandler.Update).Methods("PUT")
	r.HandleFunc("/api/budget/{budgetId}", deps.BudgetHandler.Delete).Methods("DELETE")

	// Stats
	r.HandleFunc("/api/stats/weekly", deps.StatsHandler.GetWeeklyStats).Methods("GET")
}
