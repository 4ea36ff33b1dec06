package router

import (
	"time"

	"github.com/WatsonMulkey/The-Number/internal/config"
	"github.com/WatsonMulkey/The-Number/internal/handler"
	"github.com/WatsonMulkey/The-Number/internal/middleware"
	"github.com/WatsonMulkey/The-Number/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter wires every endpoint to its handler.
func SetupRouter(cfg *config.Config, db *gorm.DB, log *logrus.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	encryptKey := cfg.Security.EncryptionKey

	settings := store.NewSettingsStore(db, encryptKey)
	expenses := store.NewExpenseStore(db)
	txns := store.NewTransactionStore(db)
	tokens := store.NewResetTokenStore(db, time.Duration(cfg.Security.ResetTokenTTLMinutes)*time.Minute)
	limits := store.NewRateLimitStore(db)

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// open endpoints
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.Issuer, cfg.JWT.ExpireHours, tokens, log)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login",
		middleware.RateLimit(limits, "login", cfg.Security.LoginAttemptsPerHour, time.Hour),
		authHandler.Login)
	api.POST("/auth/reset/request",
		middleware.RateLimit(limits, "password_reset", cfg.Security.ResetRequestsPerHour, time.Hour),
		authHandler.RequestPasswordReset)
	api.POST("/auth/reset/confirm", authHandler.ConfirmPasswordReset)

	// everything below needs a login
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, cfg.JWT.Issuer, db),
		middleware.AuditMiddleware(db, encryptKey),
	)

	protected.GET("/me", handler.GetMe())
	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db))

	numberHandler := handler.NewNumberHandler(settings, expenses, txns, cfg.Budget.DefaultTimezone)
	protected.GET("/number", numberHandler.GetNumber)
	protected.GET("/budget/config", numberHandler.GetBudgetConfig)
	protected.POST("/budget/configure", numberHandler.ConfigureBudget)

	expenseHandler := handler.NewExpenseHandler(expenses)
	protected.POST("/expenses", expenseHandler.Create)
	protected.GET("/expenses", expenseHandler.List)
	protected.PUT("/expenses/:id", expenseHandler.Update)
	protected.DELETE("/expenses/:id", expenseHandler.Delete)

	txnHandler := handler.NewTransactionHandler(txns)
	protected.POST("/transactions", txnHandler.Create)
	protected.GET("/transactions", txnHandler.List)
	protected.DELETE("/transactions/:id", txnHandler.Delete)

	importExportHandler := handler.NewImportExportHandler(expenses, txns)
	protected.GET("/export/expenses/csv", importExportHandler.ExportExpensesCSV)
	protected.GET("/export/expenses/xlsx", importExportHandler.ExportExpensesXLSX)
	protected.POST("/import/expenses", importExportHandler.ImportExpenses)
	protected.GET("/export/transactions/csv", importExportHandler.ExportTransactionsCSV)
	protected.GET("/export/transactions/xlsx", importExportHandler.ExportTransactionsXLSX)

	backupHandler := handler.NewBackupHandler(db, settings, expenses, txns, encryptKey, cfg.Backup.Dir)
	protected.POST("/backups", backupHandler.CreateBackup)
	protected.GET("/backups", backupHandler.ListBackups)
	protected.GET("/backups/:id/download", backupHandler.DownloadBackup)
	protected.POST("/backups/:id/restore", backupHandler.RestoreBackup)
	protected.DELETE("/backups/:id", backupHandler.DeleteBackup)

	logHandler := handler.NewLogHandler(db, encryptKey)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
