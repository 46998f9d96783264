package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Giusk10/SpendyApp/internal/auth"
	"github.com/Giusk10/SpendyApp/internal/config"
	"github.com/Giusk10/SpendyApp/internal/handler"
	"github.com/Giusk10/SpendyApp/internal/middleware"
	"github.com/Giusk10/SpendyApp/internal/service"
	"github.com/Giusk10/SpendyApp/internal/store"
)

// newVerifier picks the token verifier implementation from configuration.
func newVerifier(cfg config.VerifierConfig) auth.TokenVerifier {
	if cfg.Mode == "gateway" {
		return auth.NewGatewayVerifier(cfg.GatewayURL)
	}
	return auth.NewJWTVerifier(cfg.Secret)
}

// SetupRouter configures the Gin engine and wires the expense routes.
func SetupRouter(cfg *config.Config, db *gorm.DB, log zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	svc := service.New(store.NewGormStore(db), newVerifier(cfg.Verifier), cfg.Import.StrictDedupe, log)
	expenseHandler := handler.NewExpenseHandler(svc)

	api := r.Group("/rest/expense")
	api.Use(middleware.BearerToken())

	api.POST("/import", expenseHandler.ImportCSV)
	api.GET("/getExpenses", expenseHandler.GetExpenses)
	api.POST("/getExpenseByDate", expenseHandler.GetExpenseByDate)
	api.POST("/getExpenseByMonth", expenseHandler.GetExpenseByMonth)
	api.POST("/getMonthlyAmountOfYear", expenseHandler.GetMonthlyAmountOfYear)
	api.DELETE("/deleteExpense", expenseHandler.DeleteExpense)
	api.POST("/addExpense", expenseHandler.AddExpense)
	api.POST("/test", expenseHandler.Test)

	api.GET("/export/csv", expenseHandler.ExportCSV)
	api.GET("/export/xlsx", expenseHandler.ExportXLSX)

	return r
}
