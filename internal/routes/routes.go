package routes

import (
	"database/sql"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AravindhAjit/my-wealth-atlas/internal/controllers"
	"github.com/AravindhAjit/my-wealth-atlas/internal/ledger"
)

func Register(db *sql.DB, gdb *gorm.DB, logger *log.Logger) *gin.Engine {
	led := ledger.NewService(ledger.NewMySQLStore(db))
	acc := controllers.AccountController{DB: db, Ledger: led}
	txc := controllers.TransactionController{DB: db, Ledger: led}
	cat := controllers.CategoryController{DB: db}
	prof := controllers.ProfileController{DB: db}
	rep := controllers.ReportsController{DB: gdb}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", controllers.OwnerHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))
	api := r.Group("/api/v1")
	api.Use(requireOwner(prof, logger))

	api.POST("/accounts", func(c *gin.Context) { acc.CreateOrList(c.Writer, c.Request) })
	api.GET("/accounts", func(c *gin.Context) { acc.CreateOrList(c.Writer, c.Request) })
	api.GET("/accounts/:id", func(c *gin.Context) {
		c.Request.URL.Path = "/accounts/" + c.Param("id")
		acc.GetByID(c.Writer, c.Request)
	})
	api.PUT("/accounts/:id", func(c *gin.Context) {
		c.Request.URL.Path = "/accounts/" + c.Param("id")
		acc.Update(c.Writer, c.Request)
	})
	api.DELETE("/accounts/:id", func(c *gin.Context) {
		c.Request.URL.Path = "/accounts/" + c.Param("id")
		acc.Delete(c.Writer, c.Request)
	})
	api.GET("/accounts/:id/transactions", func(c *gin.Context) {
		c.Request.URL.Path = "/accounts/" + c.Param("id") + "/transactions"
		acc.ListTransactions(c.Writer, c.Request)
	})

	api.POST("/transactions", func(c *gin.Context) { txc.CreateOrList(c.Writer, c.Request) })
	api.GET("/transactions", func(c *gin.Context) { txc.CreateOrList(c.Writer, c.Request) })
	api.GET("/transactions/:id", func(c *gin.Context) {
		c.Request.URL.Path = "/transactions/" + c.Param("id")
		txc.GetByID(c.Writer, c.Request)
	})
	api.PUT("/transactions/:id", func(c *gin.Context) {
		c.Request.URL.Path = "/transactions/" + c.Param("id")
		txc.Update(c.Writer, c.Request)
	})
	api.DELETE("/transactions/:id", func(c *gin.Context) {
		c.Request.URL.Path = "/transactions/" + c.Param("id")
		txc.Delete(c.Writer, c.Request)
	})

	api.POST("/categories", func(c *gin.Context) { cat.CreateOrList(c.Writer, c.Request) })
	api.GET("/categories", func(c *gin.Context) { cat.CreateOrList(c.Writer, c.Request) })
	api.PUT("/categories/:id", func(c *gin.Context) {
		c.Request.URL.Path = "/categories/" + c.Param("id")
		cat.Update(c.Writer, c.Request)
	})
	api.DELETE("/categories/:id", func(c *gin.Context) {
		c.Request.URL.Path = "/categories/" + c.Param("id")
		cat.Delete(c.Writer, c.Request)
	})

	api.GET("/me", func(c *gin.Context) { prof.Me(c.Writer, c.Request) })
	api.PUT("/me", func(c *gin.Context) { prof.Me(c.Writer, c.Request) })

	api.GET("/reports/summary", func(c *gin.Context) { rep.GetSummary(c.Writer, c.Request) })

	return r
}

// requireOwner rejects requests without a caller identity and provisions a
// profile row on the owner's first request.
func requireOwner(prof controllers.ProfileController, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.GetHeader(controllers.OwnerHeader)
		if owner == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": controllers.OwnerHeader + " header is required"})
			return
		}
		if err := prof.Provision(owner); err != nil {
			logger.Error("provision profile", "owner", owner, "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "profile provisioning failed"})
			return
		}
		c.Next()
	}
}
