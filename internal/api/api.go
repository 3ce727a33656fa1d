package api

import (
	"net/http"

	authHandler "geo-optimizer-server/internal/auth/handler"
	customerHandler "geo-optimizer-server/internal/customers/handler"
	leadHandler "geo-optimizer-server/internal/leads/handler"
	proposalHandler "geo-optimizer-server/internal/proposals/handler"
	reportHandler "geo-optimizer-server/internal/reports/handler"
	serviceHandler "geo-optimizer-server/internal/services/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router          *gin.RouterGroup
	authHandler     authHandler.Handler
	leadHandler     leadHandler.Handler
	reportHandler   reportHandler.Handler
	customerHandler customerHandler.Handler
	serviceHandler  serviceHandler.Handler
	proposalHandler proposalHandler.Handler
}

func New(
	router *gin.RouterGroup,
	authHandler authHandler.Handler,
	leadHandler leadHandler.Handler,
	reportHandler reportHandler.Handler,
	customerHandler customerHandler.Handler,
	serviceHandler serviceHandler.Handler,
	proposalHandler proposalHandler.Handler,
) API {
	return API{
		router:          router,
		authHandler:     authHandler,
		leadHandler:     leadHandler,
		reportHandler:   reportHandler,
		customerHandler: customerHandler,
		serviceHandler:  serviceHandler,
		proposalHandler: proposalHandler,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api")

	// Public surface: contact form intake and shared report resolution
	apiGroup.POST("/leads", a.leadHandler.HandleSubmitLead)
	apiGroup.GET("/reports/resolve", a.reportHandler.HandleResolveReport)

	authGroup := apiGroup.Group("/auth")
	{
		authGroup.POST("/login/email", a.authHandler.HandleEmailLogin)
		authGroup.POST("/signup/email", a.authHandler.HandleEmailSignup)
	}

	protectedGroup := apiGroup.Group("/protected", a.authHandler.HandleJWTMiddleware)
	{
		protectedGroup.GET("/user", a.authHandler.GetOperatorInfo)

		protectedGroup.GET("/customers", a.customerHandler.HandleListCustomers)
		protectedGroup.GET("/customers/stats", a.customerHandler.HandleGetCustomerStats)
		protectedGroup.GET("/customers/:customer_id", a.customerHandler.HandleGetCustomer)
		protectedGroup.PATCH("/customers/:customer_id", a.customerHandler.HandleUpdateCustomer)
		protectedGroup.DELETE("/customers/:customer_id", a.customerHandler.HandleDeleteCustomer)
		protectedGroup.PATCH("/customers/:customer_id/status", a.customerHandler.HandleUpdateCustomerStatus)
		protectedGroup.GET("/customers/:customer_id/report-url", a.customerHandler.HandleGetReportURL)

		protectedGroup.POST("/services", a.serviceHandler.HandleCreateService)
		protectedGroup.GET("/services", a.serviceHandler.HandleListServices)
		protectedGroup.PATCH("/services/:service_id/active", a.serviceHandler.HandleSetServiceActive)

		protectedGroup.POST("/customers/:customer_id/proposals", a.proposalHandler.HandleSendProposal)
		protectedGroup.GET("/customers/:customer_id/proposals", a.proposalHandler.HandleGetProposals)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
