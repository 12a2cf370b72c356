package server

import (
	"net/http"

	handler "freight-exchange/services/exchange/handler"
	"freight-exchange/utils"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(exchange *handler.ExchangeHandler, ws *handler.WSHandler) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	router.GET("/health", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"status": "ok"}, "healthy")
	})

	api := router.Group("/api/v1", IdentityMiddleware)

	board := api.Group("/exchange")
	{
		board.POST("", exchange.CreateListingHandler)
		board.GET("", exchange.ListListingsHandler)
		board.GET("/search/:term", exchange.SearchListingsHandler)
		board.GET("/post/:listing_id", exchange.GetListingHandler)
		board.DELETE("/post/:listing_id", exchange.DeleteListingHandler)
		board.PATCH("/post/:listing_id", exchange.LikeListingHandler)

		board.GET("/:listing_id/bids", exchange.GetBidsHandler)
		board.PUT("/:listing_id/bid", exchange.PlaceBidHandler)
		board.POST("/:listing_id/accept/:bid_id", exchange.AcceptBidHandler)
	}

	bids := api.Group("/bids")
	{
		bids.PATCH("/:bid_id/negotiate", exchange.NegotiateBidHandler)
		bids.DELETE("/:bid_id", exchange.RemoveBidHandler)
	}

	contracts := api.Group("/contracts")
	{
		contracts.GET("", exchange.ListContractsHandler)
		contracts.GET("/:contract_id", exchange.GetContractHandler)
		contracts.PATCH("/:contract_id/confirm", exchange.ConfirmContractHandler)
		contracts.PATCH("/:contract_id/negotiate", exchange.NegotiateContractHandler)
	}

	api.GET("/ws", ws.ConnectHandler)

	return router
}
