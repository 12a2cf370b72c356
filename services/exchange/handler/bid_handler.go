package handler

import (
	"net/http"

	model "freight-exchange/internal/models"
	"freight-exchange/services/exchange/helpers"
	"freight-exchange/utils"

	"github.com/gin-gonic/gin"
)

// GetBidsHandler handles GET /exchange/:listing_id/bids.
// The listing owner gets every bid in rank order, anyone else their own bid.
func (h *ExchangeHandler) GetBidsHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	caller := helpers.CallerFrom(c)

	view, err := h.bids.View(c.Request.Context(), caller, listingID)
	if err != nil {
		helpers.HandleServiceError(c, "GetBidsHandler", "retrieve bids", err, map[string]any{
			"listing_id": listingID,
			"user_id":    caller.Identity,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, view, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsHandler", "bids retrieved successfully", map[string]any{
		"listing_id": listingID,
		"count":      len(view.Bids),
	})
}

// PlaceBidHandler handles PUT /exchange/:listing_id/bid
func (h *ExchangeHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	listingID := c.Param("listing_id")
	caller := helpers.CallerFrom(c)
	result, err := h.bids.UpsertBid(c.Request.Context(), caller, listingID, *req.Price, model.Validity(req.Validity))
	if err != nil {
		helpers.HandleServiceError(c, "PlaceBidHandler", "record bid", err, map[string]any{
			"listing_id": listingID,
			"user_id":    caller.Identity,
			"price":      req.Price.String(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, result, "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     result.Bid.BidID,
		"listing_id": listingID,
		"user_id":    caller.Identity,
		"price":      result.Bid.Price.String(),
	})
}

// NegotiateBidHandler handles PATCH /bids/:bid_id/negotiate
func (h *ExchangeHandler) NegotiateBidHandler(c *gin.Context) {
	var req helpers.NegotiateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "NegotiateBidHandler", err)
		return
	}

	bidID := c.Param("bid_id")
	caller := helpers.CallerFrom(c)
	bid, err := h.bids.NegotiateBid(c.Request.Context(), caller, bidID, *req.Price)
	if err != nil {
		helpers.HandleServiceError(c, "NegotiateBidHandler", "negotiate bid", err, map[string]any{
			"bid_id":  bidID,
			"user_id": caller.Identity,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(bid), "bid negotiated successfully")
	helpers.LogSuccess("NegotiateBidHandler", "bid negotiated successfully", map[string]any{
		"bid_id": bidID,
		"price":  bid.Price.String(),
	})
}

// RemoveBidHandler handles DELETE /bids/:bid_id
func (h *ExchangeHandler) RemoveBidHandler(c *gin.Context) {
	bidID := c.Param("bid_id")
	caller := helpers.CallerFrom(c)
	bid, err := h.bids.RemoveBid(c.Request.Context(), caller, bidID)
	if err != nil {
		helpers.HandleServiceError(c, "RemoveBidHandler", "remove bid", err, map[string]any{
			"bid_id":  bidID,
			"user_id": caller.Identity,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(bid), "bid removed successfully")
	helpers.LogSuccess("RemoveBidHandler", "bid removed successfully", map[string]any{
		"bid_id":     bidID,
		"listing_id": bid.ListingID,
	})
}
