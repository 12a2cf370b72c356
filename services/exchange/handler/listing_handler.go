package handler

import (
	"net/http"

	"freight-exchange/internal/listings"
	model "freight-exchange/internal/models"
	"freight-exchange/services/exchange/helpers"
	"freight-exchange/utils"

	"github.com/gin-gonic/gin"
)

// CreateListingHandler handles POST /exchange
func (h *ExchangeHandler) CreateListingHandler(c *gin.Context) {
	var req helpers.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateListingHandler", err)
		return
	}

	caller := helpers.CallerFrom(c)
	listing, err := h.listings.Create(c.Request.Context(), caller, listings.Input{
		Freight:  req.Freight,
		Budget:   req.Budget,
		Validity: model.Validity(req.Validity),
	})
	if err != nil {
		helpers.HandleServiceError(c, "CreateListingHandler", "create listing", err, map[string]any{
			"user_id": caller.Identity,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, listing, "listing created successfully")
	helpers.LogSuccess("CreateListingHandler", "listing created successfully", map[string]any{
		"listing_id": listing.ListingID,
		"user_id":    caller.Identity,
	})
}

// ListListingsHandler handles GET /exchange
func (h *ExchangeHandler) ListListingsHandler(c *gin.Context) {
	var q helpers.ListListingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		helpers.HandleBindError(c, "ListListingsHandler", err)
		return
	}

	page, err := h.listings.List(c.Request.Context(), listings.Filter{
		Page:       q.Page,
		Regime:     q.Regime,
		MinTonnage: q.MinTonnage,
		MaxTonnage: q.MaxTonnage,
	})
	if err != nil {
		helpers.HandleServiceError(c, "ListListingsHandler", "list listings", err, nil)
		return
	}
	if page.Listings == nil {
		page.Listings = []model.Listing{}
	}

	utils.JSONResponse(c, http.StatusOK, page, "listings retrieved successfully")
}

// SearchListingsHandler handles GET /exchange/search/:term
func (h *ExchangeHandler) SearchListingsHandler(c *gin.Context) {
	term := c.Param("term")
	found, err := h.listings.Search(c.Request.Context(), term)
	if err != nil {
		helpers.HandleServiceError(c, "SearchListingsHandler", "search listings", err, map[string]any{"term": term})
		return
	}
	if found == nil {
		found = []model.Listing{}
	}

	utils.JSONResponse(c, http.StatusOK, found, "listings retrieved successfully")
}

// GetListingHandler handles GET /exchange/post/:listing_id
func (h *ExchangeHandler) GetListingHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	listing, err := h.listings.Get(c.Request.Context(), listingID)
	if err != nil {
		helpers.HandleServiceError(c, "GetListingHandler", "get listing", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, listing, "listing retrieved successfully")
}

// DeleteListingHandler handles DELETE /exchange/post/:listing_id
func (h *ExchangeHandler) DeleteListingHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	caller := helpers.CallerFrom(c)
	if err := h.listings.Delete(c.Request.Context(), caller, listingID); err != nil {
		helpers.HandleServiceError(c, "DeleteListingHandler", "delete listing", err, map[string]any{
			"listing_id": listingID,
			"user_id":    caller.Identity,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.RemovedResponse{ID: listingID}, "listing deleted successfully")
	helpers.LogSuccess("DeleteListingHandler", "listing deleted successfully", map[string]any{
		"listing_id": listingID,
		"user_id":    caller.Identity,
	})
}

// LikeListingHandler handles PATCH /exchange/post/:listing_id
func (h *ExchangeHandler) LikeListingHandler(c *gin.Context) {
	var req helpers.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LikeListingHandler", err)
		return
	}

	listingID := c.Param("listing_id")
	caller := helpers.CallerFrom(c)
	if err := h.listings.Like(c.Request.Context(), caller, listingID, *req.Liked); err != nil {
		helpers.HandleServiceError(c, "LikeListingHandler", "like listing", err, map[string]any{
			"listing_id": listingID,
			"user_id":    caller.Identity,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"listing_id": listingID, "liked": *req.Liked}, "listing updated successfully")
}
