package handler

import (
	"net/http"

	model "freight-exchange/internal/models"
	"freight-exchange/internal/negotiation"
	"freight-exchange/services/exchange/helpers"
	"freight-exchange/utils"

	"github.com/gin-gonic/gin"
)

// AcceptBidHandler handles POST /exchange/:listing_id/accept/:bid_id
func (h *ExchangeHandler) AcceptBidHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	bidID := c.Param("bid_id")
	caller := helpers.CallerFrom(c)

	contract, err := h.contracts.AcceptBid(c.Request.Context(), caller, listingID, bidID)
	if err != nil {
		helpers.HandleServiceError(c, "AcceptBidHandler", "accept bid", err, map[string]any{
			"listing_id": listingID,
			"bid_id":     bidID,
			"user_id":    caller.Identity,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, contract, "contract created successfully")
	helpers.LogSuccess("AcceptBidHandler", "contract created successfully", map[string]any{
		"contract_id": contract.ContractID,
		"listing_id":  listingID,
		"consignee":   contract.ConsigneeID,
	})
}

// ListContractsHandler handles GET /contracts
func (h *ExchangeHandler) ListContractsHandler(c *gin.Context) {
	caller := helpers.CallerFrom(c)
	contracts, err := h.contracts.ListContracts(c.Request.Context(), caller)
	if err != nil {
		helpers.HandleServiceError(c, "ListContractsHandler", "list contracts", err, map[string]any{"user_id": caller.Identity})
		return
	}
	if contracts == nil {
		contracts = []model.Contract{}
	}

	utils.JSONResponse(c, http.StatusOK, contracts, "contracts retrieved successfully")
}

// GetContractHandler handles GET /contracts/:contract_id
func (h *ExchangeHandler) GetContractHandler(c *gin.Context) {
	contractID := c.Param("contract_id")
	caller := helpers.CallerFrom(c)
	contract, err := h.contracts.GetContract(c.Request.Context(), caller, contractID)
	if err != nil {
		helpers.HandleServiceError(c, "GetContractHandler", "get contract", err, map[string]any{
			"contract_id": contractID,
			"user_id":     caller.Identity,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, contract, "contract retrieved successfully")
}

// ConfirmContractHandler handles PATCH /contracts/:contract_id/confirm
func (h *ExchangeHandler) ConfirmContractHandler(c *gin.Context) {
	var req helpers.ConfirmContractRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.HandleBindError(c, "ConfirmContractHandler", err)
			return
		}
	}

	contractID := c.Param("contract_id")
	caller := helpers.CallerFrom(c)
	contract, err := h.contracts.Confirm(c.Request.Context(), caller, contractID, req.TransportationDate.Dates())
	if err != nil {
		helpers.HandleServiceError(c, "ConfirmContractHandler", "confirm contract", err, map[string]any{
			"contract_id": contractID,
			"user_id":     caller.Identity,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, contract, "contract confirmed successfully")
	helpers.LogSuccess("ConfirmContractHandler", "contract confirmed successfully", map[string]any{
		"contract_id": contractID,
		"status":      contract.Status,
	})
}

// NegotiateContractHandler handles PATCH /contracts/:contract_id/negotiate
func (h *ExchangeHandler) NegotiateContractHandler(c *gin.Context) {
	var req helpers.NegotiateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "NegotiateContractHandler", err)
		return
	}

	contractID := c.Param("contract_id")
	caller := helpers.CallerFrom(c)
	contract, err := h.contracts.Negotiate(c.Request.Context(), caller, contractID, negotiation.Terms{
		Price: req.Price,
		Dates: req.TransportationDate.Dates(),
	})
	if err != nil {
		helpers.HandleServiceError(c, "NegotiateContractHandler", "negotiate contract", err, map[string]any{
			"contract_id": contractID,
			"user_id":     caller.Identity,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, contract, "contract negotiated successfully")
	helpers.LogSuccess("NegotiateContractHandler", "contract negotiated successfully", map[string]any{
		"contract_id": contractID,
		"price":       contract.Price.String(),
	})
}
