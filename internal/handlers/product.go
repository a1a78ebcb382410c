// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tokenmart/ledger-backend/internal/services"
	"github.com/tokenmart/ledger-backend/internal/store"
	"github.com/tokenmart/ledger-backend/internal/utils"
)

type ProductHandler struct {
	productService    *services.ProductService
	settlementService *services.SettlementService
}

func NewProductHandler(productService *services.ProductService, settlementService *services.SettlementService) *ProductHandler {
	return &ProductHandler{
		productService:    productService,
		settlementService: settlementService,
	}
}

func parseProductID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return 0, false
	}
	return id, true
}

// POST /products
func (h *ProductHandler) ListProduct(c *gin.Context) {
	seller, exists := utils.GetAccountFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.ListProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.List(c.Request.Context(), seller, &req)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"product": product,
	})
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := store.ProductFilter{
		Seller:     c.Query("seller"),
		ActiveOnly: c.DefaultQuery("active", "true") == "true",
		Offset:     params.Offset(),
		Limit:      params.Limit,
	}

	products, total, err := h.productService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// POST /products/:id/activate and /deactivate
func (h *ProductHandler) SetActive(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseProductID(c)
		if !ok {
			return
		}

		caller, exists := utils.GetAccountFromContext(c)
		if !exists {
			utils.UnauthorizedResponse(c, "")
			return
		}

		product, err := h.productService.SetActive(c.Request.Context(), id, caller, active)
		if err != nil {
			respondLedgerError(c, err)
			return
		}

		utils.SuccessResponse(c, gin.H{
			"product": product,
		})
	}
}

// PUT /products/:id/price
func (h *ProductHandler) SetPrice(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	caller, exists := utils.GetAccountFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	product, err := h.productService.SetPrice(c.Request.Context(), id, caller, req.Price)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// POST /products/:id/purchase
func (h *ProductHandler) PurchaseProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	buyer, exists := utils.GetAccountFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	purchase, err := h.settlementService.Purchase(c.Request.Context(), buyer, id)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"purchase": purchase,
	})
}

// GET /products/:id/purchasers
func (h *ProductHandler) GetPurchasers(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	purchasers, err := h.productService.GetPurchasers(c.Request.Context(), id)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product_id": id,
		"purchasers": purchasers,
	})
}
