package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"spebit-service/internal/models"
	"spebit-service/internal/services"
	"spebit-service/pkg/common"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler is the back office: users, coins, payment methods, and the
// order decision queue.
type AdminHandler struct {
	Users        *services.UserService
	Cryptos      *services.CryptoService
	Methods      *services.PaymentMethodService
	Transactions *services.TransactionService
}

func NewAdminHandler(users *services.UserService, cryptos *services.CryptoService,
	methods *services.PaymentMethodService, transactions *services.TransactionService) *AdminHandler {
	return &AdminHandler{Users: users, Cryptos: cryptos, Methods: methods, Transactions: transactions}
}

// --- users ---

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	result, err := h.Users.AdminList(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to fetch users", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, result)
}

type BlockUserRequest struct {
	Blocked *bool `json:"blocked" binding:"required"`
}

func (h *AdminHandler) BlockUser(c *gin.Context) {
	var req BlockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	if err := h.Users.SetBlocked(c.Param("id"), *req.Blocked); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("User not found", nil, http.StatusNotFound))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to update user", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "User updated"))
}

// --- cryptocurrencies ---

func (h *AdminHandler) ListCryptocurrencies(c *gin.Context) {
	cryptos, err := h.Cryptos.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to fetch cryptocurrencies", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(cryptos, "Cryptocurrencies fetched"))
}

type CryptoRequest struct {
	Name         string  `json:"name" binding:"required"`
	Symbol       string  `json:"symbol" binding:"required"`
	CurrentPrice float64 `json:"current_price" binding:"required,gt=0"`
	LogoURL      string  `json:"logo_url"`
	IsActive     *bool   `json:"is_active"`
}

func (h *AdminHandler) CreateCryptocurrency(c *gin.Context) {
	var req CryptoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	crypto := models.Cryptocurrency{
		Name:         req.Name,
		Symbol:       req.Symbol,
		CurrentPrice: req.CurrentPrice,
		LogoURL:      req.LogoURL,
		IsActive:     true,
	}
	if req.IsActive != nil {
		crypto.IsActive = *req.IsActive
	}

	if err := h.Cryptos.Create(c.Request.Context(), &crypto); err != nil {
		if errors.Is(err, services.ErrInvalidPrice) {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to save cryptocurrency", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(crypto, "Cryptocurrency created"))
}

type CryptoUpdateRequest struct {
	Name         *string  `json:"name"`
	Symbol       *string  `json:"symbol"`
	CurrentPrice *float64 `json:"current_price"`
	LogoURL      *string  `json:"logo_url"`
	IsActive     *bool    `json:"is_active"`
}

func (h *AdminHandler) UpdateCryptocurrency(c *gin.Context) {
	var req CryptoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	crypto, err := h.Cryptos.Update(c.Request.Context(), c.Param("id"), services.CryptoUpdateDTO{
		Name:         req.Name,
		Symbol:       req.Symbol,
		CurrentPrice: req.CurrentPrice,
		LogoURL:      req.LogoURL,
		IsActive:     req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPrice):
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Cryptocurrency not found", nil, http.StatusNotFound))
		default:
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to save cryptocurrency", nil, http.StatusInternalServerError))
		}
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(crypto, "Cryptocurrency updated"))
}

func (h *AdminHandler) DeactivateCryptocurrency(c *gin.Context) {
	if err := h.Cryptos.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Cryptocurrency not found", nil, http.StatusNotFound))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to deactivate cryptocurrency", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "Cryptocurrency deactivated"))
}

// --- payment methods ---

func (h *AdminHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.Methods.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to fetch payment methods", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(methods, "Payment methods fetched"))
}

type PaymentMethodRequest struct {
	Name              string `json:"name" binding:"required"`
	MethodType        string `json:"method_type" binding:"required"`
	IconURL           string `json:"icon_url"`
	IsActive          *bool  `json:"is_active"`
	UpiID             string `json:"upi_id"`
	EmailID           string `json:"email_id"`
	BankName          string `json:"bank_name"`
	AccountHolderName string `json:"account_holder_name"`
	AccountNumber     string `json:"account_number"`
	IfscCode          string `json:"ifsc_code"`
}

func (r *PaymentMethodRequest) toModel() models.PaymentMethod {
	m := models.PaymentMethod{
		Name:              r.Name,
		MethodType:        r.MethodType,
		IconURL:           r.IconURL,
		IsActive:          true,
		UpiID:             r.UpiID,
		EmailID:           r.EmailID,
		BankName:          r.BankName,
		AccountHolderName: r.AccountHolderName,
		AccountNumber:     r.AccountNumber,
		IfscCode:          r.IfscCode,
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return m
}

func (h *AdminHandler) CreatePaymentMethod(c *gin.Context) {
	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	method := req.toModel()
	if err := h.Methods.Create(&method); err != nil {
		if errors.Is(err, models.ErrInvalidMethodDetails) {
			c.JSON(http.StatusUnprocessableEntity, common.NewErrorResponse(err.Error(), nil, http.StatusUnprocessableEntity))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to save payment method", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(method, "Payment method created"))
}

func (h *AdminHandler) UpdatePaymentMethod(c *gin.Context) {
	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	updated := req.toModel()
	method, err := h.Methods.Update(c.Param("id"), &updated)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Payment method not found", nil, http.StatusNotFound))
		case errors.Is(err, models.ErrInvalidMethodDetails):
			c.JSON(http.StatusUnprocessableEntity, common.NewErrorResponse(err.Error(), nil, http.StatusUnprocessableEntity))
		default:
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to save payment method", nil, http.StatusInternalServerError))
		}
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(method, "Payment method updated"))
}

func (h *AdminHandler) DeletePaymentMethod(c *gin.Context) {
	if err := h.Methods.Delete(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Payment method not found", nil, http.StatusNotFound))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to delete payment method", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "Payment method deleted"))
}

// --- transactions ---

func (h *AdminHandler) ListTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	status := c.Query("status")

	result, err := h.Transactions.AdminList(status, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to fetch transactions", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, result)
}

type DecisionRequest struct {
	Status     string `json:"status" binding:"required"`
	AdminNotes string `json:"admin_notes"`
}

func (h *AdminHandler) DecideTransaction(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	trx, err := h.Transactions.Decide(c.Param("id"), req.Status, req.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDecision):
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Order not found", nil, http.StatusNotFound))
		case errors.Is(err, services.ErrAlreadyDecided):
			c.JSON(http.StatusConflict, common.NewErrorResponse("Order has already been decided", nil, http.StatusConflict))
		default:
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to save decision", nil, http.StatusInternalServerError))
		}
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(trx, "Decision saved"))
}
