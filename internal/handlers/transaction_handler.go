package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"spebit-service/internal/services"
	"spebit-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	Transactions *services.TransactionService
	Watcher      *services.WatchService
}

func NewTransactionHandler(transactions *services.TransactionService, watcher *services.WatchService) *TransactionHandler {
	return &TransactionHandler{Transactions: transactions, Watcher: watcher}
}

// SubmitPayment handles the first buy-flow step as a multipart form: the
// rupee amount, coin, payment method, and the payment screenshot.
func (h *TransactionHandler) SubmitPayment(c *gin.Context) {
	userID := c.GetString("userID")

	rupeeAmount, err := strconv.ParseFloat(c.PostForm("rupee_amount"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid rupee amount", nil, http.StatusBadRequest))
		return
	}

	screenshot, err := c.FormFile("payment_screenshot")
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Payment screenshot is required", nil, http.StatusBadRequest))
		return
	}

	trx, err := h.Transactions.SubmitPayment(c.Request.Context(), services.SubmitPaymentDTO{
		UserID:          userID,
		CryptoID:        c.PostForm("crypto_id"),
		PaymentMethodID: c.PostForm("payment_method_id"),
		RupeeAmount:     rupeeAmount,
		Screenshot:      screenshot,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields), errors.Is(err, services.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		case errors.Is(err, services.ErrCryptoInactive):
			c.JSON(http.StatusUnprocessableEntity, common.NewErrorResponse(err.Error(), nil, http.StatusUnprocessableEntity))
		default:
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to submit payment. Please try again", nil, http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(trx, "Payment submitted"))
}

type BlockchainDetailsRequest struct {
	BlockchainNetwork string `json:"blockchain_network" binding:"required"`
	ReceiveAddress    string `json:"receive_address" binding:"required"`
}

func (h *TransactionHandler) SubmitBlockchainDetails(c *gin.Context) {
	userID := c.GetString("userID")
	trxID := c.Param("id")

	var req BlockchainDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Blockchain network and receive address are required", nil, http.StatusBadRequest))
		return
	}

	trx, err := h.Transactions.SubmitBlockchainDetails(userID, trxID, req.BlockchainNetwork, req.ReceiveAddress)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Order not found", nil, http.StatusNotFound))
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, common.NewErrorResponse("Order is not awaiting blockchain details", nil, http.StatusConflict))
		default:
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to submit blockchain details. Please try again", nil, http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(trx, "Blockchain details submitted"))
}

func (h *TransactionHandler) History(c *gin.Context) {
	userID := c.GetString("userID")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	result, err := h.Transactions.History(userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to fetch transactions", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, result)
}

// Watch streams status changes for one owned order over SSE.
func (h *TransactionHandler) Watch(c *gin.Context) {
	userID := c.GetString("userID")
	trxID := c.Param("id")

	if err := h.Watcher.StreamTransactionStatus(c, userID, trxID); err != nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Order not found", nil, http.StatusNotFound))
	}
}
