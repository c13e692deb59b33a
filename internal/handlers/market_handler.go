package handlers

import (
	"net/http"

	"spebit-service/internal/services"
	"spebit-service/pkg/common"

	"github.com/gin-gonic/gin"
)

// MarketHandler serves the dashboard reads: tradable coins, active payment
// methods, the caller's wallet and profile, and the referral program views.
type MarketHandler struct {
	Cryptos   *services.CryptoService
	Methods   *services.PaymentMethodService
	Wallets   *services.WalletService
	Referrals *services.ReferralService
	Users     *services.UserService
}

func NewMarketHandler(cryptos *services.CryptoService, methods *services.PaymentMethodService,
	wallets *services.WalletService, referrals *services.ReferralService, users *services.UserService) *MarketHandler {
	return &MarketHandler{Cryptos: cryptos, Methods: methods, Wallets: wallets, Referrals: referrals, Users: users}
}

func (h *MarketHandler) ListCryptocurrencies(c *gin.Context) {
	cryptos, err := h.Cryptos.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to fetch cryptocurrencies", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(cryptos, "Cryptocurrencies fetched"))
}

func (h *MarketHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.Methods.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to fetch payment methods", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(methods, "Payment methods fetched"))
}

func (h *MarketHandler) GetWallet(c *gin.Context) {
	userID := c.GetString("userID")
	wallet, err := h.Wallets.GetOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to fetch wallet", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(wallet, "Wallet fetched"))
}

func (h *MarketHandler) GetProfile(c *gin.Context) {
	userID := c.GetString("userID")
	profile, err := h.Users.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Profile not found", nil, http.StatusNotFound))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(profile, "Profile fetched"))
}

func (h *MarketHandler) GetReferralCode(c *gin.Context) {
	userID := c.GetString("userID")
	code, err := h.Referrals.GetOrCreateCode(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to fetch referral code", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(code, "Referral code fetched"))
}

func (h *MarketHandler) ListReferrals(c *gin.Context) {
	userID := c.GetString("userID")
	referrals, err := h.Referrals.ListReferred(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to fetch referrals", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(referrals, "Referrals fetched"))
}
