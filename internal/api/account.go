package api

import (
	"banking_api/internal/domain"     // Domain models and errors
	"banking_api/internal/middleware" // Context keys
	"banking_api/internal/service"    // Business logic
	"banking_api/internal/utils"      // Cache helpers
	"context"                         // Context for Redis operations
	"errors"                          // Error matching
	"net/http"                        // HTTP status codes
	"strconv"                         // String conversion
	"time"                            // Cache TTL

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Decimal money
	"github.com/sirupsen/logrus"    // Logging library
)

// cacheTTL bounds staleness of cached balance/history reads.
const cacheTTL = 60 * time.Second

// AmountRequest is the JSON body for deposit and withdrawal.
// Positivity is enforced by the account service, not the binding.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"` // Amount to move
}

// HistoryResponse wraps the account's ledger.
type HistoryResponse struct {
	Transactions []domain.Transaction `json:"transactions"` // Ledger rows, oldest first
}

// currentUser pulls the user resolved by the auth middleware out of context.
func currentUser(c *gin.Context) *domain.User {
	return c.MustGet(middleware.UserKey).(*domain.User)
}

// requestID pulls the id tagged by the RequestID middleware; empty when the
// middleware is not installed.
func requestID(c *gin.Context) string {
	return c.GetString(middleware.RequestIDKey)
}

func balanceKey(userID uint) string {
	return "balance:user:" + strconv.Itoa(int(userID))
}

func historyKey(userID uint) string {
	return "history:user:" + strconv.Itoa(int(userID))
}

// invalidateAccountCache drops both cached views after a mutation.
func invalidateAccountCache(rdb *redis.Client, userID uint) {
	ctx := context.Background() // Context for Redis operations
	_ = utils.DeleteCache(ctx, rdb, balanceKey(userID))
	_ = utils.DeleteCache(ctx, rdb, historyKey(userID))
}

// AddMoneyHandler deposits funds into the caller's account, creating the
// account on first use.
func AddMoneyHandler(svc *service.AccountService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		var req AmountRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		account, err := svc.Deposit(c.Request.Context(), user, req.Amount)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidAmount) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"request_id": requestID(c),        // Request ID
				"user_id":    user.ID,             // User ID
				"amount":     req.Amount.String(), // Deposit amount
				"error":      err.Error(),         // Error message
			}).Error("Deposit failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Deposit failed"})
			return
		}
		invalidateAccountCache(rdb, user.ID) // Drop stale cached views
		c.JSON(http.StatusOK, account)
	}
}

// RemoveMoneyHandler withdraws funds from the caller's account.
func RemoveMoneyHandler(svc *service.AccountService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		var req AmountRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		account, err := svc.Withdraw(c.Request.Context(), user, req.Amount)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidAmount) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
				return
			}
			if errors.Is(err, domain.ErrInsufficientFunds) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"request_id": requestID(c),        // Request ID
				"user_id":    user.ID,             // User ID
				"amount":     req.Amount.String(), // Withdrawal amount
				"error":      err.Error(),         // Error message
			}).Error("Withdrawal failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Withdrawal failed"})
			return
		}
		invalidateAccountCache(rdb, user.ID) // Drop stale cached views
		c.JSON(http.StatusOK, account)
	}
}

// GetBalanceHandler returns the caller's account, served from cache when
// possible.
func GetBalanceHandler(svc *service.AccountService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		ctx := c.Request.Context()
		var account domain.Account
		found, err := utils.GetCache(ctx, rdb, balanceKey(user.ID), &account)
		if err == nil && found {
			c.JSON(http.StatusOK, account) // Serve from cache
			return
		}
		acct, err := svc.Balance(ctx, user)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch account"})
			return
		}
		_ = utils.SetCache(ctx, rdb, balanceKey(user.ID), acct, cacheTTL) // Cache the account
		c.JSON(http.StatusOK, acct)
	}
}

// GetHistoryHandler returns the caller's full ledger, oldest first, served
// from cache when possible.
func GetHistoryHandler(svc *service.AccountService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		ctx := c.Request.Context()
		var cached HistoryResponse
		found, err := utils.GetCache(ctx, rdb, historyKey(user.ID), &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Serve from cache
			return
		}
		transactions, err := svc.History(ctx, user)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		resp := HistoryResponse{Transactions: transactions}
		if resp.Transactions == nil {
			resp.Transactions = []domain.Transaction{} // Empty ledger serializes as []
		}
		_ = utils.SetCache(ctx, rdb, historyKey(user.ID), resp, cacheTTL) // Cache the ledger
		c.JSON(http.StatusOK, resp)
	}
}
