package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"restaurant-ordering-api/config"
	"restaurant-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Customer{}, &models.Employee{},
		&models.Product{}, &models.ProductRating{},
		&models.Order{}, &models.OrderItem{}, &models.Bid{},
		&models.Compliment{}, &models.Complaint{},
	))
	config.DB = db

	r := gin.New()
	return r
}

// asUser injects auth context the way the JWT middleware would.
func asUser(userID uint, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", string(role))
		c.Next()
	}
}

func seedCustomer(t *testing.T, balance int64, vip bool) *models.Customer {
	t.Helper()
	user := &models.User{
		Name:         "alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
		Role:         models.RoleCustomer,
		Status:       models.AccountActive,
	}
	require.NoError(t, config.DB.Create(user).Error)
	customer := &models.Customer{UserID: user.ID, Balance: balance, VIP: vip}
	require.NoError(t, config.DB.Create(customer).Error)
	return customer
}

func seedProduct(t *testing.T, name string, price int64, ptype models.ProductType) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Price: price, Type: ptype, IsAvailable: true}
	require.NoError(t, config.DB.Create(product).Error)
	return product
}

func postOrder(t *testing.T, r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)
	req, _ := http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestPlaceOrderRejectsMixedCart(t *testing.T) {
	r := setupTestApp(t)
	customer := seedCustomer(t, 10000, false)
	dish := seedProduct(t, "soup", 500, models.ProductFood)
	mug := seedProduct(t, "mug", 900, models.ProductMerch)

	r.POST("/orders", asUser(customer.UserID, models.RoleCustomer), PlaceOrder)

	rr := postOrder(t, r, gin.H{
		"order_type": "food",
		"items": []gin.H{
			{"product_id": dish.ID, "quantity": 1},
			{"product_id": mug.ID, "quantity": 1},
		},
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Mixed carts are not allowed")

	// Nothing was charged or created
	var stored models.Customer
	require.NoError(t, config.DB.First(&stored, customer.ID).Error)
	assert.Equal(t, int64(10000), stored.Balance)
	var count int64
	config.DB.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPlaceOrderHomogeneousCartSucceeds(t *testing.T) {
	r := setupTestApp(t)
	customer := seedCustomer(t, 10000, false)
	dish := seedProduct(t, "pad thai", 3999, models.ProductFood)

	r.POST("/orders", asUser(customer.UserID, models.RoleCustomer), PlaceOrder)

	rr := postOrder(t, r, gin.H{
		"order_type": "food",
		"items":      []gin.H{{"product_id": dish.ID, "quantity": 2}},
	})

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var stored models.Customer
	require.NoError(t, config.DB.First(&stored, customer.ID).Error)
	assert.Equal(t, int64(2002), stored.Balance)
}

func TestPlaceOrderSucceedsWhenVIPRecheckFails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// No complaints table, so the post-commit VIP recheck errors out
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Customer{},
		&models.Product{}, &models.Order{}, &models.OrderItem{},
	))
	config.DB = db
	r := gin.New()

	customer := seedCustomer(t, 10000, false)
	dish := seedProduct(t, "soup", 500, models.ProductFood)

	r.POST("/orders", asUser(customer.UserID, models.RoleCustomer), PlaceOrder)

	rr := postOrder(t, r, gin.H{
		"order_type": "food",
		"items":      []gin.H{{"product_id": dish.ID, "quantity": 1}},
	})

	// The customer was charged and the order exists, so this is a success
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var stored models.Customer
	require.NoError(t, config.DB.First(&stored, customer.ID).Error)
	assert.Equal(t, int64(9500), stored.Balance)
	var count int64
	config.DB.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestPlaceOrderInsufficientBalanceAddsWarning(t *testing.T) {
	r := setupTestApp(t)
	customer := seedCustomer(t, 100, false)
	dish := seedProduct(t, "lobster", 5000, models.ProductFood)

	r.POST("/orders", asUser(customer.UserID, models.RoleCustomer), PlaceOrder)

	rr := postOrder(t, r, gin.H{
		"order_type": "food",
		"items":      []gin.H{{"product_id": dish.ID, "quantity": 1}},
	})

	assert.Equal(t, http.StatusPaymentRequired, rr.Code)

	// The caller escalates the warning; balance stays put
	var stored models.Customer
	require.NoError(t, config.DB.First(&stored, customer.ID).Error)
	assert.Equal(t, 1, stored.Warnings)
	assert.Equal(t, int64(100), stored.Balance)
}

func TestPlaceOrderVIPExclusiveGuard(t *testing.T) {
	r := setupTestApp(t)
	customer := seedCustomer(t, 10000, false)
	secret := seedProduct(t, "chef's table", 2000, models.ProductFood)
	require.NoError(t, config.DB.Model(secret).Update("vip_exclusive", true).Error)

	r.POST("/orders", asUser(customer.UserID, models.RoleCustomer), PlaceOrder)

	rr := postOrder(t, r, gin.H{
		"order_type": "food",
		"items":      []gin.H{{"product_id": secret.ID, "quantity": 1}},
	})

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRateProductUpserts(t *testing.T) {
	r := setupTestApp(t)
	customer := seedCustomer(t, 0, false)
	dish := seedProduct(t, "soup", 500, models.ProductFood)

	r.POST("/products/:id/rate", asUser(customer.UserID, models.RoleCustomer), RateProduct)

	rate := func(value int) *httptest.ResponseRecorder {
		jsonBody, _ := json.Marshal(gin.H{"rating": value})
		req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/products/%d/rate", dish.ID), bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	require.Equal(t, http.StatusOK, rate(4).Code)
	require.Equal(t, http.StatusOK, rate(2).Code)

	// Exactly one row, holding the latest value
	var ratings []models.ProductRating
	require.NoError(t, config.DB.Where("product_id = ?", dish.ID).Find(&ratings).Error)
	require.Len(t, ratings, 1)
	assert.Equal(t, 2, ratings[0].Rating)
}
