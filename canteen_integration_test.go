package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/canteen-app/models"
	"github.com/yeremiapane/canteen-app/router"
	"github.com/yeremiapane/canteen-app/services"
	"github.com/yeremiapane/canteen-app/stores"
	"github.com/yeremiapane/canteen-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndIntegration walks the whole counter flow:
// 0. seed a seller, an item and a slot; register + login a buyer
// 1. buyer places an order that drains the item
// 2. seller confirms, readies and completes it
// 3. a follow-up order on the drained item is rejected
// 4. the buyer sees the pickup notifications, the seller sees the
//    out-of-stock item
func TestEndToEndIntegration(t *testing.T) {
	db := setupTestDB(t)

	inv := stores.NewInventoryStore(db)
	orderStore := stores.NewOrderStore(db, inv)
	orderStore.Subscribe(services.NewOrderNotifier(db).HandleEvent)

	r := router.SetupRouter(db, inv, orderStore)

	buyerToken := registerAndLoginBuyer(t, r)
	sellerToken := loginAs(t, r, "kitchen@canteen.local", "canteen123")

	orderID := placeOrderTest(t, r, buyerToken)
	driveStatusFlowTest(t, r, sellerToken, orderID)
	rejectedOrderTest(t, r, buyerToken)
	notificationsTest(t, r, buyerToken)
	sellerDashboardTest(t, r, sellerToken)
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.CatalogItem{},
		&models.PickupSlot{},
		&models.Order{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("canteen123"), bcrypt.DefaultCost)
	seller := models.User{
		Name:     "Canteen Kitchen",
		Email:    "kitchen@canteen.local",
		Password: string(hashed),
		Role:     "seller",
	}
	db.Create(&seller)

	db.Create(&models.CatalogItem{
		Name:         "Beef Noodle Soup",
		Category:     "Mains",
		Price:        50.00,
		Inventory:    3,
		MaxInventory: 20,
		Available:    true,
		SellerID:     seller.ID,
		SellerName:   seller.Name,
	})
	db.Create(&models.PickupSlot{Time: "12:00-12:30", Available: true})

	return db
}

func doJSON(t *testing.T, r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAndLoginBuyer(t *testing.T, r *gin.Engine) string {
	w := doJSON(t, r, http.MethodPost, "/register", "", map[string]interface{}{
		"name":     "Alex Tan",
		"email":    "alex@student.local",
		"password": "secret123",
		"role":     "buyer",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register buyer: code=%d, body=%s", w.Code, w.Body.String())
	}
	return loginAs(t, r, "alex@student.local", "secret123")
}

func loginAs(t *testing.T, r *gin.Engine, email, password string) string {
	w := doJSON(t, r, http.MethodPost, "/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: code=%d, body=%s", email, w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Status || resp.Data.Token == "" {
		t.Fatalf("login %s: empty token, body=%s", email, w.Body.String())
	}
	return resp.Data.Token
}

// placeOrderTest -> POST /orders draining the seeded item; checks the
// exact total with the service charge
func placeOrderTest(t *testing.T, r *gin.Engine, token string) uint {
	w := doJSON(t, r, http.MethodPost, "/orders", token, map[string]interface{}{
		"item_id":     1,
		"quantity":    3,
		"pickup_time": "12:00-12:30",
		"notes":       "extra chili",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("placeOrderTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			ID          uint    `json:"id"`
			Status      string  `json:"status"`
			TotalAmount float64 `json:"total_amount"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Status != "pending" {
		t.Fatalf("placeOrderTest: expected status 'pending', got %s", resp.Data.Status)
	}
	if resp.Data.TotalAmount != 152.00 {
		t.Fatalf("placeOrderTest: expected total 152.00, got %v", resp.Data.TotalAmount)
	}

	// The catalog must show the item drained and switched off.
	wItem := doJSON(t, r, http.MethodGet, "/items/1", "", nil)
	if wItem.Code != http.StatusOK {
		t.Fatalf("placeOrderTest GET item: code=%d", wItem.Code)
	}
	var itemResp struct {
		Data struct {
			Inventory int  `json:"inventory"`
			Available bool `json:"available"`
		} `json:"data"`
	}
	json.Unmarshal(wItem.Body.Bytes(), &itemResp)
	if itemResp.Data.Inventory != 0 || itemResp.Data.Available {
		t.Fatalf("placeOrderTest: expected drained unavailable item, got %+v", itemResp.Data)
	}

	return resp.Data.ID
}

func driveStatusFlowTest(t *testing.T, r *gin.Engine, sellerToken string, orderID uint) {
	url := fmt.Sprintf("/orders/%d/status", orderID)

	for _, status := range []string{"confirmed", "ready", "completed"} {
		w := doJSON(t, r, http.MethodPost, url, sellerToken, map[string]string{"status": status})
		if w.Code != http.StatusOK {
			t.Fatalf("transition to %s: code=%d, body=%s", status, w.Code, w.Body.String())
		}
	}

	// Completed is terminal.
	w := doJSON(t, r, http.MethodPost, url, sellerToken, map[string]string{"status": "pending"})
	if w.Code != http.StatusConflict {
		t.Fatalf("terminal transition: expected 409, got %d", w.Code)
	}
}

func rejectedOrderTest(t *testing.T, r *gin.Engine, buyerToken string) {
	w := doJSON(t, r, http.MethodPost, "/orders", buyerToken, map[string]interface{}{
		"item_id":     1,
		"quantity":    1,
		"pickup_time": "12:00-12:30",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("rejectedOrderTest: expected 400, got %d, body=%s", w.Code, w.Body.String())
	}
}

func notificationsTest(t *testing.T, r *gin.Engine, buyerToken string) {
	w := doJSON(t, r, http.MethodGet, "/notifications", buyerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("notificationsTest: code=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []struct {
			Message string `json:"Message"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	// confirmed + ready + completed
	if len(resp.Data) != 3 {
		t.Fatalf("notificationsTest: expected 3 notifications, got %d", len(resp.Data))
	}
}

func sellerDashboardTest(t *testing.T, r *gin.Engine, sellerToken string) {
	w := doJSON(t, r, http.MethodGet, "/inventory/out-of-stock", sellerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sellerDashboardTest out-of-stock: code=%d", w.Code)
	}
	var outResp struct {
		Data []models.CatalogItem `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &outResp)
	if len(outResp.Data) != 1 {
		t.Fatalf("sellerDashboardTest: expected 1 out-of-stock item, got %d", len(outResp.Data))
	}

	w = doJSON(t, r, http.MethodGet, "/dashboard/today", sellerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sellerDashboardTest today: code=%d", w.Code)
	}
	var todayResp struct {
		Data []models.Order `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &todayResp)
	if len(todayResp.Data) != 1 {
		t.Fatalf("sellerDashboardTest: expected 1 order today, got %d", len(todayResp.Data))
	}
}
