package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/canteen-app/controllers"
	"github.com/yeremiapane/canteen-app/models"
	"github.com/yeremiapane/canteen-app/utils"
)

func setupUserRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.Default()
	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)
	return router, db
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()
	router, _ := setupUserRouter(t)

	w := postJSON(t, router, "/register", map[string]interface{}{
		"name":     "Alex Tan",
		"email":    "alex@student.local",
		"phone":    "555-0101",
		"password": "secret123",
		"role":     "buyer",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/login", map[string]interface{}{
		"email":    "alex@student.local",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			Token    string `json:"token"`
			UserRole string `json:"user_role"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "buyer", resp.Data.UserRole)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	utils.InitLogger()
	router, _ := setupUserRouter(t)

	w := postJSON(t, router, "/register", map[string]interface{}{
		"name":     "Alex Tan",
		"email":    "alex@student.local",
		"password": "secret123",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	utils.InitLogger()
	router, _ := setupUserRouter(t)

	postJSON(t, router, "/register", map[string]interface{}{
		"name":     "Sam Lee",
		"email":    "sam@student.local",
		"password": "secret123",
		"role":     "seller",
	})

	w := postJSON(t, router, "/login", map[string]interface{}{
		"email":    "sam@student.local",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
