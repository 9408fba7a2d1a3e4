package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"restaurant-pos/controllers"
)

func setupAuthRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	authCtrl := controllers.NewAuthController(db)
	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	router := setupAuthRouter(db)

	w := postJSON(t, router, "/auth/register", gin.H{
		"full_name": "Dana Smith",
		"username":  "dana",
		"password":  "secret-password",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Employee registered", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "dana", data["username"])

	// Duplicate username is a conflict.
	w = postJSON(t, router, "/auth/register", gin.H{
		"full_name": "Other Dana",
		"username":  "dana",
		"password":  "secret-password",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(t, router, "/auth/login", gin.H{
		"username": "dana",
		"password": "secret-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	loginData := response["data"].(map[string]interface{})
	assert.NotEmpty(t, loginData["token"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	seedEmployee(t, db, "dana")
	router := setupAuthRouter(db)

	// Wrong password and unknown user produce the same response.
	w := postJSON(t, router, "/auth/login", gin.H{
		"username": "dana",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var wrongPass map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &wrongPass))

	w = postJSON(t, router, "/auth/login", gin.H{
		"username": "nobody",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var unknownUser map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &unknownUser))
	assert.Equal(t, wrongPass["message"], unknownUser["message"])
}

func TestProfileRequiresAuthContext(t *testing.T) {
	db := setupTestDB(t)
	employee := seedEmployee(t, db, "dana")
	authCtrl := controllers.NewAuthController(db)

	router := gin.New()
	router.GET("/auth/profile", authAs(employee.ID), authCtrl.Profile)
	router.GET("/auth/profile-open", authCtrl.Profile)

	req, _ := http.NewRequest("GET", "/auth/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "dana", data["username"])

	req, _ = http.NewRequest("GET", "/auth/profile-open", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
