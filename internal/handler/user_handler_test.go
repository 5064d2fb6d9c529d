package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	setupTest(t)
	router := testRouter()

	token := registerUser(t, router, "alice@x.com")
	assert.NotEmpty(t, token)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	setupTest(t)
	router := testRouter()

	registerUser(t, router, "alice@x.com")

	w := doJSON(router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "alice@x.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email already exists")
}

func TestRegisterUser_InvalidInput(t *testing.T) {
	setupTest(t)
	router := testRouter()

	// Not an email.
	w := doJSON(router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "not-an-email",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Password shorter than eight characters.
	w = doJSON(router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "alice@x.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginUser(t *testing.T) {
	setupTest(t)
	router := testRouter()
	registerUser(t, router, "alice@x.com")

	w := doJSON(router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "alice@x.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.NotEmpty(t, out.Token)
}

func TestLoginUser_WrongPassword(t *testing.T) {
	setupTest(t)
	router := testRouter()
	registerUser(t, router, "alice@x.com")

	w := doJSON(router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "alice@x.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLoginUser_UnknownEmail(t *testing.T) {
	setupTest(t)
	router := testRouter()

	w := doJSON(router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "nobody@x.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestGetMe(t *testing.T) {
	setupTest(t)
	router := testRouter()
	token := registerUser(t, router, "alice@x.com")

	w := doJSON(router, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var me UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "alice@x.com", me.Email)
	assert.NotZero(t, me.ID)
}

func TestGetMe_RequiresToken(t *testing.T) {
	setupTest(t)
	router := testRouter()

	w := doJSON(router, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/users/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
