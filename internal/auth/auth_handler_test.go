package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"qr-attendance/internal/auth"
	autherrors "qr-attendance/internal/auth/errors"
	authMock "qr-attendance/internal/auth/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := authMock.NewMockService(ctrl)
	h := auth.NewHandler(mockService)

	t.Run("Success sets cookie", func(t *testing.T) {
		mockService.EXPECT().
			Login(gomock.Any(), "kim@example.com", "password123").
			Return("signed.jwt.token", auth.AuthResponse{ID: uuid.New().String(), Email: "kim@example.com", Role: "employee"}, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"kim@example.com","password":"password123"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, w.Body.String(), "signed.jwt.token")

		cookies := w.Result().Cookies()
		if assert.Len(t, cookies, 1) {
			assert.Equal(t, "access_token", cookies[0].Name)
			assert.Equal(t, "signed.jwt.token", cookies[0].Value)
			assert.True(t, cookies[0].HttpOnly)
		}
	})

	t.Run("Invalid credentials", func(t *testing.T) {
		mockService.EXPECT().
			Login(gomock.Any(), "kim@example.com", "wrong").
			Return("", auth.AuthResponse{}, autherrors.ErrInvalidCredentials)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"kim@example.com","password":"wrong"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("Malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"not-an-email"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Login(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Logout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := auth.NewHandler(authMock.NewMockService(ctrl))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	h.Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, "access_token", cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Equal(t, -1, cookies[0].MaxAge)
	}
}

func TestHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := authMock.NewMockService(ctrl)
	h := auth.NewHandler(mockService)

	id := uuid.New().String()
	mockService.EXPECT().
		GetMe(gomock.Any(), id).
		Return(&auth.AuthResponse{ID: id, Name: "Kim", Role: "employee"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", id)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	h.Me(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Kim")
}
