package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmwangi/schooltransit/internal/app/models"
	"github.com/dmwangi/schooltransit/internal/app/models/dto"
	"github.com/dmwangi/schooltransit/internal/pkg/apperrors"
	"github.com/dmwangi/schooltransit/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		AccessSecret:    "test-access-secret",
		RefreshSecret:   "test-refresh-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 168 * time.Hour,
		TokenIssuer:     "schooltransit.test",
	})
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()
	var envelope dto.APIResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

// authTestRouter mounts a protected probe endpoint that echoes the identity
// JWTAuth stored on the context.
func authTestRouter(jwtService *auth.JWTService, roles ...string) *gin.Engine {
	authMiddleware := NewAuthMiddleware(jwtService)
	router := gin.New()

	handlers := []gin.HandlerFunc{authMiddleware.JWTAuth()}
	if len(roles) > 0 {
		handlers = append(handlers, authMiddleware.RoleRequired(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetInt64(ContextUserID),
			"email":  c.GetString(ContextEmail),
			"role":   c.GetString(ContextRole),
		})
	})

	router.GET("/probe", handlers...)
	return router
}

func TestJWTAuthMissingToken(t *testing.T) {
	router := authTestRouter(newTestJWTService())

	for _, header := range []string{"", "Token abc", "Bearer"} {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/probe", nil)
		if header != "" {
			request.Header.Set("Authorization", header)
		}
		router.ServeHTTP(recorder, request)

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, recorder.Code)
		}
		envelope := decodeEnvelope(t, recorder)
		if envelope.Message != "Access token is missing." {
			t.Errorf("header %q: message = %q", header, envelope.Message)
		}
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	router := authTestRouter(newTestJWTService())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/probe", nil)
	request.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", recorder.Code)
	}
	envelope := decodeEnvelope(t, recorder)
	if envelope.Success {
		t.Error("success = true, want false")
	}
	if envelope.Message != "Invalid or expired access token." {
		t.Errorf("message = %q", envelope.Message)
	}
}

func TestJWTAuthSetsContextIdentity(t *testing.T) {
	jwtService := newTestJWTService()
	router := authTestRouter(jwtService)

	user := &models.User{ID: 42, Email: "admin@example.com", Role: models.RoleSchoolAdmin}
	accessToken, _, err := jwtService.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/probe", nil)
	request.Header.Set("Authorization", "Bearer "+accessToken)
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", recorder.Code, recorder.Body.String())
	}

	var identity struct {
		UserID int64  `json:"userID"`
		Email  string `json:"email"`
		Role   string `json:"role"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &identity); err != nil {
		t.Fatalf("decode identity: %v", err)
	}
	if identity.UserID != 42 || identity.Email != "admin@example.com" || identity.Role != string(models.RoleSchoolAdmin) {
		t.Errorf("identity = %+v", identity)
	}
}

func TestJWTAuthRejectsRefreshToken(t *testing.T) {
	jwtService := newTestJWTService()
	router := authTestRouter(jwtService)

	user := &models.User{ID: 42, Email: "admin@example.com", Role: models.RoleSchoolAdmin}
	_, refreshToken, err := jwtService.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/probe", nil)
	request.Header.Set("Authorization", "Bearer "+refreshToken)
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", recorder.Code)
	}
}

func TestRoleRequired(t *testing.T) {
	jwtService := newTestJWTService()
	router := authTestRouter(jwtService, string(models.RoleSchoolAdmin))

	admin := &models.User{ID: 1, Email: "admin@example.com", Role: models.RoleSchoolAdmin}
	driver := &models.User{ID: 2, Email: "driver@example.com", Role: models.RoleDriver}

	adminToken, _, err := jwtService.GenerateTokenPair(admin)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	driverToken, _, err := jwtService.GenerateTokenPair(driver)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/probe", nil)
	request.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodGet, "/probe", nil)
	request.Header.Set("Authorization", "Bearer "+driverToken)
	router.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("driver status = %d, want 403", recorder.Code)
	}
	envelope := decodeEnvelope(t, recorder)
	if envelope.Message != "You do not have permission for this resource." {
		t.Errorf("message = %q", envelope.Message)
	}
}

func TestRoleRequiredWithoutAuthentication(t *testing.T) {
	authMiddleware := NewAuthMiddleware(newTestJWTService())
	router := gin.New()
	router.GET("/probe", authMiddleware.RoleRequired(string(models.RoleDriver)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/probe", nil))

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", recorder.Code)
	}
	envelope := decodeEnvelope(t, recorder)
	if envelope.Message != "Not authenticated." {
		t.Errorf("message = %q", envelope.Message)
	}
}

func TestHandleAPIErrorKnownMappings(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid login credentials."},
		{"duplicate user", apperrors.ErrDuplicateUser, http.StatusConflict, "A user with that email or phone number already exists."},
		{"student not found", apperrors.ErrStudentNotFound, http.StatusNotFound, "Student not found."},
		{"already withdrawn", apperrors.ErrStudentAlreadyWithdrawn, http.StatusConflict, "Student is already withdrawn."},
		{"plate mismatch", apperrors.ErrDriverNumberPlateMismatch, http.StatusForbidden, "Drivers can only submit requests for their assigned number plate."},
		{"fuel amount", apperrors.ErrInvalidAmountForFuel, http.StatusBadRequest, "amount must be greater than zero for Fuel requests."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/fail", func(c *gin.Context) {
				HandleAPIError(c, tc.err, "Something went wrong.")
			})

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/fail", nil))

			if recorder.Code != tc.status {
				t.Errorf("status = %d, want %d", recorder.Code, tc.status)
			}
			envelope := decodeEnvelope(t, recorder)
			if envelope.Success {
				t.Error("success = true, want false")
			}
			if envelope.Message != tc.message {
				t.Errorf("message = %q, want %q", envelope.Message, tc.message)
			}
		})
	}
}

func TestHandleAPIErrorWrappedError(t *testing.T) {
	router := gin.New()
	router.GET("/fail", func(c *gin.Context) {
		wrapped := errors.Join(errors.New("query failed"), apperrors.ErrStudentNotFound)
		HandleAPIError(c, wrapped, "Something went wrong.")
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/fail", nil))

	if recorder.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", recorder.Code)
	}
}

func TestHandleAPIErrorUnknownError(t *testing.T) {
	router := gin.New()
	router.GET("/fail", func(c *gin.Context) {
		HandleAPIError(c, errors.New("connection reset"), "Failed to load students.")
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/fail", nil))

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", recorder.Code)
	}
	envelope := decodeEnvelope(t, recorder)
	if envelope.Message != "Failed to load students." {
		t.Errorf("message = %q, want the endpoint fallback", envelope.Message)
	}
}

func TestCORSMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(CORS("http://localhost:5173"))
	router.GET("/probe", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Preflight from the configured origin.
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodOptions, "/probe", nil)
	request.Header.Set("Origin", "http://localhost:5173")
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", recorder.Code)
	}
	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := recorder.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q", got)
	}

	// A foreign origin gets no CORS headers.
	recorder = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodGet, "/probe", nil)
	request.Header.Set("Origin", "http://evil.example.com")
	router.ServeHTTP(recorder, request)

	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin Allow-Origin = %q, want empty", got)
	}
}
