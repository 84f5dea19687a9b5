package dto

// RegisterRequest represents a user registration request.
// numberPlate is only meaningful for Driver and Bus Assistant; the service
// enforces the role-specific requirement.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	FirstName   string `json:"firstName" binding:"required,max=255"`
	LastName    string `json:"lastName" binding:"required,max=255"`
	PhoneNumber string `json:"phoneNumber" binding:"required,numeric,min=9,max=20"`
	NumberPlate string `json:"numberPlate" binding:"omitempty,min=3,max=20"`
	Role        string `json:"role" binding:"required"`
	Password    string `json:"password" binding:"required,min=6,max=255"`
}

// RegisterData is the payload returned after a successful registration.
type RegisterData struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginRequest represents login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=255"`
}

// RefreshRequest carries an optional body refresh token; the cookie is used
// when the field is empty.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"omitempty"`
}

// SessionData is the payload returned by login and refresh. The legacy
// "token" field duplicates accessToken for older dashboard builds.
type SessionData struct {
	Email        string `json:"email"`
	Role         string `json:"role"`
	Token        string `json:"token"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// NumberPlatesData wraps the active plate list.
type NumberPlatesData struct {
	NumberPlates []string `json:"numberPlates"`
}

// ClaimsData echoes the decoded access token claims for /auth/me.
type ClaimsData struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
