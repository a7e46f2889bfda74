package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents a refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest represents a logout request
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserResponse represents basic account information
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Enabled   bool   `json:"enabled"`
	Locked    bool   `json:"locked"`
	StudentID *int64 `json:"studentId,omitempty"`
	TeacherID *int64 `json:"teacherId,omitempty"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// ProfileResponse represents the resolved account plus its owned record
type ProfileResponse struct {
	User    UserResponse `json:"user"`
	Student interface{}  `json:"student,omitempty"`
	Teacher interface{}  `json:"teacher,omitempty"`
}

// AccountStatusRequest represents an account status mutation
type AccountStatusRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
	Locked  *bool `json:"locked" binding:"required"`
}
