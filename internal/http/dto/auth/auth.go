// Package auth contiene DTOs para endpoints de autenticación por password.
package auth

// RegisterRequest alta pública. El primer usuario del sistema es admin.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse es la respuesta de register, login y refresh.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"` // "Bearer"
	ExpiresIn    int64  `json:"expiresIn"` // segundos
}

type MeResponse struct {
	ID             string   `json:"id"`
	Email          string   `json:"email"`
	DisplayName    string   `json:"displayName"`
	Roles          []string `json:"roles"`
	Profile        Profile  `json:"profile"`
	ImpersonatedBy string   `json:"impersonatedBy,omitempty"`
}

type Profile struct {
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Country string `json:"country"`
}
