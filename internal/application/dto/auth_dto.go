package dto

// LoginRequest body para POST /auth/login.
type LoginRequest struct {
	User     string `json:"usuario"`
	Password string `json:"contrasena"`
}

// UserResponse usuario autenticado.
type UserResponse struct {
	Name string `json:"nombre"`
	Role string `json:"rol"`
}

// LoginResponse token + usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"usuario"`
}
