package auth

type NonceRequest struct {
	Address string `json:"address" binding:"required,ethaddress"`
}

type NonceResponse struct {
	Nonce string `json:"nonce"`
}

type LoginRequest struct {
	Address   string `json:"address" binding:"required,ethaddress"`
	Message   string `json:"message" binding:"required,max=2000"`
	Signature string `json:"signature" binding:"required,max=500"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type MeResponse struct {
	Address string `json:"address"`
	IsAdmin bool   `json:"isAdmin"`
}
