package model

type HealthResponse struct {
	Status           string `json:"status"`
	APIKeyConfigured bool   `json:"api_key_configured"`
	APIWorking       bool   `json:"api_working"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
