package airtable

import "time"

// DefaultBaseURL — публичный REST-эндпоинт провайдера.
const DefaultBaseURL = "https://api.airtable.com/v0"

// Config — параметры доступа к базе провайдера.
type Config struct {
	APIKey  string
	BaseID  string
	BaseURL string
	Timeout time.Duration
}

// Configured — заданы и ключ, и идентификатор базы.
func (c *Config) Configured() bool {
	return c.APIKey != "" && c.BaseID != ""
}
