// Package config loads and validates the meetscribe application
// configuration.
//
// Configuration comes from a config.yml file, an optional .env file, and
// environment variables, merged in that order with the environment winning.
// Viper handles file parsing; godotenv loads .env files. Environment
// variables bind to nested keys by underscore splitting (for example
// PYANNOTE_BASE_URL binds to pyannote.base_url). The credentials HF_TOKEN
// and GROQ_API_KEY are also recognized directly.
//
//	cfg, err := config.Load("meetscribe")
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
package config
