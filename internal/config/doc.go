// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to application settings needed by different components while keeping
// configuration details separate from business logic.
//
// Environment variables use the PRODWRITER_ prefix with dots replaced by
// underscores, e.g. PRODWRITER_LLM_MODEL_NAME. GEMINI_API_KEY and OPENAI_API_KEY
// are accepted as aliases for the provider keys.
package config
