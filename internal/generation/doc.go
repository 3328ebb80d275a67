// Package generation provides the boundary between the application and external
// generative-text services (Gemini, OpenAI). A Model performs one attempt; a
// Client wraps a Model with a bounded exponential-backoff retry policy and
// classifies the outcome as generated text, an empty result, or a fatal failure.
package generation
