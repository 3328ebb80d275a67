// Package gemini implements generation.Model on top of Google's Gemini API.
//
// It is an infrastructure adapter: it translates a prompt into a single
// generateContent request carrying the configured generation parameters and
// safety settings, and translates the response back into a generation.Result.
// It never retries; generation.Client owns the retry policy.
//
// Safety blocks are reported as a Result with Blocked set rather than as an
// error, so callers can show a "no description generated" notice.
package gemini
