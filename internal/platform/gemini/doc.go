// Package gemini implements generation.Generator on Google's Gemini API
// through the google.golang.org/genai client. Responses are requested as
// JSON constrained by a response schema, then parsed and validated by the
// generation package. Transient API failures are retried with exponential
// backoff.
package gemini
