// Package ollama implements generation.Generator against a local Ollama
// server through its OpenAI-compatible API, using the go-openai client.
package ollama
