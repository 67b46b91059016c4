// Package generation turns source text into question/answer flashcards with
// a language model. Generator is the boundary the service layer depends on;
// the Gemini and Ollama adapters under internal/platform implement it and
// share the prompt, response parsing and retry logic defined here.
package generation
