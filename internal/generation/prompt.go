package generation

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/phrazzld/flashlearn/internal/domain"
)

// SystemInstruction is sent as the system message where the backend supports one.
const SystemInstruction = "You write concise study flashcards. " +
	"You answer with JSON only and never add commentary."

var difficultyGuidance = map[domain.DifficultyTier]string{
	domain.DifficultyEasy:   "Create simple flashcards that test basic comprehension and recall of key facts.",
	domain.DifficultyMedium: "Create moderately challenging flashcards that test understanding and application of concepts.",
	domain.DifficultyHard:   "Create challenging flashcards that test deep understanding, synthesis, and critical thinking.",
}

var promptTemplate = template.Must(template.New("flashcards").Parse(
	`Generate exactly {{.NumCards}} flashcards from the following text.

Text:
{{.Text}}

{{.Guidance}}

Format your response as a JSON array with objects containing "question" and "answer" keys.
Example format:
[
  {"question": "What is...", "answer": "..."},
  {"question": "Explain...", "answer": "..."}
]

Return ONLY the JSON array, no other text.
Flashcards:`))

type promptData struct {
	NumCards int
	Text     string
	Guidance string
}

// Guidance returns the instruction sentence for a tier. Unknown tiers get
// the medium guidance.
func Guidance(tier domain.DifficultyTier) string {
	if g, ok := difficultyGuidance[tier]; ok {
		return g
	}
	return difficultyGuidance[domain.DifficultyMedium]
}

// BuildPrompt renders the user prompt for a normalized request.
func BuildPrompt(req Request) (string, error) {
	var buf bytes.Buffer
	err := promptTemplate.Execute(&buf, promptData{
		NumCards: req.NumCards,
		Text:     req.Text,
		Guidance: Guidance(req.Difficulty),
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
