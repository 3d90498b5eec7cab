// internal/prompt/question.go

package prompt

import (
	"fmt"
	"strings"

	"travel-assistant/internal/models"
)

const questionHeader = `You are a travel assistant answering a follow-up question for a traveler whose trip details are already known.
Use the traveler context below. Do NOT ask again for details it already contains.
Answer directly and concretely; when web results are provided, ground the answer in them and cite venue names.`

const elaborateHint = `If the traveler asks you to elaborate or says "tell me more", expand on your previous answer in the conversation above instead of changing topic.`

// QuestionInput carries the session state and fresh search context the
// ask prompt is built from.
type QuestionInput struct {
	Facts    models.TravelFacts
	Summary  string
	History  []models.ChatTurn
	Question string
	Snippets []models.SearchResult
}

// Question renders the per-session Q&A prompt.
func Question(in QuestionInput) string {
	var b strings.Builder
	b.WriteString(questionHeader)
	b.WriteString("\n\n")
	b.WriteString(contextBlock(factLines(in.Facts)))
	b.WriteString("\n")

	if in.Summary != "" {
		b.WriteString(in.Summary)
		b.WriteString("\n\n")
	}

	if len(in.History) > 0 {
		b.WriteString("Recent conversation:\n")
		for _, turn := range in.History {
			fmt.Fprintf(&b, "Traveler: %s\nAssistant: %s\n", turn.Question, turn.Answer)
		}
		b.WriteString(elaborateHint)
		b.WriteString("\n\n")
	}

	if len(in.Snippets) > 0 {
		b.WriteString("Web results:\n")
		for _, r := range in.Snippets {
			writeResultLine(&b, r)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Traveler question: %s\n", in.Question)
	return b.String()
}
