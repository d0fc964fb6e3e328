package assistant

import (
	"fmt"
	"strings"

	"github.com/futig/resume-assistant/internal/entity"
)

const systemPrompt = `You are an HR assistant. Based on the resume data provided in the context, identify up to 3 most suitable candidates for the query.

Instructions:
- If the user greets you, greet the user back with full respect.
- Provide a short summary for each selected candidate.
- Use the format below.
- Do NOT include explanations.
- Do NOT write paragraphs.
- ONLY include relevant candidates.

Format:
CandidateID: <ID>
Summary: <One or two line description highlighting relevant skills and experience>

Example:
CandidateID: 103
Summary: 5 years of experience in SQL and Power BI. Built dashboards and reports for retail clients.

CandidateID: 109
Summary: Data analyst with strong SQL skills and experience using Power BI for financial reporting.`

const userTemplate = "Query: %s\n\nContext:\n%s\n\nAnswer:"

// BuildContext renders search results in order, one "CandidateID: <id> | <text>"
// entry per chunk, separated by single spaces.
func BuildContext(results []entity.SearchResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("%s: %s | %s", entity.ColumnCandidateID, r.Chunk.CandidateID(), r.Chunk.Text))
	}
	return strings.Join(parts, " ")
}

// BuildMessages returns the system instruction and the user turn.
func BuildMessages(query, contextText string) []entity.ChatMessage {
	return []entity.ChatMessage{
		{Role: entity.ChatRoleSystem, Content: systemPrompt},
		{Role: entity.ChatRoleUser, Content: fmt.Sprintf(userTemplate, query, contextText)},
	}
}
