package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mentra/group-booking/internal/model"
)

// IntakeTopics are the intake subjects in the order the assistant covers them.
var IntakeTopics = []string{"concern", "context", "goals", "challenges", "preferences"}

const intakeSystemPrompt = `You are a compassionate mental wellness assistant for Mentra, a group therapy matching platform.

CRITICAL SAFETY BOUNDARIES:
- NEVER diagnose mental health conditions
- NEVER provide medical advice
- NEVER replace therapists
- ALWAYS recommend professional help for serious concerns
- AI recommendations are advisory only

CONVERSATION STYLE:
- Start with 1-2 empathetic lines
- Ask 2-5 short questions total
- Ask only ONE question per message
- Be warm, supportive, and non-judgmental
- Keep responses concise (2-4 sentences)

INFORMATION TO COLLECT (in order):
1. Main concern
2. Context / duration
3. Goals
4. Challenges
5. Preferences (group vs 1:1, timing)

OUTPUT FORMAT:
When you have collected all information, output a JSON object with:
{
  "themes": ["theme1", "theme2"],
  "mainConcern": "summary",
  "goals": ["goal1", "goal2"],
  "challenges": ["challenge1", "challenge2"],
  "preferences": {
    "format": "group/1:1",
    "timing": "preference"
  },
  "recommendedGroup": {
    "id": "group-id",
    "name": "Group Name",
    "reasoning": "explanation"
  },
  "intakeComplete": true
}`

// IntakeSystemPrompt returns the intake instructions with the catalog's
// groups listed at the end.
func IntakeSystemPrompt(groups []model.Group) string {
	if len(groups) == 0 {
		return intakeSystemPrompt
	}
	var b strings.Builder
	b.WriteString(intakeSystemPrompt)
	b.WriteString("\n\nAvailable groups:")
	for _, g := range groups {
		fmt.Fprintf(&b, "\n- %s: %s", g.ID, g.Name)
	}
	return b.String()
}

// TranscriptText renders a transcript as "role: content" lines.
func TranscriptText(history []model.ConversationMessage) string {
	lines := make([]string, len(history))
	for i, msg := range history {
		lines[i] = fmt.Sprintf("%s: %s", msg.Role, msg.Content)
	}
	return strings.Join(lines, "\n")
}

func insightsPrompt(groups []model.Group, history []model.ConversationMessage) string {
	return IntakeSystemPrompt(groups) + `

Based on this conversation, extract structured insights in JSON format:

` + TranscriptText(history) + `

Return ONLY the JSON object, no other text.`
}

func recommendationPrompt(profile *model.InsightProfile, groups []model.Group) string {
	// The profile sent to the model never includes earlier recommendations.
	stripped := *profile
	stripped.RecommendedGroups = nil
	insights, _ := json.MarshalIndent(stripped, "", "  ")

	summaries := make([]string, len(groups))
	for i, g := range groups {
		summaries[i] = fmt.Sprintf("%s: %s - %s", g.ID, g.Name, g.Description)
	}

	return `Based on these user insights, provide personalized recommendations for ALL available groups. Rate each group's relevance and explain why it might or might not fit:

User Insights:
` + string(insights) + `

Available Groups:
` + strings.Join(summaries, "\n") + `

Return JSON array with all groups:
[
  {
    "groupId": "group-id",
    "groupName": "Group Name",
    "relevanceScore": 1-10 (10 = best fit),
    "reasoning": "2-3 sentence explanation of why this group fits or doesn't fit"
  }
]`
}

func handoffPrompt(groupID string, participants []model.Participant, conversationSummary string) string {
	lines := make([]string, len(participants))
	for i, p := range participants {
		lines[i] = fmt.Sprintf("- %s: %s", p.Name, p.Summary())
	}

	return `Generate a therapist handoff summary for a group therapy session.

Group ID: ` + groupID + `

Participants:
` + strings.Join(lines, "\n") + `

Conversation Summary:
` + conversationSummary + `

Return JSON:
{
  "groupTheme": "main theme",
  "sharedGoals": ["goal1", "goal2"],
  "participantSummaries": [
    {
      "name": "participant name",
      "keyPoints": ["point1", "point2"]
    }
  ],
  "suggestedFocusAreas": ["area1", "area2"],
  "therapistNotes": "engagement suggestions"
}`
}
