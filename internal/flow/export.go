package flow

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mentra/group-booking/internal/model"
)

// ExportFileName is the download name for a handoff export, e.g.
// mentra-handoff-g1-1700000000000.json.
func ExportFileName(groupID string, at time.Time, ext string) string {
	return fmt.Sprintf("mentra-handoff-%s-%d.%s", groupID, at.UnixMilli(), ext)
}

// HandoffJSON renders the handoff response as indented JSON.
func HandoffJSON(h *model.HandoffResponse) ([]byte, error) {
	return json.MarshalIndent(h, "", "  ")
}

// HandoffText renders the plain-text therapist report.
func HandoffText(h *model.HandoffResponse, generated time.Time) string {
	var b strings.Builder
	summary := h.Handoff
	if summary == nil {
		summary = &model.HandoffSummary{}
	}

	section := func(title string) {
		fmt.Fprintf(&b, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
	}
	numbered := func(items []string) {
		for i, item := range items {
			fmt.Fprintf(&b, "%d. %s\n", i+1, item)
		}
	}

	b.WriteString("MENTRA THERAPIST HANDOFF REPORT\n")
	b.WriteString("================================\n")
	fmt.Fprintf(&b, "Generated: %s\n", generated.UTC().Format(time.RFC3339))

	section("GROUP THEME")
	b.WriteString(summary.GroupTheme + "\n")

	section("SHARED GOALS")
	numbered(summary.SharedGoals)

	section("PARTICIPANT SUMMARIES")
	for i, p := range h.Participants {
		fmt.Fprintf(&b, "\nParticipant %d: %s\n", i+1, p.Name)
		if len(p.KeyPoints) > 0 {
			for _, kp := range p.KeyPoints {
				fmt.Fprintf(&b, "- %s\n", kp)
			}
		} else {
			fmt.Fprintf(&b, "- %s\n", p.Concern)
		}
	}

	section("SUGGESTED FOCUS AREAS")
	numbered(summary.SuggestedFocusAreas)

	section("THERAPIST ENGAGEMENT NOTES")
	b.WriteString(summary.TherapistNotes + "\n")

	b.WriteString("\n---\nThis is a demo report for educational purposes only.\n")
	return b.String()
}
