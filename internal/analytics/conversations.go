package analytics

import (
	"sort"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
)

const UnknownUserLabel = "Desconocido"

// MessagesPerDay counts messages per calendar day, oldest day first.
func MessagesPerDay(msgs []*models.ConversationMessage) []GroupCount {
	g := NewGroupCounter("")
	for _, m := range msgs {
		g.AddN(m.Day(), 1)
	}
	out := g.Result()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// MessagesPerUser counts messages per user display name, falling back to
// the user id and then to UnknownUserLabel.
func MessagesPerUser(msgs []*models.ConversationMessage) []GroupCount {
	g := NewGroupCounter(UnknownUserLabel)
	for _, m := range msgs {
		switch {
		case m.UserName != nil && *m.UserName != "":
			g.Add(m.UserName)
		case m.UserID != nil && *m.UserID != "":
			g.Add(m.UserID)
		default:
			g.Add(nil)
		}
	}
	return g.Result()
}

// MessageTexts returns the non-empty message bodies.
func MessageTexts(msgs []*models.ConversationMessage) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m.Message != nil && *m.Message != "" {
			out = append(out, *m.Message)
		}
	}
	return out
}
