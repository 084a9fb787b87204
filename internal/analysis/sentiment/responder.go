package sentiment

import "strings"

// Label is the sentiment attached to a chat reply.
type Label string

const (
	Stress    Label = "stress"
	Sadness   Label = "sadness"
	Happiness Label = "happiness"
	Neutral   Label = "neutral"
)

// Response is the canned reply selected for one user message.
type Response struct {
	Text        string   `json:"text"`
	Sentiment   Label    `json:"sentiment"`
	Suggestions []string `json:"suggestions"`
}

// Rule binds a keyword group to the canned response it selects.
// A rule with no keywords always matches.
type Rule struct {
	Keywords []string
	Response Response
}

func (r Rule) matches(normalized string) bool {
	if len(r.Keywords) == 0 {
		return true
	}
	for _, word := range r.Keywords {
		if strings.Contains(normalized, word) {
			return true
		}
	}
	return false
}

// rules is evaluated top to bottom; the last entry is the catch-all.
var rules = []Rule{
	{
		Keywords: []string{"stress", "anxious"},
		Response: Response{
			Text:        "I'm sorry to hear you're feeling stressed. Would you like to try a quick breathing exercise to help you relax?",
			Sentiment:   Stress,
			Suggestions: []string{"Try breathing exercise", "Show meditation"},
		},
	},
	{
		Keywords: []string{"sad", "down"},
		Response: Response{
			Text:        "I understand feeling down can be difficult. Would you like to talk more about what's bothering you, or perhaps try a mood-lifting meditation?",
			Sentiment:   Sadness,
			Suggestions: []string{"Talk more", "Mood-lifting meditation"},
		},
	},
	{
		Keywords: []string{"happy", "good"},
		Response: Response{
			Text:        "I'm glad to hear you're feeling good! It's wonderful to experience positive emotions. Would you like to build on this feeling with a gratitude meditation?",
			Sentiment:   Happiness,
			Suggestions: []string{"Gratitude meditation", "Journal this feeling"},
		},
	},
	{
		Response: Response{
			Text:        "Thank you for sharing. How else can I support you today?",
			Sentiment:   Neutral,
			Suggestions: []string{"Explore meditations", "Track your mood"},
		},
	},
}

// Classify picks the reply for message by keyword priority. The first matching
// rule wins and messages matching nothing get the neutral reply.
func Classify(message string) Response {
	normalized := strings.ToLower(message)
	for _, rule := range rules {
		if rule.matches(normalized) {
			return rule.Response.clone()
		}
	}
	// unreachable while the table ends with a catch-all
	return rules[len(rules)-1].Response.clone()
}

// Rules returns a copy of the priority table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, rule := range rules {
		out[i] = Rule{
			Keywords: append([]string(nil), rule.Keywords...),
			Response: rule.Response.clone(),
		}
	}
	return out
}

func (r Response) clone() Response {
	r.Suggestions = append([]string(nil), r.Suggestions...)
	return r
}
