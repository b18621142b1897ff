package tips

import (
	"math/rand/v2"
	"strings"
)

// DefaultTip is returned when a tip cannot be generated.
const DefaultTip = "Remember to always verify information from AI sources."

// Tip is one piece of advice on using AI responsibly while studying.
type Tip struct {
	Title    string `json:"title,omitempty"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`

	// Generated is set when the content came from the model.
	Generated bool `json:"generated"`
}

var bank = []Tip{
	{Title: "Fact-Checking is Essential", Category: "accuracy",
		Content: "Always verify information from AI sources. AI can make mistakes, so it's important to double-check facts."},
	{Title: "Protect Your Privacy", Category: "privacy",
		Content: "Never share personal information with AI systems. Your data privacy is crucial."},
	{Title: "Understand AI Limitations", Category: "understanding",
		Content: "AI is a tool, not a replacement for human judgment. Use it to enhance your learning, not replace it."},
	{Title: "Bias Awareness", Category: "fairness",
		Content: "Be aware that AI systems may have biases. Always consider multiple perspectives."},
	{Title: "Ethical Use", Category: "ethics",
		Content: "Use AI responsibly and ethically. Don't use it to cheat or bypass learning."},
	{Title: "Critical Thinking", Category: "thinking",
		Content: "Develop your critical thinking skills. Don't blindly accept AI-generated content."},
	{Title: "Digital Wellbeing", Category: "wellbeing",
		Content: "Balance your use of AI with other learning methods. Don't become overly dependent on technology."},
	{Title: "Transparency", Category: "transparency",
		Content: "Be transparent about using AI in your learning process. Honesty is key to ethical AI use."},
	{Title: "Continuous Learning", Category: "education",
		Content: "Keep learning about AI ethics and responsible technology use. The field is constantly evolving."},
	{Title: "Community Impact", Category: "community",
		Content: "Consider how your use of AI affects others in your learning community."},
}

// Bank returns a copy of the static tip bank.
func Bank() []Tip {
	return append([]Tip(nil), bank...)
}

// Categories lists the bank's categories in bank order.
func Categories() []string {
	out := make([]string, len(bank))
	for i, t := range bank {
		out[i] = t.Category
	}
	return out
}

// Random picks a tip from the bank. A non-empty category restricts the
// pick to that category; an unknown category falls back to the whole bank.
func Random(category string) Tip {
	var pool []Tip
	if category != "" {
		for _, t := range bank {
			if strings.EqualFold(t.Category, category) {
				pool = append(pool, t)
			}
		}
	}
	if len(pool) == 0 {
		pool = bank
	}
	return pool[rand.IntN(len(pool))]
}
