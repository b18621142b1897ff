package studyplan

import "fmt"

// Apology is shown in place of a plan when generation fails.
const Apology = "Sorry, there was an error generating your study plan. Please try again later."

// BuildPrompt returns the study plan prompt for subject.
func BuildPrompt(subject string, style LearningStyle, level SkillLevel) string {
	return fmt.Sprintf(`Create a detailed study plan for %s at the %s level.
The user prefers %s learning style.

Include:
1. A brief introduction to the subject
2. Key concepts to focus on
3. Recommended study resources
4. Practice exercises or activities
5. A suggested timeline

Format the response in a clear, structured way with headings and bullet points.
Keep the tone encouraging and supportive.
Focus on ethical learning practices and critical thinking.`, subject, level, style)
}
