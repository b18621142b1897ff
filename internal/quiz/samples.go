package quiz

// SampleTopic labels quizzes built from the sample bank.
const SampleTopic = "Ethical AI in Education"

// SampleQuestions returns the static fallback questions. Each call returns
// a fresh copy.
func SampleQuestions() []Question {
	return []Question{
		{
			Question: "What is the primary purpose of ethical AI in education?",
			Options: []string{
				"To replace human teachers",
				"To enhance learning while ensuring fairness and responsibility",
				"To automate all educational processes",
				"To reduce educational costs",
			},
			CorrectAnswer: 1,
		},
		{
			Question: "Which of these is NOT a best practice for using AI in learning?",
			Options: []string{
				"Verifying information from multiple sources",
				"Using AI to generate entire essays",
				"Using AI to understand complex concepts",
				"Using AI to practice problem-solving",
			},
			CorrectAnswer: 1,
		},
		{
			Question: "How should you approach AI-generated content?",
			Options: []string{
				"Accept it without question",
				"Use it as a starting point for further research",
				"Ignore it completely",
				"Copy it directly",
			},
			CorrectAnswer: 1,
		},
	}
}
