package report

// Summary aggregates timing and pace statistics over the answered questions.
// All numeric fields are 0 when no answers exist.
type Summary struct {
	AverageSeconds     float64  `json:"average_seconds"`
	MinSeconds         float64  `json:"min_seconds"`
	MaxSeconds         float64  `json:"max_seconds"`
	StdDevSeconds      float64  `json:"std_dev_seconds"`
	AverageWordsPerMin float64  `json:"average_words_per_min"`
	Pace               string   `json:"pace"`
	Lines              []string `json:"lines"`
}

// Answer is one answered question as it appears in the report, in the
// session's original question order.
type Answer struct {
	QuestionID     string  `json:"question_id"`
	QuestionText   string  `json:"question_text"`
	AnswerSeconds  float64 `json:"answer_seconds"`
	Transcript     string  `json:"transcript,omitempty"`
	WordCount      int     `json:"word_count"`
	WordsPerMinute float64 `json:"words_per_min"`
	Pace           string  `json:"pace"`
	Reliable       bool    `json:"reliable"`
	ModelAnswer    string  `json:"model_answer,omitempty"`
	Feedback       string  `json:"feedback,omitempty"`
}

// Report is the full session report returned to the client.
type Report struct {
	SessionID         string   `json:"session_id"`
	TotalQuestions    int      `json:"total_questions"`
	AnsweredQuestions int      `json:"answered_questions"`
	Summary           Summary  `json:"summary"`
	Answers           []Answer `json:"answers"`
}
