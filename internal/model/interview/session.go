package interview

import "time"

// Session captures one end-to-end mock interview attempt. All state lives in
// process memory and is lost on restart.
type Session struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	JobID     string    `json:"jobId"`
	CreatedAt time.Time `json:"createdAt"`

	// Generation context, immutable after creation.
	ResumeText    string `json:"-"`
	SelfIntroText string `json:"-"`
	JDText        string `json:"-"`

	Delivery Delivery `json:"delivery"`

	// Questions is fixed at creation; order is significant.
	Questions []Question `json:"questions"`

	// CurrentIndex points at the next question to dispense.
	CurrentIndex int `json:"currentIndex"`

	// Answers maps question id to at most one record.
	Answers map[string]*AnswerRecord `json:"answers"`

	// SummaryLines memoizes the generated session summary, write-once.
	SummaryLines []string `json:"summaryLines,omitempty"`

	Ended bool `json:"ended"`
}

// Delivery holds the spoken-presentation settings consumed by the speech
// collaborator. The style tag selects an interviewer persona preset.
type Delivery struct {
	Voice        string  `json:"voice,omitempty"`
	Style        string  `json:"style,omitempty"`
	Instructions string  `json:"instructions,omitempty"`
	Speed        float64 `json:"speed,omitempty"`
}

// Question is the fixed record shape questions have once they enter the core.
type Question struct {
	ID               string `json:"question_id"`
	Text             string `json:"text"`
	TimeLimitSeconds int    `json:"time_limit_seconds"`
}

// AnswerRecord stores the result of one answered question. Duration,
// transcript and the derived metrics are set once at submission; ModelAnswer
// and Feedback are filled lazily by the report pipeline.
type AnswerRecord struct {
	QuestionID     string  `json:"question_id"`
	AnswerSeconds  float64 `json:"answer_seconds"`
	Transcript     string  `json:"transcript,omitempty"`
	WordCount      int     `json:"word_count"`
	WordsPerMinute float64 `json:"words_per_min"`
	ModelAnswer    string  `json:"model_answer,omitempty"`
	Feedback       string  `json:"feedback,omitempty"`
}
