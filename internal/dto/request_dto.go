package dto

import "encoding/json"

// SubmitAnswerRequest carries one answer for a question in an attempt. The
// answer may arrive as a single string or a list; Values normalizes both to
// an ordered list so single- and multi-select grading share one path.
type SubmitAnswerRequest struct {
	QuestionID uint            `json:"question_id" binding:"required"`
	Answer     json.RawMessage `json:"answer" binding:"required"`
}

// Values returns the submitted answer as a list of strings, wrapping a
// scalar into a singleton list.
func (r SubmitAnswerRequest) Values() ([]string, error) {
	var many []string
	if err := json.Unmarshal(r.Answer, &many); err == nil {
		return many, nil
	}
	var one string
	if err := json.Unmarshal(r.Answer, &one); err != nil {
		return nil, err
	}
	return []string{one}, nil
}

// CreateQuestionRequest is the admin authoring payload.
type CreateQuestionRequest struct {
	QuizID      uint     `json:"quiz_id" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	Category    string   `json:"category"`
	Options     []string `json:"options" binding:"required,min=2"`
	Answer      []string `json:"answer" binding:"required,min=1"`
	QuestionFor string   `json:"question_for" binding:"required,oneof=free paid"`
}

// UpdateQuestionRequest mirrors CreateQuestionRequest minus the quiz binding;
// a question never moves between quizzes.
type UpdateQuestionRequest struct {
	Title    string   `json:"title" binding:"required"`
	Type     string   `json:"type" binding:"required"`
	Category string   `json:"category"`
	Options  []string `json:"options" binding:"required,min=2"`
	Answer   []string `json:"answer" binding:"required,min=1"`
}
