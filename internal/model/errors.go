package model

import "errors"

var (
	// ErrQuizNotFound indicates the requested quiz does not exist or is inactive.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrAttemptNotFound indicates the attempt id does not resolve.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrQuestionNotFound indicates the question id does not resolve.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrForbidden is returned when a caller touches an attempt they do not own.
	ErrForbidden = errors.New("attempt belongs to another user")
	// ErrAttemptNotActive is returned for mutations on a COMPLETED or EXPIRED attempt.
	ErrAttemptNotActive = errors.New("attempt is not in progress")
	// ErrAttemptExpired is returned when the attempt deadline has passed.
	ErrAttemptExpired = errors.New("attempt has expired")
	// ErrAlreadyCompleted is returned when completing an attempt twice.
	ErrAlreadyCompleted = errors.New("attempt already completed")
	// ErrInsufficientQuestions means the quiz has fewer unseen active questions
	// than an attempt needs.
	ErrInsufficientQuestions = errors.New("not enough unseen questions for a new attempt")
	// ErrQuestionNotInAttempt means the submitted question was never reserved
	// for this attempt.
	ErrQuestionNotInAttempt = errors.New("question is not part of this attempt")
	// ErrQuizNotPurchased means the entitlement check refused the start.
	ErrQuizNotPurchased = errors.New("quiz not purchased")
)
