package domain

import "time"

// VoteDirection is the direction of a vote on a question.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// Question is a community board post.
type Question struct {
	QuestionID string    `json:"questionID"`
	DeviceID   string    `json:"deviceID"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Upvotes    int       `json:"upvotes"`
	Downvotes  int       `json:"downvotes"`
	// AnswerCount is folded in by list queries that don't load the answers
	// themselves.
	AnswerCount int `json:"answerCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// MyVote is the requesting device's vote direction, empty when it has
	// not voted. Populated only on reads that know the caller.
	MyVote VoteDirection `json:"myVote,omitempty"`

	Answers []Answer `json:"answers,omitempty"`
}

// Answer is a reply to a question.
type Answer struct {
	AnswerID   string    `json:"answerID"`
	QuestionID string    `json:"questionID"`
	DeviceID   string    `json:"deviceID"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Vote records that a device voted on a question. One row per device per
// question; voting again in the same direction removes the vote.
type Vote struct {
	QuestionID string        `json:"questionID"`
	DeviceID   string        `json:"deviceID"`
	Direction  VoteDirection `json:"direction"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// BoardEventKind classifies a change on the question board for the realtime stream.
type BoardEventKind string

const (
	EventQuestionPosted  BoardEventKind = "question_posted"
	EventQuestionDeleted BoardEventKind = "question_deleted"
	EventAnswerPosted    BoardEventKind = "answer_posted"
	EventVoteChanged     BoardEventKind = "vote_changed"
)

// BoardEvent is one entry on the question-board change stream.
type BoardEvent struct {
	Kind       BoardEventKind `json:"kind"`
	QuestionID string         `json:"questionID"`
	OccurredAt time.Time      `json:"occurredAt"`
}
