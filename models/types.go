package models

import "time"

// Capability token roles. A token grants exactly one right on one poll.
const (
	RoleVote    = "vote"
	RoleResult  = "result"
	RoleDisable = "disable"
)

// Choice count limits per poll
const (
	MinChoices = 2
	MaxChoices = 5
)

// Request types

type CreatePollRequest struct {
	Title           string   `json:"title"`
	MultipleChoices bool     `json:"multiple_choices"`
	Choices         []string `json:"choices"`
	Guests          []string `json:"guests"`
}

type SubmitVoteRequest struct {
	ChoiceIDs []string `json:"choice_ids"`
}

// Response types

type CreatePollResponse struct {
	PollID     string `json:"poll_id"`
	VoteURL    string `json:"vote_url"`
	ResultURL  string `json:"result_url"`
	DisableURL string `json:"disable_url"`
}

type SubmitVoteResponse struct {
	ResultURL string `json:"result_url"`
	Message   string `json:"message"`
}

type BallotResponse struct {
	Poll         Poll     `json:"poll"`
	Choices      []Choice `json:"choices"`
	AlreadyVoted bool     `json:"already_voted"`
}

type ResultsResponse struct {
	Poll        Poll          `json:"poll"`
	Tallies     []ChoiceTally `json:"tallies"`
	TotalVoters int           `json:"total_voters"`
}

type PollSummary struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	MultipleChoices bool   `json:"multiple_choices"`
	IsActive        bool   `json:"is_active"`
	VoteURL         string `json:"vote_url"`
	ResultURL       string `json:"result_url"`
	DisableURL      string `json:"disable_url,omitempty"`
}

type UserPollsResponse struct {
	Created []PollSummary `json:"created"`
	Joined  []PollSummary `json:"joined"`
}

type GuestListResponse struct {
	PollID string  `json:"poll_id"`
	Guests []Guest `json:"guests"`
}

// Domain types

type Poll struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	OwnerID         string    `json:"owner_id"`
	MultipleChoices bool      `json:"multiple_choices"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`

	// Capability tokens are never serialized wholesale; handlers decide
	// which links a caller may see.
	VoteToken    string `json:"-"`
	ResultToken  string `json:"-"`
	DisableToken string `json:"-"`
}

type Choice struct {
	ID      string `json:"id"`
	PollID  string `json:"poll_id"`
	Label   string `json:"label"`
	Ordinal int    `json:"ordinal"`
}

type Guest struct {
	PollID    string    `json:"poll_id"`
	Email     string    `json:"email"`
	InvitedAt time.Time `json:"invited_at"`
}

type Vote struct {
	ID          string    `json:"id"`
	PollID      string    `json:"poll_id"`
	VoterEmail  string    `json:"-"` // Never expose in JSON
	ChoiceIDs   []string  `json:"choice_ids"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ChoiceTally is one row of a poll's rank-ordered result.
type ChoiceTally struct {
	Choice Choice `json:"choice"`
	Count  int    `json:"count"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
