package domain

import "encoding/json"

type PRState string

const (
	StateOpen   PRState = "open"
	StateClosed PRState = "closed"
)

// PullRequestEvent identifies the pull request a webhook delivery is about.
// Number is zero when the delivery carried none.
type PullRequestEvent struct {
	Number     int    `json:"number"`
	Owner      string `json:"repository_owner"`
	Repo       string `json:"repository_name"`
	DeliveryID string `json:"delivery_id,omitempty"`
}

type PullRequestSnapshot struct {
	HeadBranch string  `json:"head_branch"`
	Body       string  `json:"body"`
	Merged     bool    `json:"merged"`
	State      PRState `json:"state"`
}

// Notification is the payload embedded in the body of an automation pull request.
type Notification struct {
	Parameters json.RawMessage `json:"parameters"`
	ConfigPath string          `json:"configPath"`
	Fields     map[string]any  `json:"fields"`
	Options    map[string]any  `json:"options"`
}

type OutcomeStatus string

const (
	OutcomeNotApplicable OutcomeStatus = "not_applicable"
	OutcomeCompleted     OutcomeStatus = "completed"
)

type Outcome struct {
	Status         OutcomeStatus `json:"status"`
	MergeProcessed bool          `json:"merge_processed"`
	BranchDeleted  bool          `json:"branch_deleted"`
}

func NotApplicable() Outcome { return Outcome{Status: OutcomeNotApplicable} }
