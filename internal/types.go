package internal

// OrderRecord is the canonical row shape produced by the sheet loader.
// Every field is the trimmed original cell; Email is additionally lowercased.
type OrderRecord struct {
	OrderID  string
	Email    string
	Customer string
	Status   string
	Eta      string
}

type MatchStatus string

const (
	MatchFound         MatchStatus = "FOUND"
	MatchNotFound      MatchStatus = "NOT_FOUND"
	MatchEmailMismatch MatchStatus = "EMAIL_MISMATCH"
)

// MatchResult distinguishes "no such order id" from "order exists but the
// e-mail doesn't match". Record is set only for MatchFound.
type MatchResult struct {
	Status MatchStatus
	Record *OrderRecord
}

type AskRequest struct {
	Question string `json:"question"`
	OrderID  string `json:"order_id"`
	Email    string `json:"email"`
}

type AskResponse struct {
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

type Outcome string

const (
	OutcomeNeedBoth      Outcome = "need_both"
	OutcomeNeedOrderID   Outcome = "need_order_id"
	OutcomeInvalidEmail  Outcome = "invalid_email"
	OutcomeNeedEmail     Outcome = "need_email"
	OutcomeLoadFailed    Outcome = "load_failed"
	OutcomeNotFound      Outcome = "not_found"
	OutcomeEmailMismatch Outcome = "email_mismatch"
	OutcomeAnswered      Outcome = "answered"
)

type InteractionRow struct {
	ID        string
	Question  string
	OrderID   string
	Email     string
	Outcome   string
	Reply     string
	CreatedAt string
}

type StatusCount struct {
	Status string
	Count  int
}

type ReportSummary struct {
	Date        string
	TotalOrders int
	DelayedPct  float64
	SLAMisses   int
	ByStatus    []StatusCount
}
