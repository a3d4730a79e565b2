package domain

// DueNotice is a rendered upcoming-due-date notice. The core only prepares the
// content; delivery belongs to an external mailer.
type DueNotice struct {
	WindowDays   int           `json:"windowDays"`
	Transactions []Transaction `json:"transactions"`
	HTML         string        `json:"html"`
}
