package dto

// RecurringRunResponse reports the outcome of a recurring-transaction generation run.
type RecurringRunResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	GeneratedCount int    `json:"generatedCount"`
}

// EmailNoticeResponse carries the rendered due-date notice. Delivery is handled
// by an external mailer; this endpoint only prepares the content.
type EmailNoticeResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	UpcomingCount int    `json:"upcomingCount"`
	EmailContent  string `json:"emailContent"`
}
