package mailer

import "embed"

const (
	FromName = "Nexora"

	ReviewSubmittedTemplate = "review_submitted.tmpl"
	ReviewApprovedTemplate  = "review_approved.tmpl"
	ReviewRejectedTemplate  = "review_rejected.tmpl"
	ReviewReportedTemplate  = "review_reported.tmpl"
)

//go:embed "templates"
var FS embed.FS

// Client sends a templated email. Implementations render the named template
// from the embedded FS with the given data.
type Client interface {
	Send(templateFile, email string, data any) error
}
