package email

// Mailer delivers transactional email. Implementations must return an error
// on failed delivery so callers can surface it instead of dropping the mail.
type Mailer interface {
	SendPlain(to []string, subject, body string) error
	SendHTML(to []string, subject, tmplName string, data map[string]string) error
}
