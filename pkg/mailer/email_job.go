package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// A job either names a Template with its Data, or carries a raw Subject with
// Text and/or HTML bodies.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // welcome, auction_won, auction_settled, commission_proof_status
	Data     map[string]any `json:"data,omitempty"`
}
