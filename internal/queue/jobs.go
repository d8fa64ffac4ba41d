package queue

import "time"

// Routing keys for notification jobs.
const (
	KeyWelcomeEmail       = "email.welcome"
	KeyPasswordResetEmail = "email.password_reset"
)

// EmailJob is the payload consumed by the external mailer.
type EmailJob struct {
	Template  string            `json:"template"`
	From      string            `json:"from"`
	To        string            `json:"to"`
	Subject   string            `json:"subject"`
	Data      map[string]string `json:"data"`
	CreatedAt time.Time         `json:"created_at"`
}
