package email

// Provider is the outgoing email interface used by services and workers.
type Provider interface {
	// Send sends a plain email message.
	Send(email *Email) error

	// SendTemplate renders a named template and sends the result.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases the provider's resources.
	Close() error
}
