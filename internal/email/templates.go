package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Built-in template names.
const (
	TemplateWelcome            = "welcome"
	TemplateInterviewInvite    = "interview_invite"
	TemplateInterviewReminder  = "interview_reminder"
	TemplateVerdictNotice      = "verdict_notice"
	TemplateImportJobCompleted = "import_completed"
)

var builtinTemplates = map[string]string{
	TemplateWelcome: `
<h2>Welcome to {{.CompanyName}}</h2>
<p>Hello {{.Name}},</p>
<p>Your account has been created. You can now sign in with your email address.</p>`,

	TemplateInterviewInvite: `
<h2>Interview scheduled</h2>
<p>Hello {{.CandidateName}},</p>
<p>Your interview (round {{.RoundNumber}}) for <b>{{.JobTitle}}</b> has been scheduled for {{.ScheduledAt}}.</p>`,

	TemplateInterviewReminder: `
<h2>Interview reminder</h2>
<p>Hello {{.CandidateName}},</p>
<p>This is a reminder: your interview (round {{.RoundNumber}}) starts at {{.ScheduledAt}}.</p>`,

	TemplateVerdictNotice: `
<h2>Application update</h2>
<p>Hello {{.CandidateName}},</p>
<p>A decision has been recorded for your application: <b>{{.Decision}}</b>.</p>`,

	TemplateImportJobCompleted: `
<h2>Candidate import finished</h2>
<p>File <b>{{.FileName}}</b>: {{.SuccessCount}} imported, {{.FailureCount}} failed out of {{.TotalRows}} rows.</p>`,
}

// TemplateRenderer renders the built-in HTML email templates.
type TemplateRenderer struct {
	templates map[string]*template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	r := &TemplateRenderer{templates: make(map[string]*template.Template)}
	for name, body := range builtinTemplates {
		// missingkey=error so a caller passing the wrong data keys fails
		// instead of silently mailing a body with blank fields.
		tmpl, err := template.New(name).Option("missingkey=error").Parse(body)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

// Render renders the named template with the data.
func (r *TemplateRenderer) Render(name string, data TemplateData) (string, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown email template: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
