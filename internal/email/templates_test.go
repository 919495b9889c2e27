package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	r, err := NewTemplateRenderer()
	require.NoError(t, err)
	return r
}

func TestRender_Welcome(t *testing.T) {
	r := newRenderer(t)

	body, err := r.Render(TemplateWelcome, TemplateData{
		"CompanyName": "Acme Recruiting",
		"Name":        "Dana",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Acme Recruiting")
	assert.Contains(t, body, "Hello Dana")
}

func TestRender_InterviewInvite(t *testing.T) {
	r := newRenderer(t)

	body, err := r.Render(TemplateInterviewInvite, TemplateData{
		"CandidateName": "Jon Snow",
		"RoundNumber":   2,
		"JobTitle":      "Backend Engineer",
		"ScheduledAt":   "2026-09-01 14:00",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Jon Snow")
	assert.Contains(t, body, "round 2")
	assert.Contains(t, body, "Backend Engineer")
	assert.Contains(t, body, "2026-09-01 14:00")
}

func TestRender_InterviewReminder(t *testing.T) {
	r := newRenderer(t)

	body, err := r.Render(TemplateInterviewReminder, TemplateData{
		"CandidateName": "Arya",
		"RoundNumber":   1,
		"ScheduledAt":   "2026-09-02 10:30",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "reminder")
	assert.Contains(t, body, "2026-09-02 10:30")
}

func TestRender_VerdictNotice(t *testing.T) {
	r := newRenderer(t)

	body, err := r.Render(TemplateVerdictNotice, TemplateData{
		"CandidateName": "Sam",
		"Decision":      "hired",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Sam")
	assert.Contains(t, body, "hired")
}

func TestRender_ImportCompleted(t *testing.T) {
	r := newRenderer(t)

	body, err := r.Render(TemplateImportJobCompleted, TemplateData{
		"FileName":     "batch.xlsx",
		"SuccessCount": 18,
		"FailureCount": 2,
		"TotalRows":    20,
	})
	require.NoError(t, err)
	assert.Contains(t, body, "batch.xlsx")
	assert.Contains(t, body, "18 imported")
	assert.Contains(t, body, "2 failed")
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := newRenderer(t)

	_, err := r.Render("no_such_template", TemplateData{})
	assert.Error(t, err)
}

// TestRender_NotificationPayloads feeds each template the exact data shape
// the services and workers build, so a key drift on either side fails here.
func TestRender_NotificationPayloads(t *testing.T) {
	r := newRenderer(t)

	cases := []struct {
		template string
		data     TemplateData
		want     []string
	}{
		{
			// pipeline service: ScheduleInterview
			template: TemplateInterviewInvite,
			data: TemplateData{
				"CandidateName": "Jamie",
				"ScheduledAt":   "Mon, 07 Sep 2026 10:00:00 UTC",
				"RoundNumber":   1,
				"JobTitle":      "Backend Engineer",
			},
			want: []string{"Jamie", "round 1", "Backend Engineer", "07 Sep 2026"},
		},
		{
			// reminder worker tick
			template: TemplateInterviewReminder,
			data: TemplateData{
				"CandidateName": "Jamie",
				"ScheduledAt":   "Mon, 07 Sep 2026 10:00:00 UTC",
				"RoundNumber":   2,
			},
			want: []string{"Jamie", "round 2", "07 Sep 2026"},
		},
		{
			// pipeline service: SubmitVerdict
			template: TemplateVerdictNotice,
			data: TemplateData{
				"CandidateName": "Jamie",
				"Decision":      "hire",
			},
			want: []string{"Jamie", "hire"},
		},
		{
			// auth service: Register
			template: TemplateWelcome,
			data: TemplateData{
				"Name":        "Jamie",
				"CompanyName": "Acme Recruiting",
			},
			want: []string{"Jamie", "Acme Recruiting"},
		},
		{
			// import service: notifyCreator
			template: TemplateImportJobCompleted,
			data: TemplateData{
				"FileName":     "batch.xlsx",
				"TotalRows":    10,
				"SuccessCount": 9,
				"FailureCount": 1,
			},
			want: []string{"batch.xlsx", "9 imported", "1 failed", "10 rows"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.template, func(t *testing.T) {
			body, err := r.Render(tc.template, tc.data)
			require.NoError(t, err)
			for _, want := range tc.want {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestRender_MissingKeyFails(t *testing.T) {
	r := newRenderer(t)

	// Wrong key names must error, not mail a body with blank fields.
	_, err := r.Render(TemplateInterviewInvite, TemplateData{
		"Name":        "Jamie",
		"Round":       1,
		"ScheduledAt": "tomorrow",
	})
	assert.Error(t, err)
}

func TestRender_EscapesHTML(t *testing.T) {
	r := newRenderer(t)

	body, err := r.Render(TemplateWelcome, TemplateData{
		"CompanyName": "Acme",
		"Name":        "<script>alert(1)</script>",
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}
