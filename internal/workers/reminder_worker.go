package workers

import (
	"context"
	"time"

	"hireflow_backend/internal/email"
	"hireflow_backend/internal/logger"
	"hireflow_backend/internal/repositories"
)

// ReminderWorker periodically mails candidates about interviews scheduled
// within the lookahead window. Sent reminders are tracked in memory only;
// a restart may repeat a reminder, which is acceptable.
type ReminderWorker struct {
	interviewRepo repositories.InterviewRepository
	emailProvider email.Provider
	interval      time.Duration
	lookahead     time.Duration
	sent          map[string]bool
}

func NewReminderWorker(interviewRepo repositories.InterviewRepository, emailProvider email.Provider) *ReminderWorker {
	return &ReminderWorker{
		interviewRepo: interviewRepo,
		emailProvider: emailProvider,
		interval:      15 * time.Minute,
		lookahead:     24 * time.Hour,
		sent:          make(map[string]bool),
	}
}

// Start runs the reminder loop until ctx is cancelled.
func (w *ReminderWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		logger.WorkerLog("reminder", "started", "interval", w.interval.String())
		for {
			select {
			case <-ctx.Done():
				logger.WorkerLog("reminder", "stopped")
				return
			case <-ticker.C:
				w.tick()
			}
		}
	}()
}

func (w *ReminderWorker) tick() {
	now := time.Now()
	interviews, err := w.interviewRepo.FindScheduledBetween(now, now.Add(w.lookahead))
	if err != nil {
		logger.WithError(err).Error("reminder scan failed")
		return
	}

	for i := range interviews {
		interview := &interviews[i]
		if w.sent[interview.ID] || interview.Candidate == nil {
			continue
		}

		err := w.emailProvider.SendTemplate(
			[]string{interview.Candidate.Email},
			"Interview reminder",
			email.TemplateInterviewReminder,
			email.TemplateData{
				"CandidateName": interview.Candidate.Name,
				"ScheduledAt":   interview.ScheduledAt.Format(time.RFC1123),
				"RoundNumber":   interview.RoundNumber,
			},
		)
		if err != nil {
			logger.WithError(err).Warn("reminder email failed", "interview_id", interview.ID)
			continue
		}
		w.sent[interview.ID] = true
	}
}
