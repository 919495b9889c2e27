package services

import (
	"time"

	"gorm.io/gorm"

	"hireflow_backend/internal/email"
	"hireflow_backend/internal/logger"
	"hireflow_backend/internal/models"
	"hireflow_backend/internal/repositories"
	"hireflow_backend/internal/services/dto"
	"hireflow_backend/pkg/apperrors"
)

// PipelineService owns the candidate state machine. Every mutation runs in
// one transaction spanning the interview, candidate, verdict and audit
// tables, so a crash never leaves a candidate status disagreeing with its
// interview history.
type PipelineService interface {
	ScheduleInterview(companyID, actorID string, req *dto.ScheduleInterviewRequest) (*dto.InterviewResponse, error)
	CancelInterview(companyID, actorID, interviewID string) (*dto.InterviewResponse, error)
	CompleteInterview(companyID, interviewID string, req *dto.AIResultRequest) (*dto.CompleteInterviewResponse, error)
	SubmitVerdict(companyID, reviewerID, interviewID string, req *dto.SubmitVerdictRequest) (*dto.VerdictResponse, error)

	GetInterview(companyID, interviewID string) (*dto.InterviewResponse, error)
	ListInterviews(companyID, candidateID string) ([]*dto.InterviewResponse, error)
	GetReport(companyID, interviewID string) (*dto.AIReportResponse, error)

	ReconcileStatuses(companyID string, actorID *string) (*dto.ReconcileResponse, error)
}

type PipelineServiceImpl struct {
	db            *gorm.DB
	candidateRepo repositories.CandidateRepository
	interviewRepo repositories.InterviewRepository
	companyRepo   repositories.CompanyRepository
	auditRepo     repositories.AuditRepository
	emailProvider email.Provider
}

func NewPipelineService(
	db *gorm.DB,
	candidateRepo repositories.CandidateRepository,
	interviewRepo repositories.InterviewRepository,
	companyRepo repositories.CompanyRepository,
	auditRepo repositories.AuditRepository,
	emailProvider email.Provider,
) PipelineService {
	return &PipelineServiceImpl{
		db:            db,
		candidateRepo: candidateRepo,
		interviewRepo: interviewRepo,
		companyRepo:   companyRepo,
		auditRepo:     auditRepo,
		emailProvider: emailProvider,
	}
}

// ResolveAIOutcome maps an AI evaluation to the candidate status. The rule
// is deterministic for a fixed config:
//
//  1. A set auto_reject_below bar beats everything: an overall score under
//     it means auto_rejected regardless of the recommendation.
//  2. HIRE resolves to ai_passed, REJECT to ai_rejected, anything else to
//     ai_review. A HIRE whose scores fall short of min_passing_score or
//     min_ats_score is downgraded to ai_review.
//  3. With require_employee_review on, ai_passed and ai_rejected are held
//     at ai_review until a human verdict lands; held reports that.
func ResolveAIOutcome(rec models.AIRecommendation, overallScore, atsScore float64, cfg *models.CompanyAIConfig) (outcome models.CandidateStatus, held bool) {
	if cfg.AutoRejectBelow != nil && overallScore < *cfg.AutoRejectBelow {
		return models.CandidateStatusAutoRejected, false
	}

	switch rec {
	case models.AIRecommendationHire:
		outcome = models.CandidateStatusAIPassed
		if overallScore < cfg.MinPassingScore || atsScore < cfg.MinATSScore {
			outcome = models.CandidateStatusAIReview
		}
	case models.AIRecommendationReject:
		outcome = models.CandidateStatusAIRejected
	default:
		outcome = models.CandidateStatusAIReview
	}

	if cfg.RequireEmployeeReview && outcome != models.CandidateStatusAIReview {
		return models.CandidateStatusAIReview, true
	}
	return outcome, false
}

// ScheduleInterview creates the next round for the candidate and moves them
// to interview_scheduled.
func (s *PipelineServiceImpl) ScheduleInterview(companyID, actorID string, req *dto.ScheduleInterviewRequest) (*dto.InterviewResponse, error) {
	candidate, err := s.findCandidate(companyID, req.CandidateID)
	if err != nil {
		return nil, err
	}

	if candidate.Status.IsTerminal() {
		return nil, apperrors.ErrTerminalStatus
	}
	if !models.CanTransition(candidate.Status, models.CandidateStatusInterviewScheduled) {
		return nil, apperrors.ErrInvalidStatus("pipeline",
			"cannot schedule an interview from status "+string(candidate.Status))
	}

	var interview *models.Interview
	err = s.db.Transaction(func(tx *gorm.DB) error {
		interviewTx := s.interviewRepo.WithTx(tx)
		candidateTx := s.candidateRepo.WithTx(tx)
		auditTx := s.auditRepo.WithTx(tx)

		round, err := interviewTx.NextRoundNumber(candidate.ID)
		if err != nil {
			return err
		}

		interview = &models.Interview{
			CompanyID:     companyID,
			CandidateID:   candidate.ID,
			RoundNumber:   round,
			InterviewerID: req.InterviewerID,
			ScheduledAt:   req.ScheduledAt,
			Status:        models.InterviewStatusScheduled,
		}
		if err := interviewTx.Create(interview); err != nil {
			return err
		}

		if err := s.moveCandidate(candidateTx, auditTx, candidate, models.CandidateStatusInterviewScheduled, &actorID, "interview scheduled"); err != nil {
			return err
		}

		return auditTx.AppendAction(companyID, &actorID, models.AuditInterviewScheduled,
			"interview", interview.ID, map[string]interface{}{
				"candidate_id": candidate.ID,
				"round":        round,
				"scheduled_at": req.ScheduledAt,
			})
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	jobTitle := "the position"
	if candidate.JobTemplate != nil {
		jobTitle = candidate.JobTemplate.Title
	}
	s.notify(candidate.Email, "Interview scheduled", email.TemplateInterviewInvite, email.TemplateData{
		"CandidateName": candidate.Name,
		"ScheduledAt":   req.ScheduledAt.Format(time.RFC1123),
		"RoundNumber":   interview.RoundNumber,
		"JobTitle":      jobTitle,
	})

	return buildInterviewResponse(interview), nil
}

// CancelInterview cancels a scheduled round. When it was the round that put
// the candidate into interview_scheduled, the candidate falls back to
// assigned or uploaded.
func (s *PipelineServiceImpl) CancelInterview(companyID, actorID, interviewID string) (*dto.InterviewResponse, error) {
	interview, err := s.findInterview(companyID, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Status != models.InterviewStatusScheduled {
		return nil, apperrors.ErrInvalidStatus("pipeline",
			"only scheduled interviews can be cancelled")
	}

	candidate, err := s.findCandidate(companyID, interview.CandidateID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		interviewTx := s.interviewRepo.WithTx(tx)
		candidateTx := s.candidateRepo.WithTx(tx)
		auditTx := s.auditRepo.WithTx(tx)

		if err := interviewTx.UpdateStatus(interview.ID, models.InterviewStatusCancelled); err != nil {
			return err
		}

		if candidate.Status == models.CandidateStatusInterviewScheduled {
			fallback := models.CandidateStatusUploaded
			if candidate.AssignedEmployeeID != nil {
				fallback = models.CandidateStatusAssigned
			}
			if err := s.moveCandidate(candidateTx, auditTx, candidate, fallback, &actorID, "interview cancelled"); err != nil {
				return err
			}
		}

		return auditTx.AppendAction(companyID, &actorID, models.AuditInterviewCancelled,
			"interview", interview.ID, map[string]interface{}{
				"candidate_id": candidate.ID,
				"round":        interview.RoundNumber,
			})
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	interview.Status = models.InterviewStatusCancelled
	return buildInterviewResponse(interview), nil
}

// CompleteInterview records the AI evaluation for a round and advances the
// candidate per the decision rule. One transaction covers the interview
// update, the stored report, the candidate status and the audit trail.
func (s *PipelineServiceImpl) CompleteInterview(companyID, interviewID string, req *dto.AIResultRequest) (*dto.CompleteInterviewResponse, error) {
	interview, err := s.findInterview(companyID, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Status == models.InterviewStatusCompleted || interview.Status == models.InterviewStatusCancelled {
		return nil, apperrors.ErrInvalidStatus("pipeline",
			"interview is already "+string(interview.Status))
	}

	candidate, err := s.findCandidate(companyID, interview.CandidateID)
	if err != nil {
		return nil, err
	}
	if candidate.Status.IsTerminal() {
		return nil, apperrors.ErrTerminalStatus
	}

	cfg := s.aiConfigOrDefaults(companyID)

	overall := (req.BehaviorScore + req.ConfidenceScore + req.AnswerScore + req.ATSScore) / 4
	outcome, held := ResolveAIOutcome(req.Recommendation, overall, req.ATSScore, cfg)

	if !models.CanTransition(candidate.Status, outcome) {
		return nil, apperrors.ErrInvalidStatus("pipeline",
			"candidate in status "+string(candidate.Status)+" cannot move to "+string(outcome))
	}

	now := time.Now()
	rec := req.Recommendation
	err = s.db.Transaction(func(tx *gorm.DB) error {
		interviewTx := s.interviewRepo.WithTx(tx)
		candidateTx := s.candidateRepo.WithTx(tx)
		auditTx := s.auditRepo.WithTx(tx)

		interview.BehaviorScore = &req.BehaviorScore
		interview.ConfidenceScore = &req.ConfidenceScore
		interview.AnswerScore = &req.AnswerScore
		interview.ATSScore = &req.ATSScore
		interview.OverallScore = &overall
		interview.AIRecommendation = &rec
		interview.AIFeedback = req.Feedback
		interview.CompletedAt = &now
		interview.Status = models.InterviewStatusCompleted
		if err := interviewTx.Update(interview); err != nil {
			return err
		}

		if req.RawReport != nil {
			report := &models.AIReport{
				CompanyID:   companyID,
				InterviewID: interview.ID,
				Payload:     toJSON(req.RawReport),
				ModelName:   req.ModelName,
			}
			if err := interviewTx.CreateReport(report); err != nil {
				return err
			}
		}

		if err := s.moveCandidate(candidateTx, auditTx, candidate, outcome, nil, "ai evaluation"); err != nil {
			return err
		}

		return auditTx.AppendAction(companyID, nil, models.AuditInterviewCompleted,
			"interview", interview.ID, map[string]interface{}{
				"candidate_id":    candidate.ID,
				"round":           interview.RoundNumber,
				"overall_score":   overall,
				"recommendation":  string(rec),
				"outcome":         string(outcome),
				"held_for_review": held,
			})
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CompleteInterviewResponse{
		Interview:       buildInterviewResponse(interview),
		CandidateStatus: outcome,
		HeldForReview:   held,
	}, nil
}

// SubmitVerdict records the reviewer's decision on a completed round and
// finalizes the candidate. A verdict is the only move that can pull a
// candidate out of a terminal status.
func (s *PipelineServiceImpl) SubmitVerdict(companyID, reviewerID, interviewID string, req *dto.SubmitVerdictRequest) (*dto.VerdictResponse, error) {
	interview, err := s.findInterview(companyID, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Status != models.InterviewStatusCompleted {
		return nil, apperrors.ErrInvalidStatus("pipeline",
			"verdicts apply to completed interviews only")
	}
	if _, err := s.interviewRepo.FindVerdictByInterview(interview.ID); err == nil {
		return nil, apperrors.ErrVerdictAlreadySubmitted
	}

	candidate, err := s.findCandidate(companyID, interview.CandidateID)
	if err != nil {
		return nil, err
	}

	final := models.CandidateStatusRejected
	if req.Decision == models.VerdictDecisionHire {
		final = models.CandidateStatusHired
	}

	// The verdict overrides when it contradicts what the AI recommended.
	isOverride := false
	if interview.AIRecommendation != nil {
		switch *interview.AIRecommendation {
		case models.AIRecommendationHire:
			isOverride = req.Decision == models.VerdictDecisionReject
		case models.AIRecommendationReject:
			isOverride = req.Decision == models.VerdictDecisionHire
		}
	}

	verdict := &models.HumanVerdict{
		CompanyID:   companyID,
		InterviewID: interview.ID,
		ReviewerID:  reviewerID,
		Decision:    req.Decision,
		Comment:     req.Comment,
		IsOverride:  isOverride,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		interviewTx := s.interviewRepo.WithTx(tx)
		candidateTx := s.candidateRepo.WithTx(tx)
		auditTx := s.auditRepo.WithTx(tx)

		if err := interviewTx.CreateVerdict(verdict); err != nil {
			return err
		}

		if err := candidateTx.UpdateStatus(candidate.ID, final); err != nil {
			return err
		}
		logger.PipelineLog(candidate.ID, string(candidate.Status), string(final), "human verdict")

		return auditTx.AppendAction(companyID, &reviewerID, models.AuditVerdictSubmitted,
			"human_verdict", verdict.ID, map[string]interface{}{
				"interview_id": interview.ID,
				"candidate_id": candidate.ID,
				"decision":     string(req.Decision),
				"is_override":  isOverride,
				"from_status":  string(candidate.Status),
				"to_status":    string(final),
			})
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrVerdictExists) {
			return nil, apperrors.ErrVerdictAlreadySubmitted
		}
		return nil, apperrors.InternalError(err)
	}

	s.notify(candidate.Email, "Your application status", email.TemplateVerdictNotice, email.TemplateData{
		"CandidateName": candidate.Name,
		"Decision":      string(req.Decision),
	})

	return buildVerdictResponse(verdict), nil
}

func (s *PipelineServiceImpl) GetInterview(companyID, interviewID string) (*dto.InterviewResponse, error) {
	interview, err := s.findInterview(companyID, interviewID)
	if err != nil {
		return nil, err
	}
	return buildInterviewResponse(interview), nil
}

func (s *PipelineServiceImpl) ListInterviews(companyID, candidateID string) ([]*dto.InterviewResponse, error) {
	if _, err := s.findCandidate(companyID, candidateID); err != nil {
		return nil, err
	}
	interviews, err := s.interviewRepo.FindByCandidate(candidateID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	responses := make([]*dto.InterviewResponse, 0, len(interviews))
	for i := range interviews {
		responses = append(responses, buildInterviewResponse(&interviews[i]))
	}
	return responses, nil
}

func (s *PipelineServiceImpl) GetReport(companyID, interviewID string) (*dto.AIReportResponse, error) {
	if _, err := s.findInterview(companyID, interviewID); err != nil {
		return nil, err
	}
	report, err := s.interviewRepo.FindReportByInterview(interviewID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrReportNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	var payload map[string]interface{}
	fromJSON(report.Payload, &payload)
	return &dto.AIReportResponse{
		ID:          report.ID,
		InterviewID: report.InterviewID,
		ModelName:   report.ModelName,
		Payload:     payload,
		CreatedAt:   report.CreatedAt,
	}, nil
}

// ReconcileStatuses scans the company's candidates and repairs any whose
// status disagrees with their latest interview and verdict. Terminal
// candidates are left alone unless a verdict dictates the expected status.
func (s *PipelineServiceImpl) ReconcileStatuses(companyID string, actorID *string) (*dto.ReconcileResponse, error) {
	candidates, err := s.candidateRepo.FindByCompany(companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	cfg := s.aiConfigOrDefaults(companyID)
	resp := &dto.ReconcileResponse{CompanyID: companyID, Scanned: len(candidates)}

	for i := range candidates {
		candidate := &candidates[i]

		expected, reason, fromVerdict, err := s.expectedStatus(candidate, cfg)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if expected == candidate.Status {
			continue
		}
		if candidate.Status.IsTerminal() && !fromVerdict {
			continue
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			candidateTx := s.candidateRepo.WithTx(tx)
			auditTx := s.auditRepo.WithTx(tx)

			if err := candidateTx.UpdateStatus(candidate.ID, expected); err != nil {
				return err
			}
			return auditTx.AppendAction(companyID, actorID, models.AuditStatusReconciled,
				"candidate", candidate.ID, map[string]interface{}{
					"from":   string(candidate.Status),
					"to":     string(expected),
					"reason": reason,
				})
		})
		if err != nil {
			return nil, apperrors.InternalError(err)
		}

		logger.PipelineLog(candidate.ID, string(candidate.Status), string(expected), "reconcile: "+reason)
		resp.Repaired = append(resp.Repaired, dto.ReconcileResult{
			CandidateID: candidate.ID,
			OldStatus:   candidate.Status,
			NewStatus:   expected,
			Reason:      reason,
		})
	}

	return resp, nil
}

// expectedStatus derives what the candidate status should be from the
// latest round and its verdict. fromVerdict reports whether a human
// verdict dictated the answer.
func (s *PipelineServiceImpl) expectedStatus(candidate *models.Candidate, cfg *models.CompanyAIConfig) (models.CandidateStatus, string, bool, error) {
	fallback := models.CandidateStatusUploaded
	if candidate.AssignedEmployeeID != nil {
		fallback = models.CandidateStatusAssigned
	}

	latest, err := s.interviewRepo.FindLatestByCandidate(candidate.ID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInterviewNotFound) {
			return fallback, "no interviews on record", false, nil
		}
		return "", "", false, err
	}

	switch latest.Status {
	case models.InterviewStatusScheduled, models.InterviewStatusInProgress:
		return models.CandidateStatusInterviewScheduled, "latest round is pending", false, nil

	case models.InterviewStatusCancelled:
		return fallback, "latest round was cancelled", false, nil

	case models.InterviewStatusCompleted:
		verdict, err := s.interviewRepo.FindVerdictByInterview(latest.ID)
		if err == nil {
			final := models.CandidateStatusRejected
			if verdict.Decision == models.VerdictDecisionHire {
				final = models.CandidateStatusHired
			}
			return final, "human verdict on latest round", true, nil
		}
		if !apperrors.Is(err, repositories.ErrVerdictNotFound) {
			return "", "", false, err
		}

		if latest.AIRecommendation == nil || latest.OverallScore == nil {
			return models.CandidateStatusInterviewCompleted, "round completed without evaluation", false, nil
		}
		ats := 0.0
		if latest.ATSScore != nil {
			ats = *latest.ATSScore
		}
		outcome, _ := ResolveAIOutcome(*latest.AIRecommendation, *latest.OverallScore, ats, cfg)
		return outcome, "ai evaluation on latest round", false, nil
	}

	return candidate.Status, "", false, nil
}

// --- helpers ---

// moveCandidate applies a guarded status change and logs it to the audit
// trail. Callers run it inside their transaction.
func (s *PipelineServiceImpl) moveCandidate(
	candidateTx repositories.CandidateRepository,
	auditTx repositories.AuditRepository,
	candidate *models.Candidate,
	to models.CandidateStatus,
	actorID *string,
	reason string,
) error {
	from := candidate.Status
	if from == to {
		return nil
	}
	if !models.CanTransition(from, to) {
		return apperrors.ErrInvalidStatus("pipeline",
			"illegal transition "+string(from)+" -> "+string(to))
	}

	if err := candidateTx.UpdateStatus(candidate.ID, to); err != nil {
		return err
	}
	candidate.Status = to
	logger.PipelineLog(candidate.ID, string(from), string(to), reason)

	return auditTx.AppendAction(candidate.CompanyID, actorID, models.AuditCandidateStatusChanged,
		"candidate", candidate.ID, map[string]interface{}{
			"from":   string(from),
			"to":     string(to),
			"reason": reason,
		})
}

func (s *PipelineServiceImpl) findCandidate(companyID, candidateID string) (*models.Candidate, error) {
	candidate, err := s.candidateRepo.FindByID(candidateID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCandidateNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if candidate.CompanyID != companyID {
		return nil, apperrors.ErrTenantMismatch("candidate")
	}
	return candidate, nil
}

func (s *PipelineServiceImpl) findInterview(companyID, interviewID string) (*models.Interview, error) {
	interview, err := s.interviewRepo.FindByID(interviewID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInterviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if interview.CompanyID != companyID {
		return nil, apperrors.ErrTenantMismatch("interview")
	}
	return interview, nil
}

// aiConfigOrDefaults never fails: a company without a saved config gets
// the default thresholds.
func (s *PipelineServiceImpl) aiConfigOrDefaults(companyID string) *models.CompanyAIConfig {
	cfg, err := s.companyRepo.GetAIConfig(companyID)
	if err != nil {
		return &models.CompanyAIConfig{
			CompanyID:       companyID,
			MinPassingScore: 60,
			MinATSScore:     50,
		}
	}
	return cfg
}

func (s *PipelineServiceImpl) notify(to, subject, template string, data email.TemplateData) {
	go func() {
		if err := s.emailProvider.SendTemplate([]string{to}, subject, template, data); err != nil {
			logger.WithError(err).Warn("notification email failed", "template", template)
		}
	}()
}

func buildInterviewResponse(interview *models.Interview) *dto.InterviewResponse {
	resp := &dto.InterviewResponse{
		ID:               interview.ID,
		CandidateID:      interview.CandidateID,
		RoundNumber:      interview.RoundNumber,
		InterviewerID:    interview.InterviewerID,
		ScheduledAt:      interview.ScheduledAt,
		CompletedAt:      interview.CompletedAt,
		Status:           interview.Status,
		BehaviorScore:    interview.BehaviorScore,
		ConfidenceScore:  interview.ConfidenceScore,
		AnswerScore:      interview.AnswerScore,
		ATSScore:         interview.ATSScore,
		OverallScore:     interview.OverallScore,
		AIRecommendation: interview.AIRecommendation,
		AIFeedback:       interview.AIFeedback,
	}
	if interview.Verdict != nil {
		resp.Verdict = buildVerdictResponse(interview.Verdict)
	}
	return resp
}

func buildVerdictResponse(verdict *models.HumanVerdict) *dto.VerdictResponse {
	return &dto.VerdictResponse{
		ID:          verdict.ID,
		InterviewID: verdict.InterviewID,
		ReviewerID:  verdict.ReviewerID,
		Decision:    verdict.Decision,
		Comment:     verdict.Comment,
		IsOverride:  verdict.IsOverride,
		CreatedAt:   verdict.CreatedAt,
	}
}
