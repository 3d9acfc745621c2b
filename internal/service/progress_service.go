package service

import (
	"aptiprep/internal/apperr"
	"aptiprep/internal/model"
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// SubmitResults records a batch of answered questions for one topic.
// Each question is recorded at most once per topic; resubmissions are ignored.
// Malformed entries are skipped and logged rather than failing the request.
func (s *AptitudeService) SubmitResults(ctx context.Context, userID string, req *model.SubmitResultsRequest) (*model.SubmitResultsResponse, error) {
	if req == nil {
		return nil, apperr.BadRequest("request body is required")
	}
	topic := strings.TrimSpace(req.Topic)
	if strings.TrimSpace(req.Category) == "" || topic == "" {
		return nil, apperr.BadRequest("category and topic are required")
	}
	items, err := parseResultList(req.DetailedResults)
	if err != nil {
		return nil, err
	}
	category, err := parseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	if _, err := model.ParseSummaryKey(model.NormalizeCategory(string(category))); err != nil {
		return nil, apperr.BadRequest("invalid summary category: " + model.NormalizeCategory(string(category)))
	}

	log := s.log.With(zap.String("userId", userID), zap.String("category", string(category)), zap.String("topic", topic))

	questionIDs, err := s.questionRepo.QuestionIDs(ctx, category, topic)
	if err != nil {
		return nil, apperr.Internal("failed to load topic questions", err)
	}
	records := collectRecords(log, items, questionIDs)

	if err := s.progressRepo.EnsureTopic(ctx, userID, category, topic, len(questionIDs)); err != nil {
		return nil, apperr.Internal("failed to create topic progress", err)
	}

	// Bumping the revision before writing leaves the stored summary marked stale
	// if this request dies before refreshSummary; GetSummary repairs it.
	if len(records) > 0 {
		staleRev, err := s.progressRepo.NextRevision(ctx, userID)
		if err != nil {
			return nil, apperr.Internal("failed to update progress summary", err)
		}
		s.invalidateSummary(ctx, userID, staleRev)
	}

	added, err := s.progressRepo.AddCompletions(ctx, userID, category, topic, records)
	if err != nil {
		return nil, apperr.Internal("failed to record results", err)
	}
	tp, err := s.progressRepo.GetTopic(ctx, userID, category, topic)
	if err != nil {
		return nil, apperr.Internal("failed to load topic progress", err)
	}
	totalAttempted := 0
	if tp != nil {
		totalAttempted = len(tp.CompletedQuestions)
	}

	summary, err := s.refreshSummary(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to update progress summary", err)
	}

	log.Info("aptitude results recorded",
		zap.Int("submitted", len(items)),
		zap.Int("newAttempts", added),
		zap.Int("totalAttempted", totalAttempted),
	)

	if s.broadcaster != nil {
		completed, all := summary.Totals()
		s.broadcaster.BroadcastToUser(userID, MsgProgressUpdated, &model.ProgressEvent{
			Category:          category,
			Topic:             topic,
			TotalAttempted:    totalAttempted,
			NewAttempts:       added,
			OverallProgress:   percent(completed, all),
			CategoriesSummary: summary,
		})
	}

	return &model.SubmitResultsResponse{
		Message:        "results submitted successfully",
		TotalAttempted: totalAttempted,
		NewAttempts:    added,
	}, nil
}

// GetSummary returns the user's four-category summary and overall progress
func (s *AptitudeService) GetSummary(ctx context.Context, userID string) (*model.SummaryResponse, error) {
	if s.summaryCache != nil {
		summary, _, err := s.summaryCache.Get(ctx, userID)
		if err != nil {
			s.log.Warn("summary cache read failed", zap.String("userId", userID), zap.Error(err))
		} else if summary != nil {
			return summaryResponse(summary), nil
		}
	}

	up, err := s.progressRepo.GetUserProgress(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to load progress summary", err)
	}
	if up == nil {
		return summaryResponse(nil), nil
	}
	if up.SummaryRevision < up.Revision {
		// A submission wrote completions without finishing its summary update.
		s.log.Info("repairing stale progress summary",
			zap.String("userId", userID),
			zap.Int64("revision", up.Revision),
			zap.Int64("summaryRevision", up.SummaryRevision),
		)
		summary, err := s.refreshSummary(ctx, userID)
		if err != nil {
			return nil, apperr.Internal("failed to rebuild progress summary", err)
		}
		return summaryResponse(summary), nil
	}
	if up.SummaryRevision > 0 {
		s.cacheSummary(ctx, userID, up.CategoriesSummary, up.SummaryRevision)
	}
	return summaryResponse(up.CategoriesSummary), nil
}

// refreshSummary recomputes every category from the stored topic progress and
// saves it under a fresh revision. A concurrent submission holding a newer
// revision wins the write; the recomputed value is still returned to the caller.
func (s *AptitudeService) refreshSummary(ctx context.Context, userID string) (model.CategorySummary, error) {
	rev, err := s.progressRepo.NextRevision(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.progressRepo.CategoryTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := model.SummaryFromTotals(rows)

	saved, err := s.progressRepo.SaveSummary(ctx, userID, summary, rev)
	if err != nil {
		return nil, err
	}
	if !saved {
		s.log.Debug("summary superseded by newer revision", zap.String("userId", userID), zap.Int64("revision", rev))
		return summary, nil
	}
	s.cacheSummary(ctx, userID, summary, rev)
	return summary, nil
}

func (s *AptitudeService) cacheSummary(ctx context.Context, userID string, summary model.CategorySummary, rev int64) {
	if s.summaryCache == nil {
		return
	}
	if _, err := s.summaryCache.Set(ctx, userID, summary, rev); err != nil {
		s.log.Warn("summary cache write failed", zap.String("userId", userID), zap.Error(err))
	}
}

// invalidateSummary hides any cached summary older than rev
func (s *AptitudeService) invalidateSummary(ctx context.Context, userID string, rev int64) {
	if s.summaryCache == nil {
		return
	}
	if err := s.summaryCache.Invalidate(ctx, userID, rev); err != nil {
		s.log.Warn("summary cache invalidate failed", zap.String("userId", userID), zap.Error(err))
	}
}

func summaryResponse(stored model.CategorySummary) *model.SummaryResponse {
	summary := model.NewCategorySummary()
	for _, k := range model.SummaryKeys {
		if c, ok := stored[k]; ok {
			summary[k] = c
		}
	}
	completed, total := summary.Totals()
	return &model.SummaryResponse{
		OverallProgress:   percent(completed, total),
		CategoriesSummary: summary,
	}
}

func parseResultList(raw json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, apperr.BadRequest("detailedResults must be an array")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, apperr.BadRequest("detailedResults must be an array")
	}
	return items, nil
}

// collectRecords keeps well-formed entries for questions in the topic, first occurrence per question id
func collectRecords(log *zap.Logger, items []json.RawMessage, topicQuestions []string) []model.CompletionRecord {
	known := make(map[string]struct{}, len(topicQuestions))
	for _, id := range topicQuestions {
		known[id] = struct{}{}
	}

	records := make([]model.CompletionRecord, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		var dr model.DetailedResult
		if err := json.Unmarshal(item, &dr); err != nil {
			log.Warn("skipping malformed result entry", zap.Int("index", i), zap.Error(err))
			continue
		}
		qid, ok := questionIDString(dr.QuestionID)
		if !ok {
			log.Warn("skipping result entry without questionID", zap.Int("index", i))
			continue
		}
		correct, ok := dr.IsCorrect.(bool)
		if !ok {
			log.Warn("skipping result entry with non-boolean isCorrect", zap.Int("index", i), zap.String("questionId", qid))
			continue
		}
		if _, ok := known[qid]; !ok {
			log.Warn("skipping result entry for question outside topic", zap.Int("index", i), zap.String("questionId", qid))
			continue
		}
		if _, dup := seen[qid]; dup {
			continue
		}
		seen[qid] = struct{}{}
		records = append(records, model.CompletionRecord{QuestionID: qid, IsCorrect: correct})
	}
	return records
}

func questionIDString(v interface{}) (string, bool) {
	switch id := v.(type) {
	case string:
		id = strings.TrimSpace(id)
		return id, id != ""
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	default:
		return "", false
	}
}
