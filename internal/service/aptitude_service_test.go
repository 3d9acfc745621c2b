package service

import (
	"aptiprep/internal/apperr"
	"aptiprep/internal/model"
	"aptiprep/internal/repository/memory"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	questions *memory.QuestionStore
	progress  *memory.ProgressStore
	svc       *AptitudeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		questions: memory.NewQuestionStore(),
		progress:  memory.NewProgressStore(),
	}
	f.svc = NewAptitudeService(f.questions, f.progress, nil, nil)
	return f
}

// seed adds n questions and returns their ids in order
func (f *fixture) seed(t *testing.T, category model.Category, topic string, n int) []string {
	t.Helper()
	qs := make([]*model.Question, n)
	for i := range qs {
		qs[i] = &model.Question{
			Question:   fmt.Sprintf("%s question %d", topic, i+1),
			Options:    []string{"A", "B", "C", "D"},
			AnswerText: "A",
			Category:   category,
			Topic:      topic,
		}
	}
	require.NoError(t, f.questions.InsertMany(context.Background(), qs))
	ids := make([]string, n)
	for i, q := range qs {
		ids[i] = q.ID
	}
	return ids
}

func resultsJSON(t *testing.T, entries ...map[string]interface{}) json.RawMessage {
	t.Helper()
	if entries == nil {
		entries = []map[string]interface{}{}
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	return data
}

func correct(id string) map[string]interface{} {
	return map[string]interface{}{"questionID": id, "isCorrect": true}
}

func submit(t *testing.T, svc *AptitudeService, user string, category model.Category, topic string, results json.RawMessage) *model.SubmitResultsResponse {
	t.Helper()
	resp, err := svc.SubmitResults(context.Background(), user, &model.SubmitResultsRequest{
		Category:        string(category),
		Topic:           topic,
		DetailedResults: results,
	})
	require.NoError(t, err)
	return resp
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, status, apperr.From(err).Status)
}

func TestProfitAndLossScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.seed(t, model.CategoryArithmetic, "Profit and Loss", 5)

	resp := submit(t, f.svc, "u1", model.CategoryArithmetic, "Profit and Loss",
		resultsJSON(t, correct(ids[0]), correct(ids[1]), correct(ids[2])))
	assert.Equal(t, 3, resp.TotalAttempted)
	assert.Equal(t, 3, resp.NewAttempts)

	topic, err := f.svc.GetTopicQuestions(ctx, "u1", "arithmetic", "Profit and Loss")
	require.NoError(t, err)
	assert.Equal(t, 5, topic.TotalQuestions)
	assert.Equal(t, 3, topic.CompletedCount)
	assert.Equal(t, 60.0, topic.ProgressPercent)

	statuses := map[model.QuestionStatus]int{}
	for _, q := range topic.Questions {
		statuses[q.Status]++
	}
	assert.Equal(t, 3, statuses[model.StatusCompleted])
	assert.Equal(t, 2, statuses[model.StatusPending])

	resp = submit(t, f.svc, "u1", model.CategoryArithmetic, "Profit and Loss",
		resultsJSON(t, correct(ids[0]), correct(ids[3]), correct(ids[4])))
	assert.Equal(t, 5, resp.TotalAttempted)
	assert.Equal(t, 2, resp.NewAttempts)
}

func TestSubmitResultsIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, model.CategoryVerbalReasoning, "Synonyms", 4)
	body := resultsJSON(t, map[string]interface{}{"questionID": ids[0], "isCorrect": false})

	first := submit(t, f.svc, "u1", model.CategoryVerbalReasoning, "Synonyms", body)
	assert.Equal(t, 1, first.NewAttempts)

	// Resending with a different correctness flag must not overwrite the first record.
	second := submit(t, f.svc, "u1", model.CategoryVerbalReasoning, "Synonyms", resultsJSON(t, correct(ids[0])))
	assert.Equal(t, 0, second.NewAttempts)
	assert.Equal(t, first.TotalAttempted, second.TotalAttempted)

	topics := f.progress.Topics("u1")
	require.Len(t, topics, 1)
	require.Len(t, topics[0].CompletedQuestions, 1)
	assert.False(t, topics[0].CompletedQuestions[0].IsCorrect)
}

func TestSubmitResultsDeduplicatesWithinRequest(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, model.CategoryArithmetic, "Percentages", 3)

	resp := submit(t, f.svc, "u1", model.CategoryArithmetic, "Percentages",
		resultsJSON(t, correct(ids[0]), correct(ids[0]), correct(ids[1])))
	assert.Equal(t, 2, resp.NewAttempts)
	assert.Equal(t, 2, resp.TotalAttempted)
}

func TestSubmitResultsSkipsMalformedEntries(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, model.CategoryLogicalReasoning, "Blood Relations", 3)

	resp := submit(t, f.svc, "u1", model.CategoryLogicalReasoning, "Blood Relations",
		resultsJSON(t, correct(ids[0]), map[string]interface{}{"isCorrect": true}))
	assert.Equal(t, 1, resp.NewAttempts)

	raw := json.RawMessage(`[42, null, {"questionID": ""}, {"questionID": "x", "isCorrect": "yes"}, "nope"]`)
	resp = submit(t, f.svc, "u1", model.CategoryLogicalReasoning, "Blood Relations", raw)
	assert.Equal(t, 0, resp.NewAttempts)
	assert.Equal(t, 1, resp.TotalAttempted)
}

func TestSubmitResultsValidation(t *testing.T) {
	f := newFixture(t)
	f.seed(t, model.CategoryArithmetic, "Ratios", 1)

	tests := []struct {
		name string
		req  *model.SubmitResultsRequest
	}{
		{"nil request", nil},
		{"missing category", &model.SubmitResultsRequest{Topic: "Ratios", DetailedResults: json.RawMessage(`[]`)}},
		{"missing topic", &model.SubmitResultsRequest{Category: "arithmetic", DetailedResults: json.RawMessage(`[]`)}},
		{"missing results", &model.SubmitResultsRequest{Category: "arithmetic", Topic: "Ratios"}},
		{"results is object", &model.SubmitResultsRequest{Category: "arithmetic", Topic: "Ratios", DetailedResults: json.RawMessage(`{"questionID":"a"}`)}},
		{"results is null", &model.SubmitResultsRequest{Category: "arithmetic", Topic: "Ratios", DetailedResults: json.RawMessage(`null`)}},
		{"unknown category", &model.SubmitResultsRequest{Category: "geometry", Topic: "Ratios", DetailedResults: json.RawMessage(`[]`)}},
		{"concise category", &model.SubmitResultsRequest{Category: "quantitative", Topic: "Ratios", DetailedResults: json.RawMessage(`[]`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SubmitResults(context.Background(), "u1", tt.req)
			assertStatus(t, err, http.StatusBadRequest)
		})
	}
	assert.Empty(t, f.progress.Topics("u1"))
}

func TestSubmitResultsInvalidCategoryNamesValue(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SubmitResults(context.Background(), "u1", &model.SubmitResultsRequest{
		Category: "geometry", Topic: "Angles", DetailedResults: json.RawMessage(`[]`),
	})
	require.Error(t, err)
	assert.Contains(t, apperr.From(err).Message, "geometry")
}

func TestSubmitCreatesTopicWithLiveCount(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, model.CategoryNonverbalReasoning, "Mirror Images", 4)
	f.seed(t, model.CategoryNonverbalReasoning, "Paper Folding", 2)

	submit(t, f.svc, "u1", model.CategoryNonverbalReasoning, "Mirror Images", resultsJSON(t, correct(ids[0])))

	topics := f.progress.Topics("u1")
	require.Len(t, topics, 1)
	assert.Equal(t, "Mirror Images", topics[0].Topic)
	assert.Equal(t, 4, topics[0].TotalQuestions)

	// The snapshot is not retaken once the topic exists.
	f.seed(t, model.CategoryNonverbalReasoning, "Mirror Images", 1)
	submit(t, f.svc, "u1", model.CategoryNonverbalReasoning, "Mirror Images", resultsJSON(t, correct(ids[1])))
	topics = f.progress.Topics("u1")
	require.Len(t, topics, 1)
	assert.Equal(t, 4, topics[0].TotalQuestions)
}

func TestSubmitAcceptsCategoryInAnyCase(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, model.CategoryLogicalReasoning, "Coding-Decoding", 2)

	resp, err := f.svc.SubmitResults(context.Background(), "u1", &model.SubmitResultsRequest{
		Category: "Logical-Reasoning", Topic: "Coding-Decoding", DetailedResults: resultsJSON(t, correct(ids[0])),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.NewAttempts)

	summary, err := f.svc.GetSummary(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryCount{Completed: 1, Total: 2}, summary.CategoriesSummary[model.SummaryLogical])
}

func TestGetSummaryForNewUser(t *testing.T) {
	f := newFixture(t)

	summary, err := f.svc.GetSummary(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.OverallProgress)
	require.Len(t, summary.CategoriesSummary, 4)
	for _, k := range model.SummaryKeys {
		assert.Equal(t, model.CategoryCount{}, summary.CategoriesSummary[k], string(k))
	}
}

func TestSummaryMatchesTopicSums(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	arith := f.seed(t, model.CategoryArithmetic, "Profit and Loss", 5)
	ages := f.seed(t, model.CategoryArithmetic, "Ages", 3)
	syn := f.seed(t, model.CategoryVerbalReasoning, "Synonyms", 4)
	series := f.seed(t, model.CategoryLogicalReasoning, "Number Series", 2)

	steps := []struct {
		category model.Category
		topic    string
		ids      []string
	}{
		{model.CategoryArithmetic, "Profit and Loss", arith[:2]},
		{model.CategoryVerbalReasoning, "Synonyms", syn[:1]},
		{model.CategoryArithmetic, "Ages", ages},
		{model.CategoryArithmetic, "Profit and Loss", arith[1:4]},
		{model.CategoryLogicalReasoning, "Number Series", series[:1]},
		{model.CategoryVerbalReasoning, "Synonyms", syn},
	}

	for i, step := range steps {
		entries := make([]map[string]interface{}, 0, len(step.ids))
		for _, id := range step.ids {
			entries = append(entries, correct(id))
		}
		submit(t, f.svc, "u1", step.category, step.topic, resultsJSON(t, entries...))

		want := model.NewCategorySummary()
		for _, tp := range f.progress.Topics("u1") {
			k := model.SummaryKey(model.NormalizeCategory(string(tp.Category)))
			c := want[k]
			c.Completed += len(tp.CompletedQuestions)
			c.Total += tp.TotalQuestions
			want[k] = c
		}

		got, err := f.svc.GetSummary(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, want, got.CategoriesSummary, "after step %d", i)
	}

	got, err := f.svc.GetSummary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryCount{Completed: 7, Total: 8}, got.CategoriesSummary[model.SummaryQuantitative])
	assert.Equal(t, model.CategoryCount{Completed: 4, Total: 4}, got.CategoriesSummary[model.SummaryVerbal])
	assert.Equal(t, model.CategoryCount{Completed: 1, Total: 2}, got.CategoriesSummary[model.SummaryLogical])
	assert.Equal(t, 85.71, got.OverallProgress)
}

func TestConcurrentSubmissionsKeepEveryCompletion(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, model.CategoryArithmetic, "Time and Work", 40)

	var wg sync.WaitGroup
	for i := 0; i < len(ids); i += 4 {
		chunk := ids[i : i+4]
		wg.Add(1)
		go func() {
			defer wg.Done()
			entries := make([]map[string]interface{}, 0, len(chunk))
			for _, id := range chunk {
				entries = append(entries, correct(id))
			}
			data, _ := json.Marshal(entries)
			_, err := f.svc.SubmitResults(context.Background(), "u1", &model.SubmitResultsRequest{
				Category: "arithmetic", Topic: "Time and Work", DetailedResults: data,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	topics := f.progress.Topics("u1")
	require.Len(t, topics, 1)
	assert.Len(t, topics[0].CompletedQuestions, 40)

	summary, err := f.svc.GetSummary(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryCount{Completed: 40, Total: 40}, summary.CategoriesSummary[model.SummaryQuantitative])
	assert.Equal(t, 100.0, summary.OverallProgress)
}

func TestGetTopicQuestionsErrors(t *testing.T) {
	f := newFixture(t)
	f.seed(t, model.CategoryArithmetic, "Averages", 2)
	ctx := context.Background()

	_, err := f.svc.GetTopicQuestions(ctx, "u1", "arithmetic", "Probability")
	assertStatus(t, err, http.StatusNotFound)

	_, err = f.svc.GetTopicQuestions(ctx, "u1", "verbal-reasoning", "Averages")
	assertStatus(t, err, http.StatusNotFound)

	_, err = f.svc.GetTopicQuestions(ctx, "u1", "astrology", "Averages")
	assertStatus(t, err, http.StatusBadRequest)

	_, err = f.svc.GetTopicQuestions(ctx, "u1", "arithmetic", " ")
	assertStatus(t, err, http.StatusBadRequest)
}

func TestGetTopicQuestionsWithoutProgress(t *testing.T) {
	f := newFixture(t)
	f.seed(t, model.CategoryArithmetic, "Averages", 2)

	resp, err := f.svc.GetTopicQuestions(context.Background(), "u1", "arithmetic", "Averages")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CompletedCount)
	assert.Equal(t, 0.0, resp.ProgressPercent)
	for _, q := range resp.Questions {
		assert.Equal(t, model.StatusPending, q.Status)
	}
}

func TestGetCategoryTopics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pl := f.seed(t, model.CategoryArithmetic, "Profit and Loss", 4)
	f.seed(t, model.CategoryArithmetic, "Ages", 3)
	f.seed(t, model.CategoryVerbalReasoning, "Antonyms", 2)

	submit(t, f.svc, "u1", model.CategoryArithmetic, "Profit and Loss", resultsJSON(t, correct(pl[0])))

	resp, err := f.svc.GetCategoryTopics(ctx, "u1", "Arithmetic")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryArithmetic, resp.Category)
	assert.Equal(t, []model.TopicOverview{
		{Topic: "Ages", TotalQuestions: 3, CompletedQuestions: 0, ProgressPercent: 0},
		{Topic: "Profit and Loss", TotalQuestions: 4, CompletedQuestions: 1, ProgressPercent: 25},
	}, resp.Topics)

	_, err = f.svc.GetCategoryTopics(ctx, "u1", "logical")
	assertStatus(t, err, http.StatusBadRequest)
}

type recordedBroadcast struct {
	userID  string
	msgType string
	payload interface{}
}

type fakeBroadcaster struct {
	mu   sync.Mutex
	sent []recordedBroadcast
}

func (b *fakeBroadcaster) BroadcastToUser(userID, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, recordedBroadcast{userID, msgType, payload})
}

func TestSubmitResultsBroadcastsProgress(t *testing.T) {
	f := newFixture(t)
	b := &fakeBroadcaster{}
	f.svc.SetBroadcaster(b)
	ids := f.seed(t, model.CategoryArithmetic, "Ages", 2)

	submit(t, f.svc, "u1", model.CategoryArithmetic, "Ages", resultsJSON(t, correct(ids[0])))

	require.Len(t, b.sent, 1)
	assert.Equal(t, "u1", b.sent[0].userID)
	assert.Equal(t, MsgProgressUpdated, b.sent[0].msgType)
	ev, ok := b.sent[0].payload.(*model.ProgressEvent)
	require.True(t, ok)
	assert.Equal(t, 1, ev.NewAttempts)
	assert.Equal(t, 50.0, ev.OverallProgress)
}

type fakeSummaryCache struct {
	mu      sync.Mutex
	entries map[string]model.CategorySummary
	revs    map[string]int64
	err     error
}

func newFakeSummaryCache() *fakeSummaryCache {
	return &fakeSummaryCache{entries: map[string]model.CategorySummary{}, revs: map[string]int64{}}
}

func (c *fakeSummaryCache) Get(_ context.Context, userID string) (model.CategorySummary, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, 0, c.err
	}
	return c.entries[userID], c.revs[userID], nil
}

func (c *fakeSummaryCache) Set(_ context.Context, userID string, s model.CategorySummary, rev int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	if c.revs[userID] >= rev {
		return false, nil
	}
	c.entries[userID] = s
	c.revs[userID] = rev
	return true, nil
}

func (c *fakeSummaryCache) Invalidate(_ context.Context, userID string, rev int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	if c.revs[userID] < rev {
		delete(c.entries, userID)
		c.revs[userID] = rev
	}
	return nil
}

func TestSummaryUsesCache(t *testing.T) {
	f := newFixture(t)
	c := newFakeSummaryCache()
	f.svc = NewAptitudeService(f.questions, f.progress, c, nil)
	ids := f.seed(t, model.CategoryVerbalReasoning, "Antonyms", 2)

	submit(t, f.svc, "u1", model.CategoryVerbalReasoning, "Antonyms", resultsJSON(t, correct(ids[0])))
	assert.Equal(t, int64(2), c.revs["u1"])
	assert.Equal(t, 1, c.entries["u1"][model.SummaryVerbal].Completed)

	// A cached value is served without touching the store.
	c.entries["u1"] = model.CategorySummary{model.SummaryVerbal: {Completed: 2, Total: 2}}
	got, err := f.svc.GetSummary(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.OverallProgress)
	assert.Len(t, got.CategoriesSummary, 4)
}

func TestSummaryFallsBackWhenCacheFails(t *testing.T) {
	f := newFixture(t)
	c := newFakeSummaryCache()
	f.svc = NewAptitudeService(f.questions, f.progress, c, nil)
	ids := f.seed(t, model.CategoryArithmetic, "Ages", 4)

	c.err = fmt.Errorf("redis down")
	submit(t, f.svc, "u1", model.CategoryArithmetic, "Ages", resultsJSON(t, correct(ids[0])))

	got, err := f.svc.GetSummary(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryCount{Completed: 1, Total: 4}, got.CategoriesSummary[model.SummaryQuantitative])
	assert.Equal(t, 25.0, got.OverallProgress)
}

// flakyProgress fails selected ProgressRepo calls while the matching flag is set
type flakyProgress struct {
	*memory.ProgressStore
	failRevision bool
	failTotals   bool
}

var errStoreDown = errors.New("store down")

func (p *flakyProgress) NextRevision(ctx context.Context, userID string) (int64, error) {
	if p.failRevision {
		return 0, errStoreDown
	}
	return p.ProgressStore.NextRevision(ctx, userID)
}

func (p *flakyProgress) CategoryTotals(ctx context.Context, userID string) ([]model.CategoryTotal, error) {
	if p.failTotals {
		return nil, errStoreDown
	}
	return p.ProgressStore.CategoryTotals(ctx, userID)
}

func TestSubmitFailureBeforeWriteStoresNothing(t *testing.T) {
	f := newFixture(t)
	flaky := &flakyProgress{ProgressStore: f.progress, failRevision: true}
	f.svc = NewAptitudeService(f.questions, flaky, nil, nil)
	ids := f.seed(t, model.CategoryArithmetic, "Ages", 2)

	_, err := f.svc.SubmitResults(context.Background(), "u1", &model.SubmitResultsRequest{
		Category: "arithmetic", Topic: "Ages", DetailedResults: resultsJSON(t, correct(ids[0])),
	})
	assertStatus(t, err, http.StatusInternalServerError)

	topics := f.progress.Topics("u1")
	require.Len(t, topics, 1)
	assert.Empty(t, topics[0].CompletedQuestions)

	flaky.failRevision = false
	summary, err := f.svc.GetSummary(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryCount{}, summary.CategoriesSummary[model.SummaryQuantitative])
}

func TestSummaryRepairedAfterInterruptedSubmit(t *testing.T) {
	f := newFixture(t)
	c := newFakeSummaryCache()
	flaky := &flakyProgress{ProgressStore: f.progress}
	f.svc = NewAptitudeService(f.questions, flaky, c, nil)
	ctx := context.Background()
	ids := f.seed(t, model.CategoryArithmetic, "Ages", 4)

	submit(t, f.svc, "u1", model.CategoryArithmetic, "Ages", resultsJSON(t, correct(ids[0])))

	flaky.failTotals = true
	_, err := f.svc.SubmitResults(ctx, "u1", &model.SubmitResultsRequest{
		Category: "arithmetic", Topic: "Ages", DetailedResults: resultsJSON(t, correct(ids[1]), correct(ids[2])),
	})
	assertStatus(t, err, http.StatusInternalServerError)
	flaky.failTotals = false

	// The completions landed but the summary write did not.
	topics := f.progress.Topics("u1")
	require.Len(t, topics, 1)
	require.Len(t, topics[0].CompletedQuestions, 3)
	up, err := f.progress.GetUserProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Less(t, up.SummaryRevision, up.Revision)

	got, err := f.svc.GetSummary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryCount{Completed: 3, Total: 4}, got.CategoriesSummary[model.SummaryQuantitative])
	assert.Equal(t, 75.0, got.OverallProgress)

	up, err = f.progress.GetUserProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, up.Revision, up.SummaryRevision)
	assert.Equal(t, 3, up.CategoriesSummary[model.SummaryQuantitative].Completed)
	assert.Equal(t, 3, c.entries["u1"][model.SummaryQuantitative].Completed)
}

func TestSubmitSkipsQuestionsOutsideTopic(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, model.CategoryArithmetic, "Ages", 2)
	other := f.seed(t, model.CategoryArithmetic, "Averages", 1)

	resp := submit(t, f.svc, "u1", model.CategoryArithmetic, "Ages",
		resultsJSON(t, correct(ids[0]), correct("unknown-1"), correct("unknown-2"), correct(other[0])))
	assert.Equal(t, 1, resp.NewAttempts)
	assert.Equal(t, 1, resp.TotalAttempted)

	topic, err := f.svc.GetTopicQuestions(context.Background(), "u1", "arithmetic", "Ages")
	require.NoError(t, err)
	assert.Equal(t, 50.0, topic.ProgressPercent)

	summary, err := f.svc.GetSummary(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryCount{Completed: 1, Total: 2}, summary.CategoriesSummary[model.SummaryQuantitative])
}

func TestSubmitToEmptyTopicRecordsNothing(t *testing.T) {
	f := newFixture(t)

	resp := submit(t, f.svc, "u1", model.CategoryVerbalReasoning, "Idioms", resultsJSON(t, correct("q9999")))
	assert.Equal(t, 0, resp.NewAttempts)
	assert.Equal(t, 0, resp.TotalAttempted)

	summary, err := f.svc.GetSummary(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.OverallProgress)
}
