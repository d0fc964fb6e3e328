package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/futig/resume-assistant/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssistant struct {
	mu      sync.Mutex
	ready   bool
	clears   int
	ingests  int
	discards int
	block   chan struct{}
	err     error
}

func (f *fakeAssistant) Ingest(ctx context.Context, files []entity.FileData) (*entity.IngestReport, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.ingests++
	if f.err != nil {
		return nil, f.err
	}
	f.ready = true
	return &entity.IngestReport{Files: []string{files[0].Filename}, Rows: 1, Chunks: 1}, nil
}

func (f *fakeAssistant) Ask(_ context.Context, query string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.ready {
		return "Please ingest a CSV file first."
	}
	return "answer to " + query
}

func (f *fakeAssistant) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	f.ready = false
}

func (f *fakeAssistant) Discard(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.discards++
	f.ready = false
	return nil
}

func (f *fakeAssistant) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ready
}

func newTestSession(a Assistant) (*Session, *repository.TurnMemory) {
	turns := repository.NewTurnMemory()
	return newSession("11111111-1111-1111-1111-111111111111", a, turns), turns
}

var csvUpload = []entity.FileData{{Filename: "candidates.csv", Content: []byte("CandidateID,Resume\n1,Go\n")}}

func TestSession_AskAppendsTwoTurns(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(&fakeAssistant{})

	answer, err := s.Ask(ctx, "anything")
	require.NoError(t, err)
	assert.Equal(t, "Please ingest a CSV file first.", answer)

	_, err = s.Ask(ctx, "second")
	require.NoError(t, err)

	turns, err := s.Transcript(ctx)
	require.NoError(t, err)
	require.Len(t, turns, 4)
	assert.Equal(t, entity.Turn{Text: "anything", IsUser: true, CreatedAt: turns[0].CreatedAt}, turns[0])
	assert.Equal(t, "Please ingest a CSV file first.", turns[1].Text)
	assert.False(t, turns[1].IsUser)
	assert.Equal(t, "second", turns[2].Text)
	assert.False(t, turns[3].IsUser)
}

func TestSession_EmptyQueryIsRejected(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(&fakeAssistant{})

	_, err := s.Ask(ctx, "   ")
	assert.ErrorIs(t, err, entity.ErrMissingField)

	turns, err := s.Transcript(ctx)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestSession_IngestResetsTranscript(t *testing.T) {
	ctx := context.Background()
	a := &fakeAssistant{}
	s, _ := newTestSession(a)

	_, err := s.Ask(ctx, "hello")
	require.NoError(t, err)

	report, err := s.Ingest(ctx, csvUpload)
	require.NoError(t, err)
	assert.Equal(t, []string{"candidates.csv"}, report.Files)
	assert.Equal(t, 1, a.clears)

	turns, err := s.Transcript(ctx)
	require.NoError(t, err)
	assert.Empty(t, turns)

	answer, err := s.Ask(ctx, "who knows Go?")
	require.NoError(t, err)
	assert.Equal(t, "answer to who knows Go?", answer)
}

func TestSession_FailedIngestLeavesSessionEmpty(t *testing.T) {
	ctx := context.Background()
	a := &fakeAssistant{ready: true, err: fmt.Errorf("%w: missing column", entity.ErrBadInput)}
	s, _ := newTestSession(a)

	_, err := s.Ingest(ctx, csvUpload)
	assert.ErrorIs(t, err, entity.ErrBadInput)

	info, err := s.Info(ctx)
	require.NoError(t, err)
	assert.False(t, info.Ready)
}

func TestSession_Clear(t *testing.T) {
	ctx := context.Background()
	a := &fakeAssistant{}
	s, _ := newTestSession(a)

	_, err := s.Ingest(ctx, csvUpload)
	require.NoError(t, err)

	info, err := s.Info(ctx)
	require.NoError(t, err)
	assert.True(t, info.Ready)

	require.NoError(t, s.Clear(ctx))

	info, err = s.Info(ctx)
	require.NoError(t, err)
	assert.False(t, info.Ready)

	answer, err := s.Ask(ctx, "anything")
	require.NoError(t, err)
	assert.Equal(t, "Please ingest a CSV file first.", answer)
}

func TestSession_ConcurrentAsksKeepPairsTogether(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(&fakeAssistant{ready: true})

	futures := make([]*Future[string], 0, 20)
	for i := range 20 {
		futures = append(futures, s.AskAsync(ctx, fmt.Sprintf("q%d", i)))
	}
	for _, f := range futures {
		_, err := f.Await(ctx)
		require.NoError(t, err)
	}

	turns, err := s.Transcript(ctx)
	require.NoError(t, err)
	require.Len(t, turns, 40)
	for i := 0; i < len(turns); i += 2 {
		assert.True(t, turns[i].IsUser)
		assert.False(t, turns[i+1].IsUser)
		assert.Equal(t, "answer to "+turns[i].Text, turns[i+1].Text)
	}
}

func TestSession_CancelledWhileWaiting(t *testing.T) {
	a := &fakeAssistant{block: make(chan struct{})}
	s, _ := newTestSession(a)

	ingest := s.IngestAsync(context.Background(), csvUpload)

	// wait until the ingestion holds the session
	require.Eventually(t, func() bool { return len(s.sem) == 1 }, time.Second, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	ask := s.AskAsync(ctx, "hello")
	cancel()

	_, err := ask.Await(context.Background())
	assert.ErrorIs(t, err, context.Canceled)

	close(a.block)
	report, err := ingest.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Rows)

	turns, err := s.Transcript(context.Background())
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestFuture_AwaitHonoursContext(t *testing.T) {
	release := make(chan struct{})
	f := Go(context.Background(), func(ctx context.Context) (int, error) {
		<-release
		return 42, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	<-f.Done()
	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestFuture_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	f := Go(context.Background(), func(context.Context) (string, error) { return "", boom })
	_, err := f.Await(context.Background())
	assert.ErrorIs(t, err, boom)
}
