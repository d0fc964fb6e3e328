package assistant

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/futig/resume-assistant/internal/chunker"
	"github.com/futig/resume-assistant/internal/config"
	"github.com/futig/resume-assistant/internal/entity"
	"github.com/futig/resume-assistant/internal/integration/chat"
	"github.com/futig/resume-assistant/internal/integration/embedding"
	pkgRetry "github.com/futig/resume-assistant/internal/pkg/retry"
	"github.com/futig/resume-assistant/internal/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const twoRowCSV = "CandidateID,Resume\n" +
	"101,\"5 years Python, SQL, dashboards\"\n" +
	"102,2 years Java backend development\n"

type fakeChat struct {
	calls  [][]entity.ChatMessage
	answer string
	err    error
}

func (f *fakeChat) Complete(_ context.Context, messages []entity.ChatMessage) (string, error) {
	f.calls = append(f.calls, messages)
	return f.answer, f.err
}

func (f *fakeChat) lastUserMessage(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.calls)
	msgs := f.calls[len(f.calls)-1]
	require.Len(t, msgs, 2)
	assert.Equal(t, entity.ChatRoleSystem, msgs[0].Role)
	assert.Equal(t, entity.ChatRoleUser, msgs[1].Role)
	return msgs[1].Content
}

type emptyIndex struct{}

func (emptyIndex) Search(context.Context, string, int) ([]entity.SearchResult, error) { return nil, nil }
func (emptyIndex) Count() int                                                          { return 0 }

type emptyStore struct{}

func (emptyStore) Build(context.Context, string, []entity.IndexedEntry) (Index, error) {
	return emptyIndex{}, nil
}

func (emptyStore) Remove(context.Context, string) error { return nil }

type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, errors.New("embedding service down")
}

func csvFile(name, content string) []entity.FileData {
	return []entity.FileData{{Filename: name, Content: []byte(content)}}
}

func newAssistant(t *testing.T, indexDir string, client ChatClient) *Assistant {
	t.Helper()
	c, err := chunker.NewWindowChunker(1024, 100)
	require.NoError(t, err)

	emb := embedding.NewHashingEmbedder(1024)
	store := vectorstore.NewStore(vectorstore.Config{Dir: indexDir, Collection: "candidates"}, emb.Embed)

	return New("session-1", c, emb, NewIndexStore(store), client)
}

func TestAsk_BeforeIngest(t *testing.T) {
	fc := &fakeChat{}
	a := newAssistant(t, "", fc)

	assert.False(t, a.Ready())
	assert.Equal(t, "Please ingest a CSV file first.", a.Ask(context.Background(), "anything"))
	assert.Empty(t, fc.calls)
}

func TestAsk_NoResults(t *testing.T) {
	c, err := chunker.NewWindowChunker(100, 10)
	require.NoError(t, err)
	fc := &fakeChat{}
	a := New("s", c, embedding.NewHashingEmbedder(16), emptyStore{}, fc)

	_, err = a.Ingest(context.Background(), csvFile("a.csv", twoRowCSV))
	require.NoError(t, err)

	assert.Equal(t, "No relevant context found in the database.", a.Ask(context.Background(), "anything"))
	assert.Empty(t, fc.calls)
}

func TestIngestAndAsk_EndToEnd(t *testing.T) {
	ctx := context.Background()
	fc := &fakeChat{answer: "CandidateID: 101\nSummary: Python and SQL."}
	a := newAssistant(t, t.TempDir(), fc)

	report, err := a.Ingest(ctx, csvFile("candidates.csv", twoRowCSV))
	require.NoError(t, err)
	assert.Equal(t, &entity.IngestReport{Files: []string{"candidates.csv"}, Rows: 2, Chunks: 2}, report)
	assert.True(t, a.Ready())

	answer := a.Ask(ctx, "Who has Python experience?")
	assert.Equal(t, "CandidateID: 101\nSummary: Python and SQL.", answer)

	user := fc.lastUserMessage(t)
	assert.True(t, strings.HasPrefix(user, "Query: Who has Python experience?\n\nContext:\n"))
	assert.True(t, strings.HasSuffix(user, "\n\nAnswer:"))
	assert.Contains(t, user, "CandidateID: 101 | 5 years Python, SQL, dashboards")

	first := strings.Index(user, "CandidateID: 101")
	second := strings.Index(user, "CandidateID: 102")
	if second >= 0 {
		assert.Less(t, first, second, "most similar chunk comes first")
	}
}

func TestClear_BehavesLikeFreshAssistant(t *testing.T) {
	ctx := context.Background()
	fc := &fakeChat{answer: "ok"}
	a := newAssistant(t, t.TempDir(), fc)

	_, err := a.Ingest(ctx, csvFile("candidates.csv", twoRowCSV))
	require.NoError(t, err)
	require.Equal(t, "ok", a.Ask(ctx, "python"))

	a.Clear()

	assert.False(t, a.Ready())
	assert.Equal(t, MsgNotIngested, a.Ask(ctx, "python"))
	assert.Len(t, fc.calls, 1)
}

func TestIngest_ReplacesPreviousBatch(t *testing.T) {
	ctx := context.Background()
	fc := &fakeChat{answer: "ok"}
	a := newAssistant(t, t.TempDir(), fc)

	_, err := a.Ingest(ctx, csvFile("a.csv", "CandidateID,Resume\n1,Python developer\n2,Python analyst\n"))
	require.NoError(t, err)

	_, err = a.Ingest(ctx, csvFile("b.csv", "CandidateID,Resume\n7,Java engineer\n8,Rust engineer\n"))
	require.NoError(t, err)

	a.Ask(ctx, "Python developer")
	user := fc.lastUserMessage(t)
	assert.NotContains(t, user, "CandidateID: 1 ")
	assert.NotContains(t, user, "CandidateID: 2 ")
	assert.NotContains(t, user, "Python developer |")
	assert.Contains(t, user, "CandidateID: 7")
	assert.Contains(t, user, "CandidateID: 8")
}

func TestIngest_FailureKeepsIndexUntouched(t *testing.T) {
	ctx := context.Background()
	fc := &fakeChat{answer: "ok"}
	a := newAssistant(t, "", fc)

	_, err := a.Ingest(ctx, csvFile("a.csv", twoRowCSV))
	require.NoError(t, err)

	_, err = a.Ingest(ctx, csvFile("bad.csv", "Resume\nno id column\n"))
	assert.ErrorIs(t, err, entity.ErrBadInput)

	a.embedder = failingEmbedder{}
	_, err = a.Ingest(ctx, csvFile("b.csv", "CandidateID,Resume\n9,Go\n"))
	assert.ErrorContains(t, err, "embedding service down")

	assert.True(t, a.Ready())
	a.embedder = embedding.NewHashingEmbedder(1024)
	a.Ask(ctx, "python")
	assert.Contains(t, fc.lastUserMessage(t), "CandidateID: 101")
}

func TestIngest_BlankResumesAreBadInput(t *testing.T) {
	a := newAssistant(t, "", &fakeChat{})
	_, err := a.Ingest(context.Background(), csvFile("a.csv", "CandidateID,Resume\n1,\n2,\n"))
	assert.ErrorIs(t, err, entity.ErrBadInput)
	assert.False(t, a.Ready())
}

func TestAsk_SurfacesRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "model not loaded"}`))
	}))
	defer srv.Close()

	client := chat.NewConnector(config.ChatConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
			Url:                   srv.URL,
		},
		ChatEndpoint: "/api/chat",
		Model:        "llama2:chat",
		Retry:        pkgRetry.RetryConfig{Attempts: 1},
	}, zaptest.NewLogger(t))

	a := newAssistant(t, "", client)
	_, err := a.Ingest(context.Background(), csvFile("a.csv", twoRowCSV))
	require.NoError(t, err)

	answer := a.Ask(context.Background(), "Who has Python experience?")
	assert.Contains(t, answer, "model not loaded")
	assert.True(t, strings.HasPrefix(answer, "Error: "))
}

func TestAsk_ChatFailureWithoutMessage(t *testing.T) {
	fc := &fakeChat{err: &chat.UpstreamError{StatusCode: 502}}
	a := newAssistant(t, "", fc)
	_, err := a.Ingest(context.Background(), csvFile("a.csv", twoRowCSV))
	require.NoError(t, err)

	assert.Equal(t, "Error: Unknown error", a.Ask(context.Background(), "python"))
}

func TestIngest_SameNameFilesIndexEveryChunk(t *testing.T) {
	ctx := context.Background()
	fc := &fakeChat{answer: "ok"}
	a := newAssistant(t, "", fc)

	report, err := a.Ingest(ctx, []entity.FileData{
		{Filename: "cands.csv", Content: []byte("CandidateID,Resume\n1,Python developer\n")},
		{Filename: "cands.csv", Content: []byte("CandidateID,Resume\n1,Rust engineer\n")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Chunks)
	assert.Equal(t, report.Chunks, a.index.Count())

	a.Ask(ctx, "Rust engineer")
	assert.Contains(t, fc.lastUserMessage(t), "Rust engineer")
}

func TestDiscard_RemovesPersistedIndex(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	a := newAssistant(t, dir, &fakeChat{answer: "ok"})

	_, err := a.Ingest(ctx, csvFile("a.csv", twoRowCSV))
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(dir, "session-1"))

	require.NoError(t, a.Discard(ctx))
	assert.False(t, a.Ready())
	assert.NoDirExists(t, filepath.Join(dir, "session-1"))
}
