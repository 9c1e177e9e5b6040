package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pt-sim/internal/domain"
	"pt-sim/internal/llm"
	"pt-sim/internal/repository"
	"pt-sim/internal/service"
)

type routerOptions struct {
	transcripts repository.TranscriptRepository
	limiter     service.TurnRateLimiter
}

func newTestRouter(t *testing.T, opts routerOptions) (*gin.Engine, *service.ChatService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	personas := repository.NewSeededPersonaRepository()
	chatSvc := service.NewChatService(logger, personas, llm.NewEchoClient())

	patientH := NewPatientHandler(logger, personas)
	chatH := NewChatHandler(logger, chatSvc, opts.transcripts, opts.limiter, "")
	scoreH := NewScoreHandler(logger, service.NewDefaultScorer())

	return NewRouter(logger, patientH, chatH, scoreH), chatSvc
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthReportsBackend(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{})
	w := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Status  string `json:"status"`
		Backend string `json:"backend"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Backend != "echo" {
		t.Fatalf("unexpected health response: %+v", resp)
	}
}

func TestListPatients(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{})
	w := doJSON(t, router, http.MethodGet, "/patients", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Patients []domain.PatientSummary `json:"patients"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Patients) != len(repository.SeedPersonas()) {
		t.Fatalf("got %d patients; want %d", len(resp.Patients), len(repository.SeedPersonas()))
	}
	seen := map[string]bool{}
	for _, p := range resp.Patients {
		if p.ID == "" || seen[p.ID] {
			t.Fatalf("listing has empty or duplicate id: %+v", resp.Patients)
		}
		seen[p.ID] = true
	}
}

func TestChatEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{})
	w := doJSON(t, router, http.MethodPost, "/chat", gin.H{
		"patient_id": "P-0002",
		"message":    "When did this start and how did it happen?",
		"state":      gin.H{},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Reply       string                `json:"reply"`
		State       map[string]any        `json:"state"`
		Tags        []string              `json:"tags"`
		PatientInfo domain.PatientSummary `json:"patient_info"`
		SessionID   string                `json:"session_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Reply == "" || resp.SessionID == "" {
		t.Fatalf("missing reply or session id: %+v", resp)
	}
	if resp.PatientInfo.ID != "P-0002" || resp.PatientInfo.Name == "" || resp.PatientInfo.Condition == "" {
		t.Fatalf("patient_info incomplete: %+v", resp.PatientInfo)
	}
	if shared, _ := resp.State["shared_cc"].(bool); !shared {
		t.Fatalf("state should carry shared_cc: %v", resp.State)
	}
	tagSet := strings.Join(resp.Tags, ",")
	if !strings.Contains(tagSet, "onset") || !strings.Contains(tagSet, "mechanism") {
		t.Fatalf("tags = %v; want onset and mechanism", resp.Tags)
	}
}

func TestChatUnknownPatientIs404(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{})
	w := doJSON(t, router, http.MethodPost, "/chat", gin.H{
		"patient_id": "P-9999",
		"message":    "hello",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
}

func TestChatMissingPatientIDIs400(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{})
	w := doJSON(t, router, http.MethodPost, "/chat", gin.H{"message": "hello"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
}

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(string) bool { return false }

func TestChatRateLimited(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{limiter: denyAllLimiter{}})
	w := doJSON(t, router, http.MethodPost, "/chat", gin.H{
		"patient_id": "P-0002",
		"message":    "hello",
	})
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d; want 429", w.Code)
	}
}

func TestScoreEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{})

	w := doJSON(t, router, http.MethodPost, "/score", gin.H{"tags": []string{}})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var empty domain.ScoreResult
	if err := json.Unmarshal(w.Body.Bytes(), &empty); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if empty.Percent != 0 {
		t.Fatalf("empty tags percent = %d; want 0", empty.Percent)
	}

	w = doJSON(t, router, http.MethodPost, "/score", gin.H{"tags": []string{"onset", "mechanism"}})
	var partial domain.ScoreResult
	if err := json.Unmarshal(w.Body.Bytes(), &partial); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if partial.Percent != 18 {
		t.Fatalf("onset+mechanism percent = %d; want 18", partial.Percent)
	}
}

func TestBehaviorEndpoints(t *testing.T) {
	router, chatSvc := newTestRouter(t, routerOptions{})

	w := doJSON(t, router, http.MethodGet, "/behavior", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/behavior", gin.H{
		"pain_expression": "dramatic",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	got := chatSvc.Behavior()
	if got.PainExpression != domain.PainExpressionDramatic {
		t.Fatalf("pain_expression = %s; want dramatic", got.PainExpression)
	}
	if got.Cooperation != domain.CooperationWilling {
		t.Fatalf("omitted cooperation should keep its value, got %s", got.Cooperation)
	}

	w = doJSON(t, router, http.MethodPost, "/behavior", gin.H{
		"pain_expression": "theatrical",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid pain_expression status = %d; want 400", w.Code)
	}
}

func TestChatStreamEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{})

	// Respuesta de referencia por el camino sincrono.
	sync := doJSON(t, router, http.MethodPost, "/chat", gin.H{
		"patient_id": "P-0002",
		"message":    "When did this start?",
	})
	var syncResp struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(sync.Body.Bytes(), &syncResp); err != nil {
		t.Fatalf("decode sync: %v", err)
	}

	w := doJSON(t, router, http.MethodPost, "/chat/stream", gin.H{
		"patient_id": "P-0002",
		"message":    "When did this start?",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "event:token") && !strings.Contains(body, "event: token") {
		t.Fatalf("stream missing token events: %s", body)
	}
	if !strings.Contains(body, "meta") || !strings.Contains(body, "done") {
		t.Fatalf("stream missing meta/done events: %s", body)
	}
	// done es siempre el evento terminal del stream.
	last := strings.LastIndex(body, "event:")
	if last < 0 {
		t.Fatalf("stream has no events: %s", body)
	}
	lastEvent := strings.TrimLeft(strings.TrimPrefix(body[last:], "event:"), " ")
	if !strings.HasPrefix(lastEvent, "done") {
		t.Fatalf("stream must terminate with done, got %q", lastEvent)
	}

	final := joinTokenData(body)
	if final != syncResp.Reply {
		t.Fatalf("stream final %q != sync reply %q", final, syncResp.Reply)
	}
}

// joinTokenData concatena los payloads de los eventos token de un body SSE.
func joinTokenData(body string) string {
	var sb strings.Builder
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line != "event:token" && line != "event: token" {
			continue
		}
		if i+1 >= len(lines) {
			break
		}
		data := lines[i+1]
		data = strings.TrimPrefix(data, "data:")
		data = strings.TrimPrefix(data, " ")
		sb.WriteString(data)
	}
	return sb.String()
}

func TestChatStreamUnknownPatientIs404(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{})
	w := doJSON(t, router, http.MethodPost, "/chat/stream", gin.H{
		"patient_id": "P-9999",
		"message":    "hi",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
}

type captureTranscripts struct {
	entries chan repository.TranscriptEntry
}

func (c *captureTranscripts) Append(_ context.Context, e repository.TranscriptEntry) error {
	c.entries <- e
	return nil
}

func (c *captureTranscripts) ListBySessionID(_ context.Context, _ string) ([]repository.TranscriptEntry, error) {
	return nil, nil
}

type stubTranscripts struct {
	bySession map[string][]repository.TranscriptEntry
}

func (s *stubTranscripts) Append(_ context.Context, e repository.TranscriptEntry) error {
	if s.bySession == nil {
		s.bySession = map[string][]repository.TranscriptEntry{}
	}
	s.bySession[e.SessionID] = append(s.bySession[e.SessionID], e)
	return nil
}

func (s *stubTranscripts) ListBySessionID(_ context.Context, sessionID string) ([]repository.TranscriptEntry, error) {
	return s.bySession[sessionID], nil
}

func TestTranscriptEndpoint(t *testing.T) {
	stub := &stubTranscripts{bySession: map[string][]repository.TranscriptEntry{
		"sess-1": {
			{ID: "1", SessionID: "sess-1", PatientID: "P-0002", Role: "user", Content: "When did this start?", Tags: []string{"onset"}},
			{ID: "2", SessionID: "sess-1", PatientID: "P-0002", Role: "patient", Content: "(echo) When did this start?"},
		},
	}}
	router, _ := newTestRouter(t, routerOptions{transcripts: stub})

	w := doJSON(t, router, http.MethodGet, "/sessions/sess-1/transcript", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		SessionID string                       `json:"session_id"`
		Entries   []repository.TranscriptEntry `json:"entries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SessionID != "sess-1" || len(resp.Entries) != 2 {
		t.Fatalf("unexpected transcript response: %+v", resp)
	}
	if resp.Entries[0].Role != "user" || resp.Entries[1].Role != "patient" {
		t.Fatalf("entry roles = %s, %s; want user then patient", resp.Entries[0].Role, resp.Entries[1].Role)
	}

	// Sesion desconocida devuelve lista vacia, no error.
	w = doJSON(t, router, http.MethodGet, "/sessions/sess-404/transcript", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unknown session status = %d", w.Code)
	}
}

func TestTranscriptEndpointWithoutLogIs404(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{})
	w := doJSON(t, router, http.MethodGet, "/sessions/sess-1/transcript", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404 when transcript log is not configured", w.Code)
	}
}

func TestChatLogsTranscriptAsync(t *testing.T) {
	capture := &captureTranscripts{entries: make(chan repository.TranscriptEntry, 4)}
	router, _ := newTestRouter(t, routerOptions{transcripts: capture})

	w := doJSON(t, router, http.MethodPost, "/chat", gin.H{
		"patient_id": "P-0002",
		"message":    "When did this start?",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var roles []string
	for len(roles) < 2 {
		select {
		case e := <-capture.entries:
			roles = append(roles, e.Role)
			if e.PatientID != "P-0002" || e.SessionID == "" {
				t.Fatalf("unexpected entry: %+v", e)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("transcript entries not appended, got roles %v", roles)
		}
	}
	if roles[0] != "user" || roles[1] != "patient" {
		t.Fatalf("roles = %v; want user then patient", roles)
	}
}
