package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dukerupert/carecircle/internal/auth"
	"github.com/dukerupert/carecircle/internal/coordination"
	"github.com/dukerupert/carecircle/internal/database"
	"github.com/dukerupert/carecircle/internal/model"
	"github.com/dukerupert/carecircle/internal/store"
)

var (
	senior   = auth.Member{CircleID: "c1", UserID: "s1", Role: model.RoleSenior, Name: "Rosa"}
	relative = auth.Member{CircleID: "c1", UserID: "u1", Role: model.RoleRelative, Name: "Ana"}
)

func setupService(t *testing.T) *coordination.Service {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	cache, err := database.OpenCache(":memory:")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })

	stores := coordination.Stores{
		Tasks:    store.NewTaskStore(db),
		Settings: store.NewSettingsStore(db),
		Help:     store.NewHelpStore(db),
		Status:   store.NewStatusStore(db),
		Pings:    store.NewPingStore(db),
		Scores:   store.NewScoreStore(db),
		Activity: store.NewActivityStore(db),
	}
	return coordination.NewService(stores, store.NewProgressStore(cache), nil, nil, coordination.Config{}, slog.Default())
}

// call runs h as member m. pathID, when set, becomes the {id} path value.
func call(h http.HandlerFunc, m auth.Member, method, target, body, pathID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if pathID != "" {
		req.SetPathValue("id", pathID)
	}
	req = req.WithContext(auth.WithMember(req.Context(), m))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func TestTaskLifecycle(t *testing.T) {
	h := NewTaskHandler(setupService(t), slog.Default())

	rec := call(h.CheckReset, senior, "POST", "/api/tasks/reset-check", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("reset-check status = %d, body %s", rec.Code, rec.Body.String())
	}
	check := decode[map[string]any](t, rec)
	if check["action"] != "bootstrap" {
		t.Errorf("action = %v, want bootstrap", check["action"])
	}

	rec = call(h.Create, relative, "POST", "/api/tasks",
		`{"title":"Blood pressure pill","type":"medication","period":"evening","time":"19:30","recurring":true}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	task := decode[model.Task](t, rec)
	if task.CreatedByRole != model.RoleRelative || task.CreatedByName != "Ana" {
		t.Errorf("creator = %s/%s", task.CreatedByRole, task.CreatedByName)
	}

	rec = call(h.Complete, senior, "POST", "/api/tasks/"+task.ID+"/complete", `{"completed":true}`, task.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete status = %d, body %s", rec.Code, rec.Body.String())
	}
	done := decode[model.Task](t, rec)
	if !done.Completed || done.CompletedAt == nil {
		t.Errorf("completed = %v, completed_at = %v", done.Completed, done.CompletedAt)
	}

	rec = call(h.Delete, senior, "DELETE", "/api/tasks/"+task.ID, "", task.ID)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = call(h.List, senior, "GET", "/api/tasks", "", "")
	snap := decode[coordination.Snapshot[[]model.Task]](t, rec)
	for _, tk := range snap.Data {
		if tk.ID == task.ID {
			t.Errorf("deleted task %s still listed", task.ID)
		}
	}
}

func TestTaskErrors(t *testing.T) {
	h := NewTaskHandler(setupService(t), slog.Default())

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed", `{`, http.StatusBadRequest},
		{"missing title", `{"type":"medication","period":"morning"}`, http.StatusBadRequest},
		{"bad time", `{"title":"x","type":"medication","period":"morning","time":"7pm"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(h.Create, senior, "POST", "/api/tasks", tt.body, "")
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			body := decode[map[string]string](t, rec)
			if body["error"] == "" {
				t.Error("expected error message")
			}
		})
	}

	rec := call(h.Complete, senior, "POST", "/api/tasks/nope/complete", `{"completed":true}`, "nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("complete missing task status = %d, want 404", rec.Code)
	}
}

func TestHelpBoardAndMatches(t *testing.T) {
	h := NewHelpHandler(setupService(t), slog.Default())

	rec := call(h.CreateOffer, relative, "POST", "/api/offers", `{"id":"cook"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("offer status = %d, body %s", rec.Code, rec.Body.String())
	}
	offer := decode[model.Offer](t, rec)

	rec = call(h.CreateRequest, senior, "POST", "/api/requests", `{"id":"shop"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("request status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = call(h.CreateOffer, relative, "POST", "/api/offers", `{"id":"juggling"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown offer status = %d, want 400", rec.Code)
	}

	rec = call(h.Matches, senior, "GET", "/api/matches", "", "")
	view := decode[coordination.Snapshot[coordination.MatchView]](t, rec)
	if view.Data.Top == nil || view.Data.Surfaced == nil {
		t.Fatalf("expected a surfaced match, got %+v", view.Data)
	}
	key := view.Data.Top.Key()

	rec = call(h.Matches, senior, "GET", "/api/matches?dismissed="+url.QueryEscape(key+",other"), "", "")
	view = decode[coordination.Snapshot[coordination.MatchView]](t, rec)
	if view.Data.Surfaced != nil {
		t.Errorf("dismissed match surfaced again: %+v", view.Data.Surfaced)
	}

	// Only the creator may remove an offer.
	rec = call(h.DeleteOffer, senior, "DELETE", "/api/offers/"+offer.DocID, "", offer.DocID)
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign delete status = %d, want 404", rec.Code)
	}
	rec = call(h.DeleteOffer, relative, "DELETE", "/api/offers/"+offer.DocID, "", offer.DocID)
	if rec.Code != http.StatusNoContent {
		t.Errorf("own delete status = %d, want 204", rec.Code)
	}
}

func TestSetStatus(t *testing.T) {
	h := NewHelpHandler(setupService(t), slog.Default())

	rec := call(h.SetStatus, senior, "PUT", "/api/status", `{"status":"coffee_ready"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = call(h.SetStatus, senior, "PUT", "/api/status", `{"status":"asleep"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid status code = %d, want 400", rec.Code)
	}

	rec = call(h.Board, senior, "GET", "/api/help", "", "")
	board := decode[coordination.Snapshot[coordination.Board]](t, rec)
	if len(board.Data.Statuses) != 1 {
		t.Errorf("statuses = %d, want 1", len(board.Data.Statuses))
	}
}

func TestCatalog(t *testing.T) {
	h := NewHelpHandler(setupService(t), slog.Default())
	rec := call(h.Catalog, senior, "GET", "/api/catalog", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode[map[string]json.RawMessage](t, rec)
	if _, ok := body["offers"]; !ok {
		t.Errorf("catalog missing offers: %v", body)
	}
}

func TestPingAndNotification(t *testing.T) {
	h := NewPingHandler(setupService(t), slog.Default())

	rec := call(h.Send, relative, "POST", "/api/pings", "", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("send status = %d, body %s", rec.Code, rec.Body.String())
	}
	p := decode[model.Ping](t, rec)
	if p.ToRole != model.RoleSenior {
		t.Errorf("to_role = %s, want senior", p.ToRole)
	}

	rec = call(h.Current, senior, "GET", "/api/notifications/current", "", "")
	cur := decode[coordination.Snapshot[*model.Ping]](t, rec)
	if cur.Data == nil || cur.Data.ID != p.ID {
		t.Fatalf("current = %+v, want ping %s", cur.Data, p.ID)
	}

	// The sender never sees their own ping.
	rec = call(h.Current, relative, "GET", "/api/notifications/current", "", "")
	cur = decode[coordination.Snapshot[*model.Ping]](t, rec)
	if cur.Data != nil {
		t.Errorf("sender notified of own ping: %+v", cur.Data)
	}

	rec = call(h.Dismiss, senior, "POST", "/api/notifications/current/dismiss", "", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("dismiss status = %d", rec.Code)
	}
	rec = call(h.Current, senior, "GET", "/api/notifications/current", "", "")
	cur = decode[coordination.Snapshot[*model.Ping]](t, rec)
	if cur.Data != nil {
		t.Errorf("dismissed ping still current: %+v", cur.Data)
	}

	rec = call(h.Activity, senior, "GET", "/api/activity", "", "")
	feed := decode[coordination.Snapshot[[]model.Activity]](t, rec)
	if len(feed.Data) == 0 {
		t.Error("expected ping in activity feed")
	}
}

func TestSendPingInvalidRole(t *testing.T) {
	h := NewPingHandler(setupService(t), slog.Default())
	rec := call(h.Send, relative, "POST", "/api/pings", `{"to_role":"doctor"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestPuzzleFlow(t *testing.T) {
	h := NewPuzzleHandler(setupService(t), slog.Default())

	rec := call(h.Today, senior, "GET", "/api/puzzle?locale=en-US", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("today status = %d", rec.Code)
	}
	view := decode[coordination.PuzzleView](t, rec)
	if view.Language != "en" || len(view.Items) == 0 {
		t.Fatalf("view = %+v", view)
	}

	item := view.Items[0]
	body, _ := json.Marshal(map[string]any{
		"word_id":    item.WordID,
		"locale":     "en-US",
		"is_correct": true,
	})
	rec = call(h.Submit, senior, "POST", "/api/puzzle/answers", string(body), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body %s", rec.Code, rec.Body.String())
	}

	res := decode[map[string]any](t, rec)
	if res["new_score"] != float64(1) {
		t.Errorf("new_score = %v, want 1", res["new_score"])
	}

	rec = call(h.Submit, senior, "POST", "/api/puzzle/answers", `{"word_id":"missing","answer":"cat"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown word status = %d, want 400", rec.Code)
	}

	rec = call(h.Leaderboard, senior, "GET", "/api/puzzle/leaderboard", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("leaderboard status = %d", rec.Code)
	}
}
