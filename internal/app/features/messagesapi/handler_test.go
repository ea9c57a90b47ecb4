package messagesapi

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dimondcastle/cms/internal/app/store/ratelimit"
	"github.com/dimondcastle/cms/internal/domain/models"
	"github.com/dimondcastle/cms/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, maxAttempts int) (*Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	limiter := ratelimit.New(db, maxAttempts, 15*time.Minute, time.Hour)
	return NewHandler(db, limiter, zap.NewNop()), db
}

func submission() map[string]any {
	return map[string]any{
		"name":    "Aisha Rahman",
		"email":   "aisha@example.com",
		"phone":   "+966500000000",
		"subject": "Fleet inquiry",
		"body":    "We would like a quote for monthly transport.",
	}
}

func TestSubmit(t *testing.T) {
	h, _ := newTestHandler(t, 5)
	public := PublicRoutes(h)

	t.Run("returns a reference", func(t *testing.T) {
		rec := testutil.NewRecorder()
		public.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", submission()))
		rec.AssertStatus(t, http.StatusCreated)

		var resp struct {
			Reference string `json:"reference"`
		}
		rec.DecodeJSON(t, &resp)
		if resp.Reference == "" {
			t.Error("submission returned empty reference")
		}
	})

	t.Run("missing body rejected", func(t *testing.T) {
		body := submission()
		delete(body, "body")
		rec := testutil.NewRecorder()
		public.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", body))
		rec.AssertStatus(t, http.StatusBadRequest)
	})

	t.Run("bad email rejected", func(t *testing.T) {
		body := submission()
		body["email"] = "not-an-email"
		rec := testutil.NewRecorder()
		public.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", body))
		rec.AssertStatus(t, http.StatusBadRequest)

		var resp struct {
			Fields map[string]string `json:"fields"`
		}
		rec.DecodeJSON(t, &resp)
		if resp.Fields["email"] == "" {
			t.Errorf("expected email field error, got %+v", resp.Fields)
		}
	})
}

func TestSubmit_RateLimited(t *testing.T) {
	h, _ := newTestHandler(t, 2)
	public := PublicRoutes(h)

	send := func() *testutil.ResponseRecorder {
		rec := testutil.NewRecorder()
		req := testutil.NewJSONRequest(t, http.MethodPost, "/", submission())
		req.RemoteAddr = "203.0.113.9:4567"
		public.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := send(); rec.Code != http.StatusCreated {
			t.Fatalf("submission %d status = %d, body %s", i+1, rec.Code, rec.Body.String())
		}
	}

	rec := send()
	rec.AssertStatus(t, http.StatusTooManyRequests)
	if rec.Header().Get("Retry-After") == "" {
		t.Error("429 response missing Retry-After header")
	}
}

func TestAdminList(t *testing.T) {
	h, _ := newTestHandler(t, 100)
	public := PublicRoutes(h)
	admin := AdminRoutes(h)

	for i := 0; i < 3; i++ {
		body := submission()
		body["subject"] = fmt.Sprintf("Inquiry %d", i)
		rec := testutil.NewRecorder()
		public.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", body))
		rec.AssertStatus(t, http.StatusCreated)
	}

	rec := testutil.NewRecorder()
	admin.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Items []models.ContactMessage `json:"items"`
		Total int64                   `json:"total"`
	}
	rec.DecodeJSON(t, &resp)
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Total)
	}
	for _, m := range resp.Items {
		if m.Seen || m.Resolved {
			t.Errorf("new message has flags set: %+v", m)
		}
		if m.Reference == "" {
			t.Error("stored message missing reference")
		}
	}
}

func TestAdminFlags(t *testing.T) {
	h, _ := newTestHandler(t, 100)
	public := PublicRoutes(h)
	admin := AdminRoutes(h)

	rec := testutil.NewRecorder()
	public.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", submission()))
	rec.AssertStatus(t, http.StatusCreated)

	rec = testutil.NewRecorder()
	admin.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	var list struct {
		Items []models.ContactMessage `json:"items"`
	}
	rec.DecodeJSON(t, &list)
	if len(list.Items) != 1 {
		t.Fatalf("expected 1 message, got %d", len(list.Items))
	}
	id := list.Items[0].ID.Hex()

	t.Run("mark seen", func(t *testing.T) {
		rec := testutil.NewRecorder()
		admin.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPatch, "/"+id, map[string]any{"seen": true}))
		rec.AssertStatus(t, http.StatusOK)

		var msg models.ContactMessage
		rec.DecodeJSON(t, &msg)
		if !msg.Seen {
			t.Error("message not marked seen")
		}
		if msg.Resolved {
			t.Error("resolved changed by seen-only patch")
		}
	})

	t.Run("empty patch rejected", func(t *testing.T) {
		rec := testutil.NewRecorder()
		admin.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPatch, "/"+id, map[string]any{}))
		rec.AssertStatus(t, http.StatusBadRequest)
	})

	t.Run("delete", func(t *testing.T) {
		rec := testutil.NewRecorder()
		admin.ServeHTTP(rec, testutil.NewRequest(http.MethodDelete, "/"+id))
		rec.AssertStatus(t, http.StatusNoContent)

		rec = testutil.NewRecorder()
		admin.ServeHTTP(rec, testutil.NewRequest(http.MethodDelete, "/"+id))
		rec.AssertStatus(t, http.StatusNotFound)
	})
}
