package health

import (
	"net/http"
	"testing"

	"github.com/dimondcastle/cms/internal/testutil"
	"go.uber.org/zap"
)

func TestCheck(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := Routes(NewHandler(db.Client(), zap.NewNop()))

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)

	var resp Response
	rec.DecodeJSON(t, &resp)
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if resp.Services["mongodb"] != "ok" {
		t.Errorf("mongodb service = %q, want ok", resp.Services["mongodb"])
	}
}

func TestReadyAndLive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := Routes(NewHandler(db.Client(), zap.NewNop()))

	t.Run("ready", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/ready"))
		rec.AssertStatus(t, http.StatusOK)
	})

	t.Run("live", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/live"))
		rec.AssertStatus(t, http.StatusOK)
	})
}
