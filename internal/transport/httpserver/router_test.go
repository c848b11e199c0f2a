package httpserver

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	registrydomain "qr-manager-go/internal/domain/registry"
	reportsdomain "qr-manager-go/internal/domain/reports"
	"qr-manager-go/internal/repository/inmemory"
	"qr-manager-go/internal/transport/httpserver/handler"
	"qr-manager-go/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := inmemory.NewStore()
	photos := inmemory.NewPhotoStore()
	log := logger.New(io.Discard, slog.LevelError, "text")

	registryService := registrydomain.NewService(store, photos, registrydomain.Config{TimeZone: "UTC"})
	reportsService := reportsdomain.NewService(store, reportsdomain.Config{})

	srv := httptest.NewServer(NewRouter(handler.New(registryService, reportsService, log)))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return decoded
}

func TestVisitCodeFlow(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/register-code", map[string]any{
		"house_number":  25,
		"condominio":    "Unica",
		"visitor_name":  "Ana",
		"resident_name": "Luis",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%v)", resp.StatusCode, body)
	}
	code, _ := body["code"].(string)
	if len(code) != 6 {
		t.Fatalf("expected 6-char code, got %q", code)
	}
	if body["status"] != "ACTIVE" || body["house"] != "25" {
		t.Fatalf("unexpected register response %v", body)
	}

	resp, body = postJSON(t, srv.URL+"/api/validate-qr", map[string]any{"code": code})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("validate: expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if body["status"] != "VALIDATED" || body["visitor_name"] != "Ana" || body["house"] != "25" {
		t.Fatalf("unexpected validate response %v", body)
	}

	// Second use is denied without revealing the code ever existed.
	resp, body = postJSON(t, srv.URL+"/api/validate-qr", map[string]any{"code": code})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("revalidate: expected 200, got %d", resp.StatusCode)
	}
	if body["status"] != "DENIED" || body["reason"] != "NOT_FOUND" {
		t.Fatalf("expected DENIED/NOT_FOUND on reuse, got %v", body)
	}

	resp, err := http.Get(srv.URL + "/api/get-history?house_number=25&condominio=Unica")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history: expected 200, got %d", resp.StatusCode)
	}
	var entries []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(entries) != 1 || entries[0]["code"] != code || entries[0]["status"] != "VALIDATED" {
		t.Fatalf("unexpected history %v", entries)
	}

	countersResp, err := http.Get(srv.URL + "/api/counters")
	if err != nil {
		t.Fatalf("counters: %v", err)
	}
	counters := decodeBody(t, countersResp)
	if counters["generated"] != float64(1) || counters["validated"] != float64(1) || counters["denied"] != float64(0) {
		t.Fatalf("unexpected counters %v", counters)
	}
}

func TestRegisterCodeInvalidHouse(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/register-code", map[string]any{
		"house_number": 101,
		"condominio":   "Unica",
		"visitor_name": "Ana",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	errBody, _ := body["error"].(map[string]any)
	if errBody["code"] != "invalid_house" {
		t.Fatalf("expected invalid_house error, got %v", body)
	}
}

func TestRegisterCodeAcceptsStringHouse(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/register-code", map[string]any{
		"house_number": "administración",
		"condominio":   "Unica",
		"visitor_name": "Ana",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", resp.StatusCode, body)
	}
	if body["house"] != "administración" {
		t.Fatalf("expected canonical admin house, got %v", body["house"])
	}
}

func TestValidateRequiresCode(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/validate-qr", map[string]any{"code": "  "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%v)", resp.StatusCode, body)
	}
}

func TestRegisterWorkerWithPhoto(t *testing.T) {
	srv := newTestServer(t)

	photo := base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8, 0xff})
	resp, body := postJSON(t, srv.URL+"/api/register-worker", map[string]any{
		"house_number": 12,
		"condominio":   "Unica",
		"worker_name":  "Pedro",
		"worker_type":  "Plomería",
		"photo_base64": "data:image/jpeg;base64," + photo,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", resp.StatusCode, body)
	}
	if body["status"] != "REGISTERED" || body["worker_name"] != "Pedro" {
		t.Fatalf("unexpected worker response %v", body)
	}
	photoURL, _ := body["photo_url"].(string)
	if photoURL == "" {
		t.Fatalf("expected a photo url in %v", body)
	}

	// Worker rows never show up in the code counters.
	countersResp, err := http.Get(srv.URL + "/api/counters")
	if err != nil {
		t.Fatalf("counters: %v", err)
	}
	counters := decodeBody(t, countersResp)
	if counters["generated"] != float64(0) {
		t.Fatalf("expected worker rows excluded from counters, got %v", counters)
	}
}

func TestRegisterWorkerRejectsBadPhoto(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/register-worker", map[string]any{
		"house_number": 12,
		"condominio":   "Unica",
		"worker_name":  "Pedro",
		"photo_base64": "%%%not-base64%%%",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%v)", resp.StatusCode, body)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	body := decodeBody(t, resp)
	if resp.StatusCode != http.StatusOK || body["status"] != "healthy" {
		t.Fatalf("unexpected health response %d %v", resp.StatusCode, body)
	}
	if body["service"] != "qr-manager-backend" {
		t.Fatalf("unexpected service name %v", body["service"])
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
