package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/10-menachi/AirBnB-clone-v3/internal/config"
	"github.com/10-menachi/AirBnB-clone-v3/internal/models"
)

func TestMain(m *testing.M) {
	models.PasswordCost = 4
	os.Exit(m.Run())
}

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	infoLog := log.New(io.Discard, "", 0)
	errorLog := log.New(io.Discard, "", 0)
	storage, err := openStorage(context.Background(), cfg, stdLogger{info: infoLog, err: errorLog})
	if err != nil {
		t.Fatalf("openStorage returned error: %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })
	ts := httptest.NewServer(initializeApp(storage, cfg, errorLog, infoLog).routes())
	t.Cleanup(ts.Close)
	return ts
}

func fileConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.Storage.FilePath = filepath.Join(t.TempDir(), "file.json")
	return cfg
}

func call(t *testing.T, ts *httptest.Server, method, path, body string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("%s %s: expected JSON content type, got %q", method, path, ct)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, data
}

func TestCaliforniaExample(t *testing.T) {
	ts := newTestServer(t, fileConfig(t))

	code, body := call(t, ts, http.MethodPost, "/api/v1/states", `{"name": "California"}`)
	if code != http.StatusCreated {
		t.Fatalf("expected %d, got %d: %s", http.StatusCreated, code, body)
	}
	var state map[string]any
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatal(err)
	}
	id, _ := state["id"].(string)
	if id == "" || state["created_at"] == nil || state["updated_at"] == nil || state["name"] != "California" {
		t.Fatalf("unexpected state %v", state)
	}

	code, body = call(t, ts, http.MethodGet, "/api/v1/states", "")
	if code != http.StatusOK || !strings.Contains(string(body), id) {
		t.Fatalf("state missing from list: %d %s", code, body)
	}

	code, body = call(t, ts, http.MethodDelete, "/api/v1/states/"+id, "")
	if code != http.StatusOK || strings.TrimSpace(string(body)) != "{}" {
		t.Fatalf("unexpected delete response %d %s", code, body)
	}

	code, body = call(t, ts, http.MethodGet, "/api/v1/states/"+id, "")
	if code != http.StatusNotFound {
		t.Fatalf("expected %d, got %d", http.StatusNotFound, code)
	}
	var errBody map[string]string
	if err := json.Unmarshal(body, &errBody); err != nil || errBody["error"] != "Not found" {
		t.Fatalf("unexpected 404 body %s", body)
	}
}

func TestRoutesServeBothMounts(t *testing.T) {
	ts := newTestServer(t, fileConfig(t))
	for _, path := range []string{"/status", "/api/v1/status"} {
		code, body := call(t, ts, http.MethodGet, path, "")
		if code != http.StatusOK || !strings.Contains(string(body), `"OK"`) {
			t.Fatalf("GET %s: %d %s", path, code, body)
		}
	}
	code, body := call(t, ts, http.MethodGet, "/api/v1/nothing-here", "")
	if code != http.StatusNotFound || !strings.Contains(string(body), "Not found") {
		t.Fatalf("unexpected unmatched route response %d %s", code, body)
	}
}

func TestTestEnvResetsStorage(t *testing.T) {
	cfg := fileConfig(t)
	ts := newTestServer(t, cfg)
	if code, _ := call(t, ts, http.MethodPost, "/states", `{"name":"Nevada"}`); code != http.StatusCreated {
		t.Fatalf("expected %d, got %d", http.StatusCreated, code)
	}

	cfg.Env = "test"
	ts = newTestServer(t, cfg)
	_, body := call(t, ts, http.MethodGet, "/stats", "")
	var stats map[string]int
	if err := json.Unmarshal(body, &stats); err != nil {
		t.Fatal(err)
	}
	if stats["states"] != 0 {
		t.Fatalf("expected storage to be reset, got %v", stats)
	}
}

func TestDBStorageOnSQLite(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Type = config.StorageDB
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = "file:" + filepath.Join(t.TempDir(), "hbnb.db")
	ts := newTestServer(t, cfg)

	code, body := call(t, ts, http.MethodPost, "/amenities", `{"name":"Wifi"}`)
	if code != http.StatusCreated {
		t.Fatalf("expected %d, got %d: %s", http.StatusCreated, code, body)
	}
	_, body = call(t, ts, http.MethodGet, "/stats", "")
	if !strings.Contains(string(body), `"amenities":1`) {
		t.Fatalf("unexpected stats %s", body)
	}
}

func TestRecoverPanic(t *testing.T) {
	app := &application{errorLog: log.New(io.Discard, "", 0), infoLog: log.New(io.Discard, "", 0)}
	h := app.recoverPanic(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d, got %d", http.StatusInternalServerError, rr.Code)
	}
}

func decodeObject(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return obj
}

func mustCreate(t *testing.T, ts *httptest.Server, path, body string) map[string]any {
	t.Helper()
	code, data := call(t, ts, http.MethodPost, "/api/v1"+path, body)
	if code != http.StatusCreated {
		t.Fatalf("POST %s: expected %d, got %d: %s", path, http.StatusCreated, code, data)
	}
	return decodeObject(t, data)
}

func TestUpdateAndDeleteEveryResource(t *testing.T) {
	ts := newTestServer(t, fileConfig(t))

	state := mustCreate(t, ts, "/states", `{"name":"California"}`)
	city := mustCreate(t, ts, "/states/"+state["id"].(string)+"/cities", `{"name":"San Francisco"}`)
	user := mustCreate(t, ts, "/users", `{"email":"a@b.c","password":"pwd"}`)
	amenity := mustCreate(t, ts, "/amenities", `{"name":"Wifi"}`)
	place := mustCreate(t, ts, "/cities/"+city["id"].(string)+"/places",
		`{"user_id":"`+user["id"].(string)+`","name":"Loft"}`)
	review := mustCreate(t, ts, "/places/"+place["id"].(string)+"/reviews",
		`{"user_id":"`+user["id"].(string)+`","text":"Great"}`)

	const stale = "2000-01-01T00:00:00.000000"

	// Children first, so each delete leaves the rest of the graph intact.
	tests := []struct {
		resource string
		obj      map[string]any
		field    string
	}{
		{"reviews", review, "text"},
		{"places", place, "name"},
		{"cities", city, "name"},
		{"amenities", amenity, "name"},
		{"users", user, "first_name"},
		{"states", state, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.resource, func(t *testing.T) {
			base := "/api/v1/" + tt.resource
			id := tt.obj["id"].(string)

			for _, method := range []string{http.MethodPut, http.MethodDelete} {
				code, body := call(t, ts, method, base+"/nope", `{"`+tt.field+`":"x"}`)
				if code != http.StatusNotFound {
					t.Fatalf("%s missing: expected %d, got %d", method, http.StatusNotFound, code)
				}
				if got := decodeObject(t, body)["error"]; got != "Not found" {
					t.Fatalf("%s missing: expected %q, got %v", method, "Not found", got)
				}
			}

			code, body := call(t, ts, http.MethodPut, base+"/"+id,
				`{"id":"other","created_at":"`+stale+`","updated_at":"`+stale+`","`+tt.field+`":"Updated"}`)
			if code != http.StatusOK {
				t.Fatalf("PUT: expected %d, got %d: %s", http.StatusOK, code, body)
			}
			updated := decodeObject(t, body)
			if updated["id"] != id {
				t.Fatalf("expected id %s, got %v", id, updated["id"])
			}
			if updated["created_at"] != tt.obj["created_at"] {
				t.Fatalf("expected created_at %v, got %v", tt.obj["created_at"], updated["created_at"])
			}
			if updated["updated_at"] == stale {
				t.Fatalf("updated_at taken from the request body")
			}
			if updated[tt.field] != "Updated" {
				t.Fatalf("expected %s %q, got %v", tt.field, "Updated", updated[tt.field])
			}

			code, body = call(t, ts, http.MethodDelete, base+"/"+id, "")
			if code != http.StatusOK || strings.TrimSpace(string(body)) != "{}" {
				t.Fatalf("DELETE: expected %d {}, got %d %s", http.StatusOK, code, body)
			}
			code, body = call(t, ts, http.MethodGet, base+"/"+id, "")
			if code != http.StatusNotFound {
				t.Fatalf("GET after delete: expected %d, got %d", http.StatusNotFound, code)
			}
			if got := decodeObject(t, body)["error"]; got != "Not found" {
				t.Fatalf("GET after delete: expected %q, got %v", "Not found", got)
			}
		})
	}
}
