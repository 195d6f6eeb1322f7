package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"event-scheduler/internal/adapters/storage/sqlite"
	"event-scheduler/internal/router"
)

type profileResp struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	Email    string `json:"email"`
}

type logResp struct {
	Profile *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"profile"`
	Action string `json:"action"`
}

type eventResp struct {
	ID            string        `json:"id"`
	ProfileIDs    []string      `json:"profileIds"`
	Profiles      []profileResp `json:"profiles"`
	Timezone      string        `json:"timezone"`
	StartDateTime string        `json:"startDateTime"`
	EndDateTime   string        `json:"endDateTime"`
	Logs          []logResp     `json:"logs"`
	Revision      int64         `json:"revision"`
}

func TestHTTP_EndToEnd_Memory(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	runScenario(t, ts.URL)
}

func TestHTTP_EndToEnd_SQLite(t *testing.T) {
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	if err := sqlite.EnsureSchema(t.Context(), db); err != nil {
		t.Fatalf("schema: %v", err)
	}

	ts := httptest.NewServer(router.NewRouter(router.Options{DB: db}))
	defer ts.Close()

	runScenario(t, ts.URL)
}

func runScenario(t *testing.T, baseURL string) {
	t.Helper()

	// 1) Perfiles
	ann := createProfile(t, baseURL, map[string]any{"name": "Ann", "timezone": "Tokyo"})
	bob := createProfile(t, baseURL, map[string]any{"name": "Bob", "email": "bob@example.com"})

	if ann.Timezone != "Tokyo" || bob.Timezone != "UTC" {
		t.Fatalf("unexpected timezones ann=%s bob=%s", ann.Timezone, bob.Timezone)
	}

	// 2) Evento en Tokyo: 10:00-12:00 local => 01:00Z-03:00Z
	var ev eventResp
	{
		st, body := doReq(t, baseURL, "POST", "/api/events", "", map[string]any{
			"profiles":      []string{ann.ID},
			"timezone":      "Tokyo",
			"startDateTime": "2025-01-01T10:00",
			"endDateTime":   "2025-01-01T12:00",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create event, got %d body=%s", st, string(body))
		}
		mustDecode(t, body, &ev)
	}
	if ev.StartDateTime != "2025-01-01T01:00:00Z" || ev.EndDateTime != "2025-01-01T03:00:00Z" {
		t.Fatalf("unexpected instants %s - %s", ev.StartDateTime, ev.EndDateTime)
	}
	if len(ev.Profiles) != 1 || ev.Profiles[0].Name != "Ann" {
		t.Fatalf("expected resolved profile Ann, got %#v", ev.Profiles)
	}
	if ev.Logs == nil || len(ev.Logs) != 0 {
		t.Fatalf("expected empty logs array, got %#v", ev.Logs)
	}

	// 3) Update: agregar Bob, quitar Ann (actor por header)
	{
		st, body := doReq(t, baseURL, "PUT", "/api/events/"+ev.ID, ann.ID, map[string]any{
			"addProfiles":    []string{bob.ID},
			"removeProfiles": []string{ann.ID},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
		}
		var updated eventResp
		mustDecode(t, body, &updated)
		if len(updated.ProfileIDs) != 1 || updated.ProfileIDs[0] != bob.ID {
			t.Fatalf("expected only Bob, got %v", updated.ProfileIDs)
		}
		if updated.Revision != 2 {
			t.Fatalf("expected revision 2, got %d", updated.Revision)
		}
	}

	// 4) Update con actor en el body y actor desconocido
	{
		st, body := doReq(t, baseURL, "PUT", "/api/events/"+ev.ID, "", map[string]any{
			"timezone":  "UTC",
			"profileId": "ghost",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 tz update, got %d body=%s", st, string(body))
		}
	}

	// 5) Logs en orden, actor resuelto o null
	{
		st, body := doReq(t, baseURL, "GET", "/api/events/"+ev.ID+"/logs", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 logs, got %d body=%s", st, string(body))
		}
		var logs []logResp
		mustDecode(t, body, &logs)

		want := []string{
			"Added profiles: Bob",
			"Removed profiles: Ann",
			`Updated timezone from "Tokyo" → "UTC"`,
		}
		if len(logs) != len(want) {
			t.Fatalf("expected %d logs, got %d body=%s", len(want), len(logs), string(body))
		}
		for i, w := range want {
			if logs[i].Action != w {
				t.Fatalf("log %d: expected %q, got %q", i, w, logs[i].Action)
			}
		}
		if logs[0].Profile == nil || logs[0].Profile.Name != "Ann" {
			t.Fatalf("expected actor Ann on first log, got %#v", logs[0].Profile)
		}
		if logs[2].Profile != nil {
			t.Fatalf("expected null actor for unknown profile, got %#v", logs[2].Profile)
		}
	}

	// 6) Quitar a todos => 400
	{
		st, body := doReq(t, baseURL, "PUT", "/api/events/"+ev.ID, "", map[string]any{
			"removeProfiles": []string{bob.ID},
		})
		if st != http.StatusBadRequest || !strings.Contains(string(body), "Profiles are required.") {
			t.Fatalf("expected 400 profiles required, got %d body=%s", st, string(body))
		}
	}

	// 7) Errores de validación y 404
	{
		st, body := doReq(t, baseURL, "POST", "/api/events", "", map[string]any{
			"profiles":      []string{},
			"timezone":      "Tokyo",
			"startDateTime": "2025-01-01T10:00",
			"endDateTime":   "2025-01-01T12:00",
		})
		if st != http.StatusBadRequest || !strings.Contains(string(body), "Profiles are required.") {
			t.Fatalf("expected 400 profiles required, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, baseURL, "PUT", "/api/events/"+ev.ID, "", map[string]any{
			"endDateTime": "2025-01-01T00:30",
		})
		if st != http.StatusBadRequest || !strings.Contains(string(body), "End date/time must be after start date/time.") {
			t.Fatalf("expected 400 invalid range, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, baseURL, "PUT", "/api/events/"+ev.ID, "", map[string]any{"timezone": "Atlantis"})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 invalid timezone, got %d", st)
		}
	}
	for _, path := range []string{"/api/events/missing", "/api/events/missing/logs", "/api/events/missing/ics", "/api/profiles/missing"} {
		st, _ := doReq(t, baseURL, "GET", path, "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for %s, got %d", path, st)
		}
	}

	// 8) Listado + iCalendar
	{
		st, body := doReq(t, baseURL, "GET", "/api/events", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d", st)
		}
		var list []eventResp
		mustDecode(t, body, &list)
		if len(list) != 1 || list[0].Timezone != "UTC" {
			t.Fatalf("unexpected list %s", string(body))
		}
	}
	{
		st, body := doReq(t, baseURL, "GET", "/api/events/"+ev.ID+"/ics", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 ics, got %d", st)
		}
		ics := string(body)
		for _, want := range []string{"BEGIN:VCALENDAR", "DTSTART:20250101T010000Z", "mailto:bob@example.com"} {
			if !strings.Contains(ics, want) {
				t.Fatalf("ics missing %q:\n%s", want, ics)
			}
		}
	}
}

func TestHTTP_TimezonesAndHealth(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/api/timezones", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 timezones, got %d", st)
	}
	var zones []struct {
		Label string `json:"label"`
		Zone  string `json:"zone"`
	}
	mustDecode(t, body, &zones)
	found := false
	for _, z := range zones {
		if z.Label == "Tokyo" && z.Zone == "Asia/Tokyo" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Tokyo => Asia/Tokyo in %s", string(body))
	}

	if st, _ := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}
	if st, body := doReq(t, ts.URL, "GET", "/", "", nil); st != http.StatusOK || !strings.Contains(string(body), "Welcome") {
		t.Fatalf("expected welcome, got %d %s", st, string(body))
	}
}

func TestHTTP_CreateProfile_Validation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	cases := []map[string]any{
		{"name": "  "},
		{"name": "Ann", "timezone": "Mars"},
		{"name": "Ann", "email": "not-an-email"},
	}
	for _, payload := range cases {
		st, body := doReq(t, ts.URL, "POST", "/api/profiles", "", payload)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d body=%s", payload, st, string(body))
		}
	}
}

func createProfile(t *testing.T, baseURL string, payload map[string]any) profileResp {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/profiles", "", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create profile, got %d body=%s", st, string(body))
	}

	var resp profileResp
	mustDecode(t, body, &resp)
	if resp.ID == "" {
		t.Fatalf("create profile: missing id body=%s", string(body))
	}
	return resp
}

func mustDecode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path, profileID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if profileID != "" {
		req.Header.Set("X-Profile-ID", profileID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
