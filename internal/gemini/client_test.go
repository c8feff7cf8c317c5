package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func candidateBody(t *testing.T, text string) string {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func newTestClient(srv *httptest.Server) *Client {
	c := NewClient("test-key", "test-model")
	c.baseURL = srv.URL
	return c
}

func TestClient_Discover(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		text     string
		wantErr  bool
		wantMood string
	}{
		{
			name:     "plain JSON",
			status:   http.StatusOK,
			text:     `{"mood_summary":"late night drive","songs":[{"title":"Nightcall","artist":"Kavinsky"}]}`,
			wantMood: "late night drive",
		},
		{
			name:     "fenced JSON",
			status:   http.StatusOK,
			text:     "```json\n{\"mood_summary\":\"rainy\",\"songs\":[]}\n```",
			wantMood: "rainy",
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			text:    "",
			wantErr: true,
		},
		{
			name:    "empty candidate",
			status:  http.StatusOK,
			text:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRequest generateRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					w.WriteHeader(http.StatusMethodNotAllowed)
					return
				}
				if r.URL.Query().Get("key") != "test-key" {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				if tt.status == http.StatusOK {
					_, _ = w.Write([]byte(candidateBody(t, tt.text)))
				} else {
					_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
				}
			}))
			defer srv.Close()

			got, err := newTestClient(srv).Discover(context.Background(), "driving at night", nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected err=%v, got %v", tt.wantErr, err)
			}
			if tt.wantErr {
				return
			}
			if got.MoodSummary != tt.wantMood {
				t.Fatalf("expected mood %q, got %q", tt.wantMood, got.MoodSummary)
			}
			if len(gotRequest.Contents) != 1 || len(gotRequest.Contents[0].Parts) != 2 {
				t.Fatalf("unexpected request shape: %+v", gotRequest.Contents)
			}
			if gotRequest.GenerationConfig.Temperature != 2.0 {
				t.Fatalf("expected temperature 2.0, got %v", gotRequest.GenerationConfig.Temperature)
			}
		})
	}
}

func TestClient_Discover_ContextSongs(t *testing.T) {
	var gotRequest generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotRequest)
		_, _ = w.Write([]byte(candidateBody(t, `{"mood_summary":"x","songs":[]}`)))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Discover(context.Background(), "more like this", []string{"Song A - Artist A"})
	if err != nil {
		t.Fatal(err)
	}
	if len(gotRequest.Contents[0].Parts) != 3 {
		t.Fatalf("expected 3 prompt parts with context songs, got %d", len(gotRequest.Contents[0].Parts))
	}
}

func TestClient_Roast_RetriesAndRepairs(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch calls {
		case 1:
			w.WriteHeader(http.StatusBadGateway)
		case 2:
			// truncated JSON, repairable
			_, _ = w.Write([]byte(candidateBody(t, `{"persona": "Sad Indie Poet", "roast": "First. Second. Thi`)))
		default:
			t.Fatalf("unexpected extra call %d", calls)
		}
	}))
	defer srv.Close()

	got, err := newTestClient(srv).Roast(context.Background(), RoastInput{
		TopTracks:   []string{"Track - Artist"},
		TopArtists:  []string{"Artist"},
		TopGenres:   []string{"indie"},
		AvgFeatures: map[string]float64{"energy": 0.4},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Persona != "Sad Indie Poet" {
		t.Fatalf("expected repaired persona, got %q", got.Persona)
	}
	if got.Roast == "" {
		t.Fatal("expected repaired roast text")
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestClient_Roast_FailsAfterAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(candidateBody(t, "not json at all")))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Roast(context.Background(), RoastInput{})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Fatalf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRepairRoast(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantOK  bool
		persona string
	}{
		{
			name:    "truncated roast string",
			in:      `{"persona": "Gym Bro", "roast": "One. Two. Thr`,
			wantOK:  true,
			persona: "Gym Bro",
		},
		{
			name:   "missing persona",
			in:     `{"roast": "One. Two. Three."}`,
			wantOK: false,
		},
		{
			name:   "garbage",
			in:     "nope",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := repairRoast(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if ok && got.Persona != tt.persona {
				t.Fatalf("expected persona %q, got %q", tt.persona, got.Persona)
			}
		})
	}
}
