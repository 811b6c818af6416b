package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/example/go-piglatin/internal/dictionary"
	"github.com/example/go-piglatin/internal/piglatin"
	"github.com/example/go-piglatin/internal/server"
	"github.com/example/go-piglatin/internal/testutil"
)

func newTestTranslator(t *testing.T, words ...string) *piglatin.Translator {
	t.Helper()

	tr, err := piglatin.New(dictionary.New(words...))
	if err != nil {
		t.Fatalf("piglatin.New: %v", err)
	}
	return tr
}

func newTestHandler(t *testing.T, opts ...server.Option) http.Handler {
	t.Helper()
	return server.NewHandler(newTestTranslator(t, "pig", "latin", "dog"), opts...)
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

type decodeBody struct {
	Text       string `json:"text"`
	Unresolved int    `json:"unresolved"`
	Words      []struct {
		Input      string `json:"input"`
		Output     string `json:"output"`
		Outcome    string `json:"outcome"`
		Candidates []struct {
			Word         string `json:"word"`
			InDictionary bool   `json:"in_dictionary"`
			Capitalized  bool   `json:"capitalized"`
		} `json:"candidates"`
	} `json:"words"`
}

// ---------------------------------------------------------------------------
// GET /health
// ---------------------------------------------------------------------------

func TestHealth_Returns200WithStatusOK(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	var body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
		Words   int    `json:"words"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if body.Status != "ok" {
		t.Errorf("want status=ok, got %q", body.Status)
	}
	if body.Version == "" {
		t.Error("want version field in response")
	}
	if body.Words != 3 {
		t.Errorf("want words=3, got %d", body.Words)
	}
}

// ---------------------------------------------------------------------------
// POST /encode
// ---------------------------------------------------------------------------

func TestEncode_TranslatesText(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/encode", `{"text":"pig latin, eat!"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got, want := body["text"], "igpay atinlay, eatyay!"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestEncode_MultiLine(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/encode", `{"text":"pig\nlatin"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	var body map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if got, want := body["text"], "igpay\natinlay"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestEncode_RequestSeparators(t *testing.T) {
	h := newTestHandler(t)

	for _, seps := range []string{`["/"]`, `["slash"]`} {
		rec := postJSON(t, h, "/encode", `{"text":"pig/latin","separators":`+seps+`}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("separators %s: want 200, got %d", seps, rec.Code)
		}

		var body map[string]string
		_ = json.NewDecoder(rec.Body).Decode(&body)
		if got, want := body["text"], "igpay/atinlay"; got != want {
			t.Errorf("separators %s: text = %q, want %q", seps, got, want)
		}
	}
}

func TestEncode_InvalidSeparatorRejected(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/encode", `{"text":"pig","separators":["ab"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}

	var body map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body["error"] == "" {
		t.Error("want non-empty error field")
	}
}

func TestEncode_NormalizeUnicode(t *testing.T) {
	decomposed := "{\"text\":\"u\u0308ber\"}"

	plain := postJSON(t, newTestHandler(t), "/encode", decomposed)
	nfc := postJSON(t, newTestHandler(t, server.WithNormalizeUnicode(true)), "/encode", decomposed)

	var plainBody, nfcBody map[string]string
	_ = json.NewDecoder(plain.Body).Decode(&plainBody)
	_ = json.NewDecoder(nfc.Body).Decode(&nfcBody)

	if got, want := plainBody["text"], "u\u0308beryay"; got != want {
		t.Errorf("without NFC: text = %q, want %q", got, want)
	}
	if got, want := nfcBody["text"], "er\u00fcbay"; got != want {
		t.Errorf("with NFC: text = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// POST /decode
// ---------------------------------------------------------------------------

func TestDecode_Paragraph(t *testing.T) {
	h := server.NewHandler(newTestTranslator(t, testutil.ParagraphWords()...))

	body, err := json.Marshal(map[string]string{"text": testutil.ParagraphPigLatin})
	if err != nil {
		t.Fatal(err)
	}
	rec := postJSON(t, h, "/decode", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	var got decodeBody
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Text != testutil.ParagraphEnglish {
		t.Errorf("text = %q\nwant %q", got.Text, testutil.ParagraphEnglish)
	}
	if got.Unresolved != 0 {
		t.Errorf("unresolved = %d, want 0", got.Unresolved)
	}
	for _, w := range got.Words {
		if len(w.Candidates) != 0 {
			t.Fatalf("candidates reported without explain: %+v", w)
		}
	}
}

func TestDecode_WordResults(t *testing.T) {
	h := server.NewHandler(newTestTranslator(t, "pig"))

	rec := postJSON(t, h, "/decode", `{"text":"igpay ogday hello"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	var got decodeBody
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if want := "pig {ogday} hello"; got.Text != want {
		t.Errorf("text = %q, want %q", got.Text, want)
	}
	if got.Unresolved != 1 {
		t.Errorf("unresolved = %d, want 1", got.Unresolved)
	}
	if len(got.Words) != 3 {
		t.Fatalf("want 3 words, got %d", len(got.Words))
	}

	wantOutcomes := []string{"decoded", "unresolved", "unchanged"}
	for i, w := range got.Words {
		if w.Outcome != wantOutcomes[i] {
			t.Errorf("word %d (%q): outcome = %q, want %q", i, w.Input, w.Outcome, wantOutcomes[i])
		}
	}
	if got.Words[0].Output != "pig" {
		t.Errorf("word 0 output = %q, want pig", got.Words[0].Output)
	}
}

func TestDecode_Explain(t *testing.T) {
	h := server.NewHandler(newTestTranslator(t, "dog"))

	rec := postJSON(t, h, "/decode", `{"text":"ogday","explain":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	var got decodeBody
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got.Words) != 1 {
		t.Fatalf("want 1 word, got %d", len(got.Words))
	}

	cands := got.Words[0].Candidates
	if len(cands) != 2 {
		t.Fatalf("want 2 candidates, got %+v", cands)
	}
	if cands[0].Word != "gdo" || cands[0].InDictionary {
		t.Errorf("candidate 0 = %+v, want gdo not in dictionary", cands[0])
	}
	if cands[1].Word != "dog" || !cands[1].InDictionary {
		t.Errorf("candidate 1 = %+v, want dog in dictionary", cands[1])
	}
}

func TestDecode_EmptyWordsIsArray(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/decode", `{"text":"   "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"words":[]`)) {
		t.Errorf("want empty words array, got %s", rec.Body)
	}
}

// ---------------------------------------------------------------------------
// Request validation
// ---------------------------------------------------------------------------

func TestTranslate_RejectsBadRequests(t *testing.T) {
	h := newTestHandler(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"encode GET", http.MethodGet, "/encode", "", http.StatusMethodNotAllowed},
		{"decode GET", http.MethodGet, "/decode", "", http.StatusMethodNotAllowed},
		{"encode bad JSON", http.MethodPost, "/encode", "{not json", http.StatusBadRequest},
		{"decode bad JSON", http.MethodPost, "/decode", "[]", http.StatusBadRequest},
		{"encode empty text", http.MethodPost, "/encode", `{"text":""}`, http.StatusBadRequest},
		{"decode missing text", http.MethodPost, "/decode", `{}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
			h.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("want %d, got %d", tc.want, rec.Code)
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body["error"] == "" {
				t.Error("want non-empty error field")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// GET /lookup
// ---------------------------------------------------------------------------

func TestLookup(t *testing.T) {
	h := newTestHandler(t)

	cases := []struct {
		word  string
		known bool
	}{
		{"pig", true},
		{"Pig", false},
		{"cat", false},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/lookup?word="+tc.word, nil)
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: want 200, got %d", tc.word, rec.Code)
		}

		var body struct {
			Word  string `json:"word"`
			Known bool   `json:"known"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Word != tc.word || body.Known != tc.known {
			t.Errorf("lookup %q = %+v, want known=%v", tc.word, body, tc.known)
		}
	}
}

func TestLookup_Errors(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lookup", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing word: want 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/lookup?word=pig", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST: want 405, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// CORS
// ---------------------------------------------------------------------------

func TestCORS_AllowedOrigin(t *testing.T) {
	h := newTestHandler(t, server.WithCORSOrigins([]string{"*"}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := newTestHandler(t, server.WithCORSOrigins([]string{"http://example.com"}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/encode", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want http://example.com", got)
	}
}

func TestCORS_DisabledWithoutOrigins(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// Request IDs
// ---------------------------------------------------------------------------

func TestRequestID_GeneratedWhenMissing(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	id := rec.Header().Get("X-Request-ID")
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("X-Request-ID = %q, want a UUID: %v", id, err)
	}
}

func TestRequestID_EchoesCaller(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}
