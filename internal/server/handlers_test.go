package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/jonathan/resume-optimizer/internal/types"
)

const plainResume = "John Doe\njohn@x.com\n555-123-4567\nEXPERIENCE\nSoftware Engineer | Acme\n- Built a tool used by 500 users"

func sampleResume() *types.Resume {
	r := types.NewResume()
	r.FullName = "John Doe"
	r.Email = "john@x.com"
	r.Phone = "555-123-4567"
	r.Summary = "Backend engineer who likes Python"
	r.Experience = []types.Experience{{
		Title:   "Software Engineer",
		Company: "Acme",
		Bullets: []string{"responsible for the team's deployment pipeline"},
	}}
	r.TechnicalSkills = "Python"
	return r
}

func jobKeywords() types.KeywordSet {
	ks := types.NewKeywordSet()
	ks.Technical = []string{"Python", "Docker", "AWS"}
	ks.Soft = []string{"Leadership"}
	ks.All = []string{"Python", "Docker", "AWS", "Leadership"}
	return ks
}

func multipartUpload(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleExtractKeywords(t *testing.T) {
	s := newTestServer(t, Config{})

	t.Run("extracts categorized keywords", func(t *testing.T) {
		rr := doJSON(t, s.Handler(), http.MethodPost, "/api/extract-keywords",
			map[string]string{"jobDescription": "We need Python and Docker experience. Strong leadership skills. 5+ years experience."})

		require.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, true, body["success"])
		keywords := body["keywords"].(map[string]any)
		assert.Contains(t, keywords["technical"], "Python")
		assert.Contains(t, keywords["technical"], "Docker")
		assert.Contains(t, keywords["soft"], "Leadership")
		assert.Contains(t, keywords["experience"], "5")
	})

	t.Run("empty body yields empty keyword set", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/extract-keywords", http.NoBody)
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		keywords := decodeBody(t, rr)["keywords"].(map[string]any)
		assert.Equal(t, []any{}, keywords["all"])
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/extract-keywords", strings.NewReader("{not json"))
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Invalid JSON body", body["error"])
	})
}

func TestHandleCalculateScore(t *testing.T) {
	s := newTestServer(t, Config{})

	rr := doJSON(t, s.Handler(), http.MethodPost, "/api/calculate-score", types.ScoreRequest{
		ResumeData:  sampleResume(),
		JobKeywords: jobKeywords(),
	})

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["success"])
	score := body["score"].(map[string]any)
	overall := score["overall"].(float64)
	assert.GreaterOrEqual(t, overall, 0.0)
	assert.LessOrEqual(t, overall, 100.0)
	assert.Contains(t, score, "breakdown")
	assert.Contains(t, score, "label")
}

func TestHandleCalculateScore_MissingResume(t *testing.T) {
	s := newTestServer(t, Config{})

	rr := doJSON(t, s.Handler(), http.MethodPost, "/api/calculate-score", map[string]any{})

	require.Equal(t, http.StatusOK, rr.Code)
	score := decodeBody(t, rr)["score"].(map[string]any)
	assert.Equal(t, "Poor", score["label"])
}

func TestHandleOptimizeResume(t *testing.T) {
	store := &memoryStore{}
	s := newTestServer(t, Config{Analyzer: pipeline.New(pipeline.Options{Store: store})})

	rr := doJSON(t, s.Handler(), http.MethodPost, "/api/optimize-resume", types.ScoreRequest{
		ResumeData:  sampleResume(),
		JobKeywords: jobKeywords(),
	})

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["success"])

	optimized := body["optimizedResume"].(map[string]any)
	assert.Contains(t, optimized["technicalSkills"], "Docker")
	assert.NotEmpty(t, optimized["changes"])
	assert.Contains(t, optimized, "optimizedAt")

	comparison := body["comparison"].(map[string]any)
	score := body["score"].(map[string]any)
	assert.Equal(t, score["overall"], comparison["afterScore"])

	require.Len(t, store.analyses, 1)
	assert.Equal(t, store.analyses[0].ID.String(), body["analysisId"])
}

func TestHandleOptimizeResume_KeepsContactAndDateFields(t *testing.T) {
	s := newTestServer(t, Config{})
	payload := `{
		"resumeData": {
			"fullName": "Jane Roe",
			"location": "Austin, TX",
			"linkedin": "linkedin.com/in/janeroe",
			"portfolio": "janeroe.dev",
			"summary": "Engineer",
			"experience": [{"title": "SRE", "company": "Acme", "location": "Remote",
				"startDate": "2020-01", "endDate": "Present", "bullets": ["Kept the lights on for the payments team"]}],
			"education": [{"degree": "BS", "school": "UT", "location": "Austin", "graduationDate": "2019", "gpa": "3.8"}],
			"projects": [{"name": "gobot", "description": "CLI", "technologies": "Go", "link": "github.com/janeroe/gobot"}]
		},
		"jobKeywords": {"technical": ["Go"], "soft": [], "all": ["Go"]}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/optimize-resume", strings.NewReader(payload))
	rr := httptest.NewRecorder()

	s.Handler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	optimized := decodeBody(t, rr)["optimizedResume"].(map[string]any)
	assert.Equal(t, "Austin, TX", optimized["location"])
	assert.Equal(t, "linkedin.com/in/janeroe", optimized["linkedin"])
	assert.Equal(t, "janeroe.dev", optimized["portfolio"])

	exp := optimized["experience"].([]any)[0].(map[string]any)
	assert.Equal(t, "Remote", exp["location"])
	assert.Equal(t, "2020-01", exp["startDate"])
	assert.Equal(t, "Present", exp["endDate"])

	edu := optimized["education"].([]any)[0].(map[string]any)
	assert.Equal(t, "Austin", edu["location"])
	assert.Equal(t, "3.8", edu["gpa"])

	proj := optimized["projects"].([]any)[0].(map[string]any)
	assert.Equal(t, "github.com/janeroe/gobot", proj["link"])
}

func TestHandleOptimizeResume_NoStoreOmitsAnalysisID(t *testing.T) {
	s := newTestServer(t, Config{})

	rr := doJSON(t, s.Handler(), http.MethodPost, "/api/optimize-resume", types.ScoreRequest{JobKeywords: jobKeywords()})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, decodeBody(t, rr), "analysisId")
}

func TestHandleOptimizeResumeStream(t *testing.T) {
	s := newTestServer(t, Config{})

	rr := doJSON(t, s.Handler(), http.MethodPost, "/api/optimize-resume/stream", types.ScoreRequest{
		ResumeData:  sampleResume(),
		JobKeywords: jobKeywords(),
	})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))

	out := rr.Body.String()
	assert.Contains(t, out, "event: progress\n")
	assert.Contains(t, out, `"step":"optimize"`)
	assert.Contains(t, out, `"step":"score"`)
	assert.Contains(t, out, "event: complete\n")
	assert.Less(t, strings.Index(out, `"step":"optimize"`), strings.Index(out, "event: complete"))
	assert.NotContains(t, out, "event: error")
}

func TestHandleResumeVariations(t *testing.T) {
	s := newTestServer(t, Config{})

	t.Run("returns scored variations", func(t *testing.T) {
		rr := doJSON(t, s.Handler(), http.MethodPost, "/api/resume-variations", types.VariationsRequest{
			ResumeData:  sampleResume(),
			JobKeywords: jobKeywords(),
			Count:       2,
		})

		require.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, true, body["success"])
		variations := body["variations"].([]any)
		require.Len(t, variations, 2)

		second := variations[1].(map[string]any)
		assert.Equal(t, float64(2), second["variationIndex"])
		assert.Contains(t, second, "score")
		assert.Contains(t, second, "changes")
		assert.Equal(t, "John Doe", second["fullName"])
	})

	t.Run("default count", func(t *testing.T) {
		rr := doJSON(t, s.Handler(), http.MethodPost, "/api/resume-variations", map[string]any{})

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decodeBody(t, rr)["variations"], 3)
	})

	t.Run("count too large", func(t *testing.T) {
		rr := doJSON(t, s.Handler(), http.MethodPost, "/api/resume-variations", map[string]any{"count": 11})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "count must be between 0 and 10", decodeBody(t, rr)["error"])
	})
}

func TestHandleUploadResume(t *testing.T) {
	s := newTestServer(t, Config{})

	t.Run("txt upload is parsed", func(t *testing.T) {
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, multipartUpload(t, "file", "resume.txt", []byte(plainResume)))

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		body := decodeBody(t, rr)
		assert.Equal(t, true, body["success"])
		parsed := body["parsedResume"].(map[string]any)
		assert.Equal(t, "John Doe", parsed["fullName"])
		assert.Equal(t, "john@x.com", parsed["email"])
		assert.Equal(t, plainResume, parsed["rawText"])
	})

	t.Run("missing file", func(t *testing.T) {
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, multipartUpload(t, "", "", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "No file uploaded", decodeBody(t, rr)["error"])
	})

	t.Run("not multipart", func(t *testing.T) {
		rr := doJSON(t, s.Handler(), http.MethodPost, "/api/upload-resume", map[string]string{"file": "x"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "No file uploaded", decodeBody(t, rr)["error"])
	})

	t.Run("invalid extension", func(t *testing.T) {
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, multipartUpload(t, "file", "resume.xlsx", []byte("data")))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Invalid file type. Allowed types: doc, docx, pdf, txt", body["error"])
	})

	t.Run("undecodable pdf", func(t *testing.T) {
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, multipartUpload(t, "file", "resume.pdf", []byte("not a pdf")))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, false, body["success"])
		assert.NotEmpty(t, body["error"])
	})
}

func TestHandleUploadResume_TooLarge(t *testing.T) {
	s := newTestServer(t, Config{MaxUploadBytes: 512})

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, multipartUpload(t, "file", "resume.txt", bytes.Repeat([]byte("a"), 4096)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, false, decodeBody(t, rr)["success"])
}

func TestHandleParseText(t *testing.T) {
	s := newTestServer(t, Config{})

	t.Run("parses text", func(t *testing.T) {
		rr := doJSON(t, s.Handler(), http.MethodPost, "/api/parse-text", map[string]string{"text": plainResume})

		require.Equal(t, http.StatusOK, rr.Code)
		parsed := decodeBody(t, rr)["parsedResume"].(map[string]any)
		assert.Equal(t, "John Doe", parsed["fullName"])
		experience := parsed["experience"].([]any)
		require.Len(t, experience, 1)
	})

	t.Run("empty text", func(t *testing.T) {
		rr := doJSON(t, s.Handler(), http.MethodPost, "/api/parse-text", map[string]string{"text": ""})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "No text provided", decodeBody(t, rr)["error"])
	})

	t.Run("missing text", func(t *testing.T) {
		rr := doJSON(t, s.Handler(), http.MethodPost, "/api/parse-text", nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "No text provided", decodeBody(t, rr)["error"])
	})
}

func TestHandleSuggestions(t *testing.T) {
	s := newTestServer(t, Config{})

	rr := doJSON(t, s.Handler(), http.MethodPost, "/api/suggestions", types.SuggestionsRequest{
		ResumeSkills: []string{"python"},
		JobKeywords:  jobKeywords(),
	})

	require.Equal(t, http.StatusOK, rr.Code)
	suggestions := decodeBody(t, rr)["suggestions"].([]any)
	skills := make([]string, 0, len(suggestions))
	for _, sg := range suggestions {
		skills = append(skills, sg.(map[string]any)["skill"].(string))
	}
	assert.NotContains(t, skills, "Python")
	assert.Contains(t, skills, "Docker")
	assert.Contains(t, skills, "Leadership")
}

func TestHandleMatch(t *testing.T) {
	s := newTestServer(t, Config{})

	rr := doJSON(t, s.Handler(), http.MethodPost, "/api/match", types.ScoreRequest{
		ResumeData:  sampleResume(),
		JobKeywords: jobKeywords(),
	})

	require.Equal(t, http.StatusOK, rr.Code)
	matches := decodeBody(t, rr)["matches"].(map[string]any)
	assert.Contains(t, matches["matched"], "Python")
	assert.Contains(t, matches["missing"], "Docker")
}

func TestHandleAnalyses(t *testing.T) {
	store := &memoryStore{}
	s := newTestServer(t, Config{Analyzer: pipeline.New(pipeline.Options{Store: store})})

	for range 3 {
		rr := doJSON(t, s.Handler(), http.MethodPost, "/api/optimize-resume", types.ScoreRequest{
			ResumeData:  sampleResume(),
			JobKeywords: jobKeywords(),
		})
		require.Equal(t, http.StatusOK, rr.Code)
	}
	require.Len(t, store.analyses, 3)

	t.Run("get by id", func(t *testing.T) {
		id := store.analyses[0].ID.String()
		rr := doJSON(t, s.Handler(), http.MethodGet, "/api/analyses/"+id, nil)

		require.Equal(t, http.StatusOK, rr.Code)
		analysis := decodeBody(t, rr)["analysis"].(map[string]any)
		assert.Equal(t, id, analysis["id"])
	})

	t.Run("unknown id", func(t *testing.T) {
		rr := doJSON(t, s.Handler(), http.MethodGet, "/api/analyses/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rr := doJSON(t, s.Handler(), http.MethodGet, "/api/analyses/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid analysis ID", decodeBody(t, rr)["error"])
	})

	t.Run("list with limit", func(t *testing.T) {
		rr := doJSON(t, s.Handler(), http.MethodGet, "/api/analyses?limit=2", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		analyses := decodeBody(t, rr)["analyses"].([]any)
		require.Len(t, analyses, 2)
		assert.Equal(t, store.analyses[2].ID.String(), analyses[0].(map[string]any)["id"])
	})

	t.Run("bad limit", func(t *testing.T) {
		rr := doJSON(t, s.Handler(), http.MethodGet, "/api/analyses?limit=-1", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleAnalyses_StoreDisabled(t *testing.T) {
	s := newTestServer(t, Config{})

	rr := doJSON(t, s.Handler(), http.MethodGet, "/api/analyses/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, pipeline.ErrStoreDisabled.Error(), decodeBody(t, rr)["error"])

	rr = doJSON(t, s.Handler(), http.MethodGet, "/api/analyses", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
