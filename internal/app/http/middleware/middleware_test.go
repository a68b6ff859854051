package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// echoBody responds with whatever body reached the handler.
func echoBody(c *gin.Context) {
	b, _ := io.ReadAll(c.Request.Body)
	c.Data(http.StatusOK, gin.MIMEJSON, b)
}

func TestRequireJSON(t *testing.T) {
	r := gin.New()
	r.POST("/", RequireJSON(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	tests := []struct {
		contentType string
		want        int
	}{
		{"application/json", http.StatusNoContent},
		{"application/json; charset=utf-8", http.StatusNoContent},
		{"text/plain", http.StatusBadRequest},
		{"", http.StatusBadRequest},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		if tt.contentType != "" {
			req.Header.Set("Content-Type", tt.contentType)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code, tt.contentType)
	}
}

func TestRejectMarkup_PassesPlainTextThrough(t *testing.T) {
	r := gin.New()
	r.POST("/", RejectMarkup(), echoBody)

	body := `{"title":"Tom & Jerry's \"Cat\"","year":1940,"nested":{"a":"<b>kept</b>"}}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, body, w.Body.String())
}

func TestRejectMarkup_RejectsChangedStrings(t *testing.T) {
	r := gin.New()
	r.POST("/", RejectMarkup(), echoBody)

	tests := map[string]string{
		"tag":           `{"title":"<b>Heat</b>","genre":"Crime"}`,
		"lone bracket":  `{"title":"a<b","genre":"Crime"}`,
		"angle wrapped": `{"title":"<Untitled>","genre":"Crime"}`,
		"entity":        `{"title":"AT&amp;T","genre":"Crime"}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

			require.Equal(t, http.StatusBadRequest, w.Code)
			var got struct {
				Error  string `json:"error"`
				Fields []struct {
					Field string `json:"field"`
				} `json:"fields"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, "Validation failed", got.Error)
			require.Len(t, got.Fields, 1)
			assert.Equal(t, "title", got.Fields[0].Field)
		})
	}
}

func TestRejectMarkup_ReportsEveryField(t *testing.T) {
	r := gin.New()
	r.POST("/", RejectMarkup(), echoBody)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"title":"<i>x</i>","genre":"<p>y</p>","mpaa_rating":"R"}`)))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Validation failed","fields":[
		{"field":"genre","error":"must not contain markup or HTML entities"},
		{"field":"title","error":"must not contain markup or HTML entities"}]}`, w.Body.String())
}

func TestRejectMarkup_RejectsNonObjects(t *testing.T) {
	r := gin.New()
	r.PUT("/", RejectMarkup(), echoBody)

	for _, body := range []string{``, `null`, `[1,2]`, `"text"`, `{"a":`, `{"a":1} trailing`, `{"a":1}{"b":2}`} {
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestRejectMarkup_SkipsReads(t *testing.T) {
	r := gin.New()
	r.GET("/", RejectMarkup(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestID(), RequestLogger(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	wantLevel := map[string]string{"/ok": "info", "/missing": "warn", "/boom": "error"}
	for path, level := range wantLevel {
		buf.Reset()
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
		assert.Equal(t, level, line["level"], path)
		assert.Equal(t, path, line["path"])
		assert.Equal(t, "GET", line["method"])
		assert.NotEmpty(t, line["request_id"])
	}
}
