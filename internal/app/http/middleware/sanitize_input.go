package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"html"
	"io"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// RejectMarkup runs every top-level string field of a JSON object body
// through bluemonday's StrictPolicy and rejects the request with a field
// error when sanitizing would change the value. The body is passed on
// untouched, so accepted text is stored exactly as sent.
func RejectMarkup() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}

		body, err := decodeObject(buf)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		var rejected []string
		for k, v := range body {
			if str, ok := v.(string); ok && html.UnescapeString(policy.Sanitize(str)) != str {
				rejected = append(rejected, k)
			}
		}
		if len(rejected) > 0 {
			sort.Strings(rejected)
			fields := make([]gin.H, 0, len(rejected))
			for _, k := range rejected {
				fields = append(fields, gin.H{"field": k, "error": "must not contain markup or HTML entities"})
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fields})
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(buf))
		c.Request.ContentLength = int64(len(buf))

		c.Next()
	}
}

// decodeObject requires buf to hold exactly one JSON object.
func decodeObject(buf []byte) (map[string]any, error) {
	var body map[string]any
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, errors.New("body is not a JSON object")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("trailing data after JSON object")
	}
	return body, nil
}
