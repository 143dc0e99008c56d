package shared

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/freshguard/internal/constants"
	"github.com/freshguard/internal/http/response"

	"github.com/gin-gonic/gin"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func statusCodeOf(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var body struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal failed: %v body=%s", err, w.Body.String())
	}
	return body.StatusCode
}

func TestContextIDAcceptsSupportedTypes(t *testing.T) {
	for _, value := range []interface{}{uint(7), uint64(7), 7} {
		c, _ := newTestContext()
		c.Set(constants.ContextKeyStoreID, value)
		id, err := ContextID(c, constants.ContextKeyStoreID)
		if err != nil || id != 7 {
			t.Fatalf("value %T want 7 got %d err=%v", value, id, err)
		}
	}
}

func TestRequireContextIDMissingIsUnauthorized(t *testing.T) {
	for _, value := range []interface{}{nil, uint(0)} {
		c, w := newTestContext()
		if value != nil {
			c.Set(constants.ContextKeyUserID, value)
		}
		if _, ok := RequireContextID(c, constants.ContextKeyUserID, "error.user_id_invalid"); ok {
			t.Fatalf("value %v should be rejected", value)
		}
		if got := statusCodeOf(t, w); got != response.CodeUnauthorized {
			t.Fatalf("value %v want 401 got %d", value, got)
		}
	}
}

func TestRequireContextIDWrongTypeIsInternal(t *testing.T) {
	for _, value := range []interface{}{"7", -1, 7.0} {
		c, w := newTestContext()
		c.Set(constants.ContextKeyUserID, value)
		if _, ok := RequireContextID(c, constants.ContextKeyUserID, "error.user_id_invalid"); ok {
			t.Fatalf("value %v should be rejected", value)
		}
		if got := statusCodeOf(t, w); got != response.CodeInternal {
			t.Fatalf("value %v want 500 got %d", value, got)
		}
	}
}
