package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	pkgErrors "voice-task-board/pkg/errors"
	"voice-task-board/pkg/response"
)

func TestResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("OK", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.OK(c, map[string]string{"foo": "bar"})

		if w.Code != http.StatusOK {
			t.Errorf("expected %d but got %d", http.StatusOK, w.Code)
		}

		var resp response.Resp
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal error: %v", err)
		}
		if resp.ErrorCode != 0 {
			t.Errorf("expected ErrorCode 0, got %d", resp.ErrorCode)
		}
		dMap, ok := resp.Data.(map[string]interface{})
		if !ok || dMap["foo"] != "bar" {
			t.Errorf("unexpected data payload: %v", resp.Data)
		}
	})

	t.Run("Error plain", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.Error(c, errors.New("test err"))

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected %d, got %d", http.StatusBadRequest, w.Code)
		}
		var resp response.Resp
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Message != "test err" {
			t.Errorf("expected message 'test err', got %s", resp.Message)
		}
	})

	t.Run("Error HTTPError", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.Error(c, pkgErrors.NewHTTPError(http.StatusNotFound, "task not found"))

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
		var resp response.Resp
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.ErrorCode != http.StatusNotFound || resp.Message != "task not found" {
			t.Errorf("unexpected body: %+v", resp)
		}
	})

	t.Run("ErrorWithDetails", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.ErrorWithDetails(c, pkgErrors.NewHTTPError(http.StatusInternalServerError, "failed"), "upstream 503")

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", w.Code)
		}
		var resp response.Resp
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Errors != "upstream 503" {
			t.Errorf("expected details, got %v", resp.Errors)
		}
	})

	t.Run("InternalError", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.InternalError(c, errors.New("db crash"))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", w.Code)
		}
	})

	t.Run("TooManyRequests", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.TooManyRequests(c)

		if w.Code != http.StatusTooManyRequests {
			t.Errorf("expected 429, got %d", w.Code)
		}
	})
}
