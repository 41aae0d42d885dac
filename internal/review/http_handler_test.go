package review

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookreview/internal/session"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(t *testing.T) (*http.ServeMux, fixture) {
	t.Helper()
	f := newFixture(t)
	h := NewHTTPHandler(f.svc)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/reviews", h.Create)
	mux.HandleFunc("PUT /api/reviews/{id}", h.Update)
	mux.HandleFunc("DELETE /api/reviews/{id}", h.Delete)
	return mux, f
}

func serve(mux http.Handler, method, path, body, userID string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if userID != "" {
		r = r.WithContext(session.NewContext(r.Context(), session.Session{UserID: userID}))
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body.Error.Code
}

func TestHTTPHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mux, f := newTestMux(t)
		f.books.EXPECT().Exists(gomock.Any(), "b1").Return(true, nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *Review) error {
			r.ID = "r1"
			return nil
		})
		f.ratings.EXPECT().Recompute(gomock.Any(), "b1").Return(5.0, nil)

		w := serve(mux, http.MethodPost, "/api/reviews", `{"book_id":"b1","rating":5,"review_text":"Loved it"}`, "u1")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"r1"`)
	})

	t.Run("anonymous", func(t *testing.T) {
		mux, _ := newTestMux(t)
		w := serve(mux, http.MethodPost, "/api/reviews", `{"book_id":"b1","rating":5,"review_text":"x"}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		mux, f := newTestMux(t)
		f.books.EXPECT().Exists(gomock.Any(), "b1").Return(true, nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ErrDuplicate)

		w := serve(mux, http.MethodPost, "/api/reviews", `{"book_id":"b1","rating":3,"review_text":"again"}`, "u1")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "DUPLICATE_REVIEW", errorCode(t, w))
	})

	t.Run("malformed body", func(t *testing.T) {
		mux, _ := newTestMux(t)
		w := serve(mux, http.MethodPost, "/api/reviews", `{"book_id":`, "u1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_UpdateAndDelete(t *testing.T) {
	existing := Review{ID: "r1", BookID: "b1", UserID: "u1", Rating: 2, Text: "meh"}

	t.Run("author updates", func(t *testing.T) {
		mux, f := newTestMux(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "r1").Return(existing, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.ratings.EXPECT().Recompute(gomock.Any(), "b1").Return(4.0, nil)

		w := serve(mux, http.MethodPut, "/api/reviews/r1", `{"rating":4}`, "u1")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"rating":4`)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		mux, f := newTestMux(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "r1").Return(existing, nil)

		w := serve(mux, http.MethodPut, "/api/reviews/r1", `{"rating":4}`, "u9")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("author deletes", func(t *testing.T) {
		mux, f := newTestMux(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "r1").Return(existing, nil)
		f.repo.EXPECT().Delete(gomock.Any(), "r1").Return(nil)
		f.ratings.EXPECT().Recompute(gomock.Any(), "b1").Return(0.0, nil)

		w := serve(mux, http.MethodDelete, "/api/reviews/r1", "", "u1")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("missing review", func(t *testing.T) {
		mux, f := newTestMux(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "r404").Return(Review{}, ErrNotFound)

		w := serve(mux, http.MethodDelete, "/api/reviews/r404", "", "u1")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", errorCode(t, w))
	})
}
