package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"questionnaire-api/internal/model"
)

func TestGetUserRoundTrip(t *testing.T) {
	user := &model.User{ID: primitive.NewObjectID(), Name: "ישראל"}
	ctx := WithUser(context.Background(), user)

	assert.Equal(t, user, GetUser(ctx))
	assert.Nil(t, GetUser(context.Background()))
}

func TestRequireAdmin(t *testing.T) {
	mw := NewAuthMiddleware(nil)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name   string
		user   *model.User
		status int
	}{
		{"admin passes", &model.User{IsAdmin: true}, http.StatusOK},
		{"plain account rejected", &model.User{}, http.StatusUnauthorized},
		{"missing account rejected", nil, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/template", nil)
			if tc.user != nil {
				req = req.WithContext(WithUser(req.Context(), tc.user))
			}

			rec := httptest.NewRecorder()
			mw.RequireAdmin(next).ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)

			if tc.status == http.StatusUnauthorized {
				assert.JSONEq(t, `{"message":"No authorized as an admin"}`, rec.Body.String())
			}
		})
	}
}

func TestRequireAuthWithoutCookie(t *testing.T) {
	mw := NewAuthMiddleware(nil)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/questionnaire/user", nil)
	rec := httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"No authorized, please login"}`, rec.Body.String())
}
