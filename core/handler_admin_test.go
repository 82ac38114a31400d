package core

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/caasmo/balancescale/db"
	"github.com/caasmo/balancescale/db/mock"
	"github.com/caasmo/balancescale/router"
)

// adminRouter registers the admin endpoints so the path parameters reach the
// handlers the same way they do in production.
func adminRouter(app *App) *router.Router {
	r := router.New()
	r.Register(
		router.NewRoute("PUT /api/admin/users/:id/role").WithHandlerFunc(app.SetRoleHandler),
		router.NewRoute("PUT /api/admin/users/:id/active").WithHandlerFunc(app.SetActiveHandler),
	)
	return r
}

func TestSetRoleHandler(t *testing.T) {
	testCases := []struct {
		name        string
		target      string
		contentType string
		requestBody string
		dbSetup     func(*mock.Db)
		wantStatus  int
		wantCode    string
	}{
		{
			name:        "successful role change",
			target:      "/api/admin/users/42/role",
			contentType: "application/json",
			requestBody: `{"role":"teacher"}`,
			dbSetup: func(m *mock.Db) {
				m.UpdateRoleFunc = func(userID int64, role string) (*db.User, error) {
					if userID != 42 {
						t.Errorf("expected user id 42, got %d", userID)
					}
					if role != db.RoleTeacher {
						t.Errorf("expected role %q, got %q", db.RoleTeacher, role)
					}
					return &db.User{ID: userID, Email: "t@example.com", Role: role, Active: true}, nil
				}
			},
			wantStatus: http.StatusOK,
			wantCode:   CodeOkRoleUpdated,
		},
		{
			name:        "invalid content type",
			target:      "/api/admin/users/42/role",
			contentType: "text/plain",
			requestBody: `{"role":"teacher"}`,
			dbSetup:     func(m *mock.Db) {},
			wantStatus:  http.StatusUnsupportedMediaType,
			wantCode:    CodeErrorInvalidContentType,
		},
		{
			name:        "non-numeric user id",
			target:      "/api/admin/users/abc/role",
			contentType: "application/json",
			requestBody: `{"role":"teacher"}`,
			dbSetup:     func(m *mock.Db) {},
			wantStatus:  http.StatusBadRequest,
			wantCode:    CodeErrorInvalidRequest,
		},
		{
			name:        "unknown role is rejected",
			target:      "/api/admin/users/42/role",
			contentType: "application/json",
			requestBody: `{"role":"wizard"}`,
			dbSetup: func(m *mock.Db) {
				m.UpdateRoleFunc = func(userID int64, role string) (*db.User, error) {
					t.Fatal("store must not be reached with an invalid role")
					return nil, nil
				}
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeErrorInvalidRole,
		},
		{
			name:        "user not found",
			target:      "/api/admin/users/99999/role",
			contentType: "application/json",
			requestBody: `{"role":"student"}`,
			dbSetup: func(m *mock.Db) {
				m.UpdateRoleFunc = func(userID int64, role string) (*db.User, error) {
					return nil, db.ErrUserNotFound
				}
			},
			wantStatus: http.StatusNotFound,
			wantCode:   CodeErrorNotFound,
		},
		{
			name:        "database failure",
			target:      "/api/admin/users/42/role",
			contentType: "application/json",
			requestBody: `{"role":"student"}`,
			dbSetup: func(m *mock.Db) {
				m.UpdateRoleFunc = func(userID int64, role string) (*db.User, error) {
					return nil, errors.New("db connection failed")
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeErrorAuthDatabaseError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("PUT", tc.target, strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", tc.contentType)
			rr := httptest.NewRecorder()

			mockDb := &mock.Db{}
			tc.dbSetup(mockDb)

			app := newTestApp(t, mockDb)
			adminRouter(app).ServeHTTP(rr, req)

			body := checkResponse(t, rr, tc.wantStatus, tc.wantCode)

			if tc.wantStatus == http.StatusOK {
				data, ok := body["data"].(map[string]interface{})
				if !ok {
					t.Fatal("expected 'data' field in successful response")
				}
				if data["role"] != db.RoleTeacher {
					t.Errorf("expected updated role %q, got %v", db.RoleTeacher, data["role"])
				}
			}
		})
	}
}

func TestSetActiveHandler(t *testing.T) {
	testCases := []struct {
		name        string
		target      string
		requestBody string
		dbSetup     func(*mock.Db)
		wantStatus  int
		wantCode    string
	}{
		{
			name:        "deactivate account",
			target:      "/api/admin/users/42/active",
			requestBody: `{"active":false}`,
			dbSetup: func(m *mock.Db) {
				m.SetActiveFunc = func(userID int64, active bool) error {
					if userID != 42 {
						t.Errorf("expected user id 42, got %d", userID)
					}
					if active {
						t.Error("expected deactivation")
					}
					return nil
				}
			},
			wantStatus: http.StatusOK,
			wantCode:   CodeOkActiveUpdated,
		},
		{
			name:        "reactivate account",
			target:      "/api/admin/users/42/active",
			requestBody: `{"active":true}`,
			dbSetup: func(m *mock.Db) {
				m.SetActiveFunc = func(userID int64, active bool) error {
					return nil
				}
			},
			wantStatus: http.StatusOK,
			wantCode:   CodeOkActiveUpdated,
		},
		{
			name:        "missing active field",
			target:      "/api/admin/users/42/active",
			requestBody: `{}`,
			dbSetup:     func(m *mock.Db) {},
			wantStatus:  http.StatusBadRequest,
			wantCode:    CodeErrorInvalidRequest,
		},
		{
			name:        "user not found",
			target:      "/api/admin/users/99999/active",
			requestBody: `{"active":false}`,
			dbSetup: func(m *mock.Db) {
				m.SetActiveFunc = func(userID int64, active bool) error {
					return db.ErrUserNotFound
				}
			},
			wantStatus: http.StatusNotFound,
			wantCode:   CodeErrorNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("PUT", tc.target, strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			mockDb := &mock.Db{}
			tc.dbSetup(mockDb)

			app := newTestApp(t, mockDb)
			adminRouter(app).ServeHTTP(rr, req)

			checkResponse(t, rr, tc.wantStatus, tc.wantCode)
		})
	}
}
