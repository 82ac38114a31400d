package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/caasmo/balancescale/db"
	"github.com/julienschmidt/httprouter"
)

const (
	CodeOkRoleUpdated   = "ok_role_updated"
	CodeOkActiveUpdated = "ok_active_updated"
)

func userIDParam(r *http.Request) (int64, bool) {
	params := httprouter.ParamsFromContext(r.Context())
	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// SetRoleHandler assigns a new role to a user.
// Endpoint: PUT /api/admin/users/:id/role
// Authenticated: Yes (admin)
// Allowed Mimetype: application/json
func (a *App) SetRoleHandler(w http.ResponseWriter, r *http.Request) {
	if resp, ok := a.ValidateContentType(r, MimeTypeJSON); !ok {
		writeJsonError(w, resp)
		return
	}

	userID, ok := userIDParam(r)
	if !ok {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	// Only known roles are assignable. Anything else would silently demote
	// the user to level zero.
	if !db.ValidRole(req.Role) {
		writeJsonError(w, errorInvalidRole)
		return
	}

	updated, err := a.DbAuth().UpdateRole(userID, req.Role)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			writeJsonError(w, errorNotFound)
			return
		}
		a.Logger().Error("failed to update role", "user_id", userID, "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	a.Logger().Info("role updated", "user_id", userID, "role", req.Role)

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkRoleUpdated,
			Message: "Role updated",
		},
		Data: newAuthRecord(updated),
	}
	writeJsonWithData(w, response)
}

// SetActiveHandler enables or disables a user account. Disabling locks the
// account out of every authenticated endpoint on the next request.
// Endpoint: PUT /api/admin/users/:id/active
// Authenticated: Yes (admin)
// Allowed Mimetype: application/json
func (a *App) SetActiveHandler(w http.ResponseWriter, r *http.Request) {
	if resp, ok := a.ValidateContentType(r, MimeTypeJSON); !ok {
		writeJsonError(w, resp)
		return
	}

	userID, ok := userIDParam(r)
	if !ok {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	var req struct {
		Active *bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Active == nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if err := a.DbAuth().SetActive(userID, *req.Active); err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			writeJsonError(w, errorNotFound)
			return
		}
		a.Logger().Error("failed to update active flag", "user_id", userID, "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	a.Logger().Info("active flag updated", "user_id", userID, "active", *req.Active)

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkActiveUpdated,
			Message: "Account state updated",
		},
		Data: struct {
			ID     string `json:"id"`
			Active bool   `json:"active"`
		}{
			ID:     strconv.FormatInt(userID, 10),
			Active: *req.Active,
		},
	}
	writeJsonWithData(w, response)
}
