package core

import (
	"net/http"
)

const CodeOkUserProfile = "ok_user_profile"

// MeHandler returns the authenticated user's profile.
// Endpoint: GET /api/me
// Authenticated: Yes
func (a *App) MeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeJsonError(w, errorNoAuthHeader)
		return
	}

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkUserProfile,
			Message: "User profile",
		},
		Data: newAuthRecord(user),
	}
	writeJsonWithData(w, response)
}

// HealthHandler reports process liveness.
// Endpoint: GET /api/health
// Authenticated: No
func (a *App) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonOk(w, okHealthy)
}
