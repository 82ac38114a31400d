package core

import (
	"net/http"
	"strconv"

	"github.com/caasmo/balancescale/db"
)

// This file defines the standardized response format for authentication
// endpoints: login, registration, federated login and token refresh all
// return the same shape.
//
// Example:
//
//	{
//	  "status": 200,
//	  "code": "ok_authentication",
//	  "message": "Authentication successful",
//	  "data": {
//	    "token_type": "Bearer",
//	    "access_token": "eyJhbGciOiJIUzI...",
//	    "expires_in": 2700,
//	    "record": {
//	      "id": "42",
//	      "email": "user@example.com",
//	      "name": "Jane Doe",
//	      "role": "student",
//	      "auth_provider": "local",
//	      "verified": true
//	    }
//	  }
//	}
const CodeOkAuthentication = "ok_authentication"

// AuthRecord represents the user record in authentication responses
type AuthRecord struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	AuthProvider string `json:"auth_provider"`
	Verified     bool   `json:"verified"`
}

// AuthData represents the authentication response structure
type AuthData struct {
	TokenType   string     `json:"token_type"`
	AccessToken string     `json:"access_token"`
	ExpiresIn   int        `json:"expires_in"`
	Record      AuthRecord `json:"record"`
}

func newAuthRecord(user *db.User) AuthRecord {
	return AuthRecord{
		ID:           strconv.FormatInt(user.ID, 10),
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		AuthProvider: user.AuthProvider,
		Verified:     user.Verified,
	}
}

// writeAuthResponse writes a standardized authentication response
func writeAuthResponse(w http.ResponseWriter, token string, expiresIn int, user *db.User) {
	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkAuthentication,
			Message: "Authentication successful",
		},
		Data: AuthData{
			TokenType:   "Bearer",
			AccessToken: token,
			ExpiresIn:   expiresIn,
			Record:      newAuthRecord(user),
		},
	}
	writeJsonWithData(w, response)
}
