// Package response writes the JSON envelope every endpoint answers with.
package response

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/AnshRaj112/vidtube-backend/pkg/apierror"
)

// Envelope is {statusCode, data, message, success}. Error responses carry no data.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// JSON writes a success envelope. data should be non-nil; use an empty map
// for endpoints with nothing to return.
func JSON(w http.ResponseWriter, status int, data interface{}, message string) {
	write(w, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}

// Error writes err as an error envelope. Server-side failures are logged with
// their cause; the client only sees the generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := apierror.From(err)
	if apiErr.Status >= http.StatusInternalServerError {
		log.Printf("ERROR [%s %s] %v", r.Method, r.URL.Path, err)
	}
	write(w, Envelope{
		StatusCode: apiErr.Status,
		Message:    apiErr.Message,
		Success:    false,
	})
}

func write(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.StatusCode)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Printf("ERROR [response.write] encoding response: %v", err)
	}
}

// Empty is the data payload for endpoints that return nothing.
func Empty() map[string]interface{} {
	return map[string]interface{}{}
}
