package response

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the error envelope. Success bodies carry their payload
// directly.
type APIResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError names a single input field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func Error(w http.ResponseWriter, statusCode int, message string, errDetail string) {
	resp := APIResponse{
		Status:  "error",
		Message: message,
		Error:   errDetail,
	}
	JSON(w, statusCode, resp)
}

// Invalid reports a 400 carrying the full list of per-field failures.
func Invalid(w http.ResponseWriter, fields []FieldError) {
	resp := APIResponse{
		Status:  "error",
		Message: "Validation failed",
		Fields:  fields,
	}
	JSON(w, http.StatusBadRequest, resp)
}
