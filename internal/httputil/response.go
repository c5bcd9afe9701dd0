package httputil

import (
	"encoding/json"
	"net/http"
)

// RespondJSON marshals data before touching the response, so an encoding
// failure still yields a clean 500.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// Problem is an RFC 7807 error body. Fields in Extra are flattened into the
// top-level object next to the standard members.
type Problem struct {
	Type   string
	Title  string
	Status int
	Detail string
	Extra  map[string]interface{}
}

// NewProblem fills Type and Title from the status code
func NewProblem(status int, detail string) Problem {
	return Problem{
		Type:   problemTypes[status],
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// With adds an extension member
func (p Problem) With(key string, value interface{}) Problem {
	extra := make(map[string]interface{}, len(p.Extra)+1)
	for k, v := range p.Extra {
		extra[k] = v
	}
	extra[key] = value
	p.Extra = extra
	return p
}

func (p Problem) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(p.Extra)+4)
	for k, v := range p.Extra {
		m[k] = v
	}

	typ := p.Type
	if typ == "" {
		typ = "about:blank"
	}
	m["type"] = typ
	m["title"] = p.Title
	m["status"] = p.Status
	if p.Detail != "" {
		m["detail"] = p.Detail
	}

	return json.Marshal(m)
}

// RespondError writes a Problem built from status and detail
func RespondError(w http.ResponseWriter, status int, detail string) {
	RespondProblem(w, NewProblem(status, detail))
}

// RespondProblem writes p as application/problem+json
func RespondProblem(w http.ResponseWriter, p Problem) {
	payload, err := json.Marshal(p)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_, _ = w.Write(payload)
}

var problemTypes = map[int]string{
	http.StatusBadRequest:            "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.1",
	http.StatusUnauthorized:          "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.2",
	http.StatusForbidden:             "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.4",
	http.StatusNotFound:              "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.5",
	http.StatusRequestEntityTooLarge: "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.14",
	http.StatusInternalServerError:   "https://datatracker.ietf.org/doc/html/rfc9110#section-15.6.1",
	http.StatusServiceUnavailable:    "https://datatracker.ietf.org/doc/html/rfc9110#section-15.6.4",
}
