package adapthttp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"bodycomp/internal/domain"
)

// formValue accepts a JSON string, number or null so clients can post form
// fields verbatim.
type formValue string

func (v *formValue) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = formValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*v = formValue(n.String())
	return nil
}

type entryForm struct {
	Date   formValue `json:"date"`
	Weight formValue `json:"weight"`
	Waist  formValue `json:"waist"`
	Neck   formValue `json:"neck"`
	Unit   string    `json:"unit"`
}

// raw parses the form leniently: invalid numbers come back as warnings and
// the fields are left empty.
func (f entryForm) raw() (domain.RawEntry, []string, error) {
	units := domain.Units(f.Unit)
	if !units.Valid() {
		return domain.RawEntry{}, nil, domain.NewValidationError(domain.ErrInvalidNumericInput, fmt.Sprintf("unknown unit %q", f.Unit))
	}
	raw, err := domain.ParseRawEntry(string(f.Date), string(f.Weight), string(f.Waist), string(f.Neck), units)
	return raw, warnings(err), nil
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"items": s.entries.List()})

	case http.MethodPost:
		var form entryForm
		if err := parseJSON(r, &form); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		raw, warns, err := form.raw()
		if err != nil {
			writeDomainError(w, err)
			return
		}
		entry, index, err := s.entries.Add(r.Context(), raw)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"entry": entry, "index": index, "warnings": warns})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/entries/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, domain.ErrEntryNotFound)
		return
	}
	if id == "latest" {
		s.handleLatest(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		entry, err := s.entries.Get(id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry})

	case http.MethodPut:
		var form entryForm
		if err := parseJSON(r, &form); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		raw, warns, err := form.raw()
		if err != nil {
			writeDomainError(w, err)
			return
		}
		entry, index, err := s.entries.Update(r.Context(), id, raw)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry, "index": index, "warnings": warns})

	case http.MethodDelete:
		deleted, err := s.entries.Delete(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleLatest feeds the entry form with the most recent measurements.
func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	entry, ok := s.entries.Latest()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"entry": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}
