package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rogerio-castellano/ges-stock/internal/account"
	"github.com/rogerio-castellano/ges-stock/internal/auth"
	"github.com/rogerio-castellano/ges-stock/internal/inventory"
	"github.com/rogerio-castellano/ges-stock/internal/repo"
	"go.uber.org/zap"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func respond(w http.ResponseWriter, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		log.Error("failed to write JSON response", zap.Error(err))
	}
}

// writeError maps service errors to a status code. Unexpected errors are
// logged and reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var verrs inventory.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		respond(w, http.StatusBadRequest, verrs)
	case errors.Is(err, repo.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrCategoryNotFound):
		http.Error(w, "category not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, inventory.ErrUnauthenticated), errors.Is(err, account.ErrUnauthenticated):
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
	case errors.Is(err, inventory.ErrInvalidCSV):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error("could not "+action,
			zap.String("owner_id", auth.OwnerID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		http.Error(w, "could not "+action, http.StatusInternalServerError)
	}
}

func parseFloatPtr(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseIntPtr(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// pageParams reads offset and limit from the query string.
func pageParams(r *http.Request) (offset, limit *int, errs inventory.ValidationErrors) {
	q := r.URL.Query()

	offset, err := parseIntPtr(q.Get("offset"))
	if err != nil {
		errs = append(errs, inventory.ValidationError{Field: "offset", Description: "Offset must be a number"})
	} else if offset != nil && *offset < 0 {
		errs = append(errs, inventory.ValidationError{Field: "offset", Description: "Offset must be zero or positive"})
	}

	limit, err = parseIntPtr(q.Get("limit"))
	if err != nil {
		errs = append(errs, inventory.ValidationError{Field: "limit", Description: "Limit must be a number"})
	} else if limit != nil && *limit <= 0 {
		errs = append(errs, inventory.ValidationError{Field: "limit", Description: "Limit must be greater than zero"})
	}
	return offset, limit, errs
}
