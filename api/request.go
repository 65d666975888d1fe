package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/genai-portfolio-backend/database"
	"github.com/rpupo63/genai-portfolio-backend/errs"
	"github.com/rpupo63/genai-portfolio-backend/resource"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a single JSON document from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return errs.NewMaxBodySizeExceededError(maxBodyBytes)
		case errors.Is(err, io.EOF):
			return errs.NewBadRequestError("request body is empty")
		default:
			return errs.NewInvalidJSONError(err)
		}
	}
	return nil
}

// pathID parses a uuid path parameter. An id that cannot exist is reported
// as not found, the same as a well-formed id with no record behind it.
func pathID(r *http.Request, param, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, errs.NewNotFound(entity)
	}
	return id, nil
}

// listParams reads limit, skip, sort_by and sort_order from the query string.
func listParams(r *http.Request) (resource.ListParams, error) {
	q := r.URL.Query()
	params := resource.ListParams{
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}

	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 {
			return params, errs.NewInvalidFieldError("limit", "must be a positive integer")
		}
		params.Limit = limit
	}
	if s := q.Get("skip"); s != "" {
		skip, err := strconv.Atoi(s)
		if err != nil || skip < 0 {
			return params, errs.NewInvalidFieldError("skip", "must be a non-negative integer")
		}
		params.Skip = skip
	}
	return params, nil
}

// queryFilter turns the named query parameters into equality conditions.
// A parameter named "tag" matches membership in the tags array instead.
func queryFilter(r *http.Request, columns ...string) database.Filter {
	q := r.URL.Query()
	var filter database.Filter
	for _, column := range columns {
		v := strings.TrimSpace(q.Get(column))
		if v == "" {
			continue
		}
		if column == "tag" {
			filter = append(filter, database.Has("tags", v))
		} else {
			filter = append(filter, database.Eq(column, v))
		}
	}
	return filter
}

func queryBool(r *http.Request, key string, defaultValue bool) (bool, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, errs.NewInvalidFieldError(key, "must be true or false")
	}
	return b, nil
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errs.NewMissingRequiredFieldError(field)
	}
	return value, nil
}

// optionalText trims a patch value and rejects one that is present but blank.
func optionalText(patch database.Patch, field string, value *string) error {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return errs.NewInvalidFieldError(field, "must not be empty")
	}
	patch[field] = trimmed
	return nil
}

func optionalSet[V any](patch database.Patch, field string, value *V) {
	if value != nil {
		patch[field] = *value
	}
}

// enumValue validates a value against its allowed set.
func enumValue[E ~string](field string, value E, valid func(E) bool, allowed []string) error {
	if !valid(value) {
		return errs.NewInvalidEnumError(field, string(value), allowed)
	}
	return nil
}
