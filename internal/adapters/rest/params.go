package rest

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
	"github.com/tlhtlh2211/datavis-project2/internal/core/services"
)

// Query defaults.
const (
	defaultUserRange     = domain.ShortTerm
	defaultAnalysisRange = domain.MediumTerm
	defaultTopN          = 10
)

// snapshotParams identify a stored snapshot. Username is required but the
// filename alone selects the data.
type snapshotParams struct {
	Username string `json:"username" validate:"required"`
	Filename string `json:"filename" validate:"required"`
}

type listParams struct {
	snapshotParams
	Limit int `json:"limit" validate:"min=1,max=50"`
}

type rangeParams struct {
	snapshotParams
	TimeRange string `json:"time_range" validate:"oneof=short_term medium_term long_term"`
}

type rangeListParams struct {
	rangeParams
	Limit int `json:"limit" validate:"min=1,max=50"`
}

type genreParams struct {
	rangeParams
	TopN int `json:"top_n" validate:"min=1"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// check validates params and converts failures into one invalid-argument error.
func (h *Handler) check(params any) error {
	err := h.validate.Struct(params)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%v: %w", err, domain.ErrInvalidArgument)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Field()+" "+friendlyMessage(fe))
	}
	return fmt.Errorf("%s: %w", strings.Join(msgs, "; "), domain.ErrInvalidArgument)
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}

func snapshotQuery(q url.Values) snapshotParams {
	return snapshotParams{Username: q.Get("username"), Filename: q.Get("filename")}
}

func rangeQuery(q url.Values, def domain.TimeRange) rangeParams {
	tr := string(def)
	if q.Has("time_range") {
		tr = q.Get("time_range")
	}
	return rangeParams{snapshotParams: snapshotQuery(q), TimeRange: tr}
}

func intQuery(q url.Values, key string, def int) (int, error) {
	if !q.Has(key) {
		return def, nil
	}
	n, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, domain.ErrInvalidArgument)
	}
	return n, nil
}

func limitQuery(q url.Values) (int, error) {
	return intQuery(q, "limit", services.DefaultLimit)
}
