package rest

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ewilliams-labs/soundalike/internal/core/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// listQuery holds the query parameters shared by the list endpoints.
type listQuery struct {
	N             int  `validate:"omitempty,min=1,max=50"`
	PopularityMin *int `validate:"omitempty,min=0,max=100"`
	PopularityMax *int `validate:"omitempty,min=0,max=100"`
	YearMin       *int `validate:"omitempty,min=0,max=9999"`
	YearMax       *int `validate:"omitempty,min=0,max=9999"`
}

var queryParamNames = map[string]string{
	"N":             "n",
	"PopularityMin": "popularity_min",
	"PopularityMax": "popularity_max",
	"YearMin":       "year_min",
	"YearMax":       "year_max",
}

func parseListQuery(values url.Values) (listQuery, error) {
	var q listQuery
	var err error

	if q.N, err = intParam(values, "n"); err != nil {
		return q, err
	}
	if q.PopularityMin, err = optionalIntParam(values, "popularity_min"); err != nil {
		return q, err
	}
	if q.PopularityMax, err = optionalIntParam(values, "popularity_max"); err != nil {
		return q, err
	}
	if q.YearMin, err = optionalIntParam(values, "year_min"); err != nil {
		return q, err
	}
	if q.YearMax, err = optionalIntParam(values, "year_max"); err != nil {
		return q, err
	}

	if err := getValidator().Struct(q); err != nil {
		return q, translateValidation(err)
	}
	return q, nil
}

// Filter builds the filter spec. A range with only one bound gets the
// widest value for the other.
func (q listQuery) Filter() domain.FilterSpec {
	var spec domain.FilterSpec
	if q.PopularityMin != nil || q.PopularityMax != nil {
		spec.Popularity = &domain.Range{Min: deref(q.PopularityMin, 0), Max: deref(q.PopularityMax, 100)}
	}
	if q.YearMin != nil || q.YearMax != nil {
		spec.Year = &domain.Range{Min: deref(q.YearMin, 0), Max: deref(q.YearMax, 9999)}
	}
	return spec
}

func intParam(values url.Values, name string) (int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func optionalIntParam(values url.Values, name string) (*int, error) {
	if strings.TrimSpace(values.Get(name)) == "" {
		return nil, nil
	}
	v, err := intParam(values, name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func translateValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	name := queryParamNames[fe.Field()]
	switch fe.Tag() {
	case "min":
		return fmt.Errorf("%s must be at least %s", name, fe.Param())
	case "max":
		return fmt.Errorf("%s must be at most %s", name, fe.Param())
	default:
		return fmt.Errorf("%s is invalid", name)
	}
}

func deref(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
