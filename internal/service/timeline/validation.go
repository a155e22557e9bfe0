package timeline

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"tlstory/internal/config"
	"tlstory/internal/domain"
	models "tlstory/internal/domain/models/timeline"
	"tlstory/internal/domain/schema"
	svc "tlstory/internal/domain/services/timeline"
)

// urlColumns are bounded by MaxURLLength instead of MaxTextLength.
var urlColumns = map[string]bool{
	"media_url":       true,
	"media_thumbnail": true,
	"media_link":      true,
	"background_url":  true,
}

// prepareFields decodes a request body against table and validates it. On
// create every required column must be supplied.
func prepareFields(table *schema.Table, fields svc.Fields, create bool) (schema.Assignments, error) {
	values, err := table.Assignments(fields)
	if err != nil {
		return nil, err
	}

	if headline, ok := values.Get(schema.ColHeadline); ok {
		values = values.Set(schema.ColHeadline, strings.TrimSpace(headline.(string)))
	}

	if err := validateAssignments(table, values, create); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return values, nil
}

// validateAssignments checks required columns and text bounds
func validateAssignments(table *schema.Table, values schema.Assignments, create bool) error {
	errs := validation.Errors{}

	if create {
		for _, col := range table.RequiredColumns() {
			if !values.Has(col) {
				errs[col] = validation.ErrRequired
			}
		}
	}

	for _, as := range values {
		f, _ := table.Field(as.Column)
		if f.Kind != schema.KindText {
			continue
		}
		switch {
		case as.Column == schema.ColHeadline:
			errs[as.Column] = validation.Validate(as.Value,
				validation.Required,
				validation.Length(1, config.MaxHeadlineLength),
			)
		case urlColumns[as.Column]:
			errs[as.Column] = validation.Validate(as.Value, validation.Length(0, config.MaxURLLength))
		default:
			errs[as.Column] = validation.Validate(as.Value, validation.Length(0, config.MaxTextLength))
		}
	}

	return errs.Filter()
}

// validateConfigRequest validates a config update request
func validateConfigRequest(req *svc.UpdateConfigRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.TitleHeadline, validation.Length(0, config.MaxHeadlineLength)),
		validation.Field(&req.TitleText, validation.Length(0, config.MaxTextLength)),
		validation.Field(&req.Scale,
			validation.NilOrNotEmpty,
			validation.In(scaleValues()...),
		),
	)
}

func scaleValues() []any {
	out := make([]any, len(models.Scales))
	for i, s := range models.Scales {
		out[i] = s
	}
	return out
}
