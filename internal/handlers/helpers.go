package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"adminportal/internal/common"

	"github.com/labstack/echo/v4"
)

// bind decodes the request body into dst. Validation happens in the services.
// A JSON value of the wrong type is reported as a 422 on that field.
func bind(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			verr := common.NewValidationError([]common.FieldError{{Field: typeErr.Field, Message: "Invalid value type"}})
			verr.Err = err
			return verr
		}
		return bindError.WithInternal(err)
	}
	return nil
}

// pathID parses a positive integer route parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, common.NewValidationError([]common.FieldError{{Field: name, Message: "Valid ID required"}})
	}
	return id, nil
}
