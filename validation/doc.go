// Package validation checks request structs with go-playground/validator
// and reports failures as errors.AppError values with field details.
//
//	type createItemRequest struct {
//	    Name string `json:"name" validate:"required,max=120"`
//	}
//
//	if err := validation.Struct(req); err != nil {
//	    server.RespondWithError(c, err)
//	}
package validation
