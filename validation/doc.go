// Package validation validates request payloads with struct tags and
// reports failures as VALIDATION_FAILED application errors.
//
//	type credentials struct {
//	    Username string `json:"username" validate:"required"`
//	    Password string `json:"password" validate:"required,max=72"`
//	}
//
//	var req credentials
//	if err := validation.BindJSON(c, &req); err != nil {
//	    server.RespondWithError(c, err)
//	    return
//	}
package validation
