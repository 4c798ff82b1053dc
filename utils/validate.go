package utils

import "github.com/go-playground/validator/v10"

// Validate is the shared validator instance for handlers that validate
// inline input structs instead of relying on ctx.ReadJSON.
var Validate = validator.New()
