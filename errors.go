package tokenbucket

import "github.com/zeebo/errs"

// ConfigError is the class of errors returned when a Limiter is built from an
// invalid Limit or Config.
var ConfigError = errs.Class("tokenbucket config")
