package constants

import (
	"github.com/go-playground/form"
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	LoggerKey    ContextKey = "logger"
	RequestIDKey ContextKey = "requestID"
)

var (
	Validate    = validator.New(validator.WithRequiredStructEnabled())
	FormDecoder = form.NewDecoder()
)
