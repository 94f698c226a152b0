package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/storeadmin/internal/identity"
	obslogger "github.com/smallbiznis/storeadmin/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/storeadmin/internal/observability/metrics"
	"github.com/smallbiznis/storeadmin/internal/resource"
	"go.uber.org/zap"
)

var (
	ErrInvalidRequest = resource.Invalid("Invalid request body")
)

// Read operations; only create, update and delete feed the mutation counters.
const (
	opList resource.Operation = "list"
	opGet  resource.Operation = "get"
)

const (
	msgUnauthenticated = "Unauthenticated"
	msgForbidden       = "Unauthorized"
	msgInternal        = "Internal error"
)

// ErrorHandlingMiddleware renders the last handler error as a plain text body and
// records the outcome of mutating requests.
func ErrorHandlingMiddleware(m *obsmetrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		res, op := c.GetString(obslogger.KeyResource), c.GetString(obslogger.KeyOperation)
		ctx := c.Request.Context()

		lastErr := c.Errors.Last()
		if lastErr == nil {
			if res != "" && isMutation(op) {
				m.RecordMutation(ctx, res, op, obsmetrics.OutcomeOK)
			}
			return
		}

		status, message, outcome := mapError(lastErr.Err)
		if res != "" {
			if isMutation(op) {
				m.RecordMutation(ctx, res, op, outcome)
			}
			switch outcome {
			case obsmetrics.OutcomeDenied, obsmetrics.OutcomeUnauthorized:
				m.RecordDenied(ctx, res, outcome)
			case obsmetrics.OutcomeBlocked:
				var conflict *resource.ConflictError
				if errors.As(lastErr.Err, &conflict) && conflict.Dependent != "" {
					m.RecordBlockedDelete(ctx, res, conflict.Dependent)
				}
			}
		}

		if status == http.StatusInternalServerError {
			obslogger.Operation(obslogger.FromContext(ctx), res, op).
				Error("request failed", zap.Error(lastErr.Err))
		}

		if c.Writer.Written() {
			return
		}
		c.Abort()
		c.String(status, message)
	}
}

// AbortWithError hands err to ErrorHandlingMiddleware and stops the chain.
func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

// operation tags a route with the resource and operation it serves, for error
// logs and mutation metrics.
func operation(res string, op resource.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(obslogger.KeyResource, res)
		c.Set(obslogger.KeyOperation, string(op))
		c.Next()
	}
}

func isMutation(op string) bool {
	switch resource.Operation(op) {
	case resource.OpCreate, resource.OpUpdate, resource.OpDelete:
		return true
	}
	return false
}

func mapError(err error) (int, string, string) {
	if err == nil {
		return http.StatusInternalServerError, msgInternal, obsmetrics.OutcomeInternal
	}

	var (
		validation *resource.ValidationError
		notFound   *resource.NotFoundError
		conflict   *resource.ConflictError
	)
	switch {
	case errors.Is(err, resource.ErrUnauthenticated):
		return http.StatusUnauthorized, msgUnauthenticated, obsmetrics.OutcomeUnauthorized
	case errors.Is(err, resource.ErrForbidden):
		return http.StatusForbidden, msgForbidden, obsmetrics.OutcomeDenied
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Message, obsmetrics.OutcomeInvalid
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Error(), obsmetrics.OutcomeNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict, conflict.Message, obsmetrics.OutcomeBlocked
	default:
		return http.StatusInternalServerError, msgInternal, obsmetrics.OutcomeInternal
	}
}

// classifyErrorForLog feeds error_type and error_code on request log lines.
func classifyErrorForLog(err error) (string, string) {
	status, _, outcome := mapError(err)
	if status == http.StatusInternalServerError {
		return "internal_error", outcome
	}
	return "client_error", outcome
}

// bind decodes the JSON body into dst. An undecodable body is a 401 for an
// anonymous caller and a 400 otherwise.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if _, ok := identity.FromContext(c.Request.Context()); !ok {
			AbortWithError(c, resource.ErrUnauthenticated)
			return false
		}
		AbortWithError(c, ErrInvalidRequest)
		return false
	}
	return true
}
