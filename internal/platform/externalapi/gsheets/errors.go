package gsheets

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"stock_dashboard/internal/feature/candidates/domain"
)

// classify maps a Google API or transport error onto an IntegrationError.
func classify(op string, err error) *domain.IntegrationError {
	var ie *domain.IntegrationError
	if errors.As(err, &ie) {
		return ie
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		out := &domain.IntegrationError{Op: op, StatusCode: gerr.Code, Cause: err}
		switch {
		case gerr.Code == http.StatusTooManyRequests || hasRateLimitReason(gerr):
			out.Kind = domain.IntegrationQuota
		case gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden:
			out.Kind = domain.IntegrationAuth
		case gerr.Code == http.StatusNotFound:
			out.Kind = domain.IntegrationNotFound
		default:
			out.Kind = domain.IntegrationRemote
		}
		return out
	}

	// Token exchange rejected: bad key, disabled account, clock skew.
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		out := &domain.IntegrationError{Op: op, Kind: domain.IntegrationAuth, Cause: err}
		if rerr.Response != nil {
			out.StatusCode = rerr.Response.StatusCode
		}
		return out
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.IntegrationError{Op: op, Kind: domain.IntegrationTimeout, Cause: err}
	}
	return &domain.IntegrationError{Op: op, Kind: domain.IntegrationNetwork, Cause: err}
}

func hasRateLimitReason(gerr *googleapi.Error) bool {
	for _, item := range gerr.Errors {
		switch item.Reason {
		case "rateLimitExceeded", "userRateLimitExceeded", "quotaExceeded":
			return true
		}
	}
	return false
}
