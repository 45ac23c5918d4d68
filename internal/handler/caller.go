package handler

import (
	"fmt"
	"net/http"
	"strings"

	"projectboard/internal/domain"
	"projectboard/internal/httputil"
)

// resolveCaller reconciles the userId sent in a body with the identity the
// auth middleware verified. Without a token the body value is used as is.
// With a token an empty body value is filled in and a different one is refused.
func resolveCaller(r *http.Request, bodyUserID string) (string, error) {
	bodyUserID = strings.TrimSpace(bodyUserID)

	verified := httputil.GetUserID(r)
	if verified == "" {
		return bodyUserID, nil
	}
	if bodyUserID == "" {
		return verified, nil
	}
	if bodyUserID != verified {
		return "", fmt.Errorf("userId does not match the authenticated user: %w", domain.ErrForbidden)
	}
	return verified, nil
}
