package auth

import (
	"strconv"
	"strings"

	"mdd-api/pkg/apierror"
)

// ParsePrincipal translates a verified access token's subject claim into a
// user id for downstream handlers.
func ParsePrincipal(subject string) (int64, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return 0, apierror.Unauthorized("not authenticated")
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, apierror.Unauthorized("not authenticated")
	}

	return userID, nil
}
