package generator

import "errors"

// ErrAuth marks a credential rejection from the generative service. It is
// fatal for the session until the credential is fixed; callers must not
// retry. Every other Generate failure is transient and may be retried with
// the same prompt.
var ErrAuth = errors.New("generator: credential rejected")

// IsAuth reports whether err is a credential rejection.
func IsAuth(err error) bool {
	return errors.Is(err, ErrAuth)
}

// AuthStatus reports whether an HTTP status from a provider means the
// credential itself was rejected. Backends use it to decide whether to
// wrap ErrAuth.
func AuthStatus(code int) bool {
	return code == 401 || code == 403
}
