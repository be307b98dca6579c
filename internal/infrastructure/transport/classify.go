package transport

// Outcome classes attached to events and history entries.
const (
	ClassSuccess          = "success"
	ClassClientError      = "client-error"
	ClassServerError      = "server-error"
	ClassOther            = "other"
	ClassTransportFailure = "transport-failure"
)

// Classify maps an HTTP status to its outcome class.
func Classify(status int) string {
	switch {
	case status >= 200 && status < 300:
		return ClassSuccess
	case status >= 400 && status < 500:
		return ClassClientError
	case status >= 500 && status < 600:
		return ClassServerError
	}
	return ClassOther
}
