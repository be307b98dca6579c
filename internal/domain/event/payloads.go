package event

type PayloadRefreshedPayload struct {
	Scenario string
	Text     string
}

type FieldsRefreshedPayload struct {
	Scenario string
	Fields   map[string]any
}

type RequestQueuedPayload struct {
	RequestID string
	Profile   string
	Endpoint  string
}

type ResponseReceivedPayload struct {
	RequestID   string
	StatusCode  int
	Class       string
	DurationMs  int64
	Body        string
	RedirectURL string
}

type RequestFailedPayload struct {
	RequestID string
	Attempt   int
	Reason    string
	Final     bool
}
