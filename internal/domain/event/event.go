package event

type Type string

const (
	PayloadRefreshed Type = "PAYLOAD_REFRESHED"
	FieldsRefreshed  Type = "FIELDS_REFRESHED"
	RequestQueued    Type = "REQUEST_QUEUED"
	ResponseReceived Type = "RESPONSE_RECEIVED"
	RequestFailed    Type = "REQUEST_FAILED"
)

type Event struct {
	Type    Type
	Payload any
}
