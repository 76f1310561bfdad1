package event

const AccountCreatedDestination string = "account_created"

type AccountCreatedMessage struct {
	EventID   int64  `json:"event_id"`
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}
