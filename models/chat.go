package models

// ChatMessage is ephemeral: the client keeps conversation state locally and
// nothing here is persisted.
type ChatMessage struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

const (
	SenderUser = "user"
	SenderBot  = "bot"
)
