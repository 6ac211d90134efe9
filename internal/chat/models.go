package chat

import "time"

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

type Session struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(26);index;not null" json:"-"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Model     string    `gorm:"type:varchar(64);not null" json:"model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Session) TableName() string { return "chat_sessions" }

type Message struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string `gorm:"type:varchar(64);index;not null" json:"session_id"`
	Sender    string `gorm:"type:varchar(16);not null" json:"sender"`
	Content   string `gorm:"type:text;not null" json:"content"`
}

func (Message) TableName() string { return "chat_messages" }

// Exchange is one user prompt with its bot reply as rendered to clients.
// A stored message fills exactly one side; the other side stays empty.
type Exchange struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

type SessionWithMessages struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Model    string     `json:"model"`
	Messages []Exchange `json:"messages"`
}
