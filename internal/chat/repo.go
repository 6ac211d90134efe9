package chat

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) CreateSession(ctx context.Context, s *Session) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Session{}).
		Where("id = ?", s.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("chat: check session: %w", err)
	}
	if count > 0 {
		return ErrDuplicateSession
	}
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return ErrDuplicateSession
	}
	return nil
}

func (r *Repo) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	var s Session
	if err := r.db.WithContext(ctx).First(&s, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("chat: get session: %w", err)
	}
	return &s, nil
}

// ListSessionsWithMessages returns every session owned by the user with its
// messages in insertion order. Each stored row becomes one half-filled
// exchange: a "user" row fills the user side, a "bot" row the bot side.
func (r *Repo) ListSessionsWithMessages(ctx context.Context, userID string) ([]SessionWithMessages, error) {
	var sessions []Session
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("chat: list sessions: %w", err)
	}

	out := make([]SessionWithMessages, 0, len(sessions))
	for _, s := range sessions {
		var msgs []Message
		if err := r.db.WithContext(ctx).
			Where("session_id = ?", s.ID).
			Order("id ASC").
			Find(&msgs).Error; err != nil {
			return nil, fmt.Errorf("chat: list messages: %w", err)
		}

		exchanges := make([]Exchange, 0, len(msgs))
		for _, m := range msgs {
			if m.Sender == SenderUser {
				exchanges = append(exchanges, Exchange{User: m.Content})
			} else {
				exchanges = append(exchanges, Exchange{Bot: m.Content})
			}
		}
		out = append(out, SessionWithMessages{
			ID:       s.ID,
			Name:     s.Name,
			Model:    s.Model,
			Messages: exchanges,
		})
	}
	return out, nil
}

// ReplaceMessages drops the session's stored messages and inserts the
// supplied list in order, all in one transaction. An exchange with a
// non-empty user side stores a user row, otherwise a bot row.
func (r *Repo) ReplaceMessages(ctx context.Context, sessionID string, exchanges []Exchange) error {
	if _, err := r.GetSession(ctx, sessionID); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&Message{}).Error; err != nil {
			return fmt.Errorf("chat: delete messages: %w", err)
		}
		for _, ex := range exchanges {
			m := Message{SessionID: sessionID, Sender: SenderBot, Content: ex.Bot}
			if ex.User != "" {
				m.Sender = SenderUser
				m.Content = ex.User
			}
			if err := tx.Create(&m).Error; err != nil {
				return fmt.Errorf("chat: insert message: %w", err)
			}
		}
		return nil
	})
}

// DeleteSession removes the session's messages and then the session row.
// Cascade happens here, not in the database schema.
func (r *Repo) DeleteSession(ctx context.Context, sessionID string) error {
	if _, err := r.GetSession(ctx, sessionID); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&Message{}).Error; err != nil {
			return fmt.Errorf("chat: delete messages: %w", err)
		}
		if err := tx.Delete(&Session{}, "id = ?", sessionID).Error; err != nil {
			return fmt.Errorf("chat: delete session: %w", err)
		}
		return nil
	})
}

func (r *Repo) RenameSession(ctx context.Context, sessionID, name string) error {
	res := r.db.WithContext(ctx).Model(&Session{}).
		Where("id = ?", sessionID).
		Update("name", name)
	if res.Error != nil {
		return fmt.Errorf("chat: rename session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// AppendExchange stores one user message followed by its bot reply.
func (r *Repo) AppendExchange(ctx context.Context, sessionID, userText, botText string) error {
	if _, err := r.GetSession(ctx, sessionID); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userMsg := Message{SessionID: sessionID, Sender: SenderUser, Content: userText}
		if err := tx.Create(&userMsg).Error; err != nil {
			return fmt.Errorf("chat: insert user message: %w", err)
		}
		botMsg := Message{SessionID: sessionID, Sender: SenderBot, Content: botText}
		if err := tx.Create(&botMsg).Error; err != nil {
			return fmt.Errorf("chat: insert bot message: %w", err)
		}
		return nil
	})
}
