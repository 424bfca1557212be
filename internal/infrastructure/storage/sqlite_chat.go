package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/domain/repository"
)

type sqliteChatRepository struct {
	db      *sql.DB
	maxSize int
}

// NewSQLiteChatRepository SQLite asosidagi chat repository (sxema OpenSQLite da yaratiladi)
func NewSQLiteChatRepository(db *sql.DB, maxContextSize int) repository.ChatRepository {
	return &sqliteChatRepository{db: db, maxSize: maxContextSize}
}

// Save savol-javobni saqlash
func (s *sqliteChatRepository) Save(ctx context.Context, exchange entity.ChatExchange) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO chat_exchanges (id, user_id, username, question, answer, ts) VALUES (?, ?, ?, ?, ?, ?)`,
		exchange.ID, exchange.UserID, exchange.Username, exchange.Question, exchange.Answer, exchange.Timestamp)
	if err != nil {
		tx.Rollback()
		return err
	}

	// Eski yozuvlarni kesish
	if s.maxSize > 0 {
		_, err = tx.ExecContext(ctx, `
DELETE FROM chat_exchanges
WHERE id IN (
  SELECT id FROM chat_exchanges
  WHERE user_id = ?
  ORDER BY ts DESC
  LIMIT -1 OFFSET ?
)`, exchange.UserID, s.maxSize)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// History foydalanuvchi tarixini olish
func (s *sqliteChatRepository) History(ctx context.Context, userID int64, limit int) ([]entity.ChatExchange, error) {
	query := `SELECT id, user_id, username, question, answer, ts FROM chat_exchanges WHERE user_id = ? ORDER BY ts DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.ChatExchange
	for rows.Next() {
		var ex entity.ChatExchange
		var username sql.NullString
		var ts time.Time
		if err := rows.Scan(&ex.ID, &ex.UserID, &username, &ex.Question, &ex.Answer, &ts); err != nil {
			return nil, err
		}
		ex.Username = username.String
		ex.Timestamp = ts
		out = append(out, ex)
	}

	// eski -> yangi tartib
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out, rows.Err()
}

// ClearHistory foydalanuvchi tarixini tozalash
func (s *sqliteChatRepository) ClearHistory(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chat_exchanges WHERE user_id = ?`, userID)
	return err
}

// ClearAll barcha chat tarixlarini tozalash
func (s *sqliteChatRepository) ClearAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chat_exchanges`)
	return err
}
