package sqlite

import (
	"context"
	"database/sql"

	"github.com/avelar/memora/internal/logger"
	"github.com/avelar/memora/internal/models"
	"github.com/avelar/memora/internal/repository"
)

type recordRepository struct {
	db *sql.DB
}

// NewRecordRepository creates a new RecordRepository implementation
func NewRecordRepository(db *sql.DB) repository.RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Insert(ctx context.Context, record models.ReviewRecord) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("record_repo")
	log.Debug("inserting record: card_id=%d, rating=%s", record.CardID, record.Rating)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO review_records (card_id, rating, stability, difficulty, reviewed_at)
VALUES (?, ?, ?, ?, ?)
`, record.CardID, record.Rating, record.Stability, record.Difficulty, record.ReviewedAt)
	if err != nil {
		log.Error("failed to insert record: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get record id: %v", err)
		return 0, err
	}
	return id, nil
}

// RecentByCard returns the most recent reviews for a card, newest first.
func (r *recordRepository) RecentByCard(ctx context.Context, cardID int64, limit int) ([]models.ReviewRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("record_repo")
	log.Debug("listing records: card_id=%d, limit=%d", cardID, limit)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, card_id, rating, stability, difficulty, reviewed_at
FROM review_records
WHERE card_id = ?
ORDER BY reviewed_at DESC, id DESC
LIMIT ?
`, cardID, limit)
	if err != nil {
		log.Error("failed to list records: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.ReviewRecord
	for rows.Next() {
		var rec models.ReviewRecord
		if err := rows.Scan(&rec.ID, &rec.CardID, &rec.Rating, &rec.Stability, &rec.Difficulty, &rec.ReviewedAt); err != nil {
			log.Error("failed to scan record row: %v", err)
			return nil, err
		}
		records = append(records, rec)
	}
	log.Debug("found %d records", len(records))
	return records, rows.Err()
}
