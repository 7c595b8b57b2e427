package turso

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/mood/internal/domain"
	"github.com/emiliopalmerini/mood/internal/ports"
	"github.com/emiliopalmerini/mood/internal/util"
)

// RecordRepository is the libsql-backed HealthDataSink.
type RecordRepository struct {
	db    *sql.DB
	auth  ports.AuthorizationProvider
	newID func() string
	now   func() time.Time
}

func NewRecordRepository(db *sql.DB, auth ports.AuthorizationProvider) *RecordRepository {
	return &RecordRepository{
		db:    db,
		auth:  auth,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Save writes rec under scope. The scope must have been granted beforehand.
func (r *RecordRepository) Save(ctx context.Context, rec *domain.NormalizedRecord, scope domain.Scope) (*domain.StoredRecord, error) {
	ok, err := r.auth.IsAuthorized(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to check authorization: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrNotAuthorized, scope)
	}

	for _, l := range rec.Labels {
		if !l.Valid() {
			return nil, fmt.Errorf("%w: %d", domain.ErrUnknownLabel, int(l))
		}
	}
	for _, a := range rec.Associations {
		if !a.Valid() {
			return nil, fmt.Errorf("%w: %d", domain.ErrUnknownAssociation, int(a))
		}
	}

	stored := &domain.StoredRecord{
		ID:               r.newID(),
		NormalizedRecord: *rec,
		Scope:            scope,
		EndAt:            rec.SampleEnd(),
		CreatedAt:        r.now().UTC(),
	}
	stored.Labels = append([]domain.Label{}, rec.Labels...)
	stored.Associations = append([]domain.Association{}, rec.Associations...)

	_, err = WithRetry(ctx, maxStreamRetries, func() (struct{}, error) {
		return struct{}{}, r.insert(ctx, stored)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *RecordRepository) insert(ctx context.Context, rec *domain.StoredRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO mood_records (id, kind, scope, valence, valence_score, notes, start_at, end_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Kind.Key(),
		string(rec.Scope),
		rec.Valence.Key(),
		rec.ValenceScore,
		util.NullString(rec.Notes),
		util.FormatTimestamp(rec.Timestamp),
		util.FormatTimestamp(rec.EndAt),
		util.FormatTimestamp(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	for _, l := range rec.Labels {
		if _, err := tx.ExecContext(ctx, `INSERT INTO mood_record_labels (record_id, label) VALUES (?, ?)`, rec.ID, l.Key()); err != nil {
			return fmt.Errorf("failed to insert label %s: %w", l.Key(), err)
		}
	}
	for _, a := range rec.Associations {
		if _, err := tx.ExecContext(ctx, `INSERT INTO mood_record_associations (record_id, association) VALUES (?, ?)`, rec.ID, a.Key()); err != nil {
			return fmt.Errorf("failed to insert association %s: %w", a.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit record: %w", err)
	}
	return nil
}

// List returns stored records newest first.
func (r *RecordRepository) List(ctx context.Context, opts ports.ListRecordsOptions) ([]*domain.StoredRecord, error) {
	return WithRetry(ctx, maxStreamRetries, func() ([]*domain.StoredRecord, error) {
		return r.list(ctx, opts)
	})
}

func (r *RecordRepository) list(ctx context.Context, opts ports.ListRecordsOptions) ([]*domain.StoredRecord, error) {
	var where []string
	var args []any
	if opts.Kind != nil {
		where = append(where, "kind = ?")
		args = append(args, opts.Kind.Key())
	}
	if opts.Since != nil {
		where = append(where, "start_at >= ?")
		args = append(args, util.FormatTimestamp(*opts.Since))
	}
	if opts.Before != nil {
		where = append(where, "start_at < ?")
		args = append(args, util.FormatTimestamp(*opts.Before))
	}
	if opts.Until != nil {
		where = append(where, "end_at <= ?")
		args = append(args, util.FormatTimestamp(*opts.Until))
	}

	query := `SELECT id, kind, scope, valence, valence_score, notes, start_at, end_at, created_at FROM mood_records`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = -1
	}
	query += " ORDER BY start_at DESC, created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []*domain.StoredRecord{}
	byID := make(map[string]*domain.StoredRecord)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
		byID[rec.ID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	if len(records) == 0 {
		return records, nil
	}

	if err := r.attachSelections(ctx, byID); err != nil {
		return nil, err
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (*domain.StoredRecord, error) {
	var (
		rec                       domain.StoredRecord
		kind, scope, valence      string
		notes                     sql.NullString
		startAt, endAt, createdAt string
	)
	if err := rows.Scan(&rec.ID, &kind, &scope, &valence, &rec.ValenceScore, &notes, &startAt, &endAt, &createdAt); err != nil {
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}

	var err error
	if rec.Kind, err = domain.ParseKind(kind); err != nil {
		return nil, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	if rec.Valence, err = domain.ParseValenceLevel(valence); err != nil {
		return nil, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	if rec.Scope, err = domain.ParseScope(scope); err != nil {
		return nil, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	rec.Notes = notes.String
	if rec.Timestamp, err = util.ParseTimestamp(startAt); err != nil {
		return nil, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	if rec.EndAt, err = util.ParseTimestamp(endAt); err != nil {
		return nil, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	if rec.CreatedAt, err = util.ParseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	rec.Labels = []domain.Label{}
	rec.Associations = []domain.Association{}
	return &rec, nil
}

// attachSelections loads labels and associations for the given records,
// ordered by vocabulary position.
func (r *RecordRepository) attachSelections(ctx context.Context, byID map[string]*domain.StoredRecord) error {
	ids := make([]any, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	labelRows, err := r.db.QueryContext(ctx,
		`SELECT record_id, label FROM mood_record_labels WHERE record_id IN (`+placeholders+`)`, ids...)
	if err != nil {
		return fmt.Errorf("failed to load labels: %w", err)
	}
	labels := make(map[string]domain.LabelSet)
	for labelRows.Next() {
		var id, key string
		if err := labelRows.Scan(&id, &key); err != nil {
			_ = labelRows.Close()
			return fmt.Errorf("failed to scan label: %w", err)
		}
		l, err := domain.ParseLabel(key)
		if err != nil {
			_ = labelRows.Close()
			return fmt.Errorf("record %s: %w", id, err)
		}
		set := labels[id]
		_ = set.Add(l)
		labels[id] = set
	}
	_ = labelRows.Close()
	if err := labelRows.Err(); err != nil {
		return fmt.Errorf("failed to load labels: %w", err)
	}

	assocRows, err := r.db.QueryContext(ctx,
		`SELECT record_id, association FROM mood_record_associations WHERE record_id IN (`+placeholders+`)`, ids...)
	if err != nil {
		return fmt.Errorf("failed to load associations: %w", err)
	}
	assocs := make(map[string]domain.AssociationSet)
	for assocRows.Next() {
		var id, key string
		if err := assocRows.Scan(&id, &key); err != nil {
			_ = assocRows.Close()
			return fmt.Errorf("failed to scan association: %w", err)
		}
		a, err := domain.ParseAssociation(key)
		if err != nil {
			_ = assocRows.Close()
			return fmt.Errorf("record %s: %w", id, err)
		}
		set := assocs[id]
		_ = set.Add(a)
		assocs[id] = set
	}
	_ = assocRows.Close()
	if err := assocRows.Err(); err != nil {
		return fmt.Errorf("failed to load associations: %w", err)
	}

	for id, rec := range byID {
		if s, ok := labels[id]; ok {
			rec.Labels = s.Sorted()
		}
		if s, ok := assocs[id]; ok {
			rec.Associations = s.Sorted()
		}
	}
	return nil
}

// Delete removes a record and its selections.
func (r *RecordRepository) Delete(ctx context.Context, id string) error {
	_, err := WithRetry(ctx, maxStreamRetries, func() (struct{}, error) {
		return struct{}{}, r.delete(ctx, id)
	})
	return err
}

func (r *RecordRepository) delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM mood_record_labels WHERE record_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete labels: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM mood_record_associations WHERE record_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete associations: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM mood_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ports.ErrRecordNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}
