package assignment

import (
	"context"
	"time"

	// mysql driver
	_ "github.com/go-sql-driver/mysql"
	"github.com/gocraft/dbr/v2"
	"github.com/oklog/ulid"
	"github.com/pkg/errors"
)

// assignmentRow represents a single database row; the permission tuple
// is flattened into discrete columns
type assignmentRow struct {
	ID                 string    `db:"id"`
	ProjectID          string    `db:"project_id"`
	ProjectTitle       string    `db:"project_title"`
	StaffIdentity      string    `db:"staff_identity"`
	StaffName          string    `db:"staff_name"`
	AssignedBy         string    `db:"assigned_by"`
	AssignedAt         time.Time `db:"assigned_at"`
	CanEdit            bool      `db:"can_edit"`
	CanDelete          bool      `db:"can_delete"`
	CanViewDocuments   bool      `db:"can_view_documents"`
	CanUploadDocuments bool      `db:"can_upload_documents"`
}

var assignmentColumns = []string{
	"id", "project_id", "project_title", "staff_identity", "staff_name",
	"assigned_by", "assigned_at", "can_edit", "can_delete",
	"can_view_documents", "can_upload_documents",
}

// MySQLStore is a relational backend for the ledger; Save rewrites the
// whole table inside one transaction to keep the snapshot contract
type MySQLStore struct {
	db *dbr.Connection
}

// NewMySQLStore returns an assignment store with mysql used as a backend
func NewMySQLStore(db *dbr.Connection) (Store, error) {
	if db == nil {
		return nil, ErrNilStore
	}

	return &MySQLStore{db}, nil
}

// Load reads all assignment rows
func (s *MySQLStore) Load(ctx context.Context) ([]Assignment, error) {
	rows := make([]assignmentRow, 0)

	_, err := s.db.NewSession(nil).
		SelectBySql("SELECT * FROM project_assignment ORDER BY project_id, staff_identity").
		LoadContext(ctx, &rows)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load project assignments")
	}

	assignments := make([]Assignment, 0, len(rows))
	for _, row := range rows {
		id, err := ulid.Parse(row.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed assignment id: %s", row.ID)
		}

		assignments = append(assignments, Assignment{
			ID:            id,
			ProjectID:     row.ProjectID,
			ProjectTitle:  row.ProjectTitle,
			StaffIdentity: row.StaffIdentity,
			StaffName:     row.StaffName,
			AssignedBy:    row.AssignedBy,
			AssignedAt:    row.AssignedAt,
			Permissions: Permissions{
				CanEdit:            row.CanEdit,
				CanDelete:          row.CanDelete,
				CanViewDocuments:   row.CanViewDocuments,
				CanUploadDocuments: row.CanUploadDocuments,
			},
		})
	}

	return assignments, nil
}

// Save rewrites the assignment table
func (s *MySQLStore) Save(ctx context.Context, assignments []Assignment) error {
	sess := s.db.NewSession(nil)

	tx, err := sess.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.RollbackUnlessCommitted()

	if _, err = tx.DeleteBySql("DELETE FROM project_assignment").ExecContext(ctx); err != nil {
		return errors.Wrap(err, "failed to clear project assignments")
	}

	for _, a := range assignments {
		row := assignmentRow{
			ID:                 a.ID.String(),
			ProjectID:          a.ProjectID,
			ProjectTitle:       a.ProjectTitle,
			StaffIdentity:      a.StaffIdentity,
			StaffName:          a.StaffName,
			AssignedBy:         a.AssignedBy,
			AssignedAt:         a.AssignedAt,
			CanEdit:            a.Permissions.CanEdit,
			CanDelete:          a.Permissions.CanDelete,
			CanViewDocuments:   a.Permissions.CanViewDocuments,
			CanUploadDocuments: a.Permissions.CanUploadDocuments,
		}

		_, err = tx.InsertInto("project_assignment").
			Columns(assignmentColumns...).
			Record(&row).
			ExecContext(ctx)
		if err != nil {
			return errors.Wrapf(err, "failed to store %s", a.StringID())
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}
