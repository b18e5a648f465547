package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/huylq/training-center-api/internal/model"
)

// ErrClassNotFound indicates that a class was not located in the DB.
var ErrClassNotFound = errors.New("class not found")

// ErrStudentNotFound indicates a referenced student does not exist or
// is not enrolled where the operation expected them.
var ErrStudentNotFound = errors.New("student not found")

// ErrClassFull indicates an enrollment would exceed the class cap.
var ErrClassFull = errors.New("class is full")

// ClassRepo manages persistence for classes and their rosters.
type ClassRepo struct {
	db *sql.DB
}

// NewClassRepo constructs a ClassRepo with the given DB handle.
func NewClassRepo(db *sql.DB) *ClassRepo {
	return &ClassRepo{db: db}
}

const classColumns = `c.id, c.name, c.subject_id, sub.name, c.major_id, c.teacher_id,
	DATE_FORMAT(c.start_date, '%Y-%m-%d'), c.total_sessions, c.max_students,
	COALESCE(c.description, ''), c.deleted_at, c.created_at`

// scanClass reads one classes row (joined with subjects) from a scanner.
func scanClass(scan func(dest ...any) error, cl *model.Class) error {
	var deletedAt sql.NullTime
	if err := scan(
		&cl.ID, &cl.Name, &cl.SubjectID, &cl.SubjectName, &cl.MajorID, &cl.TeacherID,
		&cl.StartDate, &cl.TotalSessions, &cl.MaxStudents, &cl.Description,
		&deletedAt, &cl.CreatedAt,
	); err != nil {
		return err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		cl.DeletedAt = &t
	}
	return nil
}

// GetByID retrieves a class with its subject name joined in. It
// returns ErrClassNotFound when there is no matching live row.
func (r *ClassRepo) GetByID(ctx context.Context, id uint64) (*model.Class, error) {
	const q = `SELECT ` + classColumns + `
	           FROM classes c
	           JOIN subjects sub ON sub.id = c.subject_id
	           WHERE c.id = ? AND c.deleted_at IS NULL`
	var cl model.Class
	if err := scanClass(r.db.QueryRowContext(ctx, q, id).Scan, &cl); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return &cl, nil
}

// ListByTeacher returns all live classes owned by the given teacher,
// ordered by start date ascending.
func (r *ClassRepo) ListByTeacher(ctx context.Context, teacherID uint64) ([]model.Class, error) {
	const q = `SELECT ` + classColumns + `
	           FROM classes c
	           JOIN subjects sub ON sub.id = c.subject_id
	           WHERE c.teacher_id = ? AND c.deleted_at IS NULL
	           ORDER BY c.start_date ASC`
	rows, err := r.db.QueryContext(ctx, q, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Class
	for rows.Next() {
		var cl model.Class
		if err := scanClass(rows.Scan, &cl); err != nil {
			return nil, err
		}
		result = append(result, cl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Roster returns the enrolled students of a class ordered by student
// code. The attendance engine treats this as read-only input.
func (r *ClassRepo) Roster(ctx context.Context, classID uint64) ([]model.StudentRef, error) {
	const q = `SELECT u.id, u.student_code, u.full_name
	           FROM class_students cs
	           JOIN users u ON u.id = cs.student_id
	           WHERE cs.class_id = ?
	           ORDER BY u.student_code ASC`
	rows, err := r.db.QueryContext(ctx, q, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.StudentRef
	for rows.Next() {
		var st model.StudentRef
		if err := rows.Scan(&st.ID, &st.Code, &st.FullName); err != nil {
			return nil, err
		}
		result = append(result, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// AddStudent enrolls a student into a class, enforcing the max_students
// cap inside a transaction. Re-enrolling an already enrolled student is
// a no-op. Historical attendance is untouched either way.
func (r *ClassRepo) AddStudent(ctx context.Context, classID, studentID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var maxStudents, enrolled int
	err = tx.QueryRowContext(ctx,
		`SELECT c.max_students, (SELECT COUNT(*) FROM class_students cs WHERE cs.class_id = c.id)
		 FROM classes c WHERE c.id = ? AND c.deleted_at IS NULL FOR UPDATE`, classID,
	).Scan(&maxStudents, &enrolled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrClassNotFound
		}
		return err
	}
	if maxStudents > 0 && enrolled >= maxStudents {
		err = ErrClassFull
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT IGNORE INTO class_students (class_id, student_id) VALUES (?, ?)`,
		classID, studentID,
	)
	return err
}

// RemoveStudent drops a student from a class roster. Their attendance
// records are kept; removal is never retroactive. Returns
// ErrStudentNotFound when the student was not enrolled.
func (r *ClassRepo) RemoveStudent(ctx context.Context, classID, studentID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM class_students WHERE class_id = ? AND student_id = ?`,
		classID, studentID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStudentNotFound
	}
	return nil
}
