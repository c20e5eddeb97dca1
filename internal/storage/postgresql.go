// Package storage реализует хранилище данных на основе PostgreSQL
// для управления пользователями, семестрами и предметами. Предоставляет
// методы создания, чтения, обновления и удаления записей.
//
// Все запросы к семестрам и предметам несут предикат владения: условие
// по user_uid (для предметов — через JOIN с semesters) встроено в сам
// оператор, поэтому проверка и действие выполняются атомарно, без окна
// между «проверили» и «изменили». Нулевое число затронутых строк означает
// «не найдено или не принадлежит пользователю» — снаружи эти случаи
// неразличимы.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/renzmontano/grade-tracker/internal/models"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'semesters'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table semesters missing or query error: %w", err)
	}
	return nil
}

// ===== USER METHODS =====

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
// Дубликат username или email приводит к нарушению уникального ограничения,
// которое возвращается как есть — слой сервисов распознаёт его по коду.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (username, email, password_hash, full_name)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.FullName).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByLogin возвращает пользователя по имени пользователя или почте.
func (s *Storage) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	const op = "storage.GetUserByLogin"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, full_name, created_at
			  FROM users
			  WHERE username = $1 OR email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, login)
	if err := row.Scan(&u.UID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FullName, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ===== SEMESTER METHODS =====

// CreateSemester вставляет новый семестр пользователя и возвращает его ID.
func (s *Storage) CreateSemester(ctx context.Context, userUID, name string) (int64, error) {
	const op = "storage.CreateSemester"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO semesters (user_uid, semester_name)
			  VALUES ($1, $2)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query, userUID, name).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListSemesters возвращает все семестры пользователя вместе с предметами.
// Семестры отсортированы по дате создания по убыванию, предметы внутри
// семестра — по названию. Семестры без предметов возвращаются с пустым
// списком предметов.
func (s *Storage) ListSemesters(ctx context.Context, userUID string) ([]*models.Semester, error) {
	const op = "storage.ListSemesters"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.semester_name, s.created_at,
			      sub.id, sub.subject_name, sub.grade, sub.units, sub.created_at
			  FROM semesters s
			  LEFT JOIN subjects sub ON s.id = sub.semester_id
			  WHERE s.user_uid = $1
			  ORDER BY s.created_at DESC, s.id DESC, sub.subject_name`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Semester
	index := make(map[int64]*models.Semester)
	for rows.Next() {
		var (
			sem        models.Semester
			subID      sql.NullInt64
			subName    sql.NullString
			grade      sql.NullFloat64
			units      sql.NullFloat64
			subCreated sql.NullTime
		)
		if err := rows.Scan(&sem.ID, &sem.Name, &sem.CreatedAt,
			&subID, &subName, &grade, &units, &subCreated); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		current, ok := index[sem.ID]
		if !ok {
			sem.Subjects = []models.Subject{}
			current = &sem
			index[sem.ID] = current
			result = append(result, current)
		}
		if subID.Valid {
			current.Subjects = append(current.Subjects, models.Subject{
				ID:         subID.Int64,
				SemesterID: current.ID,
				Name:       subName.String,
				Grade:      grade.Float64,
				Units:      units.Float64,
				CreatedAt:  subCreated.Time,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveSemester удаляет семестр пользователя и возвращает количество
// удалённых строк. Предметы семестра удаляются каскадом на уровне схемы.
func (s *Storage) RemoveSemester(ctx context.Context, userUID string, id int64) (int64, error) {
	const op = "storage.RemoveSemester"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM semesters WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// ===== SUBJECT METHODS =====

// CreateSubject вставляет предмет в семестр пользователя и возвращает его ID.
// Вставка выполняется через SELECT по семестру с предикатом владения:
// если семестр не существует или принадлежит другому пользователю,
// запрос не вставляет ничего и возвращает sql.ErrNoRows.
func (s *Storage) CreateSubject(ctx context.Context, userUID string, sub models.Subject) (int64, error) {
	const op = "storage.CreateSubject"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subjects (semester_id, subject_name, grade, units)
			  SELECT s.id, $2, $3, $4
			  FROM semesters s
			  WHERE s.id = $1 AND s.user_uid = $5
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		sub.SemesterID, sub.Name, sub.Grade, sub.Units, userUID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadSubject возвращает предмет, если он транзитивно принадлежит пользователю.
func (s *Storage) ReadSubject(ctx context.Context, userUID string, id int64) (*models.Subject, error) {
	const op = "storage.ReadSubject"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT sub.id, sub.semester_id, sub.subject_name, sub.grade, sub.units, sub.created_at
			  FROM subjects sub
			  INNER JOIN semesters s ON sub.semester_id = s.id
			  WHERE sub.id = $1 AND s.user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, userUID)

	var result models.Subject
	if err := row.Scan(&result.ID, &result.SemesterID, &result.Name,
		&result.Grade, &result.Units, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateSubject заменяет название, оценку и юниты предмета одним оператором
// и возвращает количество изменённых строк.
func (s *Storage) UpdateSubject(ctx context.Context, userUID string, id int64, sub models.Subject) (int64, error) {
	const op = "storage.UpdateSubject"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subjects sub
			  SET subject_name = $1, grade = $2, units = $3
			  FROM semesters s
			  WHERE sub.semester_id = s.id AND sub.id = $4 AND s.user_uid = $5`
	result, err := s.DB.ExecContext(ctx, query, sub.Name, sub.Grade, sub.Units, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// RemoveSubject удаляет предмет через транзитивную проверку владения
// и возвращает количество удалённых строк.
func (s *Storage) RemoveSubject(ctx context.Context, userUID string, id int64) (int64, error) {
	const op = "storage.RemoveSubject"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subjects sub
			  USING semesters s
			  WHERE sub.semester_id = s.id AND sub.id = $1 AND s.user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// ListAllSubjects возвращает все предметы пользователя по всем семестрам.
// Используется для накопительного GWA и суммы юнитов.
func (s *Storage) ListAllSubjects(ctx context.Context, userUID string) ([]models.Subject, error) {
	const op = "storage.ListAllSubjects"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT sub.id, sub.semester_id, sub.subject_name, sub.grade, sub.units, sub.created_at
			  FROM subjects sub
			  INNER JOIN semesters s ON sub.semester_id = s.id
			  WHERE s.user_uid = $1`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Subject
	for rows.Next() {
		var item models.Subject
		if err := rows.Scan(&item.ID, &item.SemesterID, &item.Name,
			&item.Grade, &item.Units, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
