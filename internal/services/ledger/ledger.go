// Package ledger содержит бизнес-логику журнала оценок: операции над
// семестрами и предметами, привязанные к владельцу, и расчёт итоговых
// показателей (GWA, сумма юнитов, Latin Honors).
//
// Каждая операция выполняется от имени конкретного пользователя; владение
// проверяется хранилищем в том же операторе, что и само действие. Чужие
// и несуществующие записи неразличимы и возвращаются как ErrNotFound.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/renzmontano/grade-tracker/internal/lib/grades"
	"github.com/renzmontano/grade-tracker/internal/lib/sl"
	"github.com/renzmontano/grade-tracker/internal/models"
)

// Ошибки уровня сервиса, по которым ветвятся обработчики.
var (
	// ErrNotFound — запись не существует или принадлежит другому пользователю.
	ErrNotFound = errors.New("not found or not owned")
	// ErrGradeOutOfRange — оценка вне диапазона 1.00–5.00.
	ErrGradeOutOfRange = errors.New("grade must be between 1.0 and 5.0")
	// ErrUnitsNotPositive — юниты не положительные.
	ErrUnitsNotPositive = errors.New("units must be greater than zero")
)

// Repository определяет методы для работы с журналом оценок в хранилище.
// Все методы с userUID обязаны встраивать предикат владения в запрос.
type Repository interface {
	CreateSemester(ctx context.Context, userUID, name string) (int64, error)
	ListSemesters(ctx context.Context, userUID string) ([]*models.Semester, error)
	RemoveSemester(ctx context.Context, userUID string, id int64) (int64, error)
	CreateSubject(ctx context.Context, userUID string, sub models.Subject) (int64, error)
	ReadSubject(ctx context.Context, userUID string, id int64) (*models.Subject, error)
	UpdateSubject(ctx context.Context, userUID string, id int64, sub models.Subject) (int64, error)
	RemoveSubject(ctx context.Context, userUID string, id int64) (int64, error)
	ListAllSubjects(ctx context.Context, userUID string) ([]models.Subject, error)
}

// Cache описывает методы для кэширования сводок успеваемости.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику журнала оценок с кешированием сводок.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// CreateSemester создаёт новый семестр пользователя и возвращает его ID.
func (s *Service) CreateSemester(ctx context.Context, userUID, name string) (int64, error) {
	id, err := s.repo.CreateSemester(ctx, userUID, name)
	if err != nil {
		return 0, err
	}
	s.log.Info("created semester", slog.Int64("id", id))
	s.invalidateSummary(userUID)
	return id, nil
}

// ListSemesters возвращает семестры пользователя с предметами и
// вычисленным GPA по каждому семестру.
func (s *Service) ListSemesters(ctx context.Context, userUID string) ([]models.SemesterView, error) {
	semesters, err := s.repo.ListSemesters(ctx, userUID)
	if err != nil {
		return nil, err
	}
	result := make([]models.SemesterView, 0, len(semesters))
	for _, sem := range semesters {
		result = append(result, models.SemesterView{
			Semester:   *sem,
			GPA:        grades.Average(sem.Subjects),
			TotalUnits: grades.TotalUnits(sem.Subjects),
		})
	}
	return result, nil
}

// RemoveSemester удаляет семестр пользователя вместе с его предметами.
func (s *Service) RemoveSemester(ctx context.Context, userUID string, id int64) error {
	rows, err := s.repo.RemoveSemester(ctx, userUID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.log.Info("removed semester", slog.Int64("id", id))
	s.invalidateSummary(userUID)
	return nil
}

// CreateSubject добавляет предмет в семестр пользователя.
// Диапазоны оценки и юнитов проверяются повторно, независимо от валидации
// на границе HTTP.
func (s *Service) CreateSubject(ctx context.Context, userUID string, req models.DummySubject) (int64, error) {
	if err := checkRanges(req.Grade, req.Units); err != nil {
		return 0, err
	}
	sub := models.Subject{
		SemesterID: req.SemesterID,
		Name:       req.Name,
		Grade:      req.Grade,
		Units:      req.Units,
	}
	id, err := s.repo.CreateSubject(ctx, userUID, sub)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	s.log.Info("created subject", slog.Int64("id", id), slog.Int64("semester_id", req.SemesterID))
	s.invalidateSummary(userUID)
	return id, nil
}

// ReadSubject возвращает предмет пользователя, например для предзаполнения формы.
func (s *Service) ReadSubject(ctx context.Context, userUID string, id int64) (*models.Subject, error) {
	sub, err := s.repo.ReadSubject(ctx, userUID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

// UpdateSubject заменяет название, оценку и юниты предмета одним действием.
func (s *Service) UpdateSubject(ctx context.Context, userUID string, id int64, req models.DummySubjectUpdate) error {
	if err := checkRanges(req.Grade, req.Units); err != nil {
		return err
	}
	sub := models.Subject{
		Name:  req.Name,
		Grade: req.Grade,
		Units: req.Units,
	}
	rows, err := s.repo.UpdateSubject(ctx, userUID, id, sub)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.log.Info("updated subject", slog.Int64("id", id))
	s.invalidateSummary(userUID)
	return nil
}

// RemoveSubject удаляет предмет пользователя.
func (s *Service) RemoveSubject(ctx context.Context, userUID string, id int64) error {
	rows, err := s.repo.RemoveSubject(ctx, userUID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.log.Info("removed subject", slog.Int64("id", id))
	s.invalidateSummary(userUID)
	return nil
}

// Summary возвращает накопительный GWA, сумму юнитов и статус Latin Honors
// по всем предметам пользователя. Сводка кешируется на час и сбрасывается
// при любой записи в журнал; пользователь без предметов получает нули.
func (s *Service) Summary(ctx context.Context, userUID string) (*models.Summary, error) {
	cacheKey := summaryKey(userUID)
	var cached models.Summary
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read summary cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	subjects, err := s.repo.ListAllSubjects(ctx, userUID)
	if err != nil {
		return nil, err
	}
	gwa := grades.Average(subjects)
	summary := &models.Summary{
		GWA:        gwa,
		TotalUnits: grades.TotalUnits(subjects),
		Honor:      grades.HonorFor(gwa),
	}
	if err := s.cache.Set(cacheKey, summary, time.Hour); err != nil {
		s.log.Warn("failed to cache summary", slog.String("key", cacheKey), sl.Err(err))
	}
	return summary, nil
}

func (s *Service) invalidateSummary(userUID string) {
	if err := s.cache.Invalidate(summaryKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate summary cache", sl.Err(err))
	}
}

func summaryKey(userUID string) string {
	return fmt.Sprintf("summary:%s", userUID)
}

func checkRanges(grade, units float64) error {
	if grade < 1.0 || grade > 5.0 {
		return ErrGradeOutOfRange
	}
	if units <= 0 {
		return ErrUnitsNotPositive
	}
	return nil
}
