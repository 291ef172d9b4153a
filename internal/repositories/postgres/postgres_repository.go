package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/codeverse-academy/academy-service/internal/cache"
	"github.com/codeverse-academy/academy-service/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	// Repository instances
	user       repositories.UserRepository
	school     repositories.SchoolRepository
	group      repositories.GroupRepository
	track      repositories.TrackRepository
	attendance repositories.AttendanceRepository
	evaluation repositories.EvaluationRepository
	enrollment repositories.EnrollmentRepository
	absence    repositories.AbsenceRepository
	timeLog    repositories.TimeLogRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates a repository aggregate with all
// sub-repositories wired to the same connection pool.
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewCacheManager(config.RedisClient)

	repo := &PostgreSQLRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheManager: cacheManager,
	}
	repo.initSubRepositories(config.DB)

	return repo
}

func (r *PostgreSQLRepository) initSubRepositories(db *gorm.DB) {
	r.user = NewUserPostgreSQL(db)
	r.school = NewSchoolPostgreSQL(db)
	r.group = NewGroupPostgreSQL(db, r.cacheManager)
	r.track = NewTrackPostgreSQL(db, r.cacheManager)
	r.attendance = NewAttendancePostgreSQL(db)
	r.evaluation = NewEvaluationPostgreSQL(db)
	r.enrollment = NewEnrollmentPostgreSQL(db)
	r.absence = NewAbsencePostgreSQL(db)
	r.timeLog = NewTimeLogPostgreSQL(db)
}

func (r *PostgreSQLRepository) User() repositories.UserRepository             { return r.user }
func (r *PostgreSQLRepository) School() repositories.SchoolRepository        { return r.school }
func (r *PostgreSQLRepository) Group() repositories.GroupRepository          { return r.group }
func (r *PostgreSQLRepository) Track() repositories.TrackRepository          { return r.track }
func (r *PostgreSQLRepository) Attendance() repositories.AttendanceRepository {
	return r.attendance
}
func (r *PostgreSQLRepository) Evaluation() repositories.EvaluationRepository {
	return r.evaluation
}
func (r *PostgreSQLRepository) Enrollment() repositories.EnrollmentRepository {
	return r.enrollment
}
func (r *PostgreSQLRepository) Absence() repositories.AbsenceRepository { return r.absence }
func (r *PostgreSQLRepository) TimeLog() repositories.TimeLogRepository { return r.timeLog }

// WithTransaction executes fn within a database transaction, handing it a
// Repository whose sub-repositories are bound to the transaction.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgreSQLRepository{
			db:           tx,
			redisClient:  r.redisClient,
			cacheManager: r.cacheManager,
		}
		txRepo.initSubRepositories(tx)
		return fn(txRepo)
	})
}

// Ping checks the health of database and cache connections
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.redisClient != nil {
		if err := r.cacheManager.HealthCheck(ctx); err != nil {
			return fmt.Errorf("cache ping failed: %w", err)
		}
	}

	return nil
}

// Close closes all connections
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}
	return nil
}

// Manager implements the RepositoryManager lifecycle interface.
type Manager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) *Manager {
	return &Manager{config: config}
}

func (m *Manager) Initialize() error {
	if m.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}
	m.repo = NewPostgreSQLRepository(m.config)
	return nil
}

func (m *Manager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *Manager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repositories not initialized")
	}
	return m.repo.Ping(ctx)
}

func (m *Manager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}
