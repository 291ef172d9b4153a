package repositories

import "context"

// Repository aggregates all entity repositories behind one interface.
type Repository interface {
	User() UserRepository
	School() SchoolRepository
	Group() GroupRepository
	Track() TrackRepository
	Attendance() AttendanceRepository
	Evaluation() EvaluationRepository
	Enrollment() EnrollmentRepository
	Absence() AbsenceRepository
	TimeLog() TimeLogRepository

	// WithTransaction runs fn against a transaction-bound Repository and
	// commits when fn returns nil.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Ping checks database (and cache, when configured) connectivity.
	Ping(ctx context.Context) error

	// Close closes underlying connections.
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
