package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/codeverse-academy/academy-service/internal/cache"
	"github.com/codeverse-academy/academy-service/internal/config"
	"github.com/codeverse-academy/academy-service/internal/events"
	"github.com/codeverse-academy/academy-service/internal/repositories"
	"github.com/codeverse-academy/academy-service/internal/validator"
)

// serviceManager implements ServiceManager
type serviceManager struct {
	// Dependencies
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	cache     *cache.CacheManager
	publisher events.EventPublisher
	session   config.SessionConfig

	// Service instances
	authService       AuthService
	schoolService     SchoolService
	groupService      GroupService
	trackService      TrackService
	rosterService     RosterService
	attendanceService AttendanceService
	evaluationService EvaluationService
	dashboardService  DashboardService
	absenceService    AbsenceService
	timeClockService  TimeClockService
	exportService     ExportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies.
func NewServiceManager(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, cacheManager *cache.CacheManager, publisher events.EventPublisher, session config.SessionConfig) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: validator,
		cache:     cacheManager,
		publisher: publisher,
		session:   session,
	}
}

// Initialize wires up all services. Construction order matters only for the
// dashboard, which composes the group and evaluation services.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.authService = NewAuthService(sm.repo, sm.logger, sm.validator, sm.session)
	sm.schoolService = NewSchoolService(sm.repo, sm.logger, sm.validator)
	sm.groupService = NewGroupService(sm.repo, sm.logger, sm.validator, sm.cache)
	sm.trackService = NewTrackService(sm.repo, sm.logger, sm.validator, sm.cache)
	sm.rosterService = NewRosterService(sm.repo, sm.logger, sm.validator, sm.cache, sm.publisher)
	sm.attendanceService = NewAttendanceService(sm.repo, sm.logger, sm.validator, sm.cache)
	sm.evaluationService = NewEvaluationService(sm.repo, sm.logger, sm.validator, sm.cache)
	sm.dashboardService = NewDashboardService(sm.repo, sm.logger, sm.cache, sm.groupService, sm.evaluationService)
	sm.absenceService = NewAbsenceService(sm.repo, sm.logger, sm.validator, sm.publisher)
	sm.timeClockService = NewTimeClockService(sm.repo, sm.logger)
	sm.exportService = NewExportService(sm.repo, sm.logger)

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")
	return nil
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}
	return sm.repo.Ping(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if err := sm.publisher.Close(); err != nil {
		sm.logger.Error("Failed to close event publisher", "error", err)
	}

	sm.shutdown = true
	return nil
}

// ===== SERVICE GETTERS =====

func (sm *serviceManager) get(name string, ready bool) {
	if !sm.initialized {
		panic(fmt.Sprintf("%s service requested before initialization", name))
	}
	if !ready {
		panic(fmt.Sprintf("%s service not initialized", name))
	}
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("auth", sm.authService != nil)
	return sm.authService
}

func (sm *serviceManager) School() SchoolService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("school", sm.schoolService != nil)
	return sm.schoolService
}

func (sm *serviceManager) Group() GroupService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("group", sm.groupService != nil)
	return sm.groupService
}

func (sm *serviceManager) Track() TrackService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("track", sm.trackService != nil)
	return sm.trackService
}

func (sm *serviceManager) Roster() RosterService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("roster", sm.rosterService != nil)
	return sm.rosterService
}

func (sm *serviceManager) Attendance() AttendanceService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("attendance", sm.attendanceService != nil)
	return sm.attendanceService
}

func (sm *serviceManager) Evaluation() EvaluationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("evaluation", sm.evaluationService != nil)
	return sm.evaluationService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("dashboard", sm.dashboardService != nil)
	return sm.dashboardService
}

func (sm *serviceManager) Absence() AbsenceService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("absence", sm.absenceService != nil)
	return sm.absenceService
}

func (sm *serviceManager) TimeClock() TimeClockService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("timeclock", sm.timeClockService != nil)
	return sm.timeClockService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("export", sm.exportService != nil)
	return sm.exportService
}
