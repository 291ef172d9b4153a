package validator

import "time"

// LoginRequest carries the credentials form fields.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SchoolCreateRequest creates a school.
type SchoolCreateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// SchoolUpdateRequest renames a school; nil fields are untouched.
type SchoolUpdateRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
}

// GroupCreateRequest creates a group; every field is required, matching the
// createGroup form contract.
type GroupCreateRequest struct {
	SchoolID  string `json:"school_id" validate:"required"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	DayOfWeek string `json:"day_of_week" validate:"required,max=20"`
	TimeSlot  string `json:"time_slot" validate:"required,max=50"`
	Subject   string `json:"subject" validate:"required,max=200"`
	AgeRange  string `json:"age_range" validate:"required,max=50"`
}

// GroupUpdateRequest updates group attributes; nil fields are untouched.
type GroupUpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	DayOfWeek *string `json:"day_of_week" validate:"omitempty,max=20"`
	TimeSlot  *string `json:"time_slot" validate:"omitempty,max=50"`
	Subject   *string `json:"subject" validate:"omitempty,max=200"`
	AgeRange  *string `json:"age_range" validate:"omitempty,max=50"`
}

// TrackCreateRequest creates a curriculum track.
type TrackCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// TrackUpdateRequest updates track attributes; nil fields are untouched.
type TrackUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// SessionCreateRequest appends a session to a track; the order index is
// assigned server-side.
type SessionCreateRequest struct {
	Title string  `json:"title" validate:"required,min=1,max=200"`
	Link  *string `json:"link" validate:"omitempty,max=500"`
}

// SessionUpdateRequest edits a session's title or link; the order index
// never changes after creation.
type SessionUpdateRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=200"`
	Link  *string `json:"link" validate:"omitempty,max=500"`
}

// GroupTrackRequest assigns a track to a group at a start date.
type GroupTrackRequest struct {
	TrackID   string    `json:"track_id" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
}

// TeacherCreateRequest creates a teacher account.
type TeacherCreateRequest struct {
	Username string `json:"username" validate:"required,username_format"`
	Password string `json:"password" validate:"required,min=3,max=100"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
}

// StudentCreateRequest creates a student and optionally enrolls them into a
// group in the same operation.
type StudentCreateRequest struct {
	Username string `json:"username" validate:"required,username_format"`
	Password string `json:"password" validate:"required,min=3,max=100"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	GroupID  string `json:"group_id" validate:"omitempty"`
}

// AttendanceMarkRequest toggles one attendance cell.
type AttendanceMarkRequest struct {
	StudentID string    `json:"student_id" validate:"required"`
	SessionID string    `json:"session_id" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	Present   bool      `json:"present"`
}

// SessionNoteRequest saves the per-session teacher note.
type SessionNoteRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Notes     string `json:"notes" validate:"max=5000"`
}

// EvaluationUpdateRequest is the full evaluation snapshot; partial updates
// are not supported, callers resend all seven values.
type EvaluationUpdateRequest struct {
	XP                  int `json:"xp" validate:"min=0"`
	SkillLogic          int `json:"skill_logic" validate:"skill_score"`
	SkillCreativity     int `json:"skill_creativity" validate:"skill_score"`
	SkillTeamwork       int `json:"skill_teamwork" validate:"skill_score"`
	SkillProblemSolving int `json:"skill_problem_solving" validate:"skill_score"`
	SkillAutonomy       int `json:"skill_autonomy" validate:"skill_score"`
	SkillCommunication  int `json:"skill_communication" validate:"skill_score"`
}

// AbsenceReasonRequest creates an admin-configured absence reason.
type AbsenceReasonRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// AbsenceCreateRequest files a teacher absence request.
type AbsenceCreateRequest struct {
	ReasonID    string    `json:"reason_id" validate:"required"`
	Description string    `json:"description" validate:"max=1000"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
}

// AbsenceDecisionRequest resolves a pending request.
type AbsenceDecisionRequest struct {
	Status string `json:"status" validate:"required,absence_decision"`
}
