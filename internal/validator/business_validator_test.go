package validator

import (
	"testing"
	"time"
)

func TestValidateEvaluationSkillScores(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		request EvaluationUpdateRequest
		wantErr bool
	}{
		{
			name:    "all scores in range",
			request: EvaluationUpdateRequest{XP: 1500, SkillLogic: 10, SkillCommunication: 0},
		},
		{
			name:    "score above ten",
			request: EvaluationUpdateRequest{SkillLogic: 11},
			wantErr: true,
		},
		{
			name:    "negative score",
			request: EvaluationUpdateRequest{SkillTeamwork: -1},
			wantErr: true,
		},
		{
			name:    "negative xp",
			request: EvaluationUpdateRequest{XP: -100},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(tt.request)
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateUsernameFormat(t *testing.T) {
	v := New()

	tests := []struct {
		username string
		wantErr  bool
	}{
		{username: "teacher1"},
		{username: "alice.student"},
		{username: "bob_smith-2"},
		{username: "ab", wantErr: true},
		{username: "Alice", wantErr: true},
		{username: "user name", wantErr: true},
		{username: "user@host", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			req := TeacherCreateRequest{Username: tt.username, Password: "123", Name: "Someone"}
			errs := v.Validate(req)
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("Validate(%q) errors = %v, wantErr %v", tt.username, errs, tt.wantErr)
			}
		})
	}
}

func TestValidateAbsenceDecision(t *testing.T) {
	v := New()

	for _, status := range []string{"APPROVED", "REJECTED"} {
		if errs := v.Validate(AbsenceDecisionRequest{Status: status}); len(errs) > 0 {
			t.Errorf("Validate(%s) errors = %v", status, errs)
		}
	}
	for _, status := range []string{"PENDING", "approved", ""} {
		if errs := v.Validate(AbsenceDecisionRequest{Status: status}); len(errs) == 0 {
			t.Errorf("Validate(%q) accepted an invalid decision", status)
		}
	}
}

func TestValidateDateRange(t *testing.T) {
	v := New()
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	if errs := v.ValidateDateRange(start, start); len(errs) > 0 {
		t.Errorf("same-day range rejected: %v", errs)
	}
	if errs := v.ValidateDateRange(start, start.AddDate(0, 0, 3)); len(errs) > 0 {
		t.Errorf("forward range rejected: %v", errs)
	}

	errs := v.ValidateDateRange(start, start.AddDate(0, 0, -1))
	if len(errs) != 1 {
		t.Fatalf("inverted range errors = %v, want 1", errs)
	}
	if errs[0].Field != "EndDate" || errs[0].Rule != "date_range" {
		t.Errorf("inverted range error = %+v", errs[0])
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	v := New()

	errs := v.Validate(GroupCreateRequest{})
	if len(errs) == 0 {
		t.Fatal("empty group request passed validation")
	}
	if errs.Error() == "" {
		t.Error("ValidationErrors.Error() is empty")
	}
	for _, e := range errs {
		if e.Rule != "required" {
			t.Errorf("field %s failed rule %s, want required", e.Field, e.Rule)
		}
	}
}
