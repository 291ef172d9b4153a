package models

import (
	"testing"

	"gorm.io/datatypes"
)

func TestEnrollmentLogTeacherRefs(t *testing.T) {
	refs := []TeacherRef{
		{ID: "t1", Name: "John Teacher"},
		{ID: "t2", Name: "Jane Teacher"},
	}
	encoded, err := MarshalTeacherRefs(refs)
	if err != nil {
		t.Fatalf("MarshalTeacherRefs() error = %v", err)
	}

	log := &EnrollmentLog{Teachers: encoded}
	decoded := log.TeacherRefs()
	if len(decoded) != 2 {
		t.Fatalf("TeacherRefs() returned %d refs, want 2", len(decoded))
	}
	if decoded[0].ID != "t1" || decoded[0].Name != "John Teacher" {
		t.Errorf("TeacherRefs()[0] = %+v", decoded[0])
	}
}

func TestEnrollmentLogTeacherRefsMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  datatypes.JSON
	}{
		{name: "empty column", raw: nil},
		{name: "not json", raw: datatypes.JSON(`garbage`)},
		{name: "wrong shape", raw: datatypes.JSON(`{"id":"x"}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &EnrollmentLog{Teachers: tt.raw}
			if refs := log.TeacherRefs(); refs != nil {
				t.Errorf("TeacherRefs() = %v, want nil", refs)
			}
		})
	}
}
