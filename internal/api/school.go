package api

import (
	"context"
	"encoding/json"
)

// SchoolService covers /edu/school and the college, major and class directories.
type SchoolService struct {
	crud

	College *CollegeService
	Major   *MajorService
	Class   *ClassService
}

// CollegeService covers /edu/college.
type CollegeService struct{ directory }

// MajorService covers /edu/major.
type MajorService struct{ directory }

// ClassService covers /edu/class.
type ClassService struct{ directory }

func newSchoolService(r Requester) *SchoolService {
	return &SchoolService{
		crud:    crud{r: r, base: "/edu/school"},
		College: &CollegeService{newDirectory(r, "/edu/college")},
		Major:   &MajorService{newDirectory(r, "/edu/major")},
		Class:   &ClassService{newDirectory(r, "/edu/class")},
	}
}

// Info returns the profile of the school the deployment serves.
func (s *SchoolService) Info(ctx context.Context) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/school/info", nil)
}

// SemesterService covers /edu/semester.
type SemesterService struct{ directory }

func newSemesterService(r Requester) *SemesterService {
	return &SemesterService{newDirectory(r, "/edu/semester")}
}

func (s *SemesterService) Current(ctx context.Context) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/semester/current", nil)
}

// LandmarkService covers /edu/landmark.
type LandmarkService struct{ directory }

func newLandmarkService(r Requester) *LandmarkService {
	return &LandmarkService{newDirectory(r, "/edu/landmark")}
}

// QuantitativeService covers /edu/quantitative (moral education scoring records).
type QuantitativeService struct{ crud }

func newQuantitativeService(r Requester) *QuantitativeService {
	return &QuantitativeService{crud{r: r, base: "/edu/quantitative"}}
}
