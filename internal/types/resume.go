// Package types provides type definitions for structured data used throughout the resume optimizer.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Resume represents a structured résumé record.
// Field names follow the camelCase wire format used by the web client.
type Resume struct {
	FullName        string          `json:"fullName"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Location        string          `json:"location,omitempty"`
	LinkedIn        string          `json:"linkedin,omitempty"`
	Portfolio       string          `json:"portfolio,omitempty"`
	Summary         string          `json:"summary"`
	Experience      []Experience    `json:"experience"`
	Education       []Education     `json:"education"`
	TechnicalSkills string          `json:"technicalSkills"` // comma-joined free text
	SoftSkills      string          `json:"softSkills"`      // comma-joined free text
	Tools           string          `json:"tools,omitempty"`
	Projects        []Project       `json:"projects"`
	Certifications  []Certification `json:"certifications"`
	RawText         string          `json:"rawText"`
}

// Experience represents a single position with its bullet points
type Experience struct {
	Title     string   `json:"title"`
	Company   string   `json:"company"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Bullets   []string `json:"bullets"`
}

// Education represents a degree entry
type Education struct {
	Degree         string `json:"degree"`
	School         string `json:"school"`
	Field          string `json:"field,omitempty"`
	Location       string `json:"location,omitempty"`
	GraduationDate string `json:"graduationDate"`
	GPA            string `json:"gpa,omitempty"`
}

// Project represents a side or portfolio project
type Project struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	Link         string `json:"link,omitempty"`
}

// Certification represents a professional certification
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// NewResume returns an empty résumé with non-nil collections so it encodes
// as [] rather than null.
func NewResume() *Resume {
	return &Resume{
		Experience:     []Experience{},
		Education:      []Education{},
		Projects:       []Project{},
		Certifications: []Certification{},
	}
}

// Clone returns a deep copy of the résumé. Mutating the copy, including its
// nested slices, never affects the receiver.
func (r *Resume) Clone() *Resume {
	if r == nil {
		return NewResume()
	}

	out := *r

	out.Experience = make([]Experience, len(r.Experience))
	for i, exp := range r.Experience {
		out.Experience[i] = exp
		out.Experience[i].Bullets = append([]string(nil), exp.Bullets...)
		if out.Experience[i].Bullets == nil {
			out.Experience[i].Bullets = []string{}
		}
	}

	out.Education = append([]Education{}, r.Education...)
	out.Projects = append([]Project{}, r.Projects...)
	out.Certifications = append([]Certification{}, r.Certifications...)

	return &out
}

// ParseResult is the outcome of decoding and parsing an uploaded résumé file.
// When Error is non-empty the embedded record is empty and RawText is "";
// callers must check Error before trusting the record.
type ParseResult struct {
	*Resume
	Error string `json:"error,omitempty"`
}

// Failed reports whether decoding or parsing failed
func (p *ParseResult) Failed() bool {
	return p != nil && p.Error != ""
}
