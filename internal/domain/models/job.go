package models

import (
	"strings"
	"time"
)

// RawDate is whatever an adapter managed to scrape as the publication date:
// nil, a string, a time.Time, a *time.Time or a Date.
type RawDate any

// OlderSentinel is returned by adapters that only know the posting is not recent.
const OlderSentinel = "older"

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) Midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

type Company struct {
	Name        string
	Logo        string
	Description string
	Website     string
	Industry    string
	Size        string
	Location    string
}

// RawJob is a posting as produced by a source adapter.
type RawJob struct {
	Title            string
	Link             string `validate:"required,url"`
	Description      string
	Company          Company
	Source           string
	OriginalLanguage string
	PublishedAt      RawDate
	SalaryMin        *int
	SalaryMax        *int
	LocationRaw      string
	Remote           *bool
	ExternalID       string
}

type Seniority string

const (
	SeniorityUnknown   Seniority = "Unknown"
	SeniorityJunior    Seniority = "Junior"
	SeniorityMid       Seniority = "Mid"
	SenioritySenior    Seniority = "Senior"
	SeniorityLead      Seniority = "Lead"
	SeniorityIntern    Seniority = "Intern"
	SeniorityPrincipal Seniority = "Principal"
)

var seniorities = []Seniority{SeniorityUnknown, SeniorityJunior, SeniorityMid, SenioritySenior,
	SeniorityLead, SeniorityIntern, SeniorityPrincipal}

// ToSeniority maps a free-form level to the enum. Empty input yields "",
// anything unrecognised yields SeniorityUnknown.
func ToSeniority(s string) Seniority {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, level := range seniorities {
		if strings.EqualFold(s, string(level)) {
			return level
		}
	}
	switch strings.ToLower(s) {
	case "internship", "trainee", "stage", "entry", "entry level", "entry-level":
		return SeniorityIntern
	case "middle", "mid-level", "mid level", "intermediate":
		return SeniorityMid
	case "staff", "principal engineer":
		return SeniorityPrincipal
	}
	return SeniorityUnknown
}

// GeoPoint is a GeoJSON point, coordinates are [lng, lat].
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func NewGeoPoint(lat, lng float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

// JobPosting is the in-flight record a RawJob becomes while moving through the pipeline.
type JobPosting struct {
	Link             string
	Title            string
	Description      string
	DescriptionIsMD  bool
	Company          Company
	Source           string
	OriginalLanguage string
	ExternalID       string
	RawPublishedAt   RawDate
	PublishedAt      *time.Time

	SalaryMin   *int
	SalaryMax   *int
	LocationRaw string
	Location    string
	Remote      bool
	remoteSet   bool

	Skills           []string
	Requirements     []string
	Benefits         []string
	Seniority        Seniority
	EmploymentType   string
	Language         string
	City             string
	Country          string
	FormattedAddress string
	VerifiedAddress  string
	LocationGeo      *GeoPoint

	CompanyID   uint
	SeniorityID uint
}

func NewJobPosting(raw RawJob) *JobPosting {
	job := &JobPosting{
		Link:             strings.TrimSpace(raw.Link),
		Title:            strings.TrimSpace(raw.Title),
		Description:      raw.Description,
		Company:          raw.Company,
		Source:           raw.Source,
		OriginalLanguage: raw.OriginalLanguage,
		ExternalID:       raw.ExternalID,
		RawPublishedAt:   raw.PublishedAt,
		SalaryMin:        raw.SalaryMin,
		SalaryMax:        raw.SalaryMax,
		LocationRaw:      raw.LocationRaw,
		Location:         strings.TrimSpace(raw.LocationRaw),
	}
	if job.Source == "" {
		job.Source = "Unknown"
	}
	if raw.Remote != nil {
		job.Remote = *raw.Remote
		job.remoteSet = true
	}
	return job
}

// RemoteFromSource reports whether the adapter itself stated the remote flag.
func (j *JobPosting) RemoteFromSource() bool {
	return j.remoteSet
}
