package entities

import (
	"time"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
)

type Job struct {
	ID                       uint   `gorm:"primaryKey"`
	Link                     string `gorm:"uniqueIndex;not null"`
	Title                    string
	Description              string
	Source                   string `gorm:"index"`
	OriginalLanguage         string
	Language                 string
	ExternalID               string
	PublishedAt              time.Time `gorm:"index"`
	SalaryMin                *int
	SalaryMax                *int
	LocationRaw              string
	Location                 string
	Remote                   bool
	Skills                   []string `gorm:"serializer:json"`
	Requirements             []string `gorm:"serializer:json"`
	Benefits                 []string `gorm:"serializer:json"`
	Seniority                string
	EmploymentType           string
	City                     string
	Country                  string
	FormattedAddress         string
	FormattedAddressVerified string
	LocationGeo              *models.GeoPoint `gorm:"serializer:json"`
	CompanyID                *uint
	SeniorityID              *uint
	CreatedAt                time.Time
}

func NewJob(posting *models.JobPosting) Job {
	job := Job{
		Link:                     posting.Link,
		Title:                    posting.Title,
		Description:              posting.Description,
		Source:                   posting.Source,
		OriginalLanguage:         posting.OriginalLanguage,
		Language:                 posting.Language,
		ExternalID:               posting.ExternalID,
		SalaryMin:                posting.SalaryMin,
		SalaryMax:                posting.SalaryMax,
		LocationRaw:              posting.LocationRaw,
		Location:                 posting.Location,
		Remote:                   posting.Remote,
		Skills:                   posting.Skills,
		Requirements:             posting.Requirements,
		Benefits:                 posting.Benefits,
		Seniority:                string(posting.Seniority),
		EmploymentType:           posting.EmploymentType,
		City:                     posting.City,
		Country:                  posting.Country,
		FormattedAddress:         posting.FormattedAddress,
		FormattedAddressVerified: posting.VerifiedAddress,
		LocationGeo:              posting.LocationGeo,
	}
	if posting.PublishedAt != nil {
		job.PublishedAt = *posting.PublishedAt
	}
	if posting.CompanyID != 0 {
		id := posting.CompanyID
		job.CompanyID = &id
	}
	if posting.SeniorityID != 0 {
		id := posting.SeniorityID
		job.SeniorityID = &id
	}
	return job
}
