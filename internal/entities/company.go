package entities

import (
	"regexp"
	"strings"
	"time"
)

type Company struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"not null"`
	NormalizedName string `gorm:"uniqueIndex;not null"`
	Logo           string
	LogoURL        string
	Description    string
	Website        string
	Industry       string
	Size           string
	Location       string
	TrustScore     float64 `gorm:"default:80"`
	TotalRatings   int     `gorm:"default:0"`
	TotalLikes     int     `gorm:"default:0"`
	TotalDislikes  int     `gorm:"default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// NormalizeCompanyName is the natural key of a company: lowercased, punctuation and
// whitespace removed.
func NormalizeCompanyName(name string) string {
	return nonWordRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "")
}

type SeniorityLevel struct {
	ID        uint   `gorm:"primaryKey"`
	Level     string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}
