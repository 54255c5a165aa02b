package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	IssueRoad        = "Road"
	IssueStreetLight = "Street Light"
	IssueWater       = "Water"
	IssueGarbage     = "Garbage"
	IssueOther       = "Other"

	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

// ValidIssueTypes is the closed set accepted at creation.
var ValidIssueTypes = map[string]bool{
	IssueRoad:        true,
	IssueStreetLight: true,
	IssueWater:       true,
	IssueGarbage:     true,
	IssueOther:       true,
}

// ValidStatuses is the closed set accepted on status updates.
var ValidStatuses = map[string]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusResolved:   true,
}

type Complaint struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name,omitempty" json:"name"`
	IssueType   string    `bson:"issue_type" json:"issueType"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Location    string    `bson:"location" json:"location"`
	Status      string    `bson:"status" json:"status"`
	Upvotes     int       `bson:"upvotes" json:"upvotes"`
	Upvoters    []string  `bson:"upvoted_by,omitempty" json:"upvoters"`
	PhotoData   string    `bson:"photo_data,omitempty" json:"photoData,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasUpvoted reports whether addr is already in the upvoter set.
func (c *Complaint) HasUpvoted(addr string) bool {
	for _, a := range c.Upvoters {
		if a == addr {
			return true
		}
	}
	return false
}

// NewComplaintID builds a time-ordered id: millisecond timestamp in base36
// plus a random suffix. Collisions are negligible, not impossible.
func NewComplaintID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + "-" + suffix
}

// ComplaintEvent is the message published to the complaint queue after a
// creation or status change.
type ComplaintEvent struct {
	Type      string    `json:"type"` // complaint_created, status_updated
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	IssueType string    `json:"issueType"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	EventComplaintCreated = "complaint_created"
	EventStatusUpdated    = "status_updated"
)
