package main

import (
	"strings"
	"testing"

	"complaint-portal/services/complaint-service/models"

	"github.com/stretchr/testify/assert"
)

func validInput() createComplaintInput {
	return createComplaintInput{
		IssueType:   models.IssueRoad,
		Title:       "Pothole on Main St",
		Description: "Large pothole causing traffic issues",
		Location:    "Main St & 5th",
	}
}

// TestValidateCreateAccepted verifies a well-formed payload passes, with and
// without the optional fields.
func TestValidateCreateAccepted(t *testing.T) {
	input := validInput()
	assert.Empty(t, validateCreate(&input))

	input.Name = "Jane Citizen"
	input.PhotoData = strings.Repeat("a", 1000)
	assert.Empty(t, validateCreate(&input))
}

// TestValidateCreateBounds walks each field's inclusive bounds.
func TestValidateCreateBounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*createComplaintInput)
		wantBad string
	}{
		{"issue type outside enum", func(in *createComplaintInput) { in.IssueType = "Earthquake" }, "issueType"},
		{"issue type empty", func(in *createComplaintInput) { in.IssueType = "" }, "issueType"},
		{"title too short", func(in *createComplaintInput) { in.Title = "Hey!" }, "title"},
		{"title too long", func(in *createComplaintInput) { in.Title = strings.Repeat("x", 121) }, "title"},
		{"description too short", func(in *createComplaintInput) { in.Description = "short one" }, "description"},
		{"description too long", func(in *createComplaintInput) { in.Description = strings.Repeat("x", 1001) }, "description"},
		{"location too short", func(in *createComplaintInput) { in.Location = "ab" }, "location"},
		{"location too long", func(in *createComplaintInput) { in.Location = strings.Repeat("x", 201) }, "location"},
		{"name too long", func(in *createComplaintInput) { in.Name = strings.Repeat("x", 81) }, "name"},
		{"photo too large", func(in *createComplaintInput) { in.PhotoData = strings.Repeat("x", photoDataMaxLen+1) }, "photoData"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			fields := validateCreate(&input)
			assert.Len(t, fields, 1)
			assert.Equal(t, tc.wantBad, fields[0].Field)
		})
	}
}

// TestValidateCreateBoundaryLengths verifies the inclusive edges are accepted.
func TestValidateCreateBoundaryLengths(t *testing.T) {
	input := validInput()
	input.Title = strings.Repeat("x", titleMinLen)
	input.Description = strings.Repeat("x", descriptionMaxLen)
	input.Location = strings.Repeat("x", locationMinLen)
	input.Name = strings.Repeat("x", nameMaxLen)

	assert.Empty(t, validateCreate(&input))
}

// TestValidateCreateCountsRunes verifies bounds count characters, not bytes.
func TestValidateCreateCountsRunes(t *testing.T) {
	input := validInput()
	// Five characters, fifteen bytes.
	input.Title = strings.Repeat("й", titleMinLen)

	assert.Empty(t, validateCreate(&input))
}

// TestValidateCreateCollectsAllFailures verifies one pass reports every bad
// field at once.
func TestValidateCreateCollectsAllFailures(t *testing.T) {
	input := createComplaintInput{
		IssueType:   "Volcano",
		Title:       "Hi",
		Description: "short",
		Location:    "ab",
	}

	fields := validateCreate(&input)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	assert.ElementsMatch(t, []string{"issueType", "title", "description", "location"}, names)
}

// TestValidateStatus verifies the closed status set.
func TestValidateStatus(t *testing.T) {
	assert.Empty(t, validateStatus(models.StatusPending))
	assert.Empty(t, validateStatus(models.StatusInProgress))
	assert.Empty(t, validateStatus(models.StatusResolved))

	fields := validateStatus("Closed")
	assert.Len(t, fields, 1)
	assert.Equal(t, "status", fields[0].Field)

	assert.NotEmpty(t, validateStatus(""))
	assert.NotEmpty(t, validateStatus("pending"), "status values are case sensitive")
}
