package main

import (
	"fmt"
	"unicode/utf8"

	"complaint-portal/pkg/response"
	"complaint-portal/services/complaint-service/models"
)

const (
	nameMaxLen        = 80
	titleMinLen       = 5
	titleMaxLen       = 120
	descriptionMinLen = 10
	descriptionMaxLen = 1000
	locationMinLen    = 3
	locationMaxLen    = 200
	photoDataMaxLen   = 5000000
)

type createComplaintInput struct {
	Name        string `json:"name"`
	IssueType   string `json:"issueType"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	PhotoData   string `json:"photoData"`
}

// validateCreate checks the whole payload and reports every failing field.
// Lengths are counted in characters, bounds inclusive.
func validateCreate(input *createComplaintInput) []response.FieldError {
	var fields []response.FieldError

	if !models.ValidIssueTypes[input.IssueType] {
		fields = append(fields, response.FieldError{
			Field:   "issueType",
			Message: "issueType must be one of: Road, Street Light, Water, Garbage, Other",
		})
	}

	if n := utf8.RuneCountInString(input.Title); n < titleMinLen || n > titleMaxLen {
		fields = append(fields, response.FieldError{
			Field:   "title",
			Message: fmt.Sprintf("title must be between %d and %d characters", titleMinLen, titleMaxLen),
		})
	}

	if n := utf8.RuneCountInString(input.Description); n < descriptionMinLen || n > descriptionMaxLen {
		fields = append(fields, response.FieldError{
			Field:   "description",
			Message: fmt.Sprintf("description must be between %d and %d characters", descriptionMinLen, descriptionMaxLen),
		})
	}

	if n := utf8.RuneCountInString(input.Location); n < locationMinLen || n > locationMaxLen {
		fields = append(fields, response.FieldError{
			Field:   "location",
			Message: fmt.Sprintf("location must be between %d and %d characters", locationMinLen, locationMaxLen),
		})
	}

	if utf8.RuneCountInString(input.Name) > nameMaxLen {
		fields = append(fields, response.FieldError{
			Field:   "name",
			Message: fmt.Sprintf("name must be at most %d characters", nameMaxLen),
		})
	}

	if utf8.RuneCountInString(input.PhotoData) > photoDataMaxLen {
		fields = append(fields, response.FieldError{
			Field:   "photoData",
			Message: fmt.Sprintf("photoData must be at most %d characters", photoDataMaxLen),
		})
	}

	return fields
}

func validateStatus(status string) []response.FieldError {
	if !models.ValidStatuses[status] {
		return []response.FieldError{{
			Field:   "status",
			Message: "status must be one of: Pending, In Progress, Resolved",
		}}
	}
	return nil
}
