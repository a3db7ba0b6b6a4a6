package users

import (
	"regexp"
	"strconv"
	"strings"

	"resumegen-backend/internal/auth"
	"resumegen-backend/internal/respond"
)

var emailRx = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// RegisterInput is the registration request payload.
type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Validate checks the registration payload and returns one detail per
// violated constraint.
func (in RegisterInput) Validate() []respond.FieldDetail {
	var details []respond.FieldDetail
	if strings.TrimSpace(in.FirstName) == "" {
		details = append(details, respond.FieldDetail{Field: "first_name", Issue: "required"})
	}
	if strings.TrimSpace(in.LastName) == "" {
		details = append(details, respond.FieldDetail{Field: "last_name", Issue: "required"})
	}
	if !emailRx.MatchString(in.Email) {
		details = append(details, respond.FieldDetail{Field: "email", Issue: "must be a valid email address"})
	}
	details = append(details, auth.ValidatePasswordPolicy(in.Password)...)
	return details
}

// Validate checks a partial profile update. Experience entries that are not
// ongoing must carry an end date, and the end date may not precede the start.
func (u ProfileUpdate) Validate() []respond.FieldDetail {
	var details []respond.FieldDetail
	if u.Email != nil && !emailRx.MatchString(*u.Email) {
		details = append(details, respond.FieldDetail{Field: "email", Issue: "must be a valid email address"})
	}
	if u.ContactDetails != nil && u.ContactDetails.Email != "" && !emailRx.MatchString(u.ContactDetails.Email) {
		details = append(details, respond.FieldDetail{Field: "contact_details.email", Issue: "must be a valid email address"})
	}
	if u.Experiences != nil {
		for i, exp := range *u.Experiences {
			if strings.TrimSpace(exp.JobTitle) == "" {
				details = append(details, respond.FieldDetail{Field: fieldAt("experiences", i, "job_title"), Issue: "required"})
			}
			if strings.TrimSpace(exp.Company) == "" {
				details = append(details, respond.FieldDetail{Field: fieldAt("experiences", i, "company"), Issue: "required"})
			}
			if exp.StartDate.IsZero() {
				details = append(details, respond.FieldDetail{Field: fieldAt("experiences", i, "start_date"), Issue: "required"})
			}
			if !exp.OnGoing && exp.EndDate == nil {
				details = append(details, respond.FieldDetail{Field: fieldAt("experiences", i, "end_date"), Issue: "required when not ongoing"})
			}
			if exp.EndDate != nil && !exp.StartDate.IsZero() && exp.EndDate.Before(exp.StartDate) {
				details = append(details, respond.FieldDetail{Field: fieldAt("experiences", i, "end_date"), Issue: "cannot be before start_date"})
			}
		}
	}
	if u.Education != nil {
		for i, edu := range *u.Education {
			if strings.TrimSpace(edu.Degree) == "" {
				details = append(details, respond.FieldDetail{Field: fieldAt("education", i, "degree"), Issue: "required"})
			}
			if strings.TrimSpace(edu.University) == "" {
				details = append(details, respond.FieldDetail{Field: fieldAt("education", i, "university"), Issue: "required"})
			}
		}
	}
	if u.Skills != nil {
		for i, skill := range *u.Skills {
			if strings.TrimSpace(skill.Name) == "" {
				details = append(details, respond.FieldDetail{Field: fieldAt("skills", i, "name"), Issue: "required"})
			}
		}
	}
	if u.References != nil {
		for i, ref := range *u.References {
			if strings.TrimSpace(ref.Name) == "" {
				details = append(details, respond.FieldDetail{Field: fieldAt("references", i, "reference_name"), Issue: "required"})
			}
			if strings.TrimSpace(ref.Relation) == "" {
				details = append(details, respond.FieldDetail{Field: fieldAt("references", i, "relation"), Issue: "required"})
			}
			if !emailRx.MatchString(ref.Email) {
				details = append(details, respond.FieldDetail{Field: fieldAt("references", i, "email"), Issue: "must be a valid email address"})
			}
		}
	}
	return details
}

func fieldAt(section string, index int, field string) string {
	return section + "[" + strconv.Itoa(index) + "]." + field
}
