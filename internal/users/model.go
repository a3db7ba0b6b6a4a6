package users

import "time"

// User is the account record. PasswordHash never serializes.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ContactDetails is the single contact record attached to a user.
type ContactDetails struct {
	ID        string `json:"id,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email"`
	GitHub    string `json:"github,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
	Location  string `json:"location,omitempty"`
}

// Experience is a work history entry. EndDate may be nil only while OnGoing.
type Experience struct {
	ID          string     `json:"id,omitempty"`
	JobTitle    string     `json:"job_title"`
	Company     string     `json:"company"`
	StartDate   time.Time  `json:"start_date"`
	OnGoing     bool       `json:"on_going"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Education is a degree entry.
type Education struct {
	ID             string `json:"id,omitempty"`
	Degree         string `json:"degree"`
	University     string `json:"university"`
	GraduationYear int    `json:"graduation_year"`
}

// Skill is a named skill attached to a user.
type Skill struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Certification is a certification entry.
type Certification struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"certification_name"`
	Issuer      string     `json:"issuer,omitempty"`
	DateIssued  *time.Time `json:"date_issued,omitempty"`
	DateExpires *time.Time `json:"date_expires,omitempty"`
}

// Project is a portfolio project entry.
type Project struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"project_name"`
	Description string `json:"description,omitempty"`
	Link        string `json:"project_link,omitempty"`
}

// Reference is a professional reference entry.
type Reference struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"reference_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Relation string `json:"relation"`
}

// ResumeFile records the single stored resume document for a user.
type ResumeFile struct {
	ID         string    `json:"id,omitempty"`
	StorageKey string    `json:"-"`
	FileName   string    `json:"file_name"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Profile is the full user profile: the account plus all sub-entities.
type Profile struct {
	User           User            `json:"user"`
	ContactDetails *ContactDetails `json:"contact_details,omitempty"`
	Experiences    []Experience    `json:"experiences"`
	Education      []Education     `json:"education"`
	Skills         []Skill         `json:"skills"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
	References     []Reference     `json:"references"`
	ResumeFile     *ResumeFile     `json:"resume_file,omitempty"`
}

// ProfileUpdate carries a partial profile update. Nil fields are left
// untouched; a non-nil slice pointer replaces that section wholesale.
type ProfileUpdate struct {
	FirstName      *string          `json:"first_name"`
	LastName       *string          `json:"last_name"`
	Email          *string          `json:"email"`
	ContactDetails *ContactDetails  `json:"contact_details"`
	Experiences    *[]Experience    `json:"experiences"`
	Education      *[]Education     `json:"education"`
	Skills         *[]Skill         `json:"skills"`
	Certifications *[]Certification `json:"certifications"`
	Projects       *[]Project       `json:"projects"`
	References     *[]Reference     `json:"references"`
}
