package models

import "time"

const (
	DoctorStatusActive  = "active"
	DoctorStatusPending = "pending"
)

type DoctorProfile struct {
	FullName     string `bson:"fullName" json:"fullName"`
	Email        string `bson:"email" json:"email"`
	Specialty    string `bson:"specialty" json:"specialty,omitempty"`
	Bio          string `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfileImage string `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Status       string `bson:"status" json:"status"`
}

type DoctorSecurity struct {
	PasswordHash string `bson:"passwordHash" json:"-"`
	TokenHash    string `bson:"tokenHash" json:"-"`
}

// Doctor is the profile document. It exclusively owns its availability, which
// goes away with the document.
type Doctor struct {
	ID           string         `bson:"id" json:"id"`
	Profile      DoctorProfile  `bson:"profile" json:"profile"`
	Security     DoctorSecurity `bson:"security" json:"-"`
	ExternalUID  string         `bson:"externalUID,omitempty" json:"-"`
	Availability Availability   `bson:"availability" json:"availability"`
	CreatedAt    time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// DoctorCard is the public listing view.
type DoctorCard struct {
	ID            string `json:"id"`
	FullName      string `json:"fullName"`
	Specialty     string `json:"specialty,omitempty"`
	Status        string `json:"availabilityStatus"`
	NextAvailable string `json:"nextAvailable"`
	TodayHours    string `json:"todayHours"`
}

// DoctorListing is a roster entry: enough to evaluate and render a card at
// read time.
type DoctorListing struct {
	ID           string       `json:"id"`
	FullName     string       `json:"fullName"`
	Specialty    string       `json:"specialty,omitempty"`
	Availability Availability `json:"availability"`
}

type DoctorRegistrationRequest struct {
	FullName  string `json:"fullName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"`
	// IDToken links the account to a third-party identity. The UID is taken
	// from the verified token, never from the request.
	IDToken   string `json:"idToken"`
}

type DoctorLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// DoctorAuthResponse is returned after registration or login.
type DoctorAuthResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}
