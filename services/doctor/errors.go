package doctor

import (
	"errors"

	doctorRepo "medconnect/database/repository/doctor"
)

var (
	ErrDoctorNotFound     = doctorRepo.ErrDoctorNotFound
	ErrForbidden          = errors.New("only the owning doctor may change this availability")
	ErrDraftNotFound      = errors.New("availability draft not found or expired")
	ErrEmailTaken         = errors.New("a doctor with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDraftsDisabled     = errors.New("availability drafts are not configured")
	ErrDraftConflict      = errors.New("availability draft was changed by another request")
	ErrIdentityDisabled   = errors.New("external identity linking is not configured")
	ErrInvalidIdentity    = errors.New("external identity token is invalid")
	ErrIdentityTaken      = errors.New("this identity is already linked to a doctor")
)
