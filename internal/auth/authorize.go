package auth

import (
	"errors"

	"github.com/hirewire/hirewire/internal/models"
)

// ErrForbidden is returned by every failed authorization decision. Handlers
// translate it to a bare 403 so callers learn nothing about the resource.
var ErrForbidden = errors.New("auth: forbidden")

// Capability names an action a handler wants to perform. Keeping the
// role→capability mapping in one table stops per-handler role string
// comparisons from drifting apart.
type Capability string

const (
	CapBrowseJobs     Capability = "browse-jobs"
	CapManageJobs     Capability = "manage-jobs"
	CapApply          Capability = "apply"
	CapViewApplicants Capability = "view-applicants"
	CapAdminOverview  Capability = "admin-overview"
)

var grants = map[models.Role]map[Capability]bool{
	models.RoleSeeker: {
		CapBrowseJobs: true,
		CapApply:      true,
	},
	models.RoleEmployer: {
		CapBrowseJobs:     true,
		CapManageJobs:     true,
		CapViewApplicants: true,
	},
	models.RoleAdmin: {
		CapBrowseJobs:    true,
		CapAdminOverview: true,
	},
}

// Require returns ErrForbidden unless the user's role grants the capability.
func Require(u *models.User, c Capability) error {
	if u == nil || !grants[u.Role][c] {
		return ErrForbidden
	}
	return nil
}

// RequireJobOwner is the ownership half of the job-mutation checks: the
// acting employer must be the poster.
func RequireJobOwner(u *models.User, job *models.JobPost) error {
	if u == nil || job == nil || job.PostedBy != u.ID {
		return ErrForbidden
	}
	return nil
}
