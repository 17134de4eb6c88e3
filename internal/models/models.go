package models

import "time"

// Role controls which handlers a user may reach.
type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

// JobType is the employment type shown on a listing.
const (
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeInternship = "Internship"
	JobTypeRemote     = "Remote"
	JobTypeContract   = "Contract"
)

// StatusPending is the only application status the system ever sets.
const StatusPending = "Pending"

type User struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password_hash" json:"-"`
	Role      Role      `db:"role" json:"role"`
	Resume    *string   `db:"resume" json:"resume,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type JobPost struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Company     string    `db:"company" json:"company"`
	Location    string    `db:"location" json:"location"`
	JobType     string    `db:"job_type" json:"job_type"`
	Description string    `db:"description" json:"description"`
	DatePosted  time.Time `db:"date_posted" json:"date_posted"`
	PostedBy    int64     `db:"posted_by" json:"posted_by"`
}

type Application struct {
	ID             int64     `db:"id" json:"id"`
	ResumeFilename string    `db:"resume_filename" json:"resume_filename"`
	Status         string    `db:"status" json:"status"`
	Message        *string   `db:"message" json:"message,omitempty"`
	UserID         int64     `db:"user_id" json:"user_id"`
	JobID          int64     `db:"job_id" json:"job_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Session is the server-side record backing a login token. Logout deletes
// the row, which invalidates the token even before it expires.
type Session struct {
	Token     string    `db:"token" json:"-"`
	UserID    int64     `db:"user_id" json:"user_id"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}
