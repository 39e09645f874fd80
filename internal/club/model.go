package club

import (
	"time"

	"github.com/jasonwuio/clubhub-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.NotFound("club not found")
	ErrNameRequired = apperror.Validation("club name is required")
	ErrNameTaken    = apperror.Validation("club with this name already exists")
	ErrAdminOnly    = apperror.Forbidden("only admins can create clubs")
	ErrNotOwner     = apperror.Forbidden("only the club owner can perform this action")

	ErrAlreadyMember        = apperror.Validation("user is already a member of this club")
	ErrPendingRequestExists = apperror.Validation("a pending request for this club already exists")

	ErrRequestNotFound = apperror.NotFound("join request not found")
	ErrRequestResolved = apperror.Validation("join request is already resolved")
	ErrInvalidStatus   = apperror.Validation("status must be accepted or rejected")
)

// Member roles. Role is free-form on requests; these are the values the
// system itself writes.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Member is one entry of a club's membership ledger.
type Member struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Members is the club's membership ledger. It is stored as a single JSONB
// value on the clubs row and must always be written back in full.
type Members []Member

// Has reports whether the user already appears in the ledger.
func (m Members) Has(userID string) bool {
	for _, entry := range m {
		if entry.UserID == userID {
			return true
		}
	}
	return false
}

// Add appends a member entry, keeping entries unique by user ID. It returns
// the (possibly unchanged) ledger and whether an entry was added.
func (m Members) Add(userID, role string) (Members, bool) {
	if m.Has(userID) {
		return m, false
	}
	return append(m, Member{UserID: userID, Role: role}), true
}

// Club is an organizational unit with a single owning user and a member
// roster seeded with that owner.
type Club struct {
	ID          string // UUID
	Name        string
	Description *string
	OwnerID     string
	Members     Members
	LogoURL     *string
	Category    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines filter options for listing clubs.
type Filter struct {
	Category string
	Page     int
	PageSize int
}

// RequestStatus is the lifecycle state of a join request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

// Terminal reports whether the status permits no further transition.
func (s RequestStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Request is a user's ask to join a club. Resolved requests are kept as an
// audit trail and never deleted by the resolve flow.
type Request struct {
	ID            string // UUID
	ClubID        string
	UserID        string
	Status        RequestStatus
	Message       *string
	RequestedRole *string
	AdminResponse *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
