package types

import (
	uuid "github.com/gofrs/uuid"
)

// HTTP header constants
const (
	HeaderUID           = "uid"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
)

// Authentication constants
const (
	BearerPrefix = "Bearer "

	// AccessTokenCookie is the HttpOnly cookie carrying the session JWT.
	AccessTokenCookie = "access_token"
	// VisitorCookie is the long-lived cookie identifying anonymous voters.
	VisitorCookie = "visitor_id"

	// UserCtxName is the fiber locals key holding the authenticated UserContext.
	UserCtxName = "user"
	// VoterCtxName is the fiber locals key holding the resolved Voter identity.
	VoterCtxName = "voter"
)

// Common role values
const (
	UserRole  = "user"
	AdminRole = "admin"
)

// UserContext carries the authenticated user's identity extracted from a JWT.
type UserContext struct {
	UserID      uuid.UUID `json:"uid"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar"`
	ProfileID   uuid.UUID `json:"profileId"`
	SystemRole  string    `json:"role"`
}

// VoterKind distinguishes the two supported voter identity variants.
type VoterKind string

const (
	VoterKindAnonymous VoterKind = "anonymous"
	VoterKindUser      VoterKind = "user"
)

// Voter is the tagged identity used for vote quota and duplicate tracking.
// It is either an anonymous per-browser token or an authenticated user id;
// Key() yields the stable comparable identity stored in the vote ledger.
type Voter struct {
	Kind   VoterKind
	Token  string    // set for anonymous voters
	UserID uuid.UUID // set for authenticated voters
}

// AnonymousVoter builds a Voter from a per-browser visitor token.
func AnonymousVoter(token string) Voter {
	return Voter{Kind: VoterKindAnonymous, Token: token}
}

// UserVoter builds a Voter from an authenticated user id.
func UserVoter(userID uuid.UUID) Voter {
	return Voter{Kind: VoterKindUser, UserID: userID}
}

// Key returns the ledger identity string for this voter.
func (v Voter) Key() string {
	if v.Kind == VoterKindUser {
		return v.UserID.String()
	}
	return v.Token
}

// IsUser reports whether the voter is an authenticated user.
func (v Voter) IsUser() bool {
	return v.Kind == VoterKindUser && v.UserID != uuid.Nil
}

// Valid reports whether the voter carries a usable identity. The check is
// kind-aware: uuid.Nil stringifies to a non-empty value, so an authenticated
// voter must hold a real user id, not just a non-empty Key().
func (v Voter) Valid() bool {
	if v.Kind == VoterKindUser {
		return v.UserID != uuid.Nil
	}
	return v.Token != ""
}
