// Package access holds the authorization rules for projects and courses.
// Every function is pure: the caller passes the requester and the resource
// and gets a decision back, with no session or store lookups.
package access

import (
	"fmt"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
	coursedomain "github.com/snapcourse/snapcourse-backend/internal/courses/domain"
	projectdomain "github.com/snapcourse/snapcourse-backend/internal/projects/domain"
	userdomain "github.com/snapcourse/snapcourse-backend/internal/users/domain"
)

const (
	VerbUpdate = "update"
	VerbDelete = "delete"

	ResourceProject = "project"
	ResourceCourse  = "course"
)

// DenialMessage is the text shown when a signed-in user may not act on a resource.
func DenialMessage(verb, resource string) string {
	return fmt.Sprintf("You do not have permission to %s this %s", verb, resource)
}

// Owns reports whether requester is the user referenced by ownerID.
func Owns(requester *userdomain.User, ownerID *int64) bool {
	return requester != nil && ownerID != nil && *ownerID == requester.ID
}

// Authenticated returns ErrUnauthenticated for an anonymous requester.
func Authenticated(requester *userdomain.User) error {
	if requester == nil {
		return apperrors.ErrUnauthenticated
	}
	return nil
}

// AuthorizeProjectMutation decides whether requester may apply verb to p.
// p must already be known to exist.
func AuthorizeProjectMutation(requester *userdomain.User, p *projectdomain.Project, verb string) error {
	if err := Authenticated(requester); err != nil {
		return err
	}
	if !Owns(requester, p.Owner) {
		return apperrors.Denied(DenialMessage(verb, ResourceProject))
	}
	return nil
}

// IsTeacher reports whether any of the enrollments makes userID a teacher.
func IsTeacher(userID int64, enrollments []coursedomain.Enrollment) bool {
	for _, e := range enrollments {
		if e.UserID == userID && e.Role == coursedomain.RoleTeacher {
			return true
		}
	}
	return false
}

// AuthorizeCourseDeletion requires a teacher enrollment for requester among
// the course's enrollments.
func AuthorizeCourseDeletion(requester *userdomain.User, enrollments []coursedomain.Enrollment) error {
	if err := Authenticated(requester); err != nil {
		return err
	}
	if !IsTeacher(requester.ID, enrollments) {
		return apperrors.Denied(DenialMessage(VerbDelete, ResourceCourse))
	}
	return nil
}

// ProjectListScope turns a list request into a store filter.
//
// With a target user: the owner sees everything they own, anyone else only
// the target's public projects. Without a target: a signed-in requester gets
// their own projects, an anonymous one every public project.
func ProjectListScope(requester *userdomain.User, targetUserID *int64) projectdomain.ListFilter {
	if targetUserID != nil {
		owner := *targetUserID
		return projectdomain.ListFilter{
			OwnerID:    &owner,
			PublicOnly: !Owns(requester, &owner),
		}
	}
	if requester != nil {
		owner := requester.ID
		return projectdomain.ListFilter{OwnerID: &owner}
	}
	return projectdomain.ListFilter{PublicOnly: true}
}
