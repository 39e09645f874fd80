// Package authz holds the ownership predicates gating club, event, and
// announcement mutation. The functions are pure so every mutation path
// shares one decision rule. Callers are expected to verify the resource
// exists before consulting the guard, so "not found" and "forbidden" stay
// distinct outcomes.
package authz

// Actor is the acting user as resolved by the auth layer.
type Actor struct {
	ID      string
	IsAdmin bool
}

// CanMutateClub reports whether the actor may mutate a club itself.
// Only the owner qualifies; there is intentionally no platform-admin
// override here, matching the product's ownership rules.
func CanMutateClub(actorID, ownerID string) bool {
	return actorID != "" && actorID == ownerID
}

// CanMutateClubResource reports whether the actor may mutate a resource
// belonging to a club (events, announcements). The club owner qualifies,
// and platform admins override.
func CanMutateClubResource(actor Actor, ownerID string) bool {
	if actor.IsAdmin {
		return true
	}
	return CanMutateClub(actor.ID, ownerID)
}
