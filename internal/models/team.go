// internal/models/team.go
package models

// Team is a group of readers who share identical assignment. Membership
// changes never retroactively alter existing reviews.
type Team struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
}
