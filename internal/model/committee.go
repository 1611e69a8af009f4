package model

// CommitteeMembershipColumns is the CSV header for committee membership
// exports. Header text is a compatibility contract; do not reorder or
// rename.
var CommitteeMembershipColumns = []string{
	"person_id",
	"mnis_id",
	"display_name",
	"committee_name",
	"committee_type",
	"committee_membership_start_date",
	"committee_membership_end_date",
}

// CommitteeMembership is a member's time-bounded seat on a parliamentary
// committee.
type CommitteeMembership struct {
	PersonID                     string  `json:"person_id"`
	MnisID                       string  `json:"mnis_id"`
	DisplayName                  string  `json:"display_name"`
	CommitteeName                string  `json:"committee_name"`
	CommitteeType                string  `json:"committee_type"`
	CommitteeMembershipStartDate *string `json:"committee_membership_start_date"`
	CommitteeMembershipEndDate   *string `json:"committee_membership_end_date"`
}

// Current reports whether the membership is ongoing.
func (c CommitteeMembership) Current() bool {
	return dateEmpty(c.CommitteeMembershipEndDate)
}

// CSVRow returns the membership flattened into
// CommitteeMembershipColumns order.
func (c CommitteeMembership) CSVRow() []string {
	return []string{
		c.PersonID,
		c.MnisID,
		c.DisplayName,
		c.CommitteeName,
		c.CommitteeType,
		deref(c.CommitteeMembershipStartDate),
		deref(c.CommitteeMembershipEndDate),
	}
}
