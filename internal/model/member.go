package model

// MemberColumns is the CSV header for member exports. Downstream tooling
// keys on the exact header text, so the order and spelling must not change.
var MemberColumns = []string{
	"person_id",
	"mnis_id",
	"given_name",
	"family_name",
	"display_name",
	"full_title",
	"gender",
	"date_of_birth",
	"date_of_death",
	"party_name",
	"constituency_name",
	"house_membership_start_date",
	"house_membership_end_date",
}

// Member represents a member of either house: an MP (House of Commons)
// or a Lord (House of Lords). Constituency is empty for Lords. Nullable
// dates are pointers so a missing value and an empty string are both
// representable.
type Member struct {
	PersonID                 string  `json:"person_id"`
	MnisID                   string  `json:"mnis_id"`
	GivenName                string  `json:"given_name"`
	FamilyName               string  `json:"family_name"`
	DisplayName              string  `json:"display_name"`
	FullTitle                string  `json:"full_title"`
	Gender                   string  `json:"gender"`
	DateOfBirth              *string `json:"date_of_birth"`
	DateOfDeath              *string `json:"date_of_death"`
	PartyName                string  `json:"party_name"`
	ConstituencyName         string  `json:"constituency_name"`
	HouseMembershipStartDate *string `json:"house_membership_start_date"`
	HouseMembershipEndDate   *string `json:"house_membership_end_date"`
}

// Current reports whether the member is still serving, i.e. the house
// membership has no end date.
func (m Member) Current() bool {
	return dateEmpty(m.HouseMembershipEndDate)
}

// CSVRow returns the member flattened into MemberColumns order.
func (m Member) CSVRow() []string {
	return []string{
		m.PersonID,
		m.MnisID,
		m.GivenName,
		m.FamilyName,
		m.DisplayName,
		m.FullTitle,
		m.Gender,
		deref(m.DateOfBirth),
		deref(m.DateOfDeath),
		m.PartyName,
		m.ConstituencyName,
		deref(m.HouseMembershipStartDate),
		deref(m.HouseMembershipEndDate),
	}
}
