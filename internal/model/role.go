package model

// GovernmentRoleColumns is the CSV header for government role exports.
// Header text is a compatibility contract; do not reorder or rename.
var GovernmentRoleColumns = []string{
	"person_id",
	"mnis_id",
	"display_name",
	"position_name",
	"government_incumbency_start_date",
	"government_incumbency_end_date",
}

// GovernmentRole is a time-bounded appointment of a member to a
// government position (an incumbency).
type GovernmentRole struct {
	PersonID                      string  `json:"person_id"`
	MnisID                        string  `json:"mnis_id"`
	DisplayName                   string  `json:"display_name"`
	PositionName                  string  `json:"position_name"`
	GovernmentIncumbencyStartDate *string `json:"government_incumbency_start_date"`
	GovernmentIncumbencyEndDate   *string `json:"government_incumbency_end_date"`
}

// Current reports whether the incumbency is ongoing.
func (r GovernmentRole) Current() bool {
	return dateEmpty(r.GovernmentIncumbencyEndDate)
}

// CSVRow returns the role flattened into GovernmentRoleColumns order.
func (r GovernmentRole) CSVRow() []string {
	return []string{
		r.PersonID,
		r.MnisID,
		r.DisplayName,
		r.PositionName,
		deref(r.GovernmentIncumbencyStartDate),
		deref(r.GovernmentIncumbencyEndDate),
	}
}
