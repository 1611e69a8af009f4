// Package parliament implements the client for the upstream UK
// Parliament data API. It fetches raw record collections (members,
// government roles, committee memberships) and converts them to model
// types. Failures surface as *SourceError; there are no retries, a
// failed fetch is immediately user-visible.
package parliament

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Idenfo/UK-PEP-scrape/internal/metrics"
	"github.com/Idenfo/UK-PEP-scrape/internal/model"
)

const (
	// DefaultBaseURL is the production Parliament data platform.
	DefaultBaseURL = "https://api.parliament.uk/pdp"

	defaultTimeout = 30 * time.Second

	houseCommons = "commons"
	houseLords   = "lords"
)

// SourceError wraps any upstream failure: transport errors, non-200
// statuses, and undecodable bodies.
type SourceError struct {
	Resource string
	Err      error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("parliament source unavailable: fetch %s: %v", e.Resource, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// MemberQuery carries the optional date bounds the upstream interprets
// for member queries. Dates are YYYY-MM-DD strings; empty means unset.
type MemberQuery struct {
	FromDate string
	ToDate   string
	OnDate   string
}

func (q MemberQuery) values() url.Values {
	v := url.Values{}
	if q.FromDate != "" {
		v.Set("from_date", q.FromDate)
	}
	if q.ToDate != "" {
		v.Set("to_date", q.ToDate)
	}
	if q.OnDate != "" {
		v.Set("on_date", q.OnDate)
	}
	return v
}

// Client handles communication with the Parliament data API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the given base URL. Empty baseURL and
// zero timeout fall back to defaults.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// membersResponse represents the API response for /members/{house}.json
type membersResponse struct {
	Members []memberJSON `json:"members"`
}

type memberJSON struct {
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

// rolesResponse represents the API response for
// /government-roles/{house}.json
type rolesResponse struct {
	Roles []roleJSON `json:"government_roles"`
}

type roleJSON struct {
	PersonID                      string  `json:"person_id"`
	MnisID                        string  `json:"mnis_id"`
	DisplayName                   string  `json:"display_name"`
	PositionName                  string  `json:"position_name"`
	GovernmentIncumbencyStartDate *string `json:"government_incumbency_start_date"`
	GovernmentIncumbencyEndDate   *string `json:"government_incumbency_end_date"`
}

// committeesResponse represents the API response for
// /committee-memberships/{house}.json
type committeesResponse struct {
	Memberships []committeeJSON `json:"committee_memberships"`
}

type committeeJSON struct {
	PersonID                     string  `json:"person_id"`
	MnisID                       string  `json:"mnis_id"`
	DisplayName                  string  `json:"display_name"`
	CommitteeName                string  `json:"committee_name"`
	CommitteeType                string  `json:"committee_type"`
	CommitteeMembershipStartDate *string `json:"committee_membership_start_date"`
	CommitteeMembershipEndDate   *string `json:"committee_membership_end_date"`
}

// FetchMPs retrieves members of the House of Commons.
func (c *Client) FetchMPs(ctx context.Context, q MemberQuery) ([]model.Member, error) {
	return c.fetchMembers(ctx, houseCommons, q)
}

// FetchLords retrieves members of the House of Lords.
func (c *Client) FetchLords(ctx context.Context, q MemberQuery) ([]model.Member, error) {
	return c.fetchMembers(ctx, houseLords, q)
}

func (c *Client) fetchMembers(ctx context.Context, house string, q MemberQuery) ([]model.Member, error) {
	resource := house + "_members"
	u := fmt.Sprintf("%s/members/%s.json", c.baseURL, house)
	if params := q.values().Encode(); params != "" {
		u += "?" + params
	}

	body, err := c.get(ctx, resource, u)
	if err != nil {
		return nil, err
	}

	var resp membersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &SourceError{Resource: resource, Err: fmt.Errorf("parse response: %w", err)}
	}

	members := make([]model.Member, len(resp.Members))
	for i, m := range resp.Members {
		members[i] = model.Member{
			PersonID:                 m.PersonID,
			MnisID:                   m.MnisID,
			GivenName:                m.GivenName,
			FamilyName:               m.FamilyName,
			DisplayName:              m.DisplayName,
			FullTitle:                m.FullTitle,
			Gender:                   m.Gender,
			DateOfBirth:              m.DateOfBirth,
			DateOfDeath:              m.DateOfDeath,
			PartyName:                m.PartyName,
			ConstituencyName:         m.ConstituencyName,
			HouseMembershipStartDate: m.HouseMembershipStartDate,
			HouseMembershipEndDate:   m.HouseMembershipEndDate,
		}
	}
	return members, nil
}

// FetchMPsGovernmentRoles retrieves government role incumbencies held by
// MPs.
func (c *Client) FetchMPsGovernmentRoles(ctx context.Context) ([]model.GovernmentRole, error) {
	return c.fetchRoles(ctx, houseCommons)
}

// FetchLordsGovernmentRoles retrieves government role incumbencies held
// by Lords.
func (c *Client) FetchLordsGovernmentRoles(ctx context.Context) ([]model.GovernmentRole, error) {
	return c.fetchRoles(ctx, houseLords)
}

func (c *Client) fetchRoles(ctx context.Context, house string) ([]model.GovernmentRole, error) {
	resource := house + "_government_roles"
	u := fmt.Sprintf("%s/government-roles/%s.json", c.baseURL, house)

	body, err := c.get(ctx, resource, u)
	if err != nil {
		return nil, err
	}

	var resp rolesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &SourceError{Resource: resource, Err: fmt.Errorf("parse response: %w", err)}
	}

	roles := make([]model.GovernmentRole, len(resp.Roles))
	for i, r := range resp.Roles {
		roles[i] = model.GovernmentRole(r)
	}
	return roles, nil
}

// FetchMPsCommitteeMemberships retrieves committee memberships held by
// MPs.
func (c *Client) FetchMPsCommitteeMemberships(ctx context.Context) ([]model.CommitteeMembership, error) {
	return c.fetchCommittees(ctx, houseCommons)
}

// FetchLordsCommitteeMemberships retrieves committee memberships held by
// Lords.
func (c *Client) FetchLordsCommitteeMemberships(ctx context.Context) ([]model.CommitteeMembership, error) {
	return c.fetchCommittees(ctx, houseLords)
}

func (c *Client) fetchCommittees(ctx context.Context, house string) ([]model.CommitteeMembership, error) {
	resource := house + "_committee_memberships"
	u := fmt.Sprintf("%s/committee-memberships/%s.json", c.baseURL, house)

	body, err := c.get(ctx, resource, u)
	if err != nil {
		return nil, err
	}

	var resp committeesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &SourceError{Resource: resource, Err: fmt.Errorf("parse response: %w", err)}
	}

	memberships := make([]model.CommitteeMembership, len(resp.Memberships))
	for i, m := range resp.Memberships {
		memberships[i] = model.CommitteeMembership(m)
	}
	return memberships, nil
}

// get performs a single HTTP GET. No retries: the caller surfaces the
// failure to the user directly.
func (c *Client) get(ctx context.Context, resource, url string) ([]byte, error) {
	start := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &SourceError{Resource: resource, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &SourceError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SourceError{Resource: resource, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &SourceError{Resource: resource, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	return body, nil
}
