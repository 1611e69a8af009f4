// Package scrape orchestrates fetching parliamentary records from the
// upstream source, applying filters, assembling response envelopes, and
// caching the last full snapshot.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Idenfo/UK-PEP-scrape/internal/metrics"
	"github.com/Idenfo/UK-PEP-scrape/internal/model"
	"github.com/Idenfo/UK-PEP-scrape/internal/parliament"
)

const (
	// Version is reported in snapshot metadata and the service info
	// endpoint.
	Version = "1.0.0"

	dataSource = "UK Parliament API"
)

// Source is the upstream data source. *parliament.Client satisfies it;
// tests substitute a stub.
type Source interface {
	FetchMPs(ctx context.Context, q parliament.MemberQuery) ([]model.Member, error)
	FetchLords(ctx context.Context, q parliament.MemberQuery) ([]model.Member, error)
	FetchMPsGovernmentRoles(ctx context.Context) ([]model.GovernmentRole, error)
	FetchLordsGovernmentRoles(ctx context.Context) ([]model.GovernmentRole, error)
	FetchMPsCommitteeMemberships(ctx context.Context) ([]model.CommitteeMembership, error)
	FetchLordsCommitteeMemberships(ctx context.Context) ([]model.CommitteeMembership, error)
}

// Options are the per-request filter parameters. Date fields apply to
// member queries only and are forwarded to the source; CurrentOnly is
// applied locally to every record kind.
type Options struct {
	CurrentOnly bool
	FromDate    string
	ToDate      string
	OnDate      string
}

// IsZero reports whether no filter is set.
func (o Options) IsZero() bool {
	return o == Options{}
}

func (o Options) memberQuery() parliament.MemberQuery {
	return parliament.MemberQuery{
		FromDate: o.FromDate,
		ToDate:   o.ToDate,
		OnDate:   o.OnDate,
	}
}

// Metadata describes a full snapshot.
type Metadata struct {
	ScrapedAt      string `json:"scraped_at"`
	ScraperVersion string `json:"scraper_version"`
	DataSource     string `json:"data_source"`
	FilterCurrent  bool   `json:"filter_current,omitempty"`
}

// RoleSet carries government role incumbencies for both houses.
type RoleSet struct {
	MPs   []model.GovernmentRole `json:"mps_government_roles"`
	Lords []model.GovernmentRole `json:"lords_government_roles"`
}

// CommitteeSet carries committee memberships for both houses.
type CommitteeSet struct {
	MPs   []model.CommitteeMembership `json:"mps_committee_memberships"`
	Lords []model.CommitteeMembership `json:"lords_committee_memberships"`
}

// AllSummary is the six-count summary of a full snapshot.
type AllSummary struct {
	TotalMPs                       int `json:"total_mps"`
	TotalLords                     int `json:"total_lords"`
	TotalMPsGovRoles               int `json:"total_mps_gov_roles"`
	TotalLordsGovRoles             int `json:"total_lords_gov_roles"`
	TotalMPsCommitteeMemberships   int `json:"total_mps_committee_memberships"`
	TotalLordsCommitteeMemberships int `json:"total_lords_committee_memberships"`
}

// AllData is a complete snapshot of every collection. Snapshots are
// immutable once built; the cache slot is replaced wholesale, never
// mutated in place.
type AllData struct {
	Metadata             Metadata       `json:"metadata"`
	MembersOfParliament  []model.Member `json:"members_of_parliament"`
	HouseOfLords         []model.Member `json:"house_of_lords"`
	GovernmentRoles      RoleSet        `json:"government_roles"`
	CommitteeMemberships CommitteeSet   `json:"committee_memberships"`
	Summary              AllSummary     `json:"summary"`
}

// Scraper coordinates the fetch and filter stages. The only shared
// mutable state is the single-slot snapshot cache, swapped atomically so
// readers always see a complete snapshot.
type Scraper struct {
	src Source
	log *slog.Logger

	cache       atomic.Pointer[AllData]
	lastUpdated atomic.Pointer[time.Time]
}

// New creates a Scraper over the given source.
func New(src Source, log *slog.Logger) *Scraper {
	if log == nil {
		log = slog.Default()
	}
	return &Scraper{src: src, log: log}
}

// ScrapeMPs fetches House of Commons members with the date bounds of o
// and applies the current-only filter.
func (s *Scraper) ScrapeMPs(ctx context.Context, o Options) ([]model.Member, error) {
	members, err := s.src.FetchMPs(ctx, o.memberQuery())
	if err != nil {
		metrics.ScrapeErrors.WithLabelValues("mps").Inc()
		return nil, fmt.Errorf("scrape mps: %w", err)
	}
	metrics.Scrapes.WithLabelValues("mps").Inc()
	return CurrentOnly(members, o.CurrentOnly), nil
}

// ScrapeLords fetches House of Lords members with the date bounds of o
// and applies the current-only filter.
func (s *Scraper) ScrapeLords(ctx context.Context, o Options) ([]model.Member, error) {
	members, err := s.src.FetchLords(ctx, o.memberQuery())
	if err != nil {
		metrics.ScrapeErrors.WithLabelValues("lords").Inc()
		return nil, fmt.Errorf("scrape lords: %w", err)
	}
	metrics.Scrapes.WithLabelValues("lords").Inc()
	return CurrentOnly(members, o.CurrentOnly), nil
}

// ScrapeGovernmentRoles fetches incumbencies for both houses. Date
// bounds are not applicable to roles; only CurrentOnly applies.
func (s *Scraper) ScrapeGovernmentRoles(ctx context.Context, o Options) (RoleSet, error) {
	mps, err := s.src.FetchMPsGovernmentRoles(ctx)
	if err != nil {
		metrics.ScrapeErrors.WithLabelValues("government-roles").Inc()
		return RoleSet{}, fmt.Errorf("scrape mps government roles: %w", err)
	}
	lords, err := s.src.FetchLordsGovernmentRoles(ctx)
	if err != nil {
		metrics.ScrapeErrors.WithLabelValues("government-roles").Inc()
		return RoleSet{}, fmt.Errorf("scrape lords government roles: %w", err)
	}
	metrics.Scrapes.WithLabelValues("government-roles").Inc()
	return RoleSet{
		MPs:   CurrentOnly(mps, o.CurrentOnly),
		Lords: CurrentOnly(lords, o.CurrentOnly),
	}, nil
}

// ScrapeCommitteeMemberships fetches committee memberships for both
// houses. Date bounds are not applicable; only CurrentOnly applies.
func (s *Scraper) ScrapeCommitteeMemberships(ctx context.Context, o Options) (CommitteeSet, error) {
	mps, err := s.src.FetchMPsCommitteeMemberships(ctx)
	if err != nil {
		metrics.ScrapeErrors.WithLabelValues("committees").Inc()
		return CommitteeSet{}, fmt.Errorf("scrape mps committee memberships: %w", err)
	}
	lords, err := s.src.FetchLordsCommitteeMemberships(ctx)
	if err != nil {
		metrics.ScrapeErrors.WithLabelValues("committees").Inc()
		return CommitteeSet{}, fmt.Errorf("scrape lords committee memberships: %w", err)
	}
	metrics.Scrapes.WithLabelValues("committees").Inc()
	return CommitteeSet{
		MPs:   CurrentOnly(mps, o.CurrentOnly),
		Lords: CurrentOnly(lords, o.CurrentOnly),
	}, nil
}

// ScrapeAll fetches every collection and assembles a full snapshot.
// Unfiltered snapshots are stored in the cache slot; filtered results
// are returned but never cached, so the cached snapshot is always the
// complete dataset.
func (s *Scraper) ScrapeAll(ctx context.Context, o Options) (*AllData, error) {
	s.log.Info("starting comprehensive scrape", "current_only", o.CurrentOnly)

	mps, err := s.ScrapeMPs(ctx, o)
	if err != nil {
		return nil, err
	}
	lords, err := s.ScrapeLords(ctx, o)
	if err != nil {
		return nil, err
	}
	roles, err := s.ScrapeGovernmentRoles(ctx, o)
	if err != nil {
		return nil, err
	}
	committees, err := s.ScrapeCommitteeMemberships(ctx, o)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	data := &AllData{
		Metadata: Metadata{
			ScrapedAt:      now.Format(time.RFC3339),
			ScraperVersion: Version,
			DataSource:     dataSource,
			FilterCurrent:  o.CurrentOnly,
		},
		MembersOfParliament:  mps,
		HouseOfLords:         lords,
		GovernmentRoles:      roles,
		CommitteeMemberships: committees,
		Summary: AllSummary{
			TotalMPs:                       len(mps),
			TotalLords:                     len(lords),
			TotalMPsGovRoles:               len(roles.MPs),
			TotalLordsGovRoles:             len(roles.Lords),
			TotalMPsCommitteeMemberships:   len(committees.MPs),
			TotalLordsCommitteeMemberships: len(committees.Lords),
		},
	}

	if o.IsZero() {
		s.cache.Store(data)
	}
	s.lastUpdated.Store(&now)

	s.log.Info("scrape completed",
		"mps", len(mps),
		"lords", len(lords),
		"government_roles", len(roles.MPs)+len(roles.Lords),
		"committee_memberships", len(committees.MPs)+len(committees.Lords),
	)
	return data, nil
}

// Cached returns the last cached full snapshot, or nil when no
// unfiltered scrape has completed yet.
func (s *Scraper) Cached() *AllData {
	return s.cache.Load()
}

// LastUpdated returns the completion time of the last full scrape, or
// nil.
func (s *Scraper) LastUpdated() *time.Time {
	return s.lastUpdated.Load()
}
