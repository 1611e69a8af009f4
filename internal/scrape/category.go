package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/Idenfo/UK-PEP-scrape/internal/export"
	"github.com/Idenfo/UK-PEP-scrape/internal/model"
)

// Category names one of the recognized record collections.
type Category string

const (
	CategoryAll             Category = "all"
	CategoryMPs             Category = "mps"
	CategoryLords           Category = "lords"
	CategoryCommittees      Category = "committees"
	CategoryGovernmentRoles Category = "government-roles"
)

// Categories lists every recognized category, in the order used for
// error messages.
var Categories = []Category{
	CategoryAll,
	CategoryMPs,
	CategoryLords,
	CategoryGovernmentRoles,
	CategoryCommittees,
}

// UnknownCategoryError reports a category value outside the recognized
// set.
type UnknownCategoryError struct {
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("data type must be one of: %s (got %q)", categoryList(), e.Value)
}

func categoryList() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// ParseCategory validates s against the recognized categories.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if s == string(c) {
			return c, nil
		}
	}
	return "", &UnknownCategoryError{Value: s}
}

// datasetBuilder produces the flattened sub-collections a category
// implies. New data sources register here instead of subclassing
// anything: a category maps to a fetch function and the column schemas
// of its datasets.
type datasetBuilder func(ctx context.Context, s *Scraper, o Options) ([]export.Dataset, error)

var datasetBuilders = map[Category]datasetBuilder{
	CategoryAll:             buildAllDatasets,
	CategoryMPs:             buildMPsDataset,
	CategoryLords:           buildLordsDataset,
	CategoryGovernmentRoles: buildRoleDatasets,
	CategoryCommittees:      buildCommitteeDatasets,
}

// Datasets fetches and flattens the sub-collections implied by cat:
// one for mps or lords, two for government-roles or committees, six for
// all.
func (s *Scraper) Datasets(ctx context.Context, cat Category, o Options) ([]export.Dataset, error) {
	build, ok := datasetBuilders[cat]
	if !ok {
		return nil, &UnknownCategoryError{Value: string(cat)}
	}
	return build(ctx, s, o)
}

func buildMPsDataset(ctx context.Context, s *Scraper, o Options) ([]export.Dataset, error) {
	mps, err := s.ScrapeMPs(ctx, o)
	if err != nil {
		return nil, err
	}
	return []export.Dataset{memberDataset("mps", mps)}, nil
}

func buildLordsDataset(ctx context.Context, s *Scraper, o Options) ([]export.Dataset, error) {
	lords, err := s.ScrapeLords(ctx, o)
	if err != nil {
		return nil, err
	}
	return []export.Dataset{memberDataset("lords", lords)}, nil
}

func buildRoleDatasets(ctx context.Context, s *Scraper, o Options) ([]export.Dataset, error) {
	roles, err := s.ScrapeGovernmentRoles(ctx, o)
	if err != nil {
		return nil, err
	}
	return roleDatasets(roles), nil
}

func buildCommitteeDatasets(ctx context.Context, s *Scraper, o Options) ([]export.Dataset, error) {
	committees, err := s.ScrapeCommitteeMemberships(ctx, o)
	if err != nil {
		return nil, err
	}
	return committeeDatasets(committees), nil
}

func buildAllDatasets(ctx context.Context, s *Scraper, o Options) ([]export.Dataset, error) {
	data, err := s.ScrapeAll(ctx, o)
	if err != nil {
		return nil, err
	}
	datasets := []export.Dataset{
		memberDataset("mps", data.MembersOfParliament),
		memberDataset("lords", data.HouseOfLords),
	}
	datasets = append(datasets, roleDatasets(data.GovernmentRoles)...)
	datasets = append(datasets, committeeDatasets(data.CommitteeMemberships)...)
	return datasets, nil
}

func memberDataset(kind string, members []model.Member) export.Dataset {
	return export.Dataset{
		Kind:   kind,
		Header: model.MemberColumns,
		Rows:   csvRows(members),
	}
}

func roleDatasets(roles RoleSet) []export.Dataset {
	return []export.Dataset{
		{Kind: "mps_government_roles", Header: model.GovernmentRoleColumns, Rows: csvRows(roles.MPs)},
		{Kind: "lords_government_roles", Header: model.GovernmentRoleColumns, Rows: csvRows(roles.Lords)},
	}
}

func committeeDatasets(committees CommitteeSet) []export.Dataset {
	return []export.Dataset{
		{Kind: "mps_committee_memberships", Header: model.CommitteeMembershipColumns, Rows: csvRows(committees.MPs)},
		{Kind: "lords_committee_memberships", Header: model.CommitteeMembershipColumns, Rows: csvRows(committees.Lords)},
	}
}

func csvRows[T interface{ CSVRow() []string }](records []T) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.CSVRow()
	}
	return rows
}
