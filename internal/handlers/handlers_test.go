package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/Idenfo/UK-PEP-scrape/internal/export"
	"github.com/Idenfo/UK-PEP-scrape/internal/model"
	"github.com/Idenfo/UK-PEP-scrape/internal/parliament"
	"github.com/Idenfo/UK-PEP-scrape/internal/scrape"
)

func strPtr(s string) *string { return &s }

// stubSource is a canned Source counting upstream calls, so tests can
// assert that validation failures never reach the source.
type stubSource struct {
	mps             []model.Member
	lords           []model.Member
	mpsRoles        []model.GovernmentRole
	lordsRoles      []model.GovernmentRole
	mpsCommittees   []model.CommitteeMembership
	lordsCommittees []model.CommitteeMembership
	err             error

	calls int
}

func (s *stubSource) FetchMPs(_ context.Context, _ parliament.MemberQuery) ([]model.Member, error) {
	s.calls++
	return s.mps, s.err
}

func (s *stubSource) FetchLords(_ context.Context, _ parliament.MemberQuery) ([]model.Member, error) {
	s.calls++
	return s.lords, s.err
}

func (s *stubSource) FetchMPsGovernmentRoles(_ context.Context) ([]model.GovernmentRole, error) {
	s.calls++
	return s.mpsRoles, s.err
}

func (s *stubSource) FetchLordsGovernmentRoles(_ context.Context) ([]model.GovernmentRole, error) {
	s.calls++
	return s.lordsRoles, s.err
}

func (s *stubSource) FetchMPsCommitteeMemberships(_ context.Context) ([]model.CommitteeMembership, error) {
	s.calls++
	return s.mpsCommittees, s.err
}

func (s *stubSource) FetchLordsCommitteeMemberships(_ context.Context) ([]model.CommitteeMembership, error) {
	s.calls++
	return s.lordsCommittees, s.err
}

func sampleMPs() []model.Member {
	return []model.Member{
		{PersonID: "p1", DisplayName: "John Smith"},
		{PersonID: "p2", DisplayName: "Jane Doe", HouseMembershipEndDate: strPtr("2023-01-01")},
		{PersonID: "p3", DisplayName: "Bob Johnson"},
	}
}

func newTestApp(t *testing.T, src *stubSource) (*fiber.App, *export.Exporter) {
	t.Helper()
	scraper := scrape.New(src, nil)
	exporter := export.NewExporter(filepath.Join(t.TempDir(), "outputs"))
	return NewApp(scraper, exporter), exporter
}

func doRequest(t *testing.T, app *fiber.App, method, target string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal body %q: %v", raw, err)
	}
	return resp.StatusCode, body
}

func TestHealth(t *testing.T) {
	assert := assert.New(t)
	app, _ := newTestApp(t, &stubSource{})

	status, body := doRequest(t, app, http.MethodGet, "/health")

	assert.Equal(http.StatusOK, status)
	assert.Equal("healthy", body["status"])
	assert.Equal("empty", body["cache_status"])
	assert.NotEmpty(body["timestamp"])
}

func TestHomeListsEndpoints(t *testing.T) {
	assert := assert.New(t)
	app, _ := newTestApp(t, &stubSource{})

	status, body := doRequest(t, app, http.MethodGet, "/")

	assert.Equal(http.StatusOK, status)
	assert.Equal("UK Parliament Members Scraper", body["service"])
	assert.Equal("active", body["status"])
	assert.Nil(body["last_updated"])

	endpoints, ok := body["endpoints"].(map[string]any)
	assert.True(ok)
	assert.Contains(endpoints, "/scrape/all")
	assert.Contains(endpoints, "/export/csv")
}

func TestScrapeMPs(t *testing.T) {
	assert := assert.New(t)
	app, _ := newTestApp(t, &stubSource{mps: sampleMPs()})

	status, body := doRequest(t, app, http.MethodGet, "/scrape/mps")

	assert.Equal(http.StatusOK, status)
	members := body["members_of_parliament"].([]any)
	assert.Len(members, 3)

	summary := body["summary"].(map[string]any)
	assert.EqualValues(3, summary["total_count"])
	assert.EqualValues(2, summary["current_count"])

	metadata := body["metadata"].(map[string]any)
	assert.Equal("Members of Parliament - House of Commons", metadata["data_type"])
	assert.NotContains(metadata, "filter_current")
}

func TestScrapeMPsCurrentFilterAndMetadataEcho(t *testing.T) {
	assert := assert.New(t)
	app, _ := newTestApp(t, &stubSource{mps: sampleMPs()})

	status, body := doRequest(t, app, http.MethodGet, "/scrape/mps?current=true&from_date=2024-01-01")

	assert.Equal(http.StatusOK, status)
	members := body["members_of_parliament"].([]any)
	assert.Len(members, 2)

	first := members[0].(map[string]any)
	second := members[1].(map[string]any)
	assert.Equal("p1", first["person_id"], "original relative order preserved")
	assert.Equal("p3", second["person_id"])

	metadata := body["metadata"].(map[string]any)
	assert.Equal(true, metadata["filter_current"])
	assert.Equal("2024-01-01", metadata["from_date"])
}

func TestScrapeLords(t *testing.T) {
	assert := assert.New(t)
	app, _ := newTestApp(t, &stubSource{
		lords: []model.Member{
			{PersonID: "l1", DisplayName: "Lord Test"},
			{PersonID: "l2", DisplayName: "Baroness Example", HouseMembershipEndDate: strPtr("2022-06-30")},
		},
	})

	status, body := doRequest(t, app, http.MethodGet, "/scrape/lords?current=true")

	assert.Equal(http.StatusOK, status)
	lords := body["house_of_lords"].([]any)
	assert.Len(lords, 1)
}

func TestScrapeInvalidDateRejected(t *testing.T) {
	assert := assert.New(t)
	src := &stubSource{mps: sampleMPs()}
	app, _ := newTestApp(t, src)

	status, body := doRequest(t, app, http.MethodGet, "/scrape/mps?from_date=yesterday")

	assert.Equal(http.StatusBadRequest, status)
	assert.Equal("Invalid date format", body["error"])
	assert.Contains(body["message"], "from_date")
	assert.NotEmpty(body["timestamp"])
	assert.Zero(src.calls, "validation failures must not reach the source")
}

func TestScrapeUpstreamFailureMapsTo502(t *testing.T) {
	assert := assert.New(t)
	app, _ := newTestApp(t, &stubSource{
		err: &parliament.SourceError{Resource: "commons_members", Err: errors.New("connection refused")},
	})

	status, body := doRequest(t, app, http.MethodGet, "/scrape/mps")

	assert.Equal(http.StatusBadGateway, status)
	assert.Equal("Failed to scrape MPs data", body["error"])
	assert.NotContains(body["message"], "connection refused", "upstream cause is logged, not leaked")
}

func TestScrapeCommittees(t *testing.T) {
	assert := assert.New(t)
	app, _ := newTestApp(t, &stubSource{
		mpsCommittees: []model.CommitteeMembership{
			{PersonID: "p1", CommitteeName: "Test Committee"},
			{PersonID: "p2", CommitteeName: "Example Committee", CommitteeMembershipEndDate: strPtr("2023-06-30")},
		},
		lordsCommittees: []model.CommitteeMembership{
			{PersonID: "l1", CommitteeName: "Lords Test Committee"},
		},
	})

	status, body := doRequest(t, app, http.MethodGet, "/scrape/committees")

	assert.Equal(http.StatusOK, status)
	summary := body["summary"].(map[string]any)
	assert.EqualValues(2, summary["total_mps_committee_memberships"])
	assert.EqualValues(1, summary["total_lords_committee_memberships"])
}

func TestScrapeGovernmentRoles(t *testing.T) {
	assert := assert.New(t)
	app, _ := newTestApp(t, &stubSource{
		mpsRoles: []model.GovernmentRole{{PersonID: "p1", PositionName: "Secretary of State for Testing"}},
	})

	status, body := doRequest(t, app, http.MethodGet, "/scrape/government-roles")

	assert.Equal(http.StatusOK, status)
	summary := body["summary"].(map[string]any)
	assert.EqualValues(1, summary["total_mps_government_roles"])
	assert.EqualValues(0, summary["total_lords_government_roles"])
}

func TestScrapeAllSummaryAndCache(t *testing.T) {
	assert := assert.New(t)
	src := &stubSource{mps: sampleMPs(), lords: []model.Member{{PersonID: "l1"}}}
	app, _ := newTestApp(t, src)

	status, body := doRequest(t, app, http.MethodGet, "/scrape/all")
	assert.Equal(http.StatusOK, status)

	summary := body["summary"].(map[string]any)
	assert.EqualValues(3, summary["total_mps"])
	assert.EqualValues(1, summary["total_lords"])

	callsAfterFresh := src.calls

	// Cached snapshot is served without re-fetching.
	status, body = doRequest(t, app, http.MethodGet, "/scrape/all?cache=true")
	assert.Equal(http.StatusOK, status)
	assert.EqualValues(3, body["summary"].(map[string]any)["total_mps"])
	assert.Equal(callsAfterFresh, src.calls, "cache hit must not call upstream")

	// Health now reports a populated cache.
	status, body = doRequest(t, app, http.MethodGet, "/health")
	assert.Equal(http.StatusOK, status)
	assert.Equal("populated", body["cache_status"])
}

func TestScrapeAllCacheMissScrapesFresh(t *testing.T) {
	assert := assert.New(t)
	src := &stubSource{mps: sampleMPs()}
	app, _ := newTestApp(t, src)

	status, _ := doRequest(t, app, http.MethodGet, "/scrape/all?cache=true")

	assert.Equal(http.StatusOK, status)
	assert.Equal(6, src.calls, "empty cache falls back to a fresh scrape")
}

func TestExportInvalidTypeRejectedBeforeFetch(t *testing.T) {
	assert := assert.New(t)
	src := &stubSource{mps: sampleMPs()}
	app, _ := newTestApp(t, src)

	status, body := doRequest(t, app, http.MethodPost, "/export/csv?type=foo")

	assert.Equal(http.StatusBadRequest, status)
	assert.Equal("Invalid data type", body["error"])
	assert.Contains(body["message"], "all, mps, lords, government-roles, committees")
	assert.Zero(src.calls, "invalid type must be rejected before any upstream fetch")
}

func TestExportMPs(t *testing.T) {
	assert := assert.New(t)
	app, ex := newTestApp(t, &stubSource{mps: sampleMPs()})

	status, body := doRequest(t, app, http.MethodPost, "/export/csv?type=mps&current=true")

	assert.Equal(http.StatusOK, status)
	assert.Equal(true, body["success"])
	assert.Equal("mps", body["data_type"])
	assert.EqualValues(1, body["file_count"])
	assert.NotEmpty(body["export_id"])

	files := body["exported_files"].([]any)
	assert.Len(files, 1)

	path := filepath.Join(ex.Dir, files[0].(string))
	content, err := os.ReadFile(path)
	assert.NoError(err)
	// header + the two current MPs
	assert.Equal(3, len(splitLines(content)))
}

func TestExportAllWritesSixFiles(t *testing.T) {
	assert := assert.New(t)
	app, ex := newTestApp(t, &stubSource{mps: sampleMPs()})

	status, body := doRequest(t, app, http.MethodPost, "/export/csv")

	assert.Equal(http.StatusOK, status)
	assert.EqualValues(6, body["file_count"])

	for _, f := range body["exported_files"].([]any) {
		assert.FileExists(filepath.Join(ex.Dir, f.(string)))
	}
}

func TestExportUpstreamFailure(t *testing.T) {
	assert := assert.New(t)
	app, _ := newTestApp(t, &stubSource{
		err: &parliament.SourceError{Resource: "commons_members", Err: errors.New("boom")},
	})

	status, body := doRequest(t, app, http.MethodPost, "/export/csv?type=mps")

	assert.Equal(http.StatusBadGateway, status)
	assert.Equal("Failed to export CSV files", body["error"])
}

func TestUnknownRoute(t *testing.T) {
	assert := assert.New(t)
	app, _ := newTestApp(t, &stubSource{})

	status, body := doRequest(t, app, http.MethodGet, "/nope")

	assert.Equal(http.StatusNotFound, status)
	assert.Equal("Endpoint not found", body["error"])
	assert.NotEmpty(body["timestamp"])
}

func splitLines(content []byte) []string {
	trimmed := strings.TrimRight(string(content), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
