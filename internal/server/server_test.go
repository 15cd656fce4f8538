// internal/server/server_test.go
package server

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review-engine/internal/alias"
	"review-engine/internal/auth"
	"review-engine/internal/common/config"
	"review-engine/internal/common/logger"
	"review-engine/internal/engine"
	"review-engine/internal/models"
	"review-engine/internal/store/memory"
)

type fixture struct {
	server     *Server
	tokens     *auth.TokenService
	users      *memory.UserStore
	teams      *memory.TeamStore
	columns    *memory.ColumnStore
	applicants *memory.ApplicantStore
	reviews    *memory.ReviewStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.NewTestLogger(t)
	users := memory.NewUserStore()
	teams := memory.NewTeamStore()
	columns := memory.NewColumnStore()
	applicants := memory.NewApplicantStore()
	reviews := memory.NewReviewStore()

	rng := rand.New(rand.NewSource(11))

	generator := engine.NewGenerator(engine.GeneratorConfig{Rand: rng}, teams, applicants, reviews, log)
	aggregator := engine.NewAggregator(applicants, reviews, users, log)
	recorder := engine.NewRecorder(reviews, applicants, log)
	packager := engine.NewPackager(reviews, applicants, columns)
	importer, err := engine.NewImporter(columns, applicants, alias.NewGenerator(rng), 0, log)
	require.NoError(t, err)

	tokens := auth.NewTokenService("test-secret", 1)

	srv := New(Deps{
		Config:         &config.Config{},
		Logger:         log,
		Tokens:         tokens,
		Users:          users,
		Teams:          teams,
		Columns:        columns,
		Reviews:        reviews,
		Generator:      generator,
		Aggregator:     aggregator,
		Recorder:       recorder,
		Packager:       packager,
		Importer:       importer,
		GenerationLock: memory.NewGenerationLock(),
	})

	return &fixture{
		server:     srv,
		tokens:     tokens,
		users:      users,
		teams:      teams,
		columns:    columns,
		applicants: applicants,
		reviews:    reviews,
	}
}

func (f *fixture) addUser(t *testing.T, uid, role string) string {
	t.Helper()
	require.NoError(t, f.users.UpsertProfile(context.Background(), models.ReaderProfile{
		ID: uid, DisplayName: uid, Email: uid + "@example.com",
	}))
	require.NoError(t, f.users.SetRole(context.Background(), uid, role))

	token, err := f.tokens.GenerateToken(uid)
	require.NoError(t, err)
	return token
}

func (f *fixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRequestsWithoutTokenAreUnauthenticated(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/progress", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReaderCannotReachAdminRoutes(t *testing.T) {
	f := newFixture(t)
	token := f.addUser(t, "reader-1", "reader")

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/progress"},
		{http.MethodPost, "/api/assignments/generate"},
		{http.MethodDelete, "/api/applicants"},
		{http.MethodGet, "/api/users"},
	} {
		rec := f.do(t, route.method, route.path, token, "")
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestRoleChangesTakeEffectWithoutReissuingTokens(t *testing.T) {
	f := newFixture(t)
	token := f.addUser(t, "user-1", "none")

	rec := f.do(t, http.MethodGet, "/api/reviews/mine", token, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	require.NoError(t, f.users.SetRole(context.Background(), "user-1", "reader"))
	rec = f.do(t, http.MethodGet, "/api/reviews/mine", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMyRoleReportsCurrentRole(t *testing.T) {
	f := newFixture(t)
	token := f.addUser(t, "user-1", "none")

	rec := f.do(t, http.MethodGet, "/api/users/me/role", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "none", body["role"])
}

func TestAssignmentLifecycle(t *testing.T) {
	f := newFixture(t)

	adminToken := f.addUser(t, "admin-1", "admin")
	readerToken := f.addUser(t, "reader-1", "reader")
	f.addUser(t, "reader-2", "reader")

	// Empty state: generating must fail the precondition.
	rec := f.do(t, http.MethodPost, "/api/assignments/generate", adminToken, "")
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/assignments/exists", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var exists map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exists))
	assert.False(t, exists["exists"])

	// Configure columns, import applicants, create a team.
	rec = f.do(t, http.MethodPut, "/api/columns", adminToken,
		`[{"name":"name","isName":true},{"name":"email","isEmail":true},{"name":"essay","displayName":"Essay"}]`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/applicants/import", adminToken,
		`[{"name":"A","email":"a@x.com","essay":"one"},{"name":"B","email":"b@x.com","essay":"two"}]`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/teams", adminToken,
		`{"name":"team-1","memberIds":["reader-1","reader-2"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/assignments/generate", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var generated map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &generated))
	assert.Equal(t, 4, generated["reviews"])

	// Reader sees their queue and completes a review.
	rec = f.do(t, http.MethodGet, "/api/reviews/mine", readerToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []models.ReviewSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 2)

	rec = f.do(t, http.MethodPost, "/api/reviews/"+mine[0].ReviewID+"/complete", readerToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Progress reflects the partial completion.
	rec = f.do(t, http.MethodGet, "/api/progress", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var report models.ProgressReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.False(t, report.Finished)
	assert.Equal(t, 2, report.TotalCount)
	assert.Len(t, report.Remaining, 2)
}

func TestReviewPackageOwnershipAndPIIExclusion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	adminToken := f.addUser(t, "admin-1", "admin")
	ownerToken := f.addUser(t, "reader-1", "reader")
	otherToken := f.addUser(t, "reader-2", "reader")

	require.NoError(t, f.columns.Replace(ctx, []models.Column{
		{ID: "c-name", Name: "name", IsName: true, Index: 0},
		{ID: "c-essay", Name: "essay", DisplayName: "Essay", Index: 1},
	}))
	require.NoError(t, f.applicants.CreateBatch(ctx, []models.Applicant{
		{
			ID:               "a1",
			Alias:            "plucky-otter-teal",
			Responses:        map[string]models.FieldValue{"c-essay": models.StringValue("Because.")},
			ReaderCompletion: map[string]bool{"reader-1": false},
		},
	}))
	require.NoError(t, f.reviews.CreateBatch(ctx, []models.Review{
		{ID: "r1", ApplicantID: "a1", ReaderID: "reader-1"},
	}))

	// Owner and admin can read it; another reader gets the same 404 as a
	// nonexistent id.
	for _, token := range []string{ownerToken, adminToken} {
		rec := f.do(t, http.MethodGet, "/api/reviews/r1", token, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var pkg models.ReviewPackage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pkg))
		assert.Equal(t, "plucky-otter-teal", pkg.ApplicantAlias)
		require.Len(t, pkg.Fields, 1)
		assert.Equal(t, models.PackagedField{Label: "Essay", Value: "Because."}, pkg.Fields[0])
	}
	rec := f.do(t, http.MethodGet, "/api/reviews/r1", otherToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = f.do(t, http.MethodGet, "/api/reviews/missing", ownerToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Completion is owner-only; even the admin is rejected.
	rec = f.do(t, http.MethodPost, "/api/reviews/r1/complete", adminToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = f.do(t, http.MethodPost, "/api/reviews/r1/complete", otherToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = f.do(t, http.MethodPost, "/api/reviews/r1/complete", ownerToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetRoleValidatesInput(t *testing.T) {
	f := newFixture(t)
	adminToken := f.addUser(t, "admin-1", "admin")

	rec := f.do(t, http.MethodPut, "/api/users/u1/role", adminToken, `{"role":"superuser"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/users/u1/role", adminToken, `{"role":"reader"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	role, err := f.users.GetRole(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "reader", role)
}

func TestHealthIsPublic(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
