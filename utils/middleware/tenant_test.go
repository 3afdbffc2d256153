package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/utils/cache"
	"github.com/collegehub/cms-api/utils/session"
)

func TestSubdomainLabel(t *testing.T) {
	m := NewTenantMiddleware(nil, nil, "collegehub.example")

	cases := []struct {
		host string
		want string
	}{
		{"engineering.collegehub.example", "engineering"},
		{"engineering.collegehub.example:8080", "engineering"},
		{"ENGINEERING.Collegehub.Example", "engineering"},
		// Bare domain serves the root college
		{"collegehub.example", ""},
		{"collegehub.example:443", ""},
		// Reserved labels never resolve a tenant
		{"www.collegehub.example", ""},
		{"localhost", ""},
		{"localhost:3000", ""},
		// The base domain's own first label is reserved too
		{"collegehub.other.example", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, m.subdomainLabel(tc.host), "host %q", tc.host)
	}
}

func TestSubdomainLabelWithoutBaseDomain(t *testing.T) {
	m := NewTenantMiddleware(nil, nil, "")

	assert.Equal(t, "engineering", m.subdomainLabel("engineering.example.com"))
	assert.Equal(t, "", m.subdomainLabel("www.example.com"))
	assert.Equal(t, "", m.subdomainLabel("localhost:3000"))
}

func TestSubdomainLabelTrimsBaseDomainConfig(t *testing.T) {
	m := NewTenantMiddleware(nil, nil, "  CollegeHub.Example  ")

	assert.Equal(t, "", m.subdomainLabel("collegehub.example"))
	assert.Equal(t, "arts", m.subdomainLabel("arts.collegehub.example"))
}

const tenantTestSID = "jti-tenant"

func collegeIDPtr(v uint) *uint {
	return &v
}

func tenantSessionStore(t *testing.T) *session.Store {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return session.NewStore(cache.NewRedisCacheFromClient(client), time.Hour)
}

// setupTenantTest builds an app exposing the resolved selection and the
// resolved public college so the whole middleware pipeline is exercised,
// not just the label parsing.
func setupTenantTest(t *testing.T, sessions *session.Store) (*fiber.App, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	m := NewTenantMiddleware(db, sessions, "collegehub.example")

	asUser := func(user *model.User) fiber.Handler {
		return func(c *fiber.Ctx) error {
			c.Locals("user", user)
			c.Locals("user_role", user.Role)
			c.Locals("session_id", tenantTestSID)
			return c.Next()
		}
	}
	reportSelection := func(c *fiber.Ctx) error {
		id, ok := SelectedCollegeID(c)
		return c.JSON(fiber.Map{"id": id, "ok": ok})
	}

	superAdmin := &model.User{ID: 1, Role: model.RoleSuperAdmin}
	collegeAdmin := &model.User{ID: 2, Role: model.RoleCollegeAdmin, CollegeID: collegeIDPtr(7)}

	app := fiber.New()
	app.Get("/selected", asUser(superAdmin), m.SelectedCollege(), reportSelection)
	app.Get("/pinned", asUser(collegeAdmin), m.SelectedCollege(), reportSelection)
	app.Get("/current", m.CurrentCollege(), func(c *fiber.Ctx) error {
		college, ok := GetCurrentCollege(c)
		if !ok {
			return c.JSON(fiber.Map{"ok": false})
		}
		return c.JSON(fiber.Map{"id": college.ID, "ok": true})
	})
	return app, mock
}

type selectionResult struct {
	ID uint `json:"id"`
	OK bool `json:"ok"`
}

func resolve(t *testing.T, app *fiber.App, url string) selectionResult {
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out selectionResult
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestSelectedCollegeQueryParamWinsOverSession(t *testing.T) {
	sessions := tenantSessionStore(t)
	require.NoError(t, sessions.SetSelectedCollege(context.Background(), tenantTestSID, 3))

	app, mock := setupTenantTest(t, sessions)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "colleges"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	out := resolve(t, app, "/selected?college_id=5")
	assert.True(t, out.OK)
	assert.Equal(t, uint(5), out.ID)

	// The switch is persisted, so the next param-less request sees it
	data, err := sessions.Get(context.Background(), tenantTestSID)
	require.NoError(t, err)
	require.NotNil(t, data.SelectedCollegeID)
	assert.Equal(t, uint(5), *data.SelectedCollegeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectedCollegeMalformedParamFallsBackToSession(t *testing.T) {
	sessions := tenantSessionStore(t)
	require.NoError(t, sessions.SetSelectedCollege(context.Background(), tenantTestSID, 3))

	// No DB expectation: a malformed param never reaches the database
	app, mock := setupTenantTest(t, sessions)

	out := resolve(t, app, "/selected?college_id=abc")
	assert.True(t, out.OK)
	assert.Equal(t, uint(3), out.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectedCollegeUnknownParamFallsBackToSession(t *testing.T) {
	sessions := tenantSessionStore(t)
	require.NoError(t, sessions.SetSelectedCollege(context.Background(), tenantTestSID, 3))

	app, mock := setupTenantTest(t, sessions)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "colleges"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	out := resolve(t, app, "/selected?college_id=999")
	assert.True(t, out.OK)
	assert.Equal(t, uint(3), out.ID)

	// The unknown id was not persisted
	data, err := sessions.Get(context.Background(), tenantTestSID)
	require.NoError(t, err)
	require.NotNil(t, data.SelectedCollegeID)
	assert.Equal(t, uint(3), *data.SelectedCollegeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectedCollegeNilStoreDegradesToNoSelection(t *testing.T) {
	app, mock := setupTenantTest(t, session.NewStore(nil, time.Hour))

	out := resolve(t, app, "/selected")
	assert.False(t, out.OK)
	assert.Equal(t, uint(0), out.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectedCollegePinsCollegeAdmin(t *testing.T) {
	sessions := tenantSessionStore(t)
	require.NoError(t, sessions.SetSelectedCollege(context.Background(), tenantTestSID, 3))

	// Neither the query param nor the session can move a college admin
	app, mock := setupTenantTest(t, sessions)

	out := resolve(t, app, "/pinned?college_id=5")
	assert.True(t, out.OK)
	assert.Equal(t, uint(7), out.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrentCollegeMatchesSubdomain(t *testing.T) {
	app, mock := setupTenantTest(t, nil)

	rows := sqlmock.NewRows([]string{"id", "name", "subdomain", "is_active"}).
		AddRow(4, "Arts College", "arts", true)
	mock.ExpectQuery(`SELECT (.+) FROM "colleges"`).WillReturnRows(rows)

	out := resolve(t, app, "http://arts.collegehub.example/current")
	assert.True(t, out.OK)
	assert.Equal(t, uint(4), out.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrentCollegeUnknownSubdomainFallsBackToRoot(t *testing.T) {
	app, mock := setupTenantTest(t, nil)

	// No active college owns the label, so the root college answers
	mock.ExpectQuery(`SELECT (.+) FROM "colleges"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "colleges"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_parent", "is_active"}).
			AddRow(1, "CollegeHub Group", true, true))

	out := resolve(t, app, "http://nosuch.collegehub.example/current")
	assert.True(t, out.OK)
	assert.Equal(t, uint(1), out.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrentCollegeReservedHostResolvesRoot(t *testing.T) {
	app, mock := setupTenantTest(t, nil)

	// A reserved label skips the subdomain lookup entirely
	mock.ExpectQuery(`SELECT (.+) FROM "colleges"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_parent", "is_active"}).
			AddRow(1, "CollegeHub Group", true, true))

	out := resolve(t, app, "http://www.collegehub.example/current")
	assert.True(t, out.OK)
	assert.Equal(t, uint(1), out.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
