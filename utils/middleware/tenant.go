package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/utils/response"
	"github.com/collegehub/cms-api/utils/session"
)

// Reserved host labels that never resolve to a college subdomain.
var reservedLabels = map[string]bool{
	"www":       true,
	"localhost": true,
}

// TenantMiddleware resolves which college a request operates on. Admin
// requests carry a "selected college" in their session; public requests
// carry a "current college" in the Host header. The two are resolved
// independently and never merged.
type TenantMiddleware struct {
	db         *gorm.DB
	sessions   *session.Store
	baseDomain string
}

// NewTenantMiddleware creates a tenant middleware. baseDomain is the bare
// public domain (e.g. "collegehub.example"); its first label is treated as
// reserved so the bare domain resolves to the root college.
func NewTenantMiddleware(db *gorm.DB, sessions *session.Store, baseDomain string) *TenantMiddleware {
	return &TenantMiddleware{
		db:         db,
		sessions:   sessions,
		baseDomain: strings.ToLower(strings.TrimSpace(baseDomain)),
	}
}

// SelectedCollege resolves the admin's selected college. Must run after
// AuthMiddleware.Required. Precedence: a well-formed college_id query
// parameter wins and is persisted to the session; otherwise the session
// value; a malformed parameter or an unavailable session store degrades
// to "no college selected". College admins are always pinned to their
// own college regardless of query or session.
func (m *TenantMiddleware) SelectedCollege() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := GetUser(c)
		if !ok {
			return response.Unauthorized(c, "Authentication required")
		}

		// College admins cannot switch tenants
		if user.Role == model.RoleCollegeAdmin {
			if user.CollegeID != nil {
				c.Locals("selected_college_id", *user.CollegeID)
			}
			return c.Next()
		}

		sid, _ := GetSessionID(c)

		if raw := c.Query("college_id"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 32)
			if err == nil {
				collegeID := uint(id)
				var count int64
				if err := m.db.Model(&model.College{}).Where("id = ?", collegeID).Count(&count).Error; err != nil {
					return response.InternalServerError(c, "Failed to resolve college")
				}
				if count > 0 {
					// Persist the switch; session errors degrade to
					// request-scoped selection
					m.sessions.SetSelectedCollege(c.Context(), sid, collegeID)
					c.Locals("selected_college_id", collegeID)
					return c.Next()
				}
			}
			// Malformed or unknown id falls through to the session value
		}

		data, err := m.sessions.Get(c.Context(), sid)
		if err != nil {
			// Session store unavailable: proceed with no selection
			return c.Next()
		}
		if data.SelectedCollegeID != nil {
			c.Locals("selected_college_id", *data.SelectedCollegeID)
		}

		return c.Next()
	}
}

// CurrentCollege resolves the public site's college from the Host header.
// The lowest host label is matched against colleges.subdomain with
// is_active = true; reserved labels and the bare domain fall back to the
// root college.
func (m *TenantMiddleware) CurrentCollege() fiber.Handler {
	return func(c *fiber.Ctx) error {
		label := m.subdomainLabel(c.Hostname())

		var college model.College
		if label != "" {
			err := m.db.Where("subdomain = ? AND is_active = ?", label, true).First(&college).Error
			if err == nil {
				c.Locals("current_college", &college)
				return c.Next()
			}
			if err != gorm.ErrRecordNotFound {
				return response.InternalServerError(c, "Failed to resolve college")
			}
			// Unknown subdomain falls back to the root college
		}

		err := m.db.Where("is_parent = ? AND is_active = ?", true, true).
			Order("id ASC").First(&college).Error
		if err == nil {
			c.Locals("current_college", &college)
		} else if err != gorm.ErrRecordNotFound {
			return response.InternalServerError(c, "Failed to resolve college")
		}

		return c.Next()
	}
}

// subdomainLabel extracts the candidate subdomain from a host, stripping
// the port and skipping reserved labels and the bare domain.
func (m *TenantMiddleware) subdomainLabel(host string) string {
	host = strings.ToLower(host)
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	if host == "" || host == m.baseDomain {
		return ""
	}

	label := host
	if i := strings.IndexByte(host, '.'); i >= 0 {
		label = host[:i]
	}
	if reservedLabels[label] {
		return ""
	}
	if m.baseDomain != "" {
		if bare := strings.SplitN(m.baseDomain, ".", 2)[0]; label == bare {
			return ""
		}
	}
	return label
}

// SelectedCollegeID extracts the admin's selected college from context
func SelectedCollegeID(c *fiber.Ctx) (uint, bool) {
	v := c.Locals("selected_college_id")
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// GetCurrentCollege extracts the public site's college from context
func GetCurrentCollege(c *fiber.Ctx) (*model.College, bool) {
	v := c.Locals("current_college")
	if v == nil {
		return nil, false
	}
	college, ok := v.(*model.College)
	return college, ok
}
