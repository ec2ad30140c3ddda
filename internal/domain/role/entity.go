package role

import (
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/domain/permission"
	"github.com/sqooli/partner-api/internal/pkg/access"
	"github.com/sqooli/partner-api/internal/pkg/database"
)

// Built-in role names.
const (
	SuperAdmin   = "super_admin"
	PartnerAdmin = "partner_admin"
	PartnerUser  = "partner_user"
)

// Role is a named permission bundle. It is a template copied into users
// at creation time, never a live grant.
type Role struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	DisplayName   string         `db:"display_name" json:"display_name"`
	Description   string         `db:"description" json:"description"`
	PermissionIDs database.UUIDs `db:"permission_ids" json:"permission_ids"`
	IsSystemRole  bool           `db:"is_system_role" json:"is_system_role"`
	IsActive      bool           `db:"is_active" json:"is_active"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// WithPermissions is a role with its permission references expanded.
type WithPermissions struct {
	*Role
	Permissions []*permission.Permission `json:"permissions"`
}

type systemRole struct {
	name        string
	displayName string
	description string
	keys        []string
}

var systemRoles = []systemRole{
	{
		name:        SuperAdmin,
		displayName: "Super Admin",
		description: "Platform operator with unrestricted access",
		keys:        []string{access.AllAccess},
	},
	{
		name:        PartnerAdmin,
		displayName: "Partner Admin",
		description: "Manages a partner's users, campaigns and wallet",
		keys: []string{
			access.UsersAdmin, access.CampaignsWrite, access.ProgramsRead,
			access.WalletAdmin, access.DashboardRead, access.SettingsAdmin,
		},
	},
	{
		name:        PartnerUser,
		displayName: "Partner User",
		description: "Read-only partner staff",
		keys: []string{
			access.DashboardRead, access.CampaignsRead, access.ProgramsRead, access.WalletRead,
		},
	},
}
