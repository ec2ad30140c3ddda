package permission

import (
	"fmt"
	"strings"

	"github.com/sqooli/partner-api/internal/pkg/access"
)

var defaultKeys = map[string]bool{
	access.DashboardRead: true,
	access.CampaignsRead: true,
	access.ProgramsRead:  true,
	access.WalletRead:    true,
}

var levelVerb = map[access.Level]string{
	access.LevelRead:  "View",
	access.LevelWrite: "Create and edit",
	access.LevelAdmin: "Fully manage",
}

// Catalog returns the built-in permission set: read, write and admin for
// every functional category plus all_access.full.
func Catalog() []*Permission {
	var perms []*Permission
	for _, c := range access.FunctionalCategories {
		for _, l := range []access.Level{access.LevelRead, access.LevelWrite, access.LevelAdmin} {
			key := access.Key(c, l)
			perms = append(perms, &Permission{
				Key:         key,
				Category:    c,
				Level:       l,
				Description: fmt.Sprintf("%s %s", levelVerb[l], strings.ReplaceAll(string(c), "_", " ")),
				IsDefault:   defaultKeys[key],
			})
		}
	}
	perms = append(perms, &Permission{
		Key:         access.AllAccess,
		Category:    access.CategoryAllAccess,
		Level:       access.LevelFull,
		Description: "Unrestricted access to every area",
	})
	return perms
}
