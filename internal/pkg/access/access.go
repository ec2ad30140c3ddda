package access

import (
	"fmt"
	"strings"
)

// Category groups capabilities by functional area.
type Category string

const (
	CategoryUsers     Category = "users"
	CategoryCampaigns Category = "campaigns"
	CategoryPrograms  Category = "programs"
	CategoryWallet    Category = "wallet"
	CategoryDashboard Category = "dashboard"
	CategorySettings  Category = "settings"
	CategoryAllAccess Category = "all_access"
)

// FunctionalCategories excludes all_access, which only exists at full level.
var FunctionalCategories = []Category{
	CategoryUsers, CategoryCampaigns, CategoryPrograms,
	CategoryWallet, CategoryDashboard, CategorySettings,
}

// Level is an ordered grant strength: read < write < admin < full.
type Level string

const (
	LevelRead  Level = "read"
	LevelWrite Level = "write"
	LevelAdmin Level = "admin"
	LevelFull  Level = "full"
)

var levelRank = map[Level]int{
	LevelRead:  1,
	LevelWrite: 2,
	LevelAdmin: 3,
	LevelFull:  4,
}

// Well-known permission keys used by route guards.
const (
	UsersRead      = "users.read"
	UsersWrite     = "users.write"
	UsersAdmin     = "users.admin"
	CampaignsRead  = "campaigns.read"
	CampaignsWrite = "campaigns.write"
	ProgramsRead   = "programs.read"
	ProgramsWrite  = "programs.write"
	WalletRead     = "wallet.read"
	WalletWrite    = "wallet.write"
	WalletAdmin    = "wallet.admin"
	DashboardRead  = "dashboard.read"
	SettingsRead   = "settings.read"
	SettingsAdmin  = "settings.admin"
	AllAccess      = "all_access.full"
)

// Key builds a "category.level" token.
func Key(c Category, l Level) string {
	return string(c) + "." + string(l)
}

// Parse splits a key and validates both parts.
func Parse(key string) (Category, Level, error) {
	cat, lvl, ok := strings.Cut(key, ".")
	if !ok {
		return "", "", fmt.Errorf("malformed permission key %q", key)
	}
	c, l := Category(cat), Level(lvl)
	if !ValidCategory(c) || !ValidLevel(l) {
		return "", "", fmt.Errorf("unknown permission key %q", key)
	}
	return c, l, nil
}

func ValidCategory(c Category) bool {
	if c == CategoryAllAccess {
		return true
	}
	for _, fc := range FunctionalCategories {
		if fc == c {
			return true
		}
	}
	return false
}

func ValidLevel(l Level) bool {
	_, ok := levelRank[l]
	return ok
}

// Allows reports whether any granted key satisfies required. A grant
// satisfies a requirement in the same category (or all_access) at an
// equal or higher level.
func Allows(granted []string, required string) bool {
	reqCat, reqLvl, err := Parse(required)
	if err != nil {
		return false
	}
	for _, g := range granted {
		cat, lvl, err := Parse(g)
		if err != nil {
			continue
		}
		if cat != reqCat && cat != CategoryAllAccess {
			continue
		}
		if levelRank[lvl] >= levelRank[reqLvl] {
			return true
		}
	}
	return false
}
