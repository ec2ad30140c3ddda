package revenue

import (
	"testing"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/domain/campaign"
)

func campaignWithShare(code string, partnerPct float64) *campaign.Campaign {
	c := &campaign.Campaign{ID: uuid.New(), PartnerID: uuid.New(), ProgramID: uuid.New(), PromoCode: code}
	c.RevenueShare.V = campaign.RevenueShare{PartnerPercentage: partnerPct, SqooliPercentage: 100 - partnerPct}
	return c
}

func TestMatchCampaignIsExact(t *testing.T) {
	save := campaignWithShare("SAVE10", 25)
	list := []*campaign.Campaign{campaignWithShare("OTHER", 10), save}

	if got := MatchCampaign(list, "SAVE10"); got != save {
		t.Fatalf("expected SAVE10 campaign, got %+v", got)
	}
	for _, code := range []string{"save10", "SAVE10 ", "", "SAVE1"} {
		if got := MatchCampaign(list, code); got != nil {
			t.Fatalf("code %q must not match, got %s", code, got.PromoCode)
		}
	}
}

func TestComputeSplit(t *testing.T) {
	matched := campaignWithShare("SAVE10", 25)

	cases := []struct {
		name     string
		amount   float64
		campaign *campaign.Campaign
		partner  float64
		platform float64
		fallback bool
	}{
		{"matched campaign", 1000, matched, 250, 750, false},
		{"no campaign", 1000, nil, 200, 800, true},
		{"fallback on small amount", 250, nil, 50, 200, true},
		{"rounds to cents", 99.99, campaignWithShare("X", 33.3), 33.3, 66.69, false},
		{"zero amount", 0, matched, 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := ComputeSplit(tc.amount, tc.campaign)
			if s.PartnerShare != tc.partner || s.PlatformShare != tc.platform || s.Fallback != tc.fallback {
				t.Fatalf("got %+v", s)
			}
			if s.Gross != tc.amount {
				t.Fatalf("gross changed: %+v", s)
			}
			if tc.campaign != nil && (s.CampaignID == nil || *s.CampaignID != tc.campaign.ID) {
				t.Fatalf("campaign not linked: %+v", s)
			}
		})
	}
}
