package revenue

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/sqooli/partner-api/internal/domain/campaign"
)

// MatchCampaign returns the campaign whose promo code equals code exactly,
// or nil. Matching is case-sensitive.
func MatchCampaign(campaigns []*campaign.Campaign, code string) *campaign.Campaign {
	if code == "" {
		return nil
	}
	for _, c := range campaigns {
		if c.PromoCode == code {
			return c
		}
	}
	return nil
}

// ComputeSplit applies the campaign revenue share to amount. Without a
// campaign the partner gets DefaultPartnerPercentage and the split is
// flagged as fallback.
func ComputeSplit(amount float64, c *campaign.Campaign) Split {
	s := Split{Gross: amount, PartnerPercentage: DefaultPartnerPercentage, Fallback: true}
	if c != nil {
		id := c.ID
		s.CampaignID = &id
		s.PartnerPercentage = c.RevenueShare.V.PartnerPercentage
		s.Fallback = false
	} else {
		log.Warn().Float64("amount", amount).Float64("partner_percentage", DefaultPartnerPercentage).
			Msg("no campaign matched payment, applying default revenue share")
	}

	s.PartnerShare = roundCents(amount * s.PartnerPercentage / 100)
	s.PlatformShare = roundCents(amount - s.PartnerShare)
	return s
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
