package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const badgeContainerSelector = ".ImageBadge_default__JWaYp"

// sellerBadgeAsset identifies the seller-fulfilled rocket badge. The generic
// delivery rule must exclude it: its asset path contains "badge_" and would
// otherwise double-match at the lowest priority tier.
const sellerBadgeAsset = "badge_199559e56f7"

// badgeRule matches image source substrings to a badge. Rules are evaluated
// in priority order; the highest-priority rule matching any image source
// wins regardless of image order within the card.
type badgeRule struct {
	badge    Badge
	markers  []string
	excludes []string
}

var badgeRules = []badgeRule{
	{BadgeRocketMerchant, []string{"logoRocketMerchant", "RocketMerchant", sellerBadgeAsset}, nil},
	{BadgeRocketFresh, []string{"rocket-fresh", "rocket_fresh"}, nil},
	{BadgeRocketInstall, []string{"rocket_install", "rocket-install"}, nil},
	{BadgeRocketOverseas, []string{"logo_jikgu", "jikgu"}, nil},
	{BadgeRocketDelivery, []string{"logo_rocket", "logo_rocket_large", "delivery_badge_ext", "badge_"}, []string{sellerBadgeAsset}},
}

func (r badgeRule) matches(src string) bool {
	for _, excl := range r.excludes {
		if strings.Contains(src, excl) {
			return false
		}
	}
	for _, marker := range r.markers {
		if strings.Contains(src, marker) {
			return true
		}
	}
	return false
}

// matchBadge resolves the badge for a set of image sources
func matchBadge(srcs []string) Badge {
	for _, rule := range badgeRules {
		for _, src := range srcs {
			if src != "" && rule.matches(src) {
				return rule.badge
			}
		}
	}
	return BadgeNone
}

// resolveBadge classifies a card's rocket badge. A dedicated badge-image
// container is scanned first; every image on the card is scanned only when
// the container is absent or yields nothing.
func resolveBadge(item *goquery.Selection) Badge {
	container := item.Find(badgeContainerSelector).First()
	if container.Length() > 0 {
		if img := container.Find("img").First(); img.Length() > 0 {
			if badge := matchBadge([]string{imageSource(img)}); badge != BadgeNone {
				return badge
			}
		}
	}

	var srcs []string
	item.Find("img").Each(func(_ int, img *goquery.Selection) {
		srcs = append(srcs, imageSource(img))
	})
	return matchBadge(srcs)
}

// imageSource concatenates an image's src and data-src attributes so badge
// markers are found in either
func imageSource(img *goquery.Selection) string {
	return img.AttrOr("src", "") + img.AttrOr("data-src", "")
}
