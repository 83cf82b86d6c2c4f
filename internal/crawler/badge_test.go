package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchBadgePriority(t *testing.T) {
	cases := []struct {
		name string
		srcs []string
		want Badge
	}{
		{"merchant logo", []string{"//img/logoRocketMerchant.png"}, BadgeRocketMerchant},
		{"merchant asset id", []string{"//img/badge_199559e56f7.png"}, BadgeRocketMerchant},
		{"fresh", []string{"//img/rocket-fresh@2x.png"}, BadgeRocketFresh},
		{"fresh underscore", []string{"//img/rocket_fresh.png"}, BadgeRocketFresh},
		{"install", []string{"//img/rocket_install.png"}, BadgeRocketInstall},
		{"overseas", []string{"//img/logo_jikgu.png"}, BadgeRocketOverseas},
		{"delivery", []string{"//img/logo_rocket_large.png"}, BadgeRocketDelivery},
		{"delivery ext", []string{"//img/delivery_badge_ext.png"}, BadgeRocketDelivery},
		{"no badge", []string{"//img/product-thumb.jpg"}, BadgeNone},
		{"empty", nil, BadgeNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, matchBadge(tc.srcs))
		})
	}
}

func TestMatchBadgeMerchantWinsRegardlessOfOrder(t *testing.T) {
	// The merchant badge outranks the generic delivery badge no matter
	// where its image appears in the card.
	first := []string{"//img/logoRocketMerchant.png", "//img/logo_rocket.png"}
	last := []string{"//img/logo_rocket.png", "//img/logoRocketMerchant.png"}

	assert.Equal(t, BadgeRocketMerchant, matchBadge(first))
	assert.Equal(t, BadgeRocketMerchant, matchBadge(last))
}

func TestMatchBadgeSellerAssetNotGenericDelivery(t *testing.T) {
	// badge_199559e56f7 contains the generic "badge_" marker but must
	// resolve as the merchant badge, never the delivery badge
	badge := matchBadge([]string{"//img/badge_199559e56f7.png"})
	assert.Equal(t, BadgeRocketMerchant, badge)
	assert.NotEqual(t, BadgeRocketDelivery, badge)
}

func TestResolveBadgeContainerFirst(t *testing.T) {
	item := firstItem(t, `
	<li class="ProductUnit_productUnit__Qd6sv">
		<span class="ImageBadge_default__JWaYp">
			<img src="//img/rocket_fresh.png" />
		</span>
		<img src="//img/logo_rocket.png" />
	</li>`)

	assert.Equal(t, BadgeRocketFresh, resolveBadge(item), "the badge container wins over stray card images")
}

func TestResolveBadgeScansAllImagesWithoutContainer(t *testing.T) {
	item := firstItem(t, `
	<li class="ProductUnit_productUnit__Qd6sv">
		<img src="//img/product-thumb.jpg" />
		<img data-src="//img/logo_jikgu.png" />
	</li>`)

	assert.Equal(t, BadgeRocketOverseas, resolveBadge(item), "data-src must be scanned too")
}

func TestResolveBadgeEmptyContainerFallsBack(t *testing.T) {
	item := firstItem(t, `
	<li class="ProductUnit_productUnit__Qd6sv">
		<span class="ImageBadge_default__JWaYp">
			<img src="//img/unrelated-sticker.png" />
		</span>
		<img src="//img/logo_rocket_large.png" />
	</li>`)

	assert.Equal(t, BadgeRocketDelivery, resolveBadge(item))
}

func TestResolveBadgeNone(t *testing.T) {
	item := firstItem(t, `
	<li class="ProductUnit_productUnit__Qd6sv">
		<img src="//img/product-thumb.jpg" />
	</li>`)

	badge := resolveBadge(item)
	assert.Equal(t, BadgeNone, badge)
	assert.Equal(t, "", badge.Label())
}
