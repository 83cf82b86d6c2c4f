package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	html string
	err  error
	urls []string
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (io.Reader, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	return strings.NewReader(f.html), nil
}

func TestSearchURL(t *testing.T) {
	c := NewSearchCrawler(&stubFetcher{}, testBaseURL, 36)

	assert.Equal(t,
		"https://www.coupang.com/np/search?component=&q=%EB%85%B8%ED%8A%B8%EB%B6%81&page=1&listSize=36",
		c.SearchURL("노트북"))
	assert.Equal(t,
		"https://www.coupang.com/np/search?component=&q=usb+c+%ED%97%88%EB%B8%8C&page=1&listSize=36",
		c.SearchURL("usb c 허브"))
}

func TestSearchExtractsRecords(t *testing.T) {
	fetcher := &stubFetcher{html: `
	<div id="product-list">
		<li class="ProductUnit_productUnit__Qd6sv">
			<a href="/vp/products/1?rank=1"><div class="ProductUnit_productNameV2__cV9cw">상품 하나</div></a>
			<div class="PriceArea_priceArea__NntJz">9,900원</div>
		</li>
		<li class="ProductUnit_productUnit__Qd6sv">
			<div class="ProductUnit_productNameV2__cV9cw">광고 카드</div>
		</li>
		<li class="ProductUnit_productUnit__Qd6sv">
			<a href="/vp/products/2?rank=2"><div class="ProductUnit_productNameV2__cV9cw">상품 둘</div></a>
			<div class="PriceArea_priceArea__NntJz">12,000원</div>
		</li>
	</div>`}

	c := NewSearchCrawler(fetcher, testBaseURL, 36)
	records, err := c.Search(context.Background(), "노트북")

	require.NoError(t, err)
	require.Len(t, records, 2, "the priceless card is skipped")
	assert.Equal(t, "상품 하나", records[0].Name)
	assert.Equal(t, "상품 둘", records[1].Name)
	assert.Equal(t, "1", records[0].Rank)
	require.Len(t, fetcher.urls, 1)
	assert.Contains(t, fetcher.urls[0], "q=%EB%85%B8%ED%8A%B8%EB%B6%81")
}

func TestSearchPropagatesFetchError(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("unlocker unavailable")}
	c := NewSearchCrawler(fetcher, testBaseURL, 36)

	records, err := c.Search(context.Background(), "노트북")
	assert.Error(t, err)
	assert.Nil(t, records)
}

func TestSearchEmptyPage(t *testing.T) {
	fetcher := &stubFetcher{html: `<html><body>검색결과가 없습니다</body></html>`}
	c := NewSearchCrawler(fetcher, testBaseURL, 36)

	records, err := c.Search(context.Background(), "노트북")
	require.NoError(t, err, "a page without cards is not an error")
	assert.Empty(t, records)
}

func TestExtractRecordsCapped(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`<div id="product-list">`)
	for i := 0; i < MaxRecords+10; i++ {
		fmt.Fprintf(&sb, `
		<li class="ProductUnit_productUnit__Qd6sv">
			<div class="ProductUnit_productNameV2__cV9cw">상품 %d</div>
			<div class="PriceArea_priceArea__NntJz">1,000원</div>
		</li>`, i)
	}
	sb.WriteString(`</div>`)

	c := NewSearchCrawler(&stubFetcher{}, testBaseURL, 36)
	records := c.ExtractRecords(mustDoc(t, sb.String()))

	assert.Len(t, records, MaxRecords)
	assert.Equal(t, "상품 0", records[0].Name)
	assert.Equal(t, fmt.Sprintf("상품 %d", MaxRecords-1), records[len(records)-1].Name)
}
