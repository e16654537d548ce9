package report

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"watch-listing-stats/internal/listing"
)

func mk(price, shipping listing.Value, location, merchant string) listing.Listing {
	return listing.Listing{
		Price:         price,
		ShippingPrice: shipping,
		Location:      location,
		MerchantName:  merchant,
	}
}

func TestGroupByMerchantCanonicalLabels(t *testing.T) {
	listings := []listing.Listing{
		mk(listing.StringValue("$100"), listing.NullValue(), "", "dealer"),
		mk(listing.StringValue("$200"), listing.NullValue(), "", "Dealer"),
		mk(listing.StringValue("$300"), listing.NullValue(), "", "Private seller"),
		mk(listing.StringValue("$400"), listing.NullValue(), "", "Auction House"),
	}

	groups := GroupBy(listings, ByMerchant, Options{})
	if len(groups) != 3 {
		t.Fatalf("应得到 3 个分组, 实际 %d: %#v", len(groups), groups)
	}
	if groups[MerchantDealer].Count != 2 {
		t.Fatalf("大小写变体应归并到 Dealer, 实际 %+v", groups[MerchantDealer])
	}
	if groups[MerchantPrivateSeller].Count != 1 {
		t.Fatalf("Private seller 应归并到规范标签, 实际 %+v", groups)
	}
	if groups["Auction House"].Count != 1 {
		t.Fatalf("未识别的 merchant 应保留为独立分组, 实际 %+v", groups)
	}
}

func TestGroupByExcludesMissingKeys(t *testing.T) {
	listings := []listing.Listing{
		mk(listing.StringValue("$100"), listing.NullValue(), "Vienna, Austria", "Dealer"),
		mk(listing.StringValue("$200"), listing.NullValue(), "null", "Dealer"),
		mk(listing.StringValue("$300"), listing.NullValue(), "", "Dealer"),
	}

	groups := GroupBy(listings, ByLocation, Options{})
	if len(groups) != 1 {
		t.Fatalf("缺少 location 的记录应被排除, 实际分组 %#v", groups)
	}
	if groups["Vienna, Austria"].Count != 1 {
		t.Fatalf("Vienna 分组大小应为 1, 实际 %+v", groups["Vienna, Austria"])
	}

	bucketed := GroupBy(listings, ByLocation, Options{UnknownGroupLabel: "Unknown"})
	if bucketed["Unknown"].Count != 2 {
		t.Fatalf("配置 UnknownGroupLabel 后应归入 Unknown, 实际 %#v", bucketed)
	}
}

func TestGroupSummaryKeepsRawSize(t *testing.T) {
	listings := []listing.Listing{
		mk(listing.StringValue("$100"), listing.StringValue("$5"), "Geneva, Switzerland", ""),
		mk(listing.StringValue("N/A"), listing.StringValue("$5"), "Geneva, Switzerland", ""),
	}

	groups := GroupBy(listings, ByLocation, Options{})
	g := groups["Geneva, Switzerland"]
	if g.Count != 2 {
		t.Fatalf("count 应为原始分组大小 2, 实际 %d", g.Count)
	}
	if g.Price.Count != 1 {
		t.Fatalf("价格样本应只含可解析值, 实际 %+v", g.Price)
	}
	if g.Shipping.Count != 2 {
		t.Fatalf("shipping 样本应包含两条记录, 实际 %+v", g.Shipping)
	}
}

func TestGroupSummaryJSONOmitsEmptyMetrics(t *testing.T) {
	groups := GroupBy([]listing.Listing{
		mk(listing.StringValue("N/A"), listing.StringValue("bad"), "London, UK", ""),
	}, ByLocation, Options{})

	data, err := json.Marshal(groups["London, UK"])
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"count":1`) {
		t.Fatalf("count 应始终输出, 实际 %s", out)
	}
	if strings.Contains(out, "avg_price") || strings.Contains(out, "avg_shipping") {
		t.Fatalf("无有效样本时应省略数值字段, 实际 %s", out)
	}
}

func TestExtractTotals(t *testing.T) {
	listings := []listing.Listing{
		mk(listing.StringValue("$100"), listing.StringValue("$10"), "", ""),
		mk(listing.StringValue("$200"), listing.NullValue(), "", ""),
		mk(listing.NullValue(), listing.StringValue("$10"), "", ""),
		mk(listing.StringValue("$300"), listing.StringValue("bad"), "", ""),
	}

	totals := ExtractTotals(listings)
	if len(totals) != 2 {
		t.Fatalf("只有价格有效且运费可归一的记录才计入 total, 实际 %v", totals)
	}
	if totals[0] != 110 || totals[1] != 200 {
		t.Fatalf("total 样本应为 [110 200], 实际 %v", totals)
	}
}
