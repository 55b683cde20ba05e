package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"markets_backend/internal/feature/candles/domain/entity"
	"markets_backend/internal/feature/candles/usecase"
	"markets_backend/internal/platform/externalapi/yahoo/dto"

	"github.com/guregu/null/v6"
)

// APIError はプロバイダがHTTPエラーまたはchart.errorを返したことを表します。
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("yahoo: %s: %s", e.Code, e.Description)
	}
	return fmt.Sprintf("yahoo http %d", e.StatusCode)
}

// YahooMarket はYahoo Finance chart APIから株価バーを取得するMarketRepository実装です。
type YahooMarket struct {
	cfg    Config
	client *http.Client
}

// YahooMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*YahooMarket)(nil)

// NewYahooMarket は指定された設定とHTTPクライアントでYahooMarketの新しいインスタンスを生成します。
func NewYahooMarket(cfg Config, client *http.Client) *YahooMarket {
	return &YahooMarket{cfg: cfg.WithDefaults(), client: client}
}

// GetRecentBars は直近 lookbackDays 日分の日中足を取得します。
func (y *YahooMarket) GetRecentBars(ctx context.Context, symbol string, interval entity.Interval, lookbackDays int) ([]entity.Bar, error) {
	q := url.Values{}
	q.Set("range", strconv.Itoa(lookbackDays)+"d")
	q.Set("interval", providerInterval(interval))
	return y.fetchChart(ctx, symbol, q)
}

// GetDailyBars は [start, end) の日足を取得します。
func (y *YahooMarket) GetDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]entity.Bar, error) {
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(start.Unix(), 10))
	q.Set("period2", strconv.FormatInt(end.Unix(), 10))
	q.Set("interval", providerInterval(entity.Interval1d))
	return y.fetchChart(ctx, symbol, q)
}

// providerInterval はAPIの時間足表記に変換します。1時間足だけ表記が異なります。
func providerInterval(iv entity.Interval) string {
	if iv == entity.Interval1h {
		return "60m"
	}
	return iv.String()
}

func (y *YahooMarket) fetchChart(ctx context.Context, symbol string, q url.Values) ([]entity.Bar, error) {
	q.Set("includePrePost", "false")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", y.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}

	// 404などでもchart.errorが入っていることがあるので先にデコードを試みる
	var chart dto.ChartResponse
	decodeErr := json.Unmarshal(body, &chart)
	if decodeErr == nil && chart.Chart.Error != nil {
		return nil, &APIError{
			StatusCode:  res.StatusCode,
			Code:        chart.Chart.Error.Code,
			Description: chart.Chart.Error.Description,
		}
	}
	if res.StatusCode >= 400 {
		return nil, &APIError{StatusCode: res.StatusCode}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("yahoo decode: %w", decodeErr)
	}
	if len(chart.Chart.Result) == 0 {
		return []entity.Bar{}, nil
	}
	return toBars(chart.Chart.Result[0]), nil
}

// toBars はタイムスタンプ配列とOHLCV配列を突き合わせてバーに変換します。
// 値がnullまたは配列が短い場合は欠損値として扱います。
func toBars(r dto.ChartResult) []entity.Bar {
	var quote dto.Quote
	if len(r.Indicators.Quote) > 0 {
		quote = r.Indicators.Quote[0]
	}
	loc := exchangeLocation(r.Meta)

	bars := make([]entity.Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		bars = append(bars, entity.Bar{
			Time:   time.Unix(ts, 0).In(loc),
			Open:   null.FloatFromPtr(at(quote.Open, i)),
			High:   null.FloatFromPtr(at(quote.High, i)),
			Low:    null.FloatFromPtr(at(quote.Low, i)),
			Close:  null.FloatFromPtr(at(quote.Close, i)),
			Volume: volume(at(quote.Volume, i)),
		})
	}
	return bars
}

func at(s []*float64, i int) *float64 {
	if i < len(s) {
		return s[i]
	}
	return nil
}

func volume(v *float64) null.Int {
	if v == nil {
		return null.Int{}
	}
	return null.IntFrom(int64(*v))
}

// exchangeLocation は取引所のタイムゾーンを返します。
// IANA名が読めない環境ではgmtoffsetから固定オフセットのゾーンを作ります。
func exchangeLocation(m dto.Meta) *time.Location {
	if m.ExchangeTimezoneName != "" {
		if loc, err := time.LoadLocation(m.ExchangeTimezoneName); err == nil {
			return loc
		}
		slog.Warn("unknown exchange timezone, falling back to gmtoffset", "timezone", m.ExchangeTimezoneName)
	}
	if m.GMTOffset == 0 && m.ExchangeTimezoneName == "" {
		return time.UTC
	}
	return time.FixedZone(m.Timezone, m.GMTOffset)
}
