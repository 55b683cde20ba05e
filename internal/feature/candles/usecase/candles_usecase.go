// Package usecase はバーデータ取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"markets_backend/internal/feature/candles/domain/entity"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultInterval は時間足が未指定の場合に使う値です。
	DefaultInterval = entity.Interval5m
	// DefaultIntradayLookbackDays は日中足を取得する際に遡る日数です。
	// プロバイダは直近数日分の日中足しか返さないため、広めに取得してから対象日で絞り込みます。
	DefaultIntradayLookbackDays = 7
	// UnknownSymbolName はカタログに存在しない銘柄に付ける表示名です。
	UnknownSymbolName = "Unknown"
	// DefaultBulkConcurrency は一括取得で同時に実行する取得数の上限です。
	DefaultBulkConcurrency = 4
)

// MarketRepository は外部プロバイダから株価バーを取得するリポジトリのインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	// GetRecentBars は直近 lookbackDays 日分のバーを指定の時間足で返します。
	GetRecentBars(ctx context.Context, symbol string, interval entity.Interval, lookbackDays int) ([]entity.Bar, error)
	// GetDailyBars は [start, end) の範囲の日足を返します。
	GetDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]entity.Bar, error)
}

// SymbolCatalog はティッカーから表示名を引くためのインターフェイスです。
type SymbolCatalog interface {
	Name(code string) (string, bool)
}

// Query は時間足と日付の指定です。
// nil は未指定としてデフォルト値を使い、空文字列は指定ありの不正値として検証エラーになります。
type Query struct {
	Interval *string
	Date     *string
}

// Options はCandlesUsecaseの動作設定です。ゼロ値の項目にはデフォルトが使われます。
type Options struct {
	Location             *time.Location   // 日付の解釈と「今日」の判定に使うタイムゾーン
	IntradayLookbackDays int              // 日中足の取得日数
	BulkConcurrency      int              // 一括取得の同時実行数（1なら逐次）
	Now                  func() time.Time // テスト用の時計
}

// FetchResult は1銘柄分の取得結果です。
// プロバイダ側の失敗はErrに入り、呼び出し元へエラーとして返されることはありません。
type FetchResult struct {
	Bars []entity.Bar
	Err  error
}

// OK は取得が成功したかどうかを返します。
func (r FetchResult) OK() bool {
	return r.Err == nil
}

// SymbolBars は1銘柄分のレスポンス素材です。
type SymbolBars struct {
	Symbol   string
	Name     string
	Interval entity.Interval
	Date     string
	Result   FetchResult
}

// BulkBars は一括取得の結果です。Itemsはリクエストの銘柄順に並びます。
type BulkBars struct {
	Interval    entity.Interval
	Date        string
	Items       []SymbolBars
	RequestedAt time.Time
}

// CandlesUsecase はバー取得のユースケースを定義します。
type CandlesUsecase struct {
	market       MarketRepository
	catalog      SymbolCatalog
	loc          *time.Location
	lookbackDays int
	concurrency  int
	now          func() time.Time
}

// NewCandlesUsecase はCandlesUsecaseの新しいインスタンスを生成します。
func NewCandlesUsecase(market MarketRepository, catalog SymbolCatalog, opts Options) *CandlesUsecase {
	uc := &CandlesUsecase{
		market:       market,
		catalog:      catalog,
		loc:          opts.Location,
		lookbackDays: opts.IntradayLookbackDays,
		concurrency:  opts.BulkConcurrency,
		now:          opts.Now,
	}
	if uc.loc == nil {
		uc.loc = time.Local
	}
	if uc.lookbackDays <= 0 {
		uc.lookbackDays = DefaultIntradayLookbackDays
	}
	if uc.concurrency <= 0 {
		uc.concurrency = DefaultBulkConcurrency
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc
}

// Now はサーバのタイムゾーンでの現在時刻を返します。
func (uc *CandlesUsecase) Now() time.Time {
	return uc.now().In(uc.loc)
}

// ParseQuery は時間足と日付を検証し、未指定の項目にデフォルト値を補完します。
// 未指定のintervalはDefaultInterval、未指定のdateは今日として扱います。
func (uc *CandlesUsecase) ParseQuery(q Query) (entity.Interval, time.Time, error) {
	interval := string(DefaultInterval)
	if q.Interval != nil {
		interval = *q.Interval
	}
	iv, ok := entity.ParseInterval(interval)
	if !ok {
		names := make([]string, 0, len(entity.SupportedIntervals))
		for _, s := range entity.SupportedIntervals {
			names = append(names, s.String())
		}
		return "", time.Time{}, fmt.Errorf("%w %q: must be one of %s", ErrInvalidInterval, interval, strings.Join(names, ", "))
	}

	date := uc.Now().Format(entity.DateLayout)
	if q.Date != nil {
		date = *q.Date
	}
	day, err := time.ParseInLocation(entity.DateLayout, date, uc.loc)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w %q: use YYYY-MM-DD", ErrInvalidDate, date)
	}
	return iv, day, nil
}

// GetSymbolBars は1銘柄分のバーを取得します。
// 返すエラーは検証エラーのみで、プロバイダの失敗は SymbolBars.Result.Err に格納されます。
func (uc *CandlesUsecase) GetSymbolBars(ctx context.Context, symbol string, q Query) (SymbolBars, error) {
	iv, day, err := uc.ParseQuery(q)
	if err != nil {
		return SymbolBars{}, err
	}
	return uc.symbolBars(ctx, symbol, iv, day), nil
}

// GetBulkBars は複数銘柄のバーを同じ時間足・日付で取得します。
// 重複した銘柄もそれぞれ個別に取得し、1銘柄の失敗が他に影響することはありません。
func (uc *CandlesUsecase) GetBulkBars(ctx context.Context, symbols []string, q Query) (BulkBars, error) {
	if len(symbols) == 0 {
		return BulkBars{}, ErrNoSymbols
	}
	iv, day, err := uc.ParseQuery(q)
	if err != nil {
		return BulkBars{}, err
	}

	items := make([]SymbolBars, len(symbols))
	var g errgroup.Group
	g.SetLimit(uc.concurrency)
	for i, s := range symbols {
		g.Go(func() error {
			items[i] = uc.symbolBars(ctx, s, iv, day)
			return nil
		})
	}
	_ = g.Wait() // 各取得はエラーを返さない

	return BulkBars{
		Interval:    iv,
		Date:        day.Format(entity.DateLayout),
		Items:       items,
		RequestedAt: uc.Now(),
	}, nil
}

func (uc *CandlesUsecase) symbolBars(ctx context.Context, symbol string, iv entity.Interval, day time.Time) SymbolBars {
	name, ok := uc.catalog.Name(symbol)
	if !ok {
		// 未登録でもプロバイダ上は有効なティッカーの可能性があるため拒否しない
		slog.Warn("unknown symbol requested", "symbol", symbol)
		name = UnknownSymbolName
	}
	return SymbolBars{
		Symbol:   symbol,
		Name:     name,
		Interval: iv,
		Date:     day.Format(entity.DateLayout),
		Result:   uc.FetchBars(ctx, symbol, iv, day),
	}
}

// FetchBars は時間足に応じた取得方法でバーを取得します。
//
//   - 日中足: 直近 lookbackDays 日分を取得し、取引所ローカルの暦日が day と一致するバーだけ残す
//   - 日足: day の前後1日を含む範囲で取得し、同じく取引所ローカルの暦日で絞り込む
//
// プロバイダの失敗（panicを含む）はすべてFetchResult.Errに閉じ込めます。
func (uc *CandlesUsecase) FetchBars(ctx context.Context, symbol string, iv entity.Interval, day time.Time) (res FetchResult) {
	date := day.Format(entity.DateLayout)
	defer func() {
		if r := recover(); r != nil {
			res = FetchResult{Err: fmt.Errorf("provider panic: %v", r)}
		}
		if res.Err != nil {
			slog.Error("failed to fetch bars", "symbol", symbol, "interval", iv, "date", date, "error", res.Err)
			res.Bars = nil
		}
	}()

	slog.Info("fetching bars", "symbol", symbol, "interval", iv, "date", date)

	var (
		bars []entity.Bar
		err  error
	)
	if iv.IsIntraday() {
		bars, err = uc.market.GetRecentBars(ctx, symbol, iv, uc.lookbackDays)
	} else {
		// day はParseQueryによりサーバのタイムゾーンの0時になっている
		bars, err = uc.market.GetDailyBars(ctx, symbol, day.AddDate(0, 0, -1), day.AddDate(0, 0, 2))
	}
	if err != nil {
		return FetchResult{Err: err}
	}
	bars = filterByTradingDate(bars, date)

	if len(bars) == 0 {
		slog.Warn("no data found", "symbol", symbol, "interval", iv, "date", date)
		return FetchResult{Bars: []entity.Bar{}}
	}
	slog.Info("retrieved bars", "symbol", symbol, "count", len(bars))
	return FetchResult{Bars: bars}
}

// filterByTradingDate はプロバイダの並び順を保ったまま、対象日のバーだけを返します。
func filterByTradingDate(bars []entity.Bar, date string) []entity.Bar {
	out := make([]entity.Bar, 0, len(bars))
	for _, b := range bars {
		if b.TradingDate() == date {
			out = append(out, b)
		}
	}
	return out
}
