package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"markets_backend/internal/feature/candles/domain/entity"
	"markets_backend/internal/feature/candles/usecase"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ErrProvider はモックと期待値の間で共有されるセンチネルエラーです。
var ErrProvider = errors.New("provider unreachable")

// mockMarketRepository はMarketRepositoryインターフェースのモック実装です。
// 一括取得で並行に呼ばれるため呼び出し記録はmutexで保護します。
type mockMarketRepository struct {
	GetRecentBarsFunc func(ctx context.Context, symbol string, interval entity.Interval, lookbackDays int) ([]entity.Bar, error)
	GetDailyBarsFunc  func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Bar, error)

	mu      sync.Mutex
	calls   int
	symbols []string
}

func (m *mockMarketRepository) record(symbol string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.symbols = append(m.symbols, symbol)
}

func (m *mockMarketRepository) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockMarketRepository) GetRecentBars(ctx context.Context, symbol string, interval entity.Interval, lookbackDays int) ([]entity.Bar, error) {
	m.record(symbol)
	if m.GetRecentBarsFunc != nil {
		return m.GetRecentBarsFunc(ctx, symbol, interval, lookbackDays)
	}
	return nil, errors.New("GetRecentBarsFunc is not implemented")
}

func (m *mockMarketRepository) GetDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]entity.Bar, error) {
	m.record(symbol)
	if m.GetDailyBarsFunc != nil {
		return m.GetDailyBarsFunc(ctx, symbol, start, end)
	}
	return nil, errors.New("GetDailyBarsFunc is not implemented")
}

// mockCatalog はSymbolCatalogのモック実装です。
type mockCatalog map[string]string

func (m mockCatalog) Name(code string) (string, bool) {
	n, ok := m[code]
	return n, ok
}

var testCatalog = mockCatalog{"^GSPC": "S&P 500", "^AXJO": "ASX 200"}

func fixedNow() time.Time {
	return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
}

func newUsecase(m *mockMarketRepository, concurrency int) *usecase.CandlesUsecase {
	return usecase.NewCandlesUsecase(m, testCatalog, usecase.Options{
		Location:        time.UTC,
		BulkConcurrency: concurrency,
		Now:             fixedNow,
	})
}

func ptr(s string) *string { return &s }

func query(interval, date string) usecase.Query {
	return usecase.Query{Interval: ptr(interval), Date: ptr(date)}
}

func bar(tm time.Time, close float64) entity.Bar {
	return entity.Bar{
		Time:   tm,
		Open:   null.FloatFrom(close - 1),
		High:   null.FloatFrom(close + 1),
		Low:    null.FloatFrom(close - 2),
		Close:  null.FloatFrom(close),
		Volume: null.IntFrom(1000),
	}
}

// TestCandlesUsecase_ParseQuery は時間足と日付の検証・デフォルト補完をテストします。
func TestCandlesUsecase_ParseQuery(t *testing.T) {
	t.Parallel()

	uc := newUsecase(&mockMarketRepository{}, 1)

	testCases := []struct {
		name             string
		query            usecase.Query
		expectedInterval entity.Interval
		expectedDate     string
		expectedErr      error
	}{
		{name: "success: explicit values", query: query("15m", "2024-01-12"), expectedInterval: entity.Interval15m, expectedDate: "2024-01-12"},
		{name: "success: defaults", query: usecase.Query{}, expectedInterval: entity.Interval5m, expectedDate: "2024-01-15"},
		{name: "success: default date only", query: usecase.Query{Interval: ptr("30m")}, expectedInterval: entity.Interval30m, expectedDate: "2024-01-15"},
		{name: "success: daily", query: query("1d", "2023-12-29"), expectedInterval: entity.Interval1d, expectedDate: "2023-12-29"},
		{name: "error: blank interval", query: query("", "2024-01-15"), expectedErr: usecase.ErrInvalidInterval},
		{name: "error: blank date", query: query("5m", ""), expectedErr: usecase.ErrInvalidDate},
		{name: "error: blank date with default interval", query: usecase.Query{Date: ptr("")}, expectedErr: usecase.ErrInvalidDate},
		{name: "error: unsupported interval", query: query("2h", "2024-01-15"), expectedErr: usecase.ErrInvalidInterval},
		{name: "error: interval case sensitive", query: query("1D", "2024-01-15"), expectedErr: usecase.ErrInvalidInterval},
		{name: "error: slash date", query: query("1d", "2024/01/15"), expectedErr: usecase.ErrInvalidDate},
		{name: "error: day first", query: query("1d", "15-01-2024"), expectedErr: usecase.ErrInvalidDate},
		{name: "error: month out of range", query: query("1d", "2024-13-01"), expectedErr: usecase.ErrInvalidDate},
		{name: "error: day out of range", query: query("1d", "2024-02-30"), expectedErr: usecase.ErrInvalidDate},
		{name: "error: trailing time", query: query("1d", "2024-01-15T00:00:00"), expectedErr: usecase.ErrInvalidDate},
		{name: "error: garbage", query: query("1d", "yesterday"), expectedErr: usecase.ErrInvalidDate},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			iv, day, err := uc.ParseQuery(tc.query)
			if tc.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.True(t, usecase.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedInterval, iv)
			assert.Equal(t, tc.expectedDate, day.Format(entity.DateLayout))
			assert.Equal(t, 0, day.Hour())
		})
	}
}

// TestCandlesUsecase_GetSymbolBars_ValidationMakesNoProviderCalls は検証エラー時にプロバイダが呼ばれないことを検証します。
func TestCandlesUsecase_GetSymbolBars_ValidationMakesNoProviderCalls(t *testing.T) {
	t.Parallel()

	for _, interval := range []string{"", "1m", "2h", "1w", "60m", "5M", " 5m"} {
		m := &mockMarketRepository{}
		_, err := newUsecase(m, 1).GetSymbolBars(context.Background(), "^GSPC", query(interval, "2024-01-15"))
		assert.ErrorIs(t, err, usecase.ErrInvalidInterval, interval)
		assert.Equal(t, 0, m.Calls(), interval)
	}

	m := &mockMarketRepository{}
	_, err := newUsecase(m, 1).GetSymbolBars(context.Background(), "^GSPC", query("5m", "01/15/2024"))
	assert.ErrorIs(t, err, usecase.ErrInvalidDate)
	assert.Equal(t, 0, m.Calls())
}

// TestCandlesUsecase_FetchBars_Intraday は日中足が広く取得され、対象日だけに絞り込まれることを検証します。
func TestCandlesUsecase_FetchBars_Intraday(t *testing.T) {
	t.Parallel()

	sydney, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)

	// 取引所ローカル（シドニー）の 1/15 10:00 はUTCでは 1/14 23:00
	provided := []entity.Bar{
		bar(time.Date(2024, 1, 12, 10, 0, 0, 0, sydney), 7400),
		bar(time.Date(2024, 1, 15, 10, 0, 0, 0, sydney), 7500),
		bar(time.Date(2024, 1, 15, 10, 5, 0, 0, sydney), 7505),
		bar(time.Date(2024, 1, 16, 10, 0, 0, 0, sydney), 7600),
	}

	m := &mockMarketRepository{
		GetRecentBarsFunc: func(ctx context.Context, symbol string, interval entity.Interval, lookbackDays int) ([]entity.Bar, error) {
			assert.Equal(t, "^AXJO", symbol)
			assert.Equal(t, entity.Interval5m, interval)
			assert.Equal(t, usecase.DefaultIntradayLookbackDays, lookbackDays)
			return provided, nil
		},
		GetDailyBarsFunc: func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Bar, error) {
			t.Error("GetDailyBars should not be called for intraday intervals")
			return nil, nil
		},
	}

	res, err := newUsecase(m, 1).GetSymbolBars(context.Background(), "^AXJO", query("5m", "2024-01-15"))
	require.NoError(t, err)
	require.True(t, res.Result.OK())
	require.Len(t, res.Result.Bars, 2)
	assert.Equal(t, provided[1], res.Result.Bars[0])
	assert.Equal(t, provided[2], res.Result.Bars[1])
	assert.Equal(t, "ASX 200", res.Name)
	assert.Equal(t, "2024-01-15", res.Date)
	assert.Equal(t, 1, m.Calls())
}

// TestCandlesUsecase_FetchBars_OutsideRollingWindow は保持期間外の日付が空の成功結果になることを検証します。
func TestCandlesUsecase_FetchBars_OutsideRollingWindow(t *testing.T) {
	t.Parallel()

	m := &mockMarketRepository{
		GetRecentBarsFunc: func(ctx context.Context, symbol string, interval entity.Interval, lookbackDays int) ([]entity.Bar, error) {
			return []entity.Bar{
				bar(time.Date(2024, 1, 12, 14, 30, 0, 0, time.UTC), 4780),
				bar(time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC), 4790),
			}, nil
		},
	}

	res, err := newUsecase(m, 1).GetSymbolBars(context.Background(), "^GSPC", query("1h", "2023-06-01"))
	require.NoError(t, err)
	assert.True(t, res.Result.OK())
	assert.NotNil(t, res.Result.Bars)
	assert.Empty(t, res.Result.Bars)
}

// TestCandlesUsecase_FetchBars_Daily は日足が対象日の前後1日を含む範囲で取得され、対象日に絞り込まれることを検証します。
func TestCandlesUsecase_FetchBars_Daily(t *testing.T) {
	t.Parallel()

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	expected := []entity.Bar{bar(time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), 4783)}
	provided := []entity.Bar{
		bar(time.Date(2024, 1, 12, 9, 30, 0, 0, time.UTC), 4780),
		expected[0],
		bar(time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC), 4790),
	}
	m := &mockMarketRepository{
		GetRecentBarsFunc: func(ctx context.Context, symbol string, interval entity.Interval, lookbackDays int) ([]entity.Bar, error) {
			t.Error("GetRecentBars should not be called for daily interval")
			return nil, nil
		},
		GetDailyBarsFunc: func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Bar, error) {
			assert.True(t, start.Equal(time.Date(2024, 1, 14, 0, 0, 0, 0, tokyo)), "start=%v", start)
			assert.True(t, end.Equal(time.Date(2024, 1, 17, 0, 0, 0, 0, tokyo)), "end=%v", end)
			return provided, nil
		},
	}

	uc := usecase.NewCandlesUsecase(m, testCatalog, usecase.Options{Location: tokyo, Now: fixedNow})
	res, err := uc.GetSymbolBars(context.Background(), "^GSPC", query("1d", "2024-01-15"))
	require.NoError(t, err)
	assert.Equal(t, expected, res.Result.Bars)
	assert.Equal(t, "S&P 500", res.Name)
}

// TestCandlesUsecase_FetchBars_DailyExchangeDate はサーバ(UTC)と取引所(シドニー)で暦日がずれても
// 取引所ローカルの対象日のセッションだけが返ることを検証します。
func TestCandlesUsecase_FetchBars_DailyExchangeDate(t *testing.T) {
	t.Parallel()

	sydney, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)

	// UTC 1/14 23:00 はシドニー 1/15 10:00 のセッション、UTC 1/15 23:00 は 1/16 のセッション
	session15 := bar(time.Date(2024, 1, 14, 23, 0, 0, 0, time.UTC).In(sydney), 7500)
	session16 := bar(time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC).In(sydney), 7600)
	session12 := bar(time.Date(2024, 1, 11, 23, 0, 0, 0, time.UTC).In(sydney), 7400)

	m := &mockMarketRepository{
		GetDailyBarsFunc: func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Bar, error) {
			var out []entity.Bar
			for _, b := range []entity.Bar{session12, session15, session16} {
				if !b.Time.Before(start) && b.Time.Before(end) {
					out = append(out, b)
				}
			}
			return out, nil
		},
	}

	res, err := newUsecase(m, 1).GetSymbolBars(context.Background(), "^AXJO", query("1d", "2024-01-15"))
	require.NoError(t, err)
	require.True(t, res.Result.OK())
	require.Len(t, res.Result.Bars, 1)
	assert.Equal(t, session15, res.Result.Bars[0])
	assert.Equal(t, "2024-01-15", res.Result.Bars[0].TradingDate())
}

// TestCandlesUsecase_FetchBars_ProviderFailure はプロバイダの失敗が結果に閉じ込められることを検証します。
func TestCandlesUsecase_FetchBars_ProviderFailure(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		fn   func(ctx context.Context, symbol string, interval entity.Interval, lookbackDays int) ([]entity.Bar, error)
	}{
		{
			name: "error returned",
			fn: func(ctx context.Context, symbol string, interval entity.Interval, lookbackDays int) ([]entity.Bar, error) {
				return []entity.Bar{bar(fixedNow(), 1)}, ErrProvider
			},
		},
		{
			name: "panic",
			fn: func(ctx context.Context, symbol string, interval entity.Interval, lookbackDays int) ([]entity.Bar, error) {
				panic("index out of range")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := &mockMarketRepository{GetRecentBarsFunc: tc.fn}
			res, err := newUsecase(m, 1).GetSymbolBars(context.Background(), "^GSPC", query("30m", "2024-01-15"))

			require.NoError(t, err, "provider failures must not surface as errors")
			assert.False(t, res.Result.OK())
			assert.Nil(t, res.Result.Bars)
			assert.Equal(t, "S&P 500", res.Name)
		})
	}
}

// TestCandlesUsecase_GetSymbolBars_UnknownSymbol はカタログ外の銘柄も拒否されずUnknownとして扱われることを検証します。
func TestCandlesUsecase_GetSymbolBars_UnknownSymbol(t *testing.T) {
	t.Parallel()

	m := &mockMarketRepository{
		GetDailyBarsFunc: func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Bar, error) {
			return []entity.Bar{}, nil
		},
	}

	res, err := newUsecase(m, 1).GetSymbolBars(context.Background(), "^BOGUS", query("1d", "2024-01-15"))
	require.NoError(t, err)
	assert.Equal(t, usecase.UnknownSymbolName, res.Name)
	assert.Equal(t, "^BOGUS", res.Symbol)
	assert.Equal(t, 1, m.Calls())
}

// TestCandlesUsecase_GetSymbolBars_Idempotent は同じ入力に対して同じ結果が返ることを検証します。
func TestCandlesUsecase_GetSymbolBars_Idempotent(t *testing.T) {
	t.Parallel()

	m := &mockMarketRepository{
		GetRecentBarsFunc: func(ctx context.Context, symbol string, interval entity.Interval, lookbackDays int) ([]entity.Bar, error) {
			return []entity.Bar{
				bar(time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC), 4780),
				bar(time.Date(2024, 1, 15, 14, 45, 0, 0, time.UTC), 4781),
			}, nil
		},
	}
	uc := newUsecase(m, 1)

	first, err := uc.GetSymbolBars(context.Background(), "^GSPC", query("15m", "2024-01-15"))
	require.NoError(t, err)
	second, err := uc.GetSymbolBars(context.Background(), "^GSPC", query("15m", "2024-01-15"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestCandlesUsecase_GetBulkBars は一括取得の各種シナリオを検証します。
func TestCandlesUsecase_GetBulkBars(t *testing.T) {
	t.Parallel()

	okBars := []entity.Bar{bar(time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC), 100)}

	testCases := []struct {
		name          string
		symbols       []string
		interval      string
		concurrency   int
		expectedErr   error
		expectedCalls int
	}{
		{name: "error: no symbols", symbols: nil, interval: "1h", concurrency: 1, expectedErr: usecase.ErrNoSymbols},
		{name: "error: empty symbols", symbols: []string{}, interval: "1h", concurrency: 1, expectedErr: usecase.ErrNoSymbols},
		{name: "error: invalid interval", symbols: []string{"^GSPC"}, interval: "3m", concurrency: 1, expectedErr: usecase.ErrInvalidInterval},
		{name: "success: sequential with one failure", symbols: []string{"^AXJO", "^FAIL", "^GSPC"}, interval: "1h", concurrency: 1, expectedCalls: 3},
		{name: "success: concurrent with one failure", symbols: []string{"^AXJO", "^FAIL", "^GSPC", "^BOGUS"}, interval: "1h", concurrency: 3, expectedCalls: 4},
		{name: "success: duplicates fetched independently", symbols: []string{"^GSPC", "^GSPC"}, interval: "1h", concurrency: 2, expectedCalls: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := &mockMarketRepository{
				GetRecentBarsFunc: func(ctx context.Context, symbol string, interval entity.Interval, lookbackDays int) ([]entity.Bar, error) {
					if symbol == "^FAIL" {
						return nil, ErrProvider
					}
					return okBars, nil
				},
			}

			res, err := newUsecase(m, tc.concurrency).GetBulkBars(context.Background(), tc.symbols, query(tc.interval, "2024-01-15"))
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Equal(t, 0, m.Calls())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedCalls, m.Calls())
			assert.Equal(t, entity.Interval1h, res.Interval)
			assert.Equal(t, "2024-01-15", res.Date)
			assert.Equal(t, fixedNow(), res.RequestedAt)

			// 結果はリクエストの銘柄順に並び、失敗した銘柄も含まれる
			require.Len(t, res.Items, len(tc.symbols))
			for i, item := range res.Items {
				assert.Equal(t, tc.symbols[i], item.Symbol)
				if item.Symbol == "^FAIL" {
					assert.False(t, item.Result.OK())
					assert.Empty(t, item.Result.Bars)
					assert.Equal(t, usecase.UnknownSymbolName, item.Name)
				} else {
					assert.True(t, item.Result.OK())
					assert.Equal(t, okBars, item.Result.Bars)
				}
			}
		})
	}
}

// TestCandlesUsecase_GetBulkBars_SequentialOrder は同時実行数1のとき銘柄順に逐次取得されることを検証します。
func TestCandlesUsecase_GetBulkBars_SequentialOrder(t *testing.T) {
	t.Parallel()

	m := &mockMarketRepository{
		GetDailyBarsFunc: func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Bar, error) {
			return []entity.Bar{}, nil
		},
	}
	symbols := []string{"^N225", "^HSI", "^FTSE", "^DJI"}

	_, err := newUsecase(m, 1).GetBulkBars(context.Background(), symbols, usecase.Query{Interval: ptr("1d")})
	require.NoError(t, err)
	assert.Equal(t, symbols, m.symbols)
}
