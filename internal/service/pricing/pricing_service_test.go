package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/pkg/cache"
	"github.com/bomsquad/shoplist/internal/pkg/restapi/restapitest"
)

func TestDisplayCurrency_IsCached(t *testing.T) {
	fake := restapitest.New()
	fake.GetCurrencyFn = func(ctx context.Context) (*domain.Currency, error) {
		return &domain.Currency{Code: "EUR", ExchangeRate: decimal.RequireFromString("0.92")}, nil
	}

	svc := NewService(fake, cache.New())
	for i := 0; i < 3; i++ {
		currency, err := svc.DisplayCurrency(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if currency.Code != "EUR" {
			t.Fatalf("currency = %+v", currency)
		}
	}

	if fake.Calls("GetCurrency") != 1 {
		t.Errorf("currency fetched %d times, want 1", fake.Calls("GetCurrency"))
	}
}

func TestRowTotal(t *testing.T) {
	sek := &domain.Currency{Code: "SEK", ExchangeRate: decimal.RequireFromString("10.5")}

	got := RowTotal(sek, restapitest.FixtureResistor, 5)
	want := decimal.RequireFromString("5.25")
	if !got.Equal(want) {
		t.Errorf("row total = %s, want %s", got, want)
	}
}

func TestConvert_RoundsToDisplayPrecision(t *testing.T) {
	rate := &domain.Currency{Code: "SEK", ExchangeRate: decimal.RequireFromString("10.333")}

	got := Convert(rate, decimal.RequireFromString("0.10"))
	want := decimal.RequireFromString("1.03")
	if !got.Equal(want) {
		t.Errorf("converted = %s, want %s", got, want)
	}
}

func TestConvert_NoCurrencyFallsBack(t *testing.T) {
	price := decimal.RequireFromString("1.004")

	got := Convert(nil, price)
	if !got.Equal(decimal.RequireFromString("1.00")) {
		t.Errorf("converted = %s", got)
	}
}
