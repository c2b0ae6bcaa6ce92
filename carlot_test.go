package carlot_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/carlot"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := carlot.Errorf(carlot.ENOTFOUND, "vehicle %q not found", "test")

	assert.Equal(t, carlot.ENOTFOUND, carlot.ErrorCode(err))
	assert.Equal(t, "vehicle \"test\" not found", carlot.ErrorMessage(err))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, carlot.ErrorCode(nil))
	})

	t.Run("unwraps wrapped application errors", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("load: %w", carlot.Errorf(carlot.EINVALID, "bad url"))

		assert.Equal(t, carlot.EINVALID, carlot.ErrorCode(err))
		assert.Equal(t, "bad url", carlot.ErrorMessage(err))
	})

	t.Run("reports other errors as internal", func(t *testing.T) {
		t.Parallel()

		err := errors.New("disk on fire")

		assert.Equal(t, carlot.EINTERNAL, carlot.ErrorCode(err))
		assert.Equal(t, "disk on fire", carlot.ErrorMessage(err))
	})
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	t.Run("derives hostname and origin", func(t *testing.T) {
		t.Parallel()

		page, err := carlot.NewPage("https://WWW.AutoTrader.com/cars-for-sale?zip=10001", "<html></html>")

		assert.NoError(t, err)
		assert.Equal(t, "www.autotrader.com", page.Hostname)
		assert.Equal(t, "https://WWW.AutoTrader.com", page.Origin)
		assert.Equal(t, "<html></html>", page.HTML)
	})

	t.Run("rejects empty URL", func(t *testing.T) {
		t.Parallel()

		_, err := carlot.NewPage("", "<html></html>")

		assert.Equal(t, carlot.EINVALID, carlot.ErrorCode(err))
	})

	t.Run("rejects relative URL", func(t *testing.T) {
		t.Parallel()

		_, err := carlot.NewPage("/listing/1", "<html></html>")

		assert.Equal(t, carlot.EINVALID, carlot.ErrorCode(err))
	})
}

func TestSourceForURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://www.autotrader.com/cars-for-sale", carlot.SourceAutoTrader},
		{"https://www.cars.com/shopping/", carlot.SourceCars},
		{"https://www.cargurus.com/Cars/", carlot.SourceCarGurus},
		{"https://www.carmax.com/cars", carlot.SourceCarMax},
		{"https://www.vroom.com/cars", carlot.SourceVroom},
		{"https://www.carvana.com/cars", carlot.SourceCarvana},
		{"https://www.facebook.com/marketplace/", carlot.SourceFacebook},
		{"https://sfbay.craigslist.org/search/cta", carlot.SourceCraigslist},
		{"https://dealer.example.com/inventory", carlot.SourceOther},
		{"", carlot.SourceUnknown},
		{"://nope", carlot.SourceUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, carlot.SourceForURL(tt.url))
		})
	}
}

func TestVehicle_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a titled vehicle with values in range", func(t *testing.T) {
		t.Parallel()

		v := &carlot.Vehicle{Title: "2021 Toyota Camry", Price: intPtr(24500), Year: intPtr(2021), Mileage: intPtr(0)}

		report := v.Validate()

		assert.True(t, report.Valid)
		assert.Empty(t, report.Errors)
	})

	t.Run("accepts make and model without a title", func(t *testing.T) {
		t.Parallel()

		v := &carlot.Vehicle{Make: "Honda", Model: "Civic"}

		assert.True(t, v.Validate().Valid)
	})

	t.Run("reports every problem", func(t *testing.T) {
		t.Parallel()

		v := &carlot.Vehicle{Price: intPtr(100), Year: intPtr(1850), Mileage: intPtr(900000)}

		report := v.Validate()

		assert.False(t, report.Valid)
		assert.Equal(t, []string{
			"vehicle must have a title or make/model",
			"invalid year",
			"invalid price range",
			"invalid mileage",
		}, report.Errors)
	})
}

func TestAdmitFuncs(t *testing.T) {
	t.Parallel()

	t.Run("title or price admits either", func(t *testing.T) {
		t.Parallel()

		assert.True(t, carlot.AdmitTitleOrPrice(&carlot.RawListing{Title: "Civic"}))
		assert.True(t, carlot.AdmitTitleOrPrice(&carlot.RawListing{Price: intPtr(9000)}))
		assert.False(t, carlot.AdmitTitleOrPrice(&carlot.RawListing{Location: "Austin"}))
	})

	t.Run("title with price or year requires the title", func(t *testing.T) {
		t.Parallel()

		assert.True(t, carlot.AdmitTitleWithPriceOrYear(&carlot.RawListing{Title: "Civic", Year: intPtr(2019)}))
		assert.True(t, carlot.AdmitTitleWithPriceOrYear(&carlot.RawListing{Title: "Civic", Price: intPtr(9000)}))
		assert.False(t, carlot.AdmitTitleWithPriceOrYear(&carlot.RawListing{Title: "Civic"}))
		assert.False(t, carlot.AdmitTitleWithPriceOrYear(&carlot.RawListing{Price: intPtr(9000), Year: intPtr(2019)}))
	})
}

func intPtr(n int) *int {
	return &n
}
