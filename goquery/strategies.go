package goquery

import "github.com/fwojciec/carlot"

// AutoTrader listing cards.
var AutoTrader = Strategy{
	Site:       carlot.SiteAutoTrader,
	Source:     carlot.SourceAutoTrader,
	Containers: `[data-cmp="inventoryListing"], .inventory-listing, .listing-interior`,
	Fields: Fields{
		Title:    ".listing-title, h3, .inventory-listing-title",
		Price:    ".first-price, .listing-price, .price-section",
		Mileage:  ".listing-mileage, .mileage",
		Location: ".listing-dealer-city, .dealer-name",
		Image:    "img",
		Link:     "a",
	},
}

// Cars is the Cars.com strategy.
var Cars = Strategy{
	Site:       carlot.SiteCars,
	Source:     carlot.SourceCars,
	Containers: ".vehicle-card, .listing-row, .shop-srp-listings__listing",
	Fields: Fields{
		Title:    ".vehicle-card__title, .listing-title, h3",
		Price:    ".vehicle-card__price, .listing-price",
		Mileage:  ".vehicle-card__mileage, .mileage",
		Location: ".dealer-name, .vehicle-card__dealer",
		Image:    "img",
		Link:     "a",
	},
}

// CarGurus deal finder results.
var CarGurus = Strategy{
	Site:       carlot.SiteCarGurus,
	Source:     carlot.SourceCarGurus,
	Containers: `.cg-dealFinder-result, .srp-list-item, [data-cg-ft="srp-listing-card"]`,
	Fields: Fields{
		Title:    ".cg-dealFinder-result-model, .listing-title",
		Price:    ".cg-dealFinder-result-price, .price",
		Mileage:  ".cg-dealFinder-result-mileage, .mileage",
		Location: ".dealer-name",
		Image:    "img",
		Link:     "a",
	},
}

// CarMax car tiles.
var CarMax = Strategy{
	Site:       carlot.SiteCarMax,
	Source:     carlot.SourceCarMax,
	Containers: `.car-tile, .vehicle-tile, [data-test="car-tile"]`,
	Fields: Fields{
		Title:    ".car-title, .vehicle-year-make-model",
		Price:    ".car-price, .price",
		Mileage:  ".car-mileage, .mileage",
		Location: ".store-name",
		Image:    "img",
		Link:     "a",
	},
}

// Vroom inventory cards.
var Vroom = Strategy{
	Site:       carlot.SiteVroom,
	Source:     carlot.SourceVroom,
	Containers: `[data-element="vehicle-card"], .vehicle-card, .inventory-card`,
	Fields: Fields{
		Title:    ".vehicle-card__title, .ymm, h3",
		Price:    ".vehicle-card__price, .price",
		Mileage:  ".vehicle-card__mileage, .mileage",
		Location: ".location",
		Image:    "img",
		Link:     "a",
	},
}

// Carvana result tiles.
var Carvana = Strategy{
	Site:       carlot.SiteCarvana,
	Source:     carlot.SourceCarvana,
	Containers: `[data-qa="result-tile"], .result-tile, [data-test="ResultTile"]`,
	Fields: Fields{
		Title:    `[data-qa="make-model"], .make-model, h3`,
		Price:    `[data-qa="price"], .price`,
		Mileage:  `[data-qa="trim-mileage"], .mileage`,
		Location: ".location",
		Image:    "img",
		Link:     "a",
	},
}

// Facebook Marketplace markup uses generated class names, so title and
// price come from broad element queries. The title is the first matching
// span in the tile. It is the least reliable strategy.
var Facebook = Strategy{
	Site:       carlot.SiteFacebook,
	Source:     carlot.SourceFacebook,
	Containers: `[role="article"], .marketplace-tile, .x9f619`,
	Fields: Fields{
		Title:           "span, .x1lliihq, .x6ikm8r",
		Price:           `[dir="auto"], span`,
		Location:        ".x1i10hfl",
		Image:           "img",
		Link:            "a",
		InDocumentOrder: true,
	},
}

// Craigslist search results.
var Craigslist = Strategy{
	Site:       carlot.SiteCraigslist,
	Source:     carlot.SourceCraigslist,
	Containers: ".result-row, .cl-search-result",
	Fields: Fields{
		Title:    ".result-title, .cl-titlebox",
		Price:    ".result-price, .price",
		Location: ".result-neighborhood",
		Image:    "img",
		Link:     ".result-title, a",
	},
}

// Generic is used for unrecognized pages that still look like vehicle
// listings. Its container selectors are loose, so admission is stricter.
var Generic = Strategy{
	Site:       carlot.SiteGeneric,
	Containers: `article, .listing, .vehicle, .car, [class*="vehicle"], [class*="listing"], [class*="car"]`,
	Fields: Fields{
		Title:    `h1, h2, h3, .title, [class*="title"]`,
		Price:    `[class*="price"], .price`,
		Location: `[class*="location"], .location`,
		Image:    "img",
		Link:     "a",
	},
	Admit: carlot.AdmitTitleWithPriceOrYear,
}

// DefaultStrategies returns the built-in strategies: eight named sites
// followed by the generic fallback.
func DefaultStrategies() []Strategy {
	return []Strategy{
		AutoTrader, Cars, CarGurus, CarMax, Vroom, Carvana, Facebook, Craigslist, Generic,
	}
}
