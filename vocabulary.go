package carlot

// Makes is the canonical make vocabulary. Matching walks it in order, so
// when text mentions several makes the one listed first wins.
var Makes = []string{
	"Acura", "Alfa Romeo", "Aston Martin", "Audi", "Bentley", "BMW", "Buick",
	"Cadillac", "Chevrolet", "Chrysler", "Dodge", "Ferrari", "Fiat", "Ford",
	"Genesis", "GMC", "Honda", "Hyundai", "Infiniti", "Jaguar", "Jeep",
	"Kia", "Lamborghini", "Land Rover", "Lexus", "Lincoln", "Maserati",
	"Mazda", "McLaren", "Mercedes-Benz", "Mini", "Mitsubishi", "Nissan",
	"Porsche", "Ram", "Rolls-Royce", "Subaru", "Tesla", "Toyota",
	"Volkswagen", "Volvo",
}

// MakeAliases maps a make to the lowercase short names listings use for it.
var MakeAliases = map[string][]string{
	"Chevrolet":     {"chevy"},
	"Mercedes-Benz": {"mercedes"},
}

// ListingMakes is the shorter, popularity-ordered list scanned against a
// listing container's text during extraction. Its entries need not be
// canonical ("Mercedes"); the normalizer maps them onto Makes
// through MakeAliases.
var ListingMakes = []string{
	"Toyota", "Honda", "Ford", "Chevrolet", "BMW", "Mercedes", "Audi",
	"Volkswagen", "Nissan", "Hyundai", "Kia", "Subaru", "Mazda", "Lexus",
	"Acura", "Infiniti", "Cadillac", "Buick", "GMC", "Jeep", "Dodge",
	"Chrysler", "Ram", "Volvo", "Jaguar", "Land Rover", "Porsche", "Tesla",
	"Mitsubishi",
}

// VehicleKeywords are the terms counted when deciding whether an
// unrecognized page carries vehicle content.
var VehicleKeywords = []string{
	"vehicle", "car", "truck", "suv", "sedan", "coupe", "hatchback",
	"honda", "toyota", "ford", "chevrolet", "bmw", "mercedes",
	"mileage", "mpg", "transmission", "engine", "horsepower",
	"year", "make", "model", "vin", "price", "financing",
}
