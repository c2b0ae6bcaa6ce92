package carlot

import (
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	titleStripRe = regexp.MustCompile(`[^\w\s\-]`)
	nonDigitRe   = regexp.MustCompile(`[^\d]`)
	yearRe       = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	bodyTypeRe   = regexp.MustCompile(`(?i)\b(sedan|coupe|suv|truck|hatchback)\b`)
	allDigitsRe  = regexp.MustCompile(`^\d+$`)
	vinRe        = regexp.MustCompile(`\b[A-HJ-NPR-Z0-9]{17}\b`)
)

// Normalizer turns raw listings into canonical vehicles.
type Normalizer struct {
	// Now returns the capture time for listings without one. Its year also
	// bounds accepted model years.
	Now func() time.Time

	// NewID returns identifiers for listings without one.
	NewID func() string
}

// NewNormalizer returns a Normalizer using the wall clock and random UUIDs.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		Now:   func() time.Time { return time.Now().UTC() },
		NewID: uuid.NewString,
	}
}

// Normalize converts a raw listing into a Vehicle. It never fails: fields
// that cannot be parsed or fall outside their bounds are left empty.
//
// Year, make and model fall back to the title when their own field is
// empty. Whatever is still missing afterwards is back-filled from a
// title-only pass (ParseVehicleTitle).
func (n *Normalizer) Normalize(raw *RawListing) *Vehicle {
	v := &Vehicle{
		ID:        raw.ID,
		ScrapedAt: raw.ScrapedAt,
	}
	if v.ID == "" {
		v.ID = n.NewID()
	}
	now := n.Now()
	if v.ScrapedAt.IsZero() {
		v.ScrapedAt = now
	}
	maxYear := now.Year() + 1

	v.Title = CleanTitle(raw.Title)
	v.Price = checkPtr(raw.Price, CheckPrice)

	if raw.Year != nil {
		v.Year = checkYear(*raw.Year, maxYear)
	} else {
		v.Year = parseYear(raw.Title, maxYear)
	}
	v.Make = ParseMake(firstNonEmpty(raw.Make, raw.Title))
	v.Model = ParseModel(firstNonEmpty(raw.Model, raw.Title))
	v.Mileage = checkPtr(raw.Mileage, CheckMileage)

	v.Image = CleanURL(raw.Image, raw.Origin)
	v.URL = CleanURL(raw.URL, raw.Origin)
	v.Location = CleanText(raw.Location)
	v.Source = raw.Source
	if v.Source == "" {
		v.Source = SourceUnknown
	}
	v.Description = CleanText(raw.Description)

	v.VIN = ParseVIN(firstNonEmpty(raw.VIN, raw.Description))
	v.Transmission = ParseTransmission(firstNonEmpty(raw.Transmission, raw.Description))
	v.FuelType = ParseFuelType(firstNonEmpty(raw.FuelType, raw.Description))
	v.Condition = ParseCondition(firstNonEmpty(raw.Condition, raw.Description))

	if v.Year == nil || v.Make == "" || v.Model == "" {
		info := parseVehicleTitle(v.Title, maxYear)
		if v.Year == nil {
			v.Year = info.Year
		}
		if v.Make == "" {
			v.Make = info.Make
		}
		if v.Model == "" {
			v.Model = ParseModel(info.Model)
		}
	}

	return v
}

// RawFromVehicle converts a stored vehicle back into a raw listing, so that
// imported records pass through the same normalization as scraped ones.
func RawFromVehicle(v *Vehicle) *RawListing {
	return &RawListing{
		ID:           v.ID,
		Title:        v.Title,
		Price:        v.Price,
		Year:         v.Year,
		Make:         v.Make,
		Model:        v.Model,
		Mileage:      v.Mileage,
		Image:        v.Image,
		URL:          v.URL,
		Location:     v.Location,
		Description:  v.Description,
		VIN:          v.VIN,
		Transmission: string(v.Transmission),
		FuelType:     string(v.FuelType),
		Condition:    string(v.Condition),
		Source:       v.Source,
		ScrapedAt:    v.ScrapedAt,
	}
}

// CleanTitle removes punctuation other than hyphens, collapses whitespace
// and trims.
func CleanTitle(title string) string {
	if title == "" {
		return ""
	}
	s := whitespaceRe.ReplaceAllString(title, " ")
	s = titleStripRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CleanText collapses whitespace and trims.
func CleanText(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// CheckPrice returns price if it is within [MinPrice, MaxPrice], else nil.
func CheckPrice(price int) *int {
	if price < MinPrice || price > MaxPrice {
		return nil
	}
	return &price
}

// ParsePrice reads the digits of a price text ("$24,500") and checks the range.
func ParsePrice(text string) *int {
	n, ok := digitsOf(text)
	if !ok {
		return nil
	}
	return CheckPrice(n)
}

// CheckYear returns year if it is within [MinYear, MaxYear()], else nil.
func CheckYear(year int) *int {
	return checkYear(year, MaxYear())
}

func checkYear(year, maxYear int) *int {
	if year < MinYear || year > maxYear {
		return nil
	}
	return &year
}

// ParseYear finds the first 19xx or 20xx token in text and checks the range.
// Only the first token is considered.
func ParseYear(text string) *int {
	return parseYear(text, MaxYear())
}

func parseYear(text string, maxYear int) *int {
	m := yearRe.FindString(text)
	if m == "" {
		return nil
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return checkYear(year, maxYear)
}

// ParseMake returns the first make in Makes that text contains,
// case-insensitively. Aliases are matched only when no make is.
func ParseMake(text string) string {
	if text == "" {
		return ""
	}
	lower := strings.ToLower(text)
	for _, m := range Makes {
		if strings.Contains(lower, strings.ToLower(m)) {
			return m
		}
	}
	for _, m := range Makes {
		for _, alias := range MakeAliases[m] {
			if strings.Contains(lower, alias) {
				return m
			}
		}
	}
	return ""
}

// ParseModel drops year tokens and body-type words from text and returns
// the first remaining word longer than one character that is not a number.
func ParseModel(text string) string {
	if text == "" {
		return ""
	}
	s := yearRe.ReplaceAllString(text, "")
	s = bodyTypeRe.ReplaceAllString(s, "")

	for _, word := range strings.Fields(s) {
		if utf8.RuneCountInString(word) > 1 && !allDigitsRe.MatchString(word) {
			return word
		}
	}
	return ""
}

// CheckMileage returns mileage if it is within [MinMileage, MaxMileage], else nil.
func CheckMileage(mileage int) *int {
	if mileage < MinMileage || mileage > MaxMileage {
		return nil
	}
	return &mileage
}

// ParseMileage reads the digits of a mileage text ("32,000 mi") and checks the range.
func ParseMileage(text string) *int {
	n, ok := digitsOf(text)
	if !ok {
		return nil
	}
	return CheckMileage(n)
}

// CleanURL resolves rawURL against origin and returns the absolute form.
// Returns an empty string for empty, unparsable or unresolvable URLs.
func CleanURL(rawURL, origin string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	ref, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if origin != "" {
		base, err := url.Parse(origin)
		if err != nil {
			return ""
		}
		ref = base.ResolveReference(ref)
	}
	if !ref.IsAbs() {
		return ""
	}
	return ref.String()
}

// ParseVIN returns the first 17-character VIN in text. VINs never contain
// the letters I, O or Q.
func ParseVIN(text string) string {
	return vinRe.FindString(text)
}

// ParseTransmission maps text onto a transmission type. Keywords are
// checked in order: manual/stick, automatic/auto, cvt.
func ParseTransmission(text string) Transmission {
	if text == "" {
		return ""
	}
	for _, t := range []Transmission{TransmissionManual, TransmissionAutomatic, TransmissionCVT} {
		if strings.EqualFold(text, string(t)) {
			return t
		}
	}

	s := strings.ToLower(text)
	switch {
	case strings.Contains(s, "manual") || strings.Contains(s, "stick"):
		return TransmissionManual
	case strings.Contains(s, "automatic") || strings.Contains(s, "auto"):
		return TransmissionAutomatic
	case strings.Contains(s, "cvt"):
		return TransmissionCVT
	}
	return ""
}

// ParseFuelType maps text onto a fuel type. Keywords are checked in order:
// electric/ev, hybrid, diesel, gas/gasoline.
func ParseFuelType(text string) FuelType {
	if text == "" {
		return ""
	}
	for _, f := range []FuelType{FuelElectric, FuelHybrid, FuelDiesel, FuelGasoline} {
		if strings.EqualFold(text, string(f)) {
			return f
		}
	}

	s := strings.ToLower(text)
	switch {
	case strings.Contains(s, "electric") || strings.Contains(s, "ev"):
		return FuelElectric
	case strings.Contains(s, "hybrid"):
		return FuelHybrid
	case strings.Contains(s, "diesel"):
		return FuelDiesel
	case strings.Contains(s, "gas"):
		return FuelGasoline
	}
	return ""
}

// ParseCondition maps text onto a listing condition. Keywords are checked
// in order: new, used/pre-owned, certified.
func ParseCondition(text string) Condition {
	if text == "" {
		return ""
	}
	for _, c := range []Condition{ConditionNew, ConditionUsed, ConditionCertified} {
		if strings.EqualFold(text, string(c)) {
			return c
		}
	}

	s := strings.ToLower(text)
	switch {
	case strings.Contains(s, "new"):
		return ConditionNew
	case strings.Contains(s, "used") || strings.Contains(s, "pre-owned"):
		return ConditionUsed
	case strings.Contains(s, "certified"):
		return ConditionCertified
	}
	return ""
}

// TitleInfo holds what a title alone reveals about a vehicle.
type TitleInfo struct {
	Year  *int
	Make  string
	Model string
}

// ParseVehicleTitle extracts year, make and model from a title. The model
// is the word right after the make, when the make appears as a single word.
func ParseVehicleTitle(title string) TitleInfo {
	return parseVehicleTitle(title, MaxYear())
}

func parseVehicleTitle(title string, maxYear int) TitleInfo {
	if title == "" {
		return TitleInfo{}
	}
	info := TitleInfo{
		Year: parseYear(title, maxYear),
		Make: ParseMake(title),
	}
	if info.Make == "" {
		return info
	}

	words := strings.Fields(title)
	for i, word := range words {
		if strings.EqualFold(word, info.Make) || slices.Contains(MakeAliases[info.Make], strings.ToLower(word)) {
			if i < len(words)-1 {
				info.Model = words[i+1]
			}
			break
		}
	}
	return info
}

// digitsOf strips every non-digit from text and parses the rest.
func digitsOf(text string) (int, bool) {
	digits := nonDigitRe.ReplaceAllString(text, "")
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

func checkPtr(n *int, check func(int) *int) *int {
	if n == nil {
		return nil
	}
	return check(*n)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
