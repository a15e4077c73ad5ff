package card

import "regexp"

// Brand is the card network inferred from the number's prefix and length.
type Brand string

const (
	BrandVisa       Brand = "VISA"
	BrandMastercard Brand = "MASTERCARD"
	BrandAmex       Brand = "AMEX"
	BrandDiscover   Brand = "DISCOVER"
	BrandDiners     Brand = "DINERS"
	BrandJCB        Brand = "JCB"
	BrandUnknown    Brand = "UNKNOWN"
)

// brandPatterns are the gateway's prefix+length rules. The patterns are
// mutually exclusive, so evaluation order carries no meaning.
var brandPatterns = []struct {
	brand Brand
	re    *regexp.Regexp
}{
	{BrandVisa, regexp.MustCompile(`^4[0-9]{12}(?:[0-9]{3})?$`)},
	{BrandMastercard, regexp.MustCompile(`^5[1-5][0-9]{14}$`)},
	{BrandAmex, regexp.MustCompile(`^3[47][0-9]{13}$`)},
	{BrandDiscover, regexp.MustCompile(`^6(?:011|5[0-9]{2})[0-9]{12}$`)},
	{BrandDiners, regexp.MustCompile(`^3(?:0[0-59]|[689])[0-9]*$`)},
	{BrandJCB, regexp.MustCompile(`^(?:2131|1800|35)[0-9]*$`)},
}

// MatchingBrands returns every brand whose pattern matches the number.
// A classifiable number matches exactly one; the detector relies on that.
func MatchingBrands(number string) []Brand {
	var matches []Brand
	for _, p := range brandPatterns {
		if p.re.MatchString(number) {
			matches = append(matches, p.brand)
		}
	}
	return matches
}

// DetectBrand classifies a digits-only card number into a Brand.
// An unclassifiable number yields BrandUnknown, which is a legitimate
// outcome rather than an error.
func DetectBrand(number string) Brand {
	for _, p := range brandPatterns {
		if p.re.MatchString(number) {
			return p.brand
		}
	}
	return BrandUnknown
}
