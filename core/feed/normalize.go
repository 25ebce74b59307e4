package feed

import (
	"strings"

	"catalog-sync/core/utils"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Defaults applied when a feed value is absent from the vocabulary tables.
// Unknown values never fail normalization.
const (
	DefaultKind   = "house"
	DefaultStatus = "available"
)

// kindVocabulary maps raw feed property types to the internal kind vocabulary.
var kindVocabulary = map[string]string{
	"house":        "house",
	"casa":         "house",
	"villa":        "house",
	"apartment":    "apartment",
	"apartamento":  "apartment",
	"departamento": "apartment",
	"flat":         "apartment",
	"land":         "land",
	"terreno":      "land",
	"lote":         "land",
	"commercial":   "commercial",
	"local":        "commercial",
	"oficina":      "commercial",
}

// statusVocabulary maps raw feed listing statuses to the internal vocabulary.
var statusVocabulary = map[string]string{
	"available": "available",
	"disponible": "available",
	"active":     "available",
	"reserved":   "reserved",
	"reservado":  "reserved",
	"apartado":   "reserved",
	"sold":       "sold",
	"vendido":    "sold",
	"rented":     "sold",
}

// citySlugs maps known raw city spellings to their canonical slug form.
// Cities not listed here fall through to Slugify.
var citySlugs = map[string]string{
	"cdmx":                "ciudad-de-mexico",
	"ciudad de mexico":    "ciudad-de-mexico",
	"ciudad de méxico":    "ciudad-de-mexico",
	"mexico city":         "ciudad-de-mexico",
	"df":                  "ciudad-de-mexico",
	"gdl":                 "guadalajara",
	"guadalajara":         "guadalajara",
	"mty":                 "monterrey",
	"monterrey":           "monterrey",
	"qro":                 "queretaro",
	"querétaro":           "queretaro",
	"queretaro":           "queretaro",
	"playa del carmen":    "playa-del-carmen",
	"san miguel allende":  "san-miguel-de-allende",
	"san miguel de allende": "san-miguel-de-allende",
}

var titleCaser = cases.Title(language.Spanish)

// NormalizeKind maps a raw feed property type onto the internal vocabulary,
// falling back to DefaultKind for unknown values.
func NormalizeKind(raw string) string {
	if kind, ok := kindVocabulary[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return kind
	}
	return DefaultKind
}

// NormalizeStatus maps a raw feed status onto the internal vocabulary,
// falling back to DefaultStatus for unknown values.
func NormalizeStatus(raw string) string {
	if status, ok := statusVocabulary[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return status
	}
	return DefaultStatus
}

// NormalizeDistrict standardizes district casing, so "roma norte" and
// "ROMA NORTE" land on the same value.
func NormalizeDistrict(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(trimmed))
}

// NormalizeCity returns the canonical slug form of a city name. Known
// spellings go through the lookup table; anything else is slugged as-is.
func NormalizeCity(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if slug, ok := citySlugs[strings.ToLower(trimmed)]; ok {
		return slug
	}
	return utils.Slugify(trimmed)
}

// normalize converts one raw feed item into a Record. It never fails: loose
// field types go through the utils converters and unknown vocabulary values
// take their documented defaults.
func normalize(item feedItem) Record {
	return Record{
		ExternalID:   strings.TrimSpace(utils.ToString(item.ID)),
		Title:        strings.TrimSpace(item.Title),
		Kind:         NormalizeKind(item.Type),
		Status:       NormalizeStatus(item.Status),
		PriceAmount:  int64(utils.ToInt(item.Price)),
		Published:    item.Published,
		City:         NormalizeCity(item.Address.City),
		District:     NormalizeDistrict(item.Address.District),
		Street:       strings.TrimSpace(item.Address.Street),
		Bedrooms:     utils.ToInt(item.Bedrooms),
		Bathrooms:    utils.ToInt(item.Bathrooms),
		ParkingSpots: utils.ToInt(item.Parking),
		AreaM2:       utils.ToInt(item.Area),
		Pool:         utils.ToBool(item.Amenities.Pool),
		Garden:       utils.ToBool(item.Amenities.Garden),
		Furnished:    utils.ToBool(item.Amenities.Furnished),
		Photos:       item.Photos,
		Tags:         item.Tags,
	}
}
