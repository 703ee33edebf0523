package model

import "strconv"

// MapType is the integer code a map source uses to identify its file format
// and provider. Unknown codes are kept as-is.
type MapType int

const (
	MapTypeDefault MapType = iota
	MapTypeMapsforge
	MapTypeOpenAndroMaps
	MapTypeFreizeitkarte
)

var mapTypeNames = map[MapType]string{
	MapTypeDefault:       "DEFAULT",
	MapTypeMapsforge:     "MAPSFORGE",
	MapTypeOpenAndroMaps: "OPENANDROMAPS",
	MapTypeFreizeitkarte: "FREIZEITKARTE",
}

// String returns the catalogue name of the map type
func (mt MapType) String() string {
	if name, ok := mapTypeNames[mt]; ok {
		return name
	}
	return "MapType(" + strconv.Itoa(int(mt)) + ")"
}

// IsKnown reports whether the code is part of the catalogue
func (mt MapType) IsKnown() bool {
	_, ok := mapTypeNames[mt]
	return ok
}

// MapTypes returns the catalogue in code order
func MapTypes() []MapType {
	return []MapType{MapTypeDefault, MapTypeMapsforge, MapTypeOpenAndroMaps, MapTypeFreizeitkarte}
}

// ParseMapType resolves a catalogue name or a numeric code
func ParseMapType(s string) (MapType, bool) {
	for mt, name := range mapTypeNames {
		if name == s {
			return mt, true
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		return MapType(n), true
	}
	return MapTypeDefault, false
}
