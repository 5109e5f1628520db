package constants

// regionCodes lists the Brazilian federative units accepted as the suffix of a
// "CITY - UF" destination.
var regionCodes = []string{
	"AC", "AL", "AM", "AP", "BA", "CE", "DF", "ES", "GO", "MA", "MG", "MS", "MT", "PA",
	"PB", "PE", "PI", "PR", "RJ", "RN", "RO", "RR", "RS", "SC", "SE", "SP", "TO",
}

// RegionCodes returns a fresh copy of the valid region codes.
func RegionCodes() []string {
	return append([]string(nil), regionCodes...)
}
