package model

// Regions is the set of Brazilian state codes (UF) accepted in Submission.Estado.
var Regions = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS", "MG", "PA",
	"PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

var regionSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Regions))
	for _, r := range Regions {
		m[r] = struct{}{}
	}
	return m
}()

// ValidRegion is case sensitive: "sp" is rejected.
func ValidRegion(code string) bool {
	_, ok := regionSet[code]
	return ok
}
