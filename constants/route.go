package constants

// defaultRouteCodes maps Sxx route codes printed on manifests to the facility
// that receives the load.
var defaultRouteCodes = map[string]string{
	"S10": "CO GUAPIMIRIM",
	"S12": "CO RIO DE JANEIRO 13",
	"S16": "CO QUEIMADOS",
	"S18": "CO SAO JOAO DE MERITI 01",
	"S20": "ML BELFORD ROXO 01",
	"S21": "CO JUIZ DE FORA",
	"S22": "DL DUQUE DE CAXIAS",
	"S24": "CO ITABORAI",
	"S25": "CO VOLTA REDONDA",
	"S27": "CO RIO DE JANEIRO 05",
	"S28": "CO RIO DE JANEIRO 04",
	"S30": "CO RIO DE JANEIRO 01",
	"S31": "CO JUIZ DE FORA",
	"S32": "CO RIO DE JANEIRO 03",
	"S37": "CO TRES RIOS",
	"S38": "CO RIO DE JANEIRO 06",
	"S41": "CO RIO DE JANEIRO 08",
	"S43": "CO ANGRA DOS REIS",
	"S45": "CO PARATY",
	"S48": "CO PETROPOLIS",
	"S49": "CO RIO DE JANEIRO 07",
	"S54": "CO NOVA FRIBURGO",
	"S56": "CO TERESOPOLIS",
	"S58": "CO CAMPOS D. GOYTCAZES",
	"S59": "CO SANT. ANT DE PADUA",
	"S60": "CO DUQUE DE CAXAIS",
	"S61": "CO CABO FRIO",
	"S63": "CO ARARUAMA",
	"S64": "CO SAO GONCALO",
	"S65": "CO RIO DAS OSTRAS",
	"S67": "CO NITEROI",
	"S68": "CO MARICÁ",
	"S70": "FL RIO DE JANEIRO",
}

// DefaultRouteCodes returns a fresh copy of the built-in route table.
func DefaultRouteCodes() map[string]string {
	out := make(map[string]string, len(defaultRouteCodes))
	for k, v := range defaultRouteCodes {
		out[k] = v
	}
	return out
}
