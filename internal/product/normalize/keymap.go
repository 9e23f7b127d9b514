package normalize

// keyMap renames raw column headers to the labels the storefront shows.
// Lookups go through canonicalKeys so accents, case and spacing in the
// source headers do not matter.
var keyMap = map[string]string{
	"descripcion":          "Descripción",
	"acabado":              "Acabado",
	"cadena":               "Cadena",
	"cierre":               "Cierre",
	"corte":                "Corte",
	"detalle":              "Detalle",
	"dije":                 "Dije",
	"disenio":              "Diseño",
	"estilo":               "Estilo",
	"ideal_para":           "Ideal para",
	"inspiracion":          "Inspiración",
	"lado1":                "Lado 1",
	"lado2":                "Lado 2",
	"material":             "Material",
	"modelo":               "Modelo",
	"montura":              "Montura",
	"origen":               "Origen",
	"piedra":               "Piedra",
	"piedra_central":       "Piedra Central",
	"piedras":              "Piedras",
	"piezas":               "Piezas",
	"set":                  "Set",
	"significado":          "Significado",
	"tamanio":              "Tamaño",
	"tamanios_disponibles": "Tamaños Disponibles",
	"uso":                  "Uso",
	"versatilidad":         "Versatilidad",
	"categoria":            "Categoría",
}

var canonicalKeys = func() map[string]string {
	m := make(map[string]string, len(keyMap))
	for k, v := range keyMap {
		m[Normalize(k)] = v
	}
	return m
}()

// legacyCategoryKeys are older spellings of the category header, checked in order.
var legacyCategoryKeys = []string{
	"COLECCION/ SIMBOLISMO",
	"COLECCION / SIMBOLISMO",
	"coleccion/simbolismo",
}

// displayNameKeys are tried in order when deriving nombres_display.
var displayNameKeys = []string{"nombres", "nombre", "producto", "title", "título"}

const defaultDisplayName = "Producto"

var titleCaseLowerWords = map[string]struct{}{
	"de": {}, "del": {}, "la": {}, "las": {}, "los": {}, "y": {},
	"o":  {}, "en": {}, "con": {}, "para": {}, "por": {}, "al": {},
}

// CanonicalKey returns the display label for a raw header, if one is mapped.
func CanonicalKey(raw string) (string, bool) {
	k, ok := canonicalKeys[Normalize(raw)]
	return k, ok
}
