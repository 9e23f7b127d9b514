package normalize

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

func rowOf(pairs ...any) *model.Row {
	row := model.NewRow(len(pairs) / 2)
	for i := 0; i < len(pairs); i += 2 {
		row.Set(pairs[i].(string), model.ValueOf(pairs[i+1]))
	}
	return row
}

func mustNormalizer(t *testing.T, base string) *Normalizer {
	t.Helper()
	n, err := New(base)
	if err != nil {
		t.Fatalf("new normalizer: %v", err)
	}
	return n
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"":                       "",
		"  Éxito   TOTAL ":       "exito total",
		"Señor\tde\nlos Anillos": "senor de los anillos",
		"Anillos / Compromiso":   "anillos / compromiso",
		"DISEÑO":                 "diseno",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTokens(t *testing.T) {
	if got := Tokens("anillos / compromiso"); !reflect.DeepEqual(got, []string{"anillos", "compromiso"}) {
		t.Errorf("unexpected tokens %v", got)
	}
	if got := Tokens("oro-18k, plata"); !reflect.DeepEqual(got, []string{"oro", "18k", "plata"}) {
		t.Errorf("unexpected tokens %v", got)
	}
	if got := Tokens(""); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil tokens, got %#v", got)
	}
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"anillo DE oro y plata": "Anillo de Oro y Plata",
		"de la luna":            "De la Luna",
		"  collar   élite ":     "Collar Élite",
		"":                      "",
	}
	for in, want := range tests {
		if got := TitleCase(in); got != want {
			t.Errorf("TitleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRemapKeys(t *testing.T) {
	row := rowOf(
		"id", "P1",
		"DESCRIPCIÓN ", "Anillo fino",
		"Precio USD", 120.5,
		"tamanios  disponibles", "5,6,7",
		"nombres", "anillo sol",
	)

	rec := RemapKeys(row)

	want := []string{"id", "Descripción", "Precio USD", "tamanios  disponibles", "nombres"}
	if got := rec.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected keys %v, got %v", want, got)
	}
	if v, _ := rec.Get("Descripción"); v != model.String("Anillo fino") {
		t.Errorf("unexpected description %v", v)
	}
	if v, _ := rec.Get("Precio USD"); v != model.Float(120.5) {
		t.Errorf("unmapped value changed: %v", v)
	}
}

func TestRemapKeys_UnmappedKeysUntouched(t *testing.T) {
	row := rowOf("Código Interno", "X-1", "nombres", "Anillo", "weird KEY ", nil)

	rec := RemapKeys(row)

	row.Each(func(key string, value model.Value) {
		got, ok := rec.Get(key)
		if !ok {
			t.Errorf("key %q missing", key)
			return
		}
		if got != value {
			t.Errorf("key %q: expected %v, got %v", key, value, got)
		}
	})
	if rec.Len() != row.Len() {
		t.Errorf("expected %d keys, got %d", row.Len(), rec.Len())
	}
}

func TestRemapKeys_LegacyCategory(t *testing.T) {
	row := rowOf("id", "P1", "COLECCION / SIMBOLISMO", "Amor Eterno")

	rec := RemapKeys(row)

	if v, _ := textValue(rec, "categoria"); v != "Amor Eterno" {
		t.Errorf("expected legacy category promoted, got %q", v)
	}
	if !rec.Has("COLECCION / SIMBOLISMO") {
		t.Error("legacy key should be kept")
	}

	empty := RemapKeys(rowOf("COLECCION/ SIMBOLISMO", "", "coleccion/simbolismo", "Luna"))
	if v, _ := textValue(empty, "categoria"); v != "Luna" {
		t.Errorf("expected first non-empty legacy value, got %q", v)
	}
}

func TestProduct_CategoryFields(t *testing.T) {
	n := mustNormalizer(t, "http://localhost:5057/")
	p := &model.Product{ID: "P1", Data: rowOf("id", "P1", "categoria", "Anillos / Compromiso")}

	rec := n.Product(p)

	if v, _ := rec.Get("categoria_norm"); v != "anillos / compromiso" {
		t.Errorf("unexpected categoria_norm %v", v)
	}
	if v, _ := rec.Get("categoria_tokens"); !reflect.DeepEqual(v, []string{"anillos", "compromiso"}) {
		t.Errorf("unexpected categoria_tokens %v", v)
	}
	if v, _ := rec.Get("Categoría"); v != model.String("Anillos / Compromiso") {
		t.Errorf("expected canonical category key, got %v", v)
	}
}

func TestProduct_EmptyCategory(t *testing.T) {
	n := mustNormalizer(t, "http://localhost:5057/")
	rec := n.Product(&model.Product{Data: rowOf("id", "P9")})

	if v, _ := rec.Get("categoria_norm"); v != "" {
		t.Errorf("expected empty categoria_norm, got %v", v)
	}
	if v, _ := rec.Get("categoria_tokens"); !reflect.DeepEqual(v, []string{}) {
		t.Errorf("expected empty tokens, got %#v", v)
	}
}

func TestProduct_DisplayName(t *testing.T) {
	n := mustNormalizer(t, "http://localhost:5057/")

	tests := []struct {
		name string
		row  *model.Row
		want string
	}{
		{"nombres first", rowOf("nombre", "otro", "nombres", "anillo DE oro"), "Anillo de Oro"},
		{"skips empty", rowOf("nombres", "", "producto", "collar del mar"), "Collar del Mar"},
		{"accented title", rowOf("título", "pulsera con dijes"), "Pulsera con Dijes"},
		{"fallback", rowOf("id", "P1", "nombres", nil), "Producto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := n.Product(&model.Product{Data: tt.row})
			if v, _ := rec.Get("nombres_display"); v != tt.want {
				t.Errorf("expected %q, got %v", tt.want, v)
			}
		})
	}
}

func TestProduct_ImageURLs(t *testing.T) {
	n := mustNormalizer(t, "http://localhost:5057/")
	p := &model.Product{
		ID:   "P1",
		Data: rowOf("id", "P1"),
		Images: []model.ProductImage{
			{ProductID: "P1", Path: "products/c.png", Position: 3},
			{ProductID: "P1", Path: "/products/a.png", Position: 1, IsPrimary: true},
			{ProductID: "P1", Path: "products/b.png", Position: 2},
		},
	}

	rec := n.Product(p)

	want := map[string]string{
		"image_url":  "http://localhost:5057/products/a.png",
		"image_url2": "http://localhost:5057/products/b.png",
		"image_url3": "http://localhost:5057/products/c.png",
	}
	for key, url := range want {
		if v, _ := rec.Get(key); v != url {
			t.Errorf("%s: expected %s, got %v", key, url, v)
		}
	}
	if rec.Has("image_url4") || rec.Has("image_url1") {
		t.Error("unexpected extra image url keys")
	}

	images, _ := rec.Get("images")
	sorted := images.([]model.ProductImage)
	if sorted[0].Position != 1 || sorted[1].Position != 2 || sorted[2].Position != 3 {
		t.Errorf("images not sorted by position: %+v", sorted)
	}
	if p.Images[0].Position != 3 {
		t.Error("normalizer must not reorder the product's own images")
	}
}

func TestProduct_NoImages(t *testing.T) {
	n := mustNormalizer(t, "http://localhost:5057/")
	rec := n.Product(&model.Product{Data: rowOf("id", "P1")})

	images, ok := rec.Get("images")
	if !ok {
		t.Fatal("expected images key")
	}
	if list := images.([]model.ProductImage); list == nil || len(list) != 0 {
		t.Errorf("expected empty image list, got %#v", images)
	}
	if rec.Has("image_url") {
		t.Error("no image_url expected without images")
	}
}

func TestAbsoluteURL_BaseWithPath(t *testing.T) {
	n := mustNormalizer(t, "https://cdn.example.com/catalog")
	if got := n.AbsoluteURL("//products/a.png"); got != "https://cdn.example.com/catalog/products/a.png" {
		t.Errorf("unexpected url %s", got)
	}
}

func TestRecordJSON_KeepsOrderAndUnicode(t *testing.T) {
	n := mustNormalizer(t, "http://localhost:5057/")
	rec := n.Product(&model.Product{Data: rowOf("id", int64(7), "descripcion", "Diseño <único>", "plus", nil)})

	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(b)

	prefix := `{"id":7,"Descripción":"Diseño`
	if !strings.HasPrefix(out, prefix) {
		t.Errorf("expected prefix %s, got %s", prefix, out)
	}
	if !strings.Contains(out, `"plus":null`) {
		t.Errorf("expected null plus, got %s", out)
	}
	order := []string{`"categoria_norm"`, `"categoria_tokens"`, `"nombres_display"`, `"images":[]`}
	last := -1
	for _, key := range order {
		idx := strings.Index(out, key)
		if idx <= last {
			t.Errorf("key %s out of order in %s", key, out)
		}
		last = idx
	}
}
