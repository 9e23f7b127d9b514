package normalize

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// Record is a product as sent to clients: the remapped row followed by the
// derived fields.
type Record = model.OrderedMap[any]

// Normalizer turns products into client records. Image URLs are resolved
// against the base URL the request came in on.
type Normalizer struct {
	base *url.URL
}

func New(baseURL string) (*Normalizer, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	return &Normalizer{base: base}, nil
}

func (n *Normalizer) Products(products []model.Product) []*Record {
	out := make([]*Record, 0, len(products))
	for i := range products {
		out = append(out, n.Product(&products[i]))
	}
	return out
}

func (n *Normalizer) Product(p *model.Product) *Record {
	rec := RemapKeys(p.Data)

	category := Normalize(categoryValue(rec))
	rec.Set("categoria_norm", category)
	rec.Set("categoria_tokens", Tokens(category))

	rec.Set("nombres_display", TitleCase(displayName(rec)))

	images := slices.Clone(p.Images)
	if images == nil {
		images = []model.ProductImage{}
	}
	slices.SortStableFunc(images, func(a, b model.ProductImage) int {
		return a.Position - b.Position
	})
	rec.Set("images", images)
	for i, img := range images {
		rec.Set(imageURLKey(i), n.AbsoluteURL(img.Path))
	}
	return rec
}

// AbsoluteURL joins path onto the base URL, ignoring leading slashes in path.
func (n *Normalizer) AbsoluteURL(path string) string {
	rel, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return n.base.String() + strings.TrimLeft(path, "/")
	}
	return n.base.ResolveReference(rel).String()
}

// RemapKeys copies row renaming mapped headers to their canonical label.
// Unmapped keys are kept exactly as they came.
func RemapKeys(row *model.Row) *Record {
	if row == nil {
		return model.NewOrderedMap[any](0)
	}

	rec := model.NewOrderedMap[any](row.Len() + 8)
	row.Each(func(key string, value model.Value) {
		if canon, ok := CanonicalKey(key); ok {
			rec.Set(canon, value)
			return
		}
		rec.Set(key, value)
	})

	if !rec.Has("categoria") {
		for _, legacy := range legacyCategoryKeys {
			if v, ok := textValue(rec, legacy); ok {
				rec.Set("categoria", v)
				break
			}
		}
	}
	return rec
}

func categoryValue(rec *Record) string {
	if v, ok := textValue(rec, "categoria"); ok {
		return v
	}
	if v, ok := textValue(rec, keyMap["categoria"]); ok {
		return v
	}
	return ""
}

func displayName(rec *Record) string {
	for _, key := range displayNameKeys {
		if v, ok := textValue(rec, key); ok {
			return v
		}
	}
	return defaultDisplayName
}

// textValue returns the value under key rendered as text, when it is set.
func textValue(rec *Record, key string) (string, bool) {
	raw, ok := rec.Get(key)
	if !ok {
		return "", false
	}
	switch v := raw.(type) {
	case model.Value:
		return v.String(), v.Truthy()
	case string:
		return v, v != ""
	default:
		return "", false
	}
}

func imageURLKey(i int) string {
	if i == 0 {
		return "image_url"
	}
	return "image_url" + strconv.Itoa(i+1)
}
