package model

// Product is a catalog row plus the images stored for it. Data holds every
// column of the source row, whatever the table looks like.
type Product struct {
	ID     string         `json:"id"`
	Data   *Row           `json:"data"`
	Images []ProductImage `json:"images"`
}

// PrimaryImage returns the first image flagged as primary, or nil.
func (p *Product) PrimaryImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	return nil
}

type ProductImage struct {
	ProductID   string  `json:"product_id"`
	Path        string  `json:"path"`
	Position    int     `json:"position"`
	IsPrimary   bool    `json:"is_primary"`
	OriginalURL *string `json:"original_url"`
}

// SearchResult carries the matched products. Total is always len(Data).
type SearchResult struct {
	Total int       `json:"total"`
	Data  []Product `json:"data"`
}

func NewSearchResult(products []Product) *SearchResult {
	if products == nil {
		products = []Product{}
	}
	return &SearchResult{Total: len(products), Data: products}
}
