package dto

import "github.com/fekuna/omnipos-catalog-service/internal/product/normalize"

// CatalogPage is the payload of every list endpoint. Total is len(Data).
type CatalogPage struct {
	Total int                 `json:"total"`
	Data  []*normalize.Record `json:"data"`
}

func NewCatalogPage(records []*normalize.Record) *CatalogPage {
	if records == nil {
		records = []*normalize.Record{}
	}
	return &CatalogPage{Total: len(records), Data: records}
}
