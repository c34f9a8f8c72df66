// Package microcenter extracts listings from Micro Center category pages.
//
// The pages embed their product list in a hidden container as a sequence of
// single-quoted object literals, which is decoded as JSON5.
package microcenter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ramprice"
	"github.com/shopspring/decimal"
	"github.com/titanous/json5"
)

// StoreName is the store the adapter reports listings for.
const StoreName = "micro center"

// ContainerSelector locates the embedded product list.
const ContainerSelector = "#productImpressions"

var _ ramprice.Adapter = (*Adapter)(nil)

// Adapter parses Micro Center pages.
type Adapter struct{}

// NewAdapter creates a new Adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Name returns StoreName.
func (a *Adapter) Name() string {
	return StoreName
}

// Parse returns the listings embedded in source, sorted by price. A page
// without the product container yields no listings. A container that does
// not decode is EMALFORMED.
func (a *Adapter) Parse(source string) ([]ramprice.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return nil, ramprice.Errorf(ramprice.EMALFORMED, "parse page: %v", err)
	}

	container := doc.Find(ContainerSelector).First()
	if container.Length() == 0 {
		return []ramprice.Listing{}, nil
	}

	var products []any
	if err := json5.Unmarshal([]byte("["+container.Text()+"]"), &products); err != nil {
		return nil, ramprice.Errorf(ramprice.EMALFORMED, "decode product list: %v", err)
	}

	listings := make([]ramprice.Listing, 0, len(products))
	for _, p := range products {
		if l, ok := listingFromProduct(p); ok {
			listings = append(listings, l)
		}
	}
	ramprice.SortListings(listings)
	return listings, nil
}

// listingFromProduct converts one decoded product object. It reports false
// for elements of the wrong shape and names without a capacity.
func listingFromProduct(p any) (ramprice.Listing, bool) {
	obj, ok := p.(map[string]any)
	if !ok {
		return ramprice.Listing{}, false
	}
	name, ok := obj["name"].(string)
	if !ok {
		return ramprice.Listing{}, false
	}
	brand, ok := obj["brand"].(string)
	if !ok {
		return ramprice.Listing{}, false
	}
	rawPrice, ok := obj["price"].(string)
	if !ok {
		return ramprice.Listing{}, false
	}

	capacity, ok := ramprice.ParseCapacity(name)
	if !ok {
		return ramprice.Listing{}, false
	}
	priceText := strings.ReplaceAll(strings.TrimSpace(rawPrice), ",", "")
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return ramprice.Listing{}, false
	}

	return ramprice.Listing{
		Price:       price,
		Description: ramprice.FormatShorthand(capacity, priceText, brand),
	}, true
}
