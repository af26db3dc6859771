package models

import gql "github.com/graph-gophers/graphql-go"

// --- Product ---

type Product struct {
	ID            gql.ID
	Name          string
	Category      string
	CategoryLabel string
	Price         float64
	Rating        float64
	Featured      bool
	Size          *string
	Image         string
	Media         []*Media
}

type Media struct {
	Type string
	URL  string
}

// --- Category ---

type Category struct {
	Name  string
	Label string
}

// --- Custom components ---

type CustomComponent struct {
	ID              gql.ID
	Title           string
	Size            string
	BackgroundColor *string
	Items           []*ComponentItem
}

type ComponentItem struct {
	Name  string
	Image string
	Link  string
}

// --- Pagination ---

type ProductSearchResult struct {
	Items      []*Product
	TotalCount int32
	Empty      bool
	PageInfo   *PageInfo
}

type PageInfo struct {
	PageSize    int32
	CurrentPage int32
	TotalPages  int32
}
