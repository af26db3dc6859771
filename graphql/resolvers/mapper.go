package resolvers

import (
	"strconv"

	gql "github.com/graph-gophers/graphql-go"

	"shopzone.GO/core/i18n"
	gqlmodels "shopzone.GO/graphql/models"
	"shopzone.GO/model/entity"
)

func toID(id uint) gql.ID {
	return gql.ID(strconv.FormatUint(uint64(id), 10))
}

func productToModel(p entity.Product, lang i18n.Language) *gqlmodels.Product {
	m := &gqlmodels.Product{
		ID:            toID(p.ID),
		Name:          p.Name,
		Category:      p.Category,
		CategoryLabel: i18n.Category(lang, p.Category),
		Price:         p.Price,
		Rating:        p.Rating,
		Featured:      p.Featured,
		Image:         p.PrimaryImage(),
		Media:         make([]*gqlmodels.Media, len(p.Media)),
	}
	if p.Size != "" {
		size := p.Size
		m.Size = &size
	}
	for i, md := range p.Media {
		m.Media[i] = &gqlmodels.Media{Type: string(md.Type), URL: md.URL}
	}
	return m
}

func componentToModel(c entity.CustomComponent) *gqlmodels.CustomComponent {
	m := &gqlmodels.CustomComponent{
		ID:              toID(c.ID),
		Title:           c.Title,
		Size:            c.Size,
		BackgroundColor: c.BackgroundColor,
		Items:           make([]*gqlmodels.ComponentItem, len(c.Items)),
	}
	for i, it := range c.Items {
		m.Items[i] = &gqlmodels.ComponentItem{Name: it.Name, Image: it.Image, Link: it.Link}
	}
	return m
}
