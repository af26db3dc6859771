package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"shopzone.GO/model/entity"
	componentRepo "shopzone.GO/model/repository/component"
	productRepo "shopzone.GO/model/repository/product"
)

func img(url string) entity.Media   { return entity.Media{Type: entity.MediaImage, URL: url} }
func video(url string) entity.Media { return entity.Media{Type: entity.MediaVideo, URL: url} }

const sampleVideos = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/"

// SeedProducts is the demo catalog.
func SeedProducts() []entity.Product {
	return []entity.Product{
		{Name: "iPhone 15 Pro", Category: "Electronics", Price: 999, Rating: 4.8, Featured: true, Size: "large",
			Media: []entity.Media{
				img("https://picsum.photos/400/600?random=1"),
				img("https://picsum.photos/400/600?random=11"),
				video(sampleVideos + "BigBuckBunny.mp4"),
				img("https://picsum.photos/400/600?random=21"),
			}},
		{Name: "MacBook Air", Category: "Electronics", Price: 1299, Rating: 4.9, Featured: true, Size: "wide",
			Media: []entity.Media{
				img("https://picsum.photos/400/400?random=2"),
				img("https://picsum.photos/400/400?random=12"),
				img("https://picsum.photos/400/400?random=22"),
			}},
		{Name: "AirPods Pro", Category: "Electronics", Price: 249, Rating: 4.7, Size: "small",
			Media: []entity.Media{
				img("https://picsum.photos/300/300?random=3"),
				video(sampleVideos + "ElephantsDream.mp4"),
			}},
		{Name: "Nike Air Max", Category: "Fashion", Price: 120, Rating: 4.6, Size: "medium",
			Media: []entity.Media{
				img("https://picsum.photos/300/400?random=4"),
				img("https://picsum.photos/300/400?random=14"),
				img("https://picsum.photos/300/400?random=24"),
			}},
		{Name: "Designer T-Shirt", Category: "Fashion", Price: 45, Rating: 4.4, Size: "small",
			Media: []entity.Media{img("https://picsum.photos/300/300?random=5")}},
		{Name: "Leather Jacket", Category: "Fashion", Price: 299, Rating: 4.8, Featured: true, Size: "tall",
			Media: []entity.Media{
				img("https://picsum.photos/400/500?random=6"),
				img("https://picsum.photos/400/500?random=16"),
				video(sampleVideos + "ForBiggerBlazes.mp4"),
			}},
		{Name: `Smart TV 55"`, Category: "Home", Price: 699, Rating: 4.5, Size: "wide",
			Media: []entity.Media{
				img("https://picsum.photos/500/300?random=7"),
				img("https://picsum.photos/500/300?random=17"),
			}},
		{Name: "Coffee Machine", Category: "Home", Price: 199, Rating: 4.3, Size: "medium",
			Media: []entity.Media{
				img("https://picsum.photos/300/400?random=8"),
				img("https://picsum.photos/300/400?random=18"),
			}},
		{Name: "React Guide", Category: "Books", Price: 29, Rating: 4.9, Size: "small",
			Media: []entity.Media{img("https://picsum.photos/300/300?random=9")}},
		{Name: "Basketball", Category: "Sports", Price: 35, Rating: 4.2, Size: "small",
			Media: []entity.Media{
				img("https://picsum.photos/300/300?random=10"),
				img("https://picsum.photos/300/300?random=20"),
			}},
		{Name: "Makeup Kit", Category: "Beauty", Price: 89, Rating: 4.6, Size: "medium",
			Media: []entity.Media{
				img("https://picsum.photos/300/400?random=11"),
				img("https://picsum.photos/300/400?random=31"),
				img("https://picsum.photos/300/400?random=41"),
			}},
		{Name: "Wireless Mouse", Category: "Electronics", Price: 59, Rating: 4.4, Size: "small",
			Media: []entity.Media{img("https://picsum.photos/300/300?random=12")}},
	}
}

func color(c string) *string { return &c }

func item(name, image, link string) entity.ComponentItem {
	return entity.ComponentItem{Name: name, Image: image, Link: link}
}

// SeedComponents is the demo set of promotional blocks.
func SeedComponents() []entity.CustomComponent {
	return []entity.CustomComponent{
		{Title: "تسوق حسب الفئة", Size: "large", Items: []entity.ComponentItem{
			item("أجهزة الكمبيوتر والألعاب", "https://picsum.photos/150/150?random=1", "/electronics"),
			item("الألعاب", "https://picsum.photos/150/150?random=2", "/games"),
			item("جهاز التحكم", "https://picsum.photos/150/150?random=3", "/controllers"),
			item("أجهزة الكمبيوتر المحمولة", "https://picsum.photos/150/150?random=4", "/laptops"),
		}},
		{Title: "٩.٩ يوم التسوق الكبير", Size: "medium", BackgroundColor: color("#f87171"), Items: []entity.ComponentItem{
			item("عروض خاصة", "https://picsum.photos/200/200?random=5", "/sale"),
		}},
		{Title: "توصيل دون مجان", Size: "medium", BackgroundColor: color("#60a5fa"), Items: []entity.ComponentItem{
			item("شحن مجاني", "https://picsum.photos/200/200?random=6", "/free-shipping"),
		}},
		{Title: "إكسسوارات الأطفال", Size: "medium", Items: []entity.ComponentItem{
			item("سماعات", "https://picsum.photos/120/120?random=7", "/headphones"),
			item("لوحة مفاتيح", "https://picsum.photos/120/120?random=8", "/keyboards"),
			item("ماوس", "https://picsum.photos/120/120?random=9", "/mouse"),
			item("كراسي", "https://picsum.photos/120/120?random=10", "/chairs"),
		}},
		{Title: "تسوق لشراء احتياجات منزلك", Size: "large", Items: []entity.ComponentItem{
			item("أدوات المطبخ", "https://picsum.photos/140/140?random=11", "/kitchen"),
			item("وسائد وسجاد مريح", "https://picsum.photos/140/140?random=12", "/comfort"),
			item("ديكور المنزل", "https://picsum.photos/140/140?random=13", "/decor"),
			item("المناشف", "https://picsum.photos/140/140?random=14", "/towels"),
		}},
		{Title: "المنتجات المنزلية التي وصلت جديداً بسعر أقل من ٥٠$", Size: "medium", Items: []entity.ComponentItem{
			item("أدوات المطبخ وتنظيف الطعام", "https://picsum.photos/160/160?random=15", "/kitchen-tools"),
		}},
		{Title: "ايدا لمدرستك", Size: "medium", BackgroundColor: color("#1f2937"), Items: []entity.ComponentItem{
			item("ألعاب الكمبيوتر", "https://picsum.photos/180/180?random=16", "/computer-games"),
		}},
		{Title: "العب أطفال من فلاش تخزين الصناعي", Size: "large", Items: []entity.ComponentItem{
			item("ألعاب متنوعة", "https://picsum.photos/150/150?random=17", "/toys"),
			item("ألعاب تعليمية", "https://picsum.photos/150/150?random=18", "/educational"),
			item("ألعاب إلكترونية", "https://picsum.photos/150/150?random=19", "/electronic-toys"),
		}},
	}
}

// SeedResult counts the rows written by Seed.
type SeedResult struct {
	Products   int
	Components int
}

// Seed loads the demo data into empty tables. Tables that already hold
// rows are left alone.
func Seed(ctx context.Context, db *gorm.DB) (SeedResult, error) {
	var res SeedResult

	products := productRepo.NewProductRepository(db)
	n, err := products.Count(ctx)
	if err != nil {
		return res, err
	}
	if n == 0 {
		seed := SeedProducts()
		if err := products.AddBatch(ctx, seed, 50); err != nil {
			return res, fmt.Errorf("seed products: %w", err)
		}
		res.Products = len(seed)
	}

	components := componentRepo.NewComponentRepository(db)
	n, err = components.Count(ctx)
	if err != nil {
		return res, err
	}
	if n == 0 {
		for _, c := range SeedComponents() {
			c := c
			if err := components.Add(ctx, &c); err != nil {
				return res, fmt.Errorf("seed component %q: %w", c.Title, err)
			}
			res.Components++
		}
	}
	return res, nil
}
