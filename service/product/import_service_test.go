package product

import (
	"context"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopzone.GO/model/entity"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&entity.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

const sampleCSV = `name,category,price,rating,media,featured,size,color
iPhone 15 Pro,Electronics,999,4.8,image:https://example.com/1.jpg|video:https://example.com/1.mp4,true,large,black
Cotton Tee,Fashion,19.5,4.1,https://example.com/tee.jpg,false,,white
Broken,Toys,10,4,https://example.com/x.jpg,false,,
NoMedia,Books,5,3,,false,,
BadPrice,Books,abc,3,https://example.com/b.jpg,false,,
`

func TestImportProducts(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	res, err := ImportProducts(ctx, db, strings.NewReader(sampleCSV), ImportOptions{BatchSize: 2})
	if err != nil {
		t.Fatalf("ImportProducts: %v", err)
	}
	if res.TotalRows != 5 {
		t.Errorf("TotalRows = %d, want 5", res.TotalRows)
	}
	if res.Created != 2 || res.Updated != 0 {
		t.Errorf("Created/Updated = %d/%d, want 2/0", res.Created, res.Updated)
	}
	if res.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", res.Skipped)
	}
	// unknown column + three bad rows
	if len(res.Warnings) != 4 {
		t.Errorf("Warnings = %v, want 4 entries", res.Warnings)
	}

	var phone entity.Product
	if err := db.Where("name = ?", "iPhone 15 Pro").First(&phone).Error; err != nil {
		t.Fatalf("load imported product: %v", err)
	}
	if len(phone.Media) != 2 || phone.Media[1].Type != entity.MediaVideo {
		t.Errorf("Media = %+v, want image then video", phone.Media)
	}
	if !phone.Featured || phone.Size != "large" {
		t.Errorf("Featured/Size = %v/%q, want true/large", phone.Featured, phone.Size)
	}
}

func TestImportProducts_UpdatesExistingByName(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	first := "name,category,price,media\nLamp,Home,20,https://example.com/l.jpg\n"
	if _, err := ImportProducts(ctx, db, strings.NewReader(first), ImportOptions{}); err != nil {
		t.Fatalf("first import: %v", err)
	}
	second := "name,category,price,media\nLamp,Home,25,https://example.com/l2.jpg\n"
	res, err := ImportProducts(ctx, db, strings.NewReader(second), ImportOptions{})
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if res.Created != 0 || res.Updated != 1 {
		t.Errorf("Created/Updated = %d/%d, want 0/1", res.Created, res.Updated)
	}

	var all []entity.Product
	db.Find(&all)
	if len(all) != 1 {
		t.Fatalf("rows = %d, want 1", len(all))
	}
	if all[0].Price != 25 || all[0].PrimaryImage() != "https://example.com/l2.jpg" {
		t.Errorf("updated product = %+v", all[0])
	}
}

func TestImportProducts_DryRun(t *testing.T) {
	db := testDB(t)
	in := "name,category,price,media\nLamp,Home,20,https://example.com/l.jpg\n"
	res, err := ImportProducts(context.Background(), db, strings.NewReader(in), ImportOptions{DryRun: true})
	if err != nil {
		t.Fatalf("ImportProducts: %v", err)
	}
	if res.Created != 1 {
		t.Errorf("Created = %d, want 1", res.Created)
	}
	var n int64
	db.Model(&entity.Product{}).Count(&n)
	if n != 0 {
		t.Errorf("rows after dry run = %d, want 0", n)
	}
}

func TestImportProducts_RequiresName(t *testing.T) {
	_, err := ImportProducts(context.Background(), testDB(t), strings.NewReader("category,price\nHome,1\n"), ImportOptions{})
	if err == nil {
		t.Fatal("expected error for missing name column")
	}
}

func TestParseMedia(t *testing.T) {
	got, err := ParseMedia(" image:https://a/1.jpg | https://a/2.png|video:https://a/3.mp4 ")
	if err != nil {
		t.Fatalf("ParseMedia: %v", err)
	}
	want := []entity.Media{
		{Type: entity.MediaImage, URL: "https://a/1.jpg"},
		{Type: entity.MediaImage, URL: "https://a/2.png"},
		{Type: entity.MediaVideo, URL: "https://a/3.mp4"},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
	if FormatMedia(got) != "image:https://a/1.jpg|image:https://a/2.png|video:https://a/3.mp4" {
		t.Errorf("FormatMedia = %q", FormatMedia(got))
	}
	if _, err := ParseMedia("audio:https://a/x.mp3"); err == nil {
		t.Error("expected error for unknown media type")
	}
}
