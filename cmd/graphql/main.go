// Standalone catalog GraphQL server: go run ./cmd/graphql
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	graphqlApi "shopzone.GO/api/graphql"
	"shopzone.GO/config"
	"shopzone.GO/core/app"
)

func main() {
	config.LoadEnv()

	a, err := app.Build(context.Background())
	if err != nil {
		log.Fatal("startup: ", err)
	}
	defer a.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	graphqlApi.RegisterGraphQLRoutes(e, a.Deps)

	// ASCII banner on start (random font each run)
	fonts := []string{"banner", "big", "block", "slant", "standard", "small", "doom", "larry3d", "puffy", "rectangles"}
	figure.NewFigure("ShopZone GQL", fonts[rand.Intn(len(fonts))], true).Print()
	fmt.Println("Standalone GraphQL server")

	port := config.App().Port
	log.Printf("GraphQL at http://localhost:%s/graphql  Playground at http://localhost:%s/playground", port, port)
	e.Logger.Fatal(e.Start(":" + port))
}
