package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/lojinha/storefront/internal/catalog"
	"github.com/lojinha/storefront/internal/config"
	"github.com/lojinha/storefront/internal/ordersclient"
	"github.com/lojinha/storefront/internal/redisx"
	"github.com/lojinha/storefront/internal/web"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	srv := web.NewServer(
		catalog.NewClient(cfg.CatalogBaseURL),
		ordersclient.New(cfg.OrdersBaseURL),
		rdb,
	)

	log.Printf("storefront listening at %s", cfg.StorefrontAddr)
	if err := http.ListenAndServe(cfg.StorefrontAddr, srv.Router()); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
