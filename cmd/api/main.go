package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/Flarenzy/coffee-shop/docs"
	"github.com/Flarenzy/coffee-shop/internal/cli"
)

//	@title			Coffee Shop API
//	@version		1.0
//	@description	Drinks menu for the coffee shop. Baristas read recipes, managers edit the menu.

//	@license.name	MIT

//	@host		localhost:8080
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token issued by the configured identity provider.

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
