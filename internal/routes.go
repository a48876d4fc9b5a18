package internal

import (
	"mindful/internal/controllers"
	"mindful/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/message", http.HandlerFunc(apiController.ReceiveMessage))
	routers.Get("/stats", http.HandlerFunc(apiController.GetStats))
	routers.Get("/quote", http.HandlerFunc(apiController.GetQuote))
	routers.Get("/check", http.HandlerFunc(apiController.CheckURL))
	return routers
}
