package api

import "github.com/GnanaJothi-79/elite-device-boutique/internal/api/handler"

type Server struct {
	ProductHandler  *handler.ProductHandler
	CartHandler     *handler.CartHandler
	CheckoutHandler *handler.CheckoutHandler
	OrderHandler    *handler.OrderHandler
	AuthHandler     *handler.AuthHandler
}

func NewServer(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	orderHandler *handler.OrderHandler,
	authHandler *handler.AuthHandler,
) *Server {
	return &Server{
		ProductHandler:  productHandler,
		CartHandler:     cartHandler,
		CheckoutHandler: checkoutHandler,
		OrderHandler:    orderHandler,
		AuthHandler:     authHandler,
	}
}
